// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
)

// Transport exchanges a JSON request body for a JSON response body.
//
// Implementations own connection management, TLS, and timeouts. The
// client hands the context over untouched and never interprets HTTP
// status codes: success or failure is decided by the decoded envelope.
type Transport interface {
	Exchange(ctx context.Context, endpoint Endpoint, body []byte) ([]byte, error)
}

// TransportFunc adapts a function to the [Transport] interface.
type TransportFunc func(ctx context.Context, endpoint Endpoint, body []byte) ([]byte, error)

var _ Transport = TransportFunc(nil)

// Exchange implements [Transport].
func (f TransportFunc) Exchange(ctx context.Context, endpoint Endpoint, body []byte) ([]byte, error) {
	return f(ctx, endpoint, body)
}

// DefaultUserAgent is the User-Agent sent by [*HTTPTransport].
const DefaultUserAgent = "dynali-go/1.0"

// DefaultMaxResponseSize bounds the response body read by [*HTTPTransport].
const DefaultMaxResponseSize = 1 << 20

// NewHTTPTransport returns a new [*HTTPTransport].
//
// The logger argument is the [SLogger] to use for structured logging.
func NewHTTPTransport(cfg *Config, logger SLogger) *HTTPTransport {
	return &HTTPTransport{
		Config:          cfg,
		Logger:          logger,
		MaxResponseSize: DefaultMaxResponseSize,
		TLSConfig:       &tls.Config{},
		UserAgent:       DefaultUserAgent,
	}
}

// HTTPTransport is the default [Transport].
//
// Each exchange dials a fresh connection by composing [*ConnectFunc],
// [*CancelWatchFunc], [*TLSHandshakeFunc] (https only), and
// [*HTTPConnFunc], POSTs the body, reads the response, and closes the
// connection. Bound the exchange with a context deadline to get a timeout.
//
// All fields are safe to modify after construction but before first use.
// Fields must not be mutated concurrently with calls to [Exchange].
type HTTPTransport struct {
	// Config provides the dialer, error classifier, and clock.
	//
	// Set by [NewHTTPTransport] to the user-provided config.
	Config *Config

	// Logger is the [SLogger] to use.
	//
	// Set by [NewHTTPTransport] to the user-provided logger.
	Logger SLogger

	// MaxResponseSize is the maximum number of response bytes to read.
	//
	// Set by [NewHTTPTransport] to [DefaultMaxResponseSize].
	MaxResponseSize int64

	// TLSConfig is cloned for each https exchange. ServerName defaults to
	// the endpoint host and NextProtos to h2 and http/1.1.
	//
	// Set by [NewHTTPTransport] to an empty [*tls.Config].
	TLSConfig *tls.Config

	// UserAgent is the User-Agent header value.
	//
	// Set by [NewHTTPTransport] to [DefaultUserAgent].
	UserAgent string
}

var _ Transport = &HTTPTransport{}

// Exchange implements [Transport].
func (txp *HTTPTransport) Exchange(ctx context.Context, endpoint Endpoint, body []byte) ([]byte, error) {
	u, err := url.Parse(string(endpoint))
	if err != nil {
		return nil, err
	}
	dial, err := txp.newDialFunc(u)
	if err != nil {
		return nil, err
	}
	hc, err := dial.Call(ctx, endpointAddress(u))
	if err != nil {
		return nil, err
	}
	defer hc.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", txp.UserAgent)

	resp, err := hc.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(io.LimitReader(resp.Body, txp.MaxResponseSize))
}

func (txp *HTTPTransport) newDialFunc(u *url.URL) (Func[string, *HTTPConn], error) {
	switch u.Scheme {
	case "https":
		return Compose4[string, net.Conn, net.Conn, TLSConn, *HTTPConn](
			NewConnectFunc(txp.Config, txp.Logger),
			NewCancelWatchFunc(),
			NewTLSHandshakeFunc(txp.Config, txp.tlsConfig(u), txp.Logger),
			NewHTTPConnFuncTLS(txp.Config, txp.Logger),
		), nil
	case "http":
		return Compose3[string, net.Conn, net.Conn, *HTTPConn](
			NewConnectFunc(txp.Config, txp.Logger),
			NewCancelWatchFunc(),
			NewHTTPConnFuncPlain(txp.Config, txp.Logger),
		), nil
	default:
		return nil, fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}
}

func (txp *HTTPTransport) tlsConfig(u *url.URL) *tls.Config {
	config := &tls.Config{}
	if txp.TLSConfig != nil {
		config = txp.TLSConfig.Clone()
	}
	if config.ServerName == "" {
		config.ServerName = u.Hostname()
	}
	if len(config.NextProtos) <= 0 {
		config.NextProtos = []string{"h2", "http/1.1"}
	}
	return config
}

// endpointAddress returns the "host:port" to dial for u.
func endpointAddress(u *url.URL) string {
	port := u.Port()
	if port == "" {
		port = "443"
		if u.Scheme == "http" {
			port = "80"
		}
	}
	return net.JoinHostPort(u.Hostname(), port)
}
