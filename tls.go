//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/rbmk-project/rbmk/blob/v0.17.0/pkg/x/netcore/tlsdialer.go
// Adapted from: https://github.com/ooni/probe-cli/blob/v3.20.1/internal/measurexlite/tls.go
//

package dynali

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net"
	"time"

	"github.com/bassosimone/runtimex"
)

// TLSEngine creates client [TLSConn] instances. The name ends up in the
// tlsEngineName field of the handshake events.
type TLSEngine interface {
	Client(conn net.Conn, config *tls.Config) TLSConn
	Name() string
}

// TLSEngineStdlib is the [TLSEngine] wrapping [crypto/tls].
type TLSEngineStdlib struct{}

var _ TLSEngine = TLSEngineStdlib{}

// Client implements [TLSEngine] using [tls.Client].
func (TLSEngineStdlib) Client(conn net.Conn, config *tls.Config) TLSConn {
	return tls.Client(conn, config)
}

// Name implements [TLSEngine].
func (TLSEngineStdlib) Name() string {
	return "stdlib"
}

// TLSConn is the subset of [*tls.Conn] used by [*TLSHandshakeFunc] and
// [*HTTPConnFunc], which reads the ALPN result from ConnectionState.
type TLSConn interface {
	ConnectionState() tls.ConnectionState
	HandshakeContext(ctx context.Context) error
	net.Conn
}

// NewTLSHandshakeFunc returns a new [*TLSHandshakeFunc].
//
// The tlsConfig argument must not be nil. The [*HTTPTransport] fills its
// ServerName and NextProtos from the endpoint URL.
func NewTLSHandshakeFunc(cfg *Config, tlsConfig *tls.Config, logger SLogger) *TLSHandshakeFunc {
	runtimex.Assert(tlsConfig != nil)
	return &TLSHandshakeFunc{
		Config:        tlsConfig,
		Engine:        TLSEngineStdlib{},
		ErrClassifier: cfg.ErrClassifier,
		Logger:        logger,
		TimeNow:       cfg.TimeNow,
	}
}

// TLSHandshakeFunc secures the connection to an https endpoint.
//
// On failure, the input connection is closed.
type TLSHandshakeFunc struct {
	// Config is cloned on each call.
	Config *tls.Config

	// Engine defaults to [TLSEngineStdlib].
	Engine TLSEngine

	ErrClassifier ErrClassifier
	Logger        SLogger
	TimeNow       func() time.Time
}

var _ Func[net.Conn, TLSConn] = &TLSHandshakeFunc{}

// Call performs the handshake using a clone of [TLSHandshakeFunc.Config]
// whose clock is [TLSHandshakeFunc.TimeNow].
func (op *TLSHandshakeFunc) Call(ctx context.Context, conn net.Conn) (TLSConn, error) {
	runtimex.Assert(op.Config != nil)
	config := op.Config.Clone()
	config.Time = op.TimeNow

	deadline, _ := ctx.Deadline()
	observer := spanObserver{op.ErrClassifier, op.Logger, op.TimeNow}
	attrs := append(connAttrs(conn),
		slog.String("tlsEngineName", op.Engine.Name()),
		slog.Any("tlsOfferedProtocols", config.NextProtos),
		slog.String("tlsServerName", config.ServerName),
		slog.Bool("tlsSkipVerify", config.InsecureSkipVerify),
	)
	sp := observer.start("tlsHandshake", deadline, attrs...)

	tconn := op.Engine.Client(conn, config)
	err := tconn.HandshakeContext(ctx)
	state := tconn.ConnectionState()
	sp.done(err,
		slog.String("tlsCipherSuite", tls.CipherSuiteName(state.CipherSuite)),
		slog.String("tlsNegotiatedProtocol", state.NegotiatedProtocol),
		slog.String("tlsVersion", tls.VersionName(state.Version)),
	)
	if err != nil {
		tconn.Close()
		return nil, err
	}
	return tconn, nil
}
