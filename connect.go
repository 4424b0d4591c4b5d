//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/ooni/probe-cli/blob/v3.20.1/internal/netxlite/dialer.go
// Adapted from: https://github.com/rbmk-project/rbmk/blob/v0.17.0/pkg/x/netcore/dialer.go
//

package dynali

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/bassosimone/safeconn"
)

// Dialer is the subset of [*net.Dialer] used by [*ConnectFunc].
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// NewConnectFunc returns a new [*ConnectFunc] using [Config.Dialer].
//
// The logger argument is the [SLogger] to use for structured logging.
func NewConnectFunc(cfg *Config, logger SLogger) *ConnectFunc {
	return &ConnectFunc{
		Dialer:        cfg.Dialer,
		ErrClassifier: cfg.ErrClassifier,
		Logger:        logger,
		TimeNow:       cfg.TimeNow,
	}
}

// ConnectFunc dials a TCP "host:port" address.
//
// The host may be a domain name, in which case the [Dialer] resolves it.
//
// Returns either a valid [net.Conn] or an error, never both.
//
// All fields are safe to modify after construction but before first use.
// Fields must not be mutated concurrently with calls to [Call].
type ConnectFunc struct {
	// Dialer is the [Dialer] to use.
	//
	// Set by [NewConnectFunc] from [Config.Dialer].
	Dialer Dialer

	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewConnectFunc] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use.
	//
	// Set by [NewConnectFunc] to the user-provided logger.
	Logger SLogger

	// TimeNow is the function to get the current time.
	//
	// Set by [NewConnectFunc] from [Config.TimeNow].
	TimeNow func() time.Time
}

var _ Func[string, net.Conn] = &ConnectFunc{}

// Call dials the given "host:port" address over TCP.
//
// The connectDone event carries the local address on success.
func (op *ConnectFunc) Call(ctx context.Context, address string) (net.Conn, error) {
	deadline, _ := ctx.Deadline()
	observer := spanObserver{op.ErrClassifier, op.Logger, op.TimeNow}
	sp := observer.start("connect", deadline,
		slog.String("protocol", "tcp"),
		slog.String("remoteAddr", address),
	)
	conn, err := op.Dialer.DialContext(ctx, "tcp", address)
	sp.done(err, slog.String("localAddr", safeconn.LocalAddr(conn)))
	if err != nil {
		return nil, err
	}
	return conn, nil
}
