// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"context"
	"net"
)

// NewCancelWatchFunc returns a new [*CancelWatchFunc].
func NewCancelWatchFunc() *CancelWatchFunc {
	return &CancelWatchFunc{}
}

// CancelWatchFunc closes the connection as soon as the exchange context is
// done, so that a deadline set by the caller interrupts blocking I/O.
//
// The [*HTTPTransport] places it right after [*ConnectFunc]. Closing the
// returned connection stops watching the context.
type CancelWatchFunc struct{}

var _ Func[net.Conn, net.Conn] = &CancelWatchFunc{}

// Call implements [Func].
func (op *CancelWatchFunc) Call(ctx context.Context, conn net.Conn) (net.Conn, error) {
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	return &watchedConn{Conn: conn, unwatch: stop}, nil
}

// watchedConn is a [net.Conn] whose lifetime is bound to a context.
type watchedConn struct {
	net.Conn
	unwatch func() bool
}

func (c *watchedConn) Close() error {
	c.unwatch()
	return c.Conn.Close()
}
