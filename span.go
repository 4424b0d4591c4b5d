// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"log/slog"
	"net"
	"time"

	"github.com/bassosimone/safeconn"
)

// spanObserver emits the *Start/*Done event pairs of a stage.
type spanObserver struct {
	ErrClassifier ErrClassifier
	Logger        SLogger
	TimeNow       func() time.Time
}

// span is an operation whose *Start event has been emitted.
type span struct {
	observer spanObserver
	name     string
	t0       time.Time
	attrs    []slog.Attr
}

// start emits name+"Start" and returns the span to finish with [*span.done].
//
// The attrs are repeated in the *Done event.
func (o spanObserver) start(name string, deadline time.Time, attrs ...slog.Attr) *span {
	sp := &span{
		observer: o,
		name:     name,
		t0:       o.TimeNow(),
		attrs:    append([]slog.Attr{slog.Time("deadline", deadline)}, attrs...),
	}
	o.Logger.Info(name+"Start", attrArgs(sp.attrs, slog.Time("t", sp.t0))...)
	return sp
}

// done emits name+"Done" with err, errClass, t0, and t.
func (sp *span) done(err error, attrs ...slog.Attr) {
	o := sp.observer
	attrs = append(attrs,
		slog.Any("err", err),
		slog.String("errClass", o.ErrClassifier.Classify(err)),
		slog.Time("t0", sp.t0),
		slog.Time("t", o.TimeNow()),
	)
	o.Logger.Info(sp.name+"Done", attrArgs(sp.attrs, attrs...)...)
}

func attrArgs(head []slog.Attr, tail ...slog.Attr) []any {
	args := make([]any, 0, len(head)+len(tail))
	for _, attr := range head {
		args = append(args, attr)
	}
	for _, attr := range tail {
		args = append(args, attr)
	}
	return args
}

// connAttrs describes conn, which may be nil.
func connAttrs(conn net.Conn) []slog.Attr {
	return []slog.Attr{
		slog.String("localAddr", safeconn.LocalAddr(conn)),
		slog.String("protocol", safeconn.Network(conn)),
		slog.String("remoteAddr", safeconn.RemoteAddr(conn)),
	}
}
