// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"io"
	"log/slog"
	"net"
	"sync"
	"time"
)

// httpBodyWrapper emits httpBodyStreamStart on the first Read and
// httpBodyStreamDone on Close, the latter only if a Read happened.
//
// Reads and Close happen on the goroutine performing the exchange.
type httpBodyWrapper struct {
	body      io.ReadCloser
	conn      net.Conn
	deadline  time.Time
	observer  spanObserver
	closeOnce sync.Once
	span      *span
	count     int64
}

var _ io.ReadCloser = &httpBodyWrapper{}

// Read implements [io.ReadCloser].
func (b *httpBodyWrapper) Read(buffer []byte) (int, error) {
	if b.span == nil {
		b.span = b.observer.start("httpBodyStream", b.deadline, connAttrs(b.conn)...)
	}
	count, err := b.body.Read(buffer)
	b.count += int64(count)
	return count, err
}

// Close implements [io.ReadCloser].
func (b *httpBodyWrapper) Close() (err error) {
	b.closeOnce.Do(func() {
		err = b.body.Close()
		if b.span != nil {
			b.span.done(err, slog.Int64("ioBytesCount", b.count))
		}
	})
	return
}
