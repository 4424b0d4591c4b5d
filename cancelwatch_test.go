// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bassosimone/netstub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCountingConn returns a conn counting the calls to Close.
func newCountingConn() (*netstub.FuncConn, *atomic.Int64) {
	count := &atomic.Int64{}
	conn := &netstub.FuncConn{
		CloseFunc: func() error {
			count.Add(1)
			return nil
		},
	}
	return conn, count
}

func TestCancelWatchFunc(t *testing.T) {
	t.Run("close delegates to the wrapped conn", func(t *testing.T) {
		conn, count := newCountingConn()
		wrapped, err := NewCancelWatchFunc().Call(context.Background(), conn)
		require.NoError(t, err)

		require.NoError(t, wrapped.Close())
		assert.Equal(t, int64(1), count.Load())
	})

	t.Run("cancel closes the conn", func(t *testing.T) {
		conn, count := newCountingConn()
		ctx, cancel := context.WithCancel(context.Background())
		_, err := NewCancelWatchFunc().Call(ctx, conn)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count.Load())

		cancel()
		assert.Eventually(t, func() bool {
			return count.Load() == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("expired deadline closes the conn", func(t *testing.T) {
		conn, count := newCountingConn()
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		_, err := NewCancelWatchFunc().Call(ctx, conn)
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			return count.Load() == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("close unregisters the watcher", func(t *testing.T) {
		conn, count := newCountingConn()
		ctx, cancel := context.WithCancel(context.Background())
		wrapped, err := NewCancelWatchFunc().Call(ctx, conn)
		require.NoError(t, err)

		require.NoError(t, wrapped.Close())
		cancel()
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, int64(1), count.Load())
	})
}
