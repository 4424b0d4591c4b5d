// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpan(t *testing.T) {
	logger, records := newCapturingLogger()
	times := []time.Time{
		time.Date(2024, 6, 2, 8, 30, 0, 0, time.UTC),
		time.Date(2024, 6, 2, 8, 30, 1, 0, time.UTC),
	}
	observer := spanObserver{
		ErrClassifier: ErrClassifierFunc(func(err error) string {
			if err == nil {
				return ""
			}
			return "EMOCK"
		}),
		Logger: logger,
		TimeNow: func() time.Time {
			now := times[0]
			times = times[1:]
			return now
		},
	}

	sp := observer.start("dynaliExchange", time.Time{}, slog.String("action", "myip"))
	sp.done(errors.New("mocked error"), slog.Int("responseSize", 0))

	require.Equal(t, []string{"dynaliExchangeStart", "dynaliExchangeDone"}, recordMessages(*records))
	start, done := (*records)[0], (*records)[1]
	assert.Equal(t, "myip", recordAttr(start, "action"))
	assert.Equal(t, "", recordAttr(start, "err"))

	assert.Equal(t, "myip", recordAttr(done, "action"))
	assert.Equal(t, "0", recordAttr(done, "responseSize"))
	assert.Equal(t, "mocked error", recordAttr(done, "err"))
	assert.Equal(t, "EMOCK", recordAttr(done, "errClass"))
	assert.Equal(t, "2024-06-02 08:30:00 +0000 UTC", recordAttr(done, "t0"))
	assert.Equal(t, "2024-06-02 08:30:01 +0000 UTC", recordAttr(done, "t"))
}

func TestConnAttrsNilConn(t *testing.T) {
	attrs := connAttrs(nil)
	require.Len(t, attrs, 3)
	assert.Equal(t, "localAddr", attrs[0].Key)
	assert.Equal(t, "protocol", attrs[1].Key)
	assert.Equal(t, "remoteAddr", attrs[2].Key)
}
