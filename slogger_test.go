// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSLoggerDiscards(t *testing.T) {
	logger := DefaultSLogger()
	assert.IsType(t, discardSLogger{}, logger)

	logger.Debug("dynaliResponse", "rawResponse", "{}")
	logger.Info("dynaliMapDone", "code", 200)
}

func TestSpanLogger(t *testing.T) {
	base, records := newCapturingLogger()
	logger := &spanLogger{logger: base, spanID: "0192b8c4-0000-7000-8000-000000000000"}

	logger.Debug("dynaliResponse", "action", "myip")
	logger.Info("dynaliMapDone", "action", "myip")

	require.Len(t, *records, 2)
	for _, record := range *records {
		assert.Equal(t, "myip", recordAttr(record, "action"))
		assert.Equal(t, "0192b8c4-0000-7000-8000-000000000000", recordAttr(record, "spanID"))
	}
}
