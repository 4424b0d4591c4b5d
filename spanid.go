// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// NewSpanID returns a UUIDv7 identifying a single client call.
//
// The [*Client] attaches a span ID to every log event of a call, so the
// validation, exchange, and mapping events can be correlated.
//
// This function panics if the system random number generator fails,
// which should only happen under extraordinary circumstances.
func NewSpanID() string {
	return runtimex.PanicOnError1(uuid.NewV7()).String()
}
