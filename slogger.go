// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

// SLogger is the logging interface used by every stage; [*slog.Logger]
// satisfies it.
//
// Events use two levels:
//   - Info for lifecycle events (validation, exchange, mapping, connect,
//     TLS handshake, HTTP round trip)
//   - Debug for raw response bodies
type SLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

// DefaultSLogger returns an [SLogger] discarding every event.
func DefaultSLogger() SLogger {
	return discardSLogger{}
}

type discardSLogger struct{}

var _ SLogger = discardSLogger{}

func (discardSLogger) Debug(msg string, args ...any) {}

func (discardSLogger) Info(msg string, args ...any) {}
