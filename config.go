// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"net"
	"time"
)

// Config is shared by [NewClient], [NewHTTPTransport], and the stage
// constructors. Use [NewConfig] for the defaults.
type Config struct {
	// Endpoint is the API URL requests are sent to.
	//
	// Set by [NewConfig] to [EndpointProduction].
	Endpoint Endpoint

	// Dialer is used by [*ConnectFunc].
	//
	// Set by [NewConfig] to [*net.Dialer].
	Dialer Dialer

	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewConfig] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// TimeNow returns the current time.
	//
	// Set by [NewConfig] to [time.Now].
	TimeNow func() time.Time
}

// NewConfig returns a [*Config] talking to [EndpointProduction].
func NewConfig() *Config {
	return &Config{
		Endpoint:      EndpointProduction,
		Dialer:        &net.Dialer{},
		ErrClassifier: DefaultErrClassifier,
		TimeNow:       time.Now,
	}
}
