// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"fmt"
	"strings"
)

// ValidationError reports that an [Action] failed [Validate].
//
// It is returned before anything is encoded or sent.
type ValidationError struct {
	// Action is the wire name of the rejected action.
	Action string

	// Messages contains the failures in the order [Validate] produced them.
	Messages []string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("dynali: invalid %s request parameters: %s", e.Action, strings.Join(e.Messages, ", "))
}

// TransportError wraps a failure returned by the [Transport].
type TransportError struct {
	// Err is the error returned by the transport.
	Err error
}

// Error implements error.
func (e *TransportError) Error() string {
	return "dynali: transport: " + e.Err.Error()
}

// Unwrap returns the underlying transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodingError reports a response body not matching the expected envelope.
type DecodingError struct {
	// Err is the underlying parse failure.
	Err error
}

// Error implements error.
func (e *DecodingError) Error() string {
	return "dynali: decoding response: " + e.Err.Error()
}

// Unwrap returns the underlying parse failure.
func (e *DecodingError) Unwrap() error {
	return e.Err
}

// APIError is a well-formed response whose code is not 200.
//
// Code and Message are copied verbatim from the response envelope.
type APIError struct {
	Code    int
	Message string
}

// Error implements error.
func (e *APIError) Error() string {
	return fmt.Sprintf("dynali: [%d] %s", e.Code, e.Message)
}
