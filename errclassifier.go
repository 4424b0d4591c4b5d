// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"errors"

	"github.com/bassosimone/errclass"
)

// ErrClassifier classifies errors into categorical strings for analysis.
//
// Implementations map errors to short, descriptive labels (e.g., "EAPI",
// "ETIMEDOUT") that end up in the errClass field of log events.
type ErrClassifier interface {
	Classify(err error) string
}

// ErrClassifierFunc adapts a function to the [ErrClassifier] interface.
type ErrClassifierFunc func(error) string

var _ ErrClassifier = ErrClassifierFunc(nil)

// Classify implements [ErrClassifier].
func (f ErrClassifierFunc) Classify(err error) string {
	return f(err)
}

// Labels assigned by [DefaultErrClassifier] to client-side failures.
const (
	EVALIDATION = "EVALIDATION"
	EDECODE     = "EDECODE"
	EAPI        = "EAPI"
)

// DefaultErrClassifier labels the client error kinds and delegates
// everything else, including the cause of a [*TransportError], to
// [errclass.New]. A nil error maps to the empty string.
var DefaultErrClassifier = ErrClassifierFunc(classifyErr)

func classifyErr(err error) string {
	if err == nil {
		return ""
	}
	var (
		validationErr *ValidationError
		decodingErr   *DecodingError
		apiErr        *APIError
		transportErr  *TransportError
	)
	switch {
	case errors.As(err, &validationErr):
		return EVALIDATION
	case errors.As(err, &decodingErr):
		return EDECODE
	case errors.As(err, &apiErr):
		return EAPI
	case errors.As(err, &transportErr):
		return errclass.New(transportErr.Err)
	default:
		return errclass.New(err)
	}
}
