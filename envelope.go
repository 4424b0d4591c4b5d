// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import "encoding/json"

var _ json.Unmarshaler = &NoData{}

// StatusOK is the envelope code signalling success.
const StatusOK = 200

// Envelope is the generic response wrapper returned by every action.
//
// The type parameter D describes the action-specific data payload: use
// [MyIPData] for myip, [StatusData] for status, and [NoData] for update and
// changepassword.
type Envelope[D any] struct {
	// Status is informational (e.g., "ok", "error").
	Status string `json:"status"`

	// Code is the only success discriminator; see [Envelope.OK].
	Code int `json:"code"`

	// Message is informational and usually empty on success.
	Message string `json:"message"`

	// Data is nil when the response has no data member.
	Data *D `json:"data,omitempty"`
}

// OK returns whether the envelope code is [StatusOK].
func (e *Envelope[D]) OK() bool {
	return e.Code == StatusOK
}

// MyIPData is the data payload of a successful myip response.
type MyIPData struct {
	IP string `json:"ip"`
}

// StatusData is the data payload of a successful status response.
//
// Dates are kept in their textual form; [MapStatus] parses them.
type StatusData struct {
	IP            string `json:"ip"`
	Status        int    `json:"status"`
	StatusMessage string `json:"status_message"`
	ExpiryDate    string `json:"expiry_date"`
	Created       string `json:"created"`
	LastUpdate    string `json:"last_update"`
}

// NoData is the data payload of update and changepassword responses.
//
// These responses carry no data; whatever the server sends is ignored.
type NoData struct{}

// UnmarshalJSON implements [json.Unmarshaler].
func (*NoData) UnmarshalJSON([]byte) error {
	return nil
}
