// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"errors"
	"time"
)

// errMissingData indicates a successful response without the data member.
var errMissingData = errors.New("missing data member")

// MapMyIP maps a myip [*Envelope] to the public IP address.
//
// Returns [*APIError] for non-200 codes and [*DecodingError] when a
// successful response lacks data.
func MapMyIP(env *Envelope[MyIPData]) (string, error) {
	if !env.OK() {
		return "", &APIError{Code: env.Code, Message: env.Message}
	}
	if env.Data == nil {
		return "", &DecodingError{Err: errMissingData}
	}
	return env.Data.IP, nil
}

// MapStatus maps a status [*Envelope] to a [StatusRecord].
//
// The hostname is the one the caller asked about and checkedAt should be
// the time of mapping. Returns [*APIError] for non-200 codes and
// [*DecodingError] when data is missing or a date does not parse.
func MapStatus(env *Envelope[StatusData], hostname string, checkedAt time.Time) (StatusRecord, error) {
	if !env.OK() {
		return StatusRecord{}, &APIError{Code: env.Code, Message: env.Message}
	}
	data := env.Data
	if data == nil {
		return StatusRecord{}, &DecodingError{Err: errMissingData}
	}
	expiry, err := parseStatusDate("expiry_date", data.ExpiryDate)
	if err != nil {
		return StatusRecord{}, &DecodingError{Err: err}
	}
	created, err := parseStatusDate("created", data.Created)
	if err != nil {
		return StatusRecord{}, &DecodingError{Err: err}
	}
	lastUpdate, err := parseStatusDate("last_update", data.LastUpdate)
	if err != nil {
		return StatusRecord{}, &DecodingError{Err: err}
	}
	record := StatusRecord{
		Hostname:       hostname,
		IP:             data.IP,
		StatusCode:     data.Status,
		StatusMessage:  data.StatusMessage,
		ExpiryDate:     expiry,
		CreatedDate:    created,
		LastUpdateDate: lastUpdate,
		CheckedAt:      checkedAt,
	}
	return record, nil
}

// MapSuccess maps an update or changepassword [*Envelope] to true.
//
// Returns [*APIError] for non-200 codes.
func MapSuccess(env *Envelope[NoData]) (bool, error) {
	if !env.OK() {
		return false, &APIError{Code: env.Code, Message: env.Message}
	}
	return true, nil
}
