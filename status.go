// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"fmt"
	"strings"
	"time"
)

// Hostname status codes reported by the status action.
const (
	HostnameStatusActive  = 0
	HostnameStatusExpired = 2
	HostnameStatusBanned  = 9
)

// StatusRecord is a snapshot of the registration state of a hostname.
//
// Construct using [MapStatus] or the [*Client] status methods.
type StatusRecord struct {
	// Hostname is the hostname as passed by the caller.
	Hostname string

	// IP is the address currently assigned to the hostname.
	IP string

	// StatusCode is the numeric status (see the HostnameStatus constants).
	StatusCode int

	// StatusMessage is the textual status.
	StatusMessage string

	// ExpiryDate may be in the past or in the future.
	ExpiryDate time.Time

	// CreatedDate is when the hostname was registered.
	CreatedDate time.Time

	// LastUpdateDate is when the IP was last updated.
	LastUpdateDate time.Time

	// CheckedAt is the local time at which the response was mapped.
	CheckedAt time.Time
}

// IsActive returns whether the hostname is active.
func (r StatusRecord) IsActive() bool {
	return r.StatusCode == HostnameStatusActive
}

// IsExpired returns whether the hostname registration has expired.
func (r StatusRecord) IsExpired() bool {
	return r.StatusCode == HostnameStatusExpired
}

// IsBanned returns whether the hostname has been banned.
func (r StatusRecord) IsBanned() bool {
	return r.StatusCode == HostnameStatusBanned
}

// String implements [fmt.Stringer].
func (r StatusRecord) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hostname: %s\n", r.Hostname)
	fmt.Fprintf(&b, "IP: %s\n", r.IP)
	fmt.Fprintf(&b, "Status: %d\n", r.StatusCode)
	fmt.Fprintf(&b, "Status message: %s\n", r.StatusMessage)
	fmt.Fprintf(&b, "Expiry date: %s\n", r.ExpiryDate.Format(time.DateOnly))
	fmt.Fprintf(&b, "Creation date: %s\n", r.CreatedDate.Format(time.DateOnly))
	fmt.Fprintf(&b, "Last update: %s\n", r.LastUpdateDate.Format(time.DateOnly))
	fmt.Fprintf(&b, "Checked at: %s\n", r.CheckedAt.Format(time.RFC3339))
	return b.String()
}

// statusDateLayouts are the textual date forms accepted in status responses.
var statusDateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
}

func parseStatusDate(field, value string) (time.Time, error) {
	for _, layout := range statusDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %s %q", field, value)
}
