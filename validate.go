// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	hostnameRegexp = regexp.MustCompile(`(?i)^([a-z0-9\-]+\.)+[a-z]+$`)
	usernameRegexp = regexp.MustCompile(`(?i)^[a-z0-9]{4,128}$`)
	digestRegexp   = regexp.MustCompile(`(?i)^[a-f0-9]{32}$`)
)

// Validate returns the ordered list of problems with the fields of a.
//
// An empty result means the action is valid. All rules run, so the result
// lists every failing field rather than just the first one.
func Validate(a Action) []string {
	if WireName(a) == "" {
		return []string{"Unsupported action."}
	}
	switch v := a.(type) {
	case *UpdateAction:
		errs := validateCredentials(v.Credentials)
		if !validUpdateIP(v.IP) {
			errs = append(errs, fmt.Sprintf("Invalid IP. Provided `%s`.", v.IP))
		}
		return errs
	case *StatusAction:
		return validateCredentials(v.Credentials)
	case *ChangePasswordAction:
		errs := validateCredentials(v.Credentials)
		if !digestRegexp.MatchString(v.NewPassword) {
			errs = append(errs, "Invalid or missing new password.")
		}
		return errs
	}
	return []string{}
}

func validateCredentials(c Credentials) []string {
	errs := []string{}
	if !hostnameRegexp.MatchString(c.Hostname) {
		errs = append(errs, "Invalid or missing hostname.")
	}
	if !usernameRegexp.MatchString(c.Username) {
		errs = append(errs, "Invalid or missing username.")
	}
	if !digestRegexp.MatchString(c.Password) {
		errs = append(errs, "Invalid or missing password.")
	}
	return errs
}

// validUpdateIP accepts [AutoIP] or exactly four decimal byte values.
func validUpdateIP(ip string) bool {
	if ip == AutoIP {
		return true
	}
	segments := strings.Split(ip, ".")
	if len(segments) != 4 {
		return false
	}
	for _, segment := range segments {
		if _, err := strconv.ParseUint(segment, 10, 8); err != nil {
			return false
		}
	}
	return true
}
