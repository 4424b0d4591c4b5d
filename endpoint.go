// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"fmt"
	"net/url"
	"strings"
)

// Endpoint is the absolute URL of a Dynali API deployment.
type Endpoint string

// Known endpoints.
const (
	EndpointProduction = Endpoint("https://api.dynali.net/nice/")
	EndpointDebug      = Endpoint("https://debug.dynali.net/nice/")
)

// ParseEndpoint maps a configuration value to an [Endpoint].
//
// The value is either "production" (or "live"), "debug", or an absolute
// http or https URL, which is useful for testing against a local server.
func ParseEndpoint(value string) (Endpoint, error) {
	switch strings.ToLower(value) {
	case "production", "live":
		return EndpointProduction, nil
	case "debug":
		return EndpointDebug, nil
	}
	u, err := url.Parse(value)
	if err != nil {
		return "", fmt.Errorf("dynali: invalid endpoint %q: %w", value, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("dynali: invalid endpoint %q: want production, debug, or an http(s) URL", value)
	}
	return Endpoint(value), nil
}

// String implements [fmt.Stringer].
func (e Endpoint) String() string {
	return string(e)
}
