// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/bassosimone/runtimex"
)

// wireRequest is the JSON shape of every request.
type wireRequest struct {
	Action  string `json:"action"`
	Payload any    `json:"payload,omitempty"`
}

type wireCredentials struct {
	Hostname string `json:"hostname"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type wireUpdate struct {
	wireCredentials
	IP string `json:"myip"`
}

type wireChangePassword struct {
	wireCredentials
	NewPassword string `json:"newpassword"`
}

func newWireCredentials(c Credentials) wireCredentials {
	return wireCredentials{
		Hostname: strings.ToLower(c.Hostname),
		Username: c.Username,
		Password: strings.ToLower(c.Password),
	}
}

// EncodeRequest serializes an [Action] into the JSON request body.
//
// The myip action has no payload member. The hostname and the digests are
// lowercased; the update IP travels as "myip" and the new password as
// "newpassword".
//
// This function panics if [WireName] returns an empty string for a, since
// the four actions always have a name and anything else is a programming
// error. It does not validate the action: call [Validate] first.
func EncodeRequest(a Action) ([]byte, error) {
	name := WireName(a)
	runtimex.Assert(name != "")

	req := wireRequest{Action: name}
	switch v := a.(type) {
	case *UpdateAction:
		req.Payload = wireUpdate{wireCredentials: newWireCredentials(v.Credentials), IP: v.IP}
	case *StatusAction:
		req.Payload = newWireCredentials(v.Credentials)
	case *ChangePasswordAction:
		req.Payload = wireChangePassword{
			wireCredentials: newWireCredentials(v.Credentials),
			NewPassword:     strings.ToLower(v.NewPassword),
		}
	}
	return json.Marshal(req)
}

// errMissingCode indicates that a response does not contain the code member.
var errMissingCode = errors.New("missing code member")

// DecodeEnvelope parses a response body into an [*Envelope].
//
// The data member is only interpreted when the code is [StatusOK]; error
// responses keep a nil Data regardless of what the server sent. Any failure,
// including a body without the "code" member, is returned as a
// [*DecodingError].
func DecodeEnvelope[D any](body []byte) (*Envelope[D], error) {
	var raw struct {
		Status  string          `json:"status"`
		Code    *int            `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &DecodingError{Err: err}
	}
	if raw.Code == nil {
		return nil, &DecodingError{Err: errMissingCode}
	}
	env := &Envelope[D]{
		Status:  raw.Status,
		Code:    *raw.Code,
		Message: raw.Message,
	}
	if !env.OK() || len(raw.Data) <= 0 || string(raw.Data) == "null" {
		return env, nil
	}
	var data D
	if err := json.Unmarshal(raw.Data, &data); err != nil {
		return nil, &DecodingError{Err: err}
	}
	env.Data = &data
	return env, nil
}
