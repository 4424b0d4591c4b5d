// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

// Action is one of the four requests understood by the Dynali API.
//
// The set is closed: the only implementations are [*MyIPAction],
// [*UpdateAction], [*StatusAction], and [*ChangePasswordAction]. Use
// [WireName] to obtain the API name of an action and [Validate] to check
// its fields before sending it.
//
// Actions are built fresh for each call and must not be mutated after
// validation.
type Action interface {
	action()
}

// Wire names of the supported actions.
const (
	ActionMyIP           = "myip"
	ActionUpdate         = "update"
	ActionStatus         = "status"
	ActionChangePassword = "changepassword"
)

// AutoIP is the [UpdateAction] IP value asking the server to use the
// address the request originates from.
const AutoIP = "auto"

// Credentials contains the fields shared by all hostname-bearing actions.
type Credentials struct {
	// Hostname is the dynamic hostname (e.g., "example.dynali.net").
	Hostname string

	// Username is the account owning the hostname.
	Username string

	// Password is the [Digest] of the hostname password, never plaintext.
	Password string
}

// NewCredentials hashes password with [Digest] and returns [Credentials].
func NewCredentials(hostname, username, password string) Credentials {
	return Credentials{
		Hostname: hostname,
		Username: username,
		Password: Digest(password),
	}
}

// MyIPAction asks the server which public IP address the request comes from.
type MyIPAction struct{}

// NewMyIPAction returns a new [*MyIPAction].
func NewMyIPAction() *MyIPAction {
	return &MyIPAction{}
}

func (*MyIPAction) action() {}

// UpdateAction points a hostname to a new IP address.
type UpdateAction struct {
	Credentials

	// IP is either [AutoIP] or a dotted-quad IPv4 address.
	IP string
}

// NewUpdateAction returns a new [*UpdateAction].
//
// The password argument is plaintext and is hashed with [Digest]. The ip
// is stored as given; pass [AutoIP] to let the server pick the address.
func NewUpdateAction(hostname, username, password, ip string) *UpdateAction {
	return &UpdateAction{
		Credentials: NewCredentials(hostname, username, password),
		IP:          ip,
	}
}

func (*UpdateAction) action() {}

// StatusAction retrieves the registration state of a hostname.
type StatusAction struct {
	Credentials
}

// NewStatusAction returns a new [*StatusAction].
//
// The password argument is plaintext and is hashed with [Digest].
func NewStatusAction(hostname, username, password string) *StatusAction {
	return &StatusAction{Credentials: NewCredentials(hostname, username, password)}
}

func (*StatusAction) action() {}

// ChangePasswordAction replaces the password of a hostname.
type ChangePasswordAction struct {
	Credentials

	// NewPassword is the [Digest] of the new password, never plaintext.
	NewPassword string
}

// NewChangePasswordAction returns a new [*ChangePasswordAction].
//
// Both password arguments are plaintext and are hashed with [Digest].
func NewChangePasswordAction(hostname, username, password, newPassword string) *ChangePasswordAction {
	return &ChangePasswordAction{
		Credentials: NewCredentials(hostname, username, password),
		NewPassword: Digest(newPassword),
	}
}

func (*ChangePasswordAction) action() {}

// WireName returns the API name of the given action.
//
// The return value is empty for a nil action, including typed nil pointers.
func WireName(a Action) string {
	switch v := a.(type) {
	case *MyIPAction:
		if v != nil {
			return ActionMyIP
		}
	case *UpdateAction:
		if v != nil {
			return ActionUpdate
		}
	case *StatusAction:
		if v != nil {
			return ActionStatus
		}
	case *ChangePasswordAction:
		if v != nil {
			return ActionChangePassword
		}
	}
	return ""
}
