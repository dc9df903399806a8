package session

// Session defines a public type used by goSignup APIs.
//
// Session instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Session struct {
	SessionID string `json:"sid"`
	UID       string `json:"uid"`
	Email     string `json:"email"`

	// EmailVerified mirrors the account flag at sign-in time. The login
	// gate re-reads the account, so a stale false here is harmless.
	EmailVerified bool `json:"verified"`

	DisplayName string `json:"name,omitempty"`

	CreatedAt int64 `json:"iat"`
	ExpiresAt int64 `json:"exp"`
}
