package goSignup

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ProfileStatus represents the approval state of a registered profile.
// New profiles start as StatusPending and are moved to approved or
// rejected by an administrator outside this engine.
type ProfileStatus string

const (
	// StatusPending is an exported constant or variable used by the signup engine.
	StatusPending ProfileStatus = "pending"
	// StatusApproved is an exported constant or variable used by the signup engine.
	StatusApproved ProfileStatus = "approved"
	// StatusRejected is an exported constant or variable used by the signup engine.
	StatusRejected ProfileStatus = "rejected"
)

// ParseProfileStatus normalizes a stored status string. Unknown values
// return ok=false; the login flow treats those as a hard gate rather
// than guessing.
func ParseProfileStatus(s string) (ProfileStatus, bool) {
	switch ProfileStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	default:
		return "", false
	}
}

// Identity is the minimal account record the engine needs from an
// [AccountService]: who the account is and whether its email address
// has been confirmed.
type Identity struct {
	UID           string
	Email         string
	EmailVerified bool
	Disabled      bool
}

// RegistrationForm carries the raw signup form values exactly as the
// user entered them. Validation and trimming happen inside
// [Engine.Register]; callers never pre-clean.
type RegistrationForm struct {
	FirstName    string
	LastName     string
	Gender       string
	City         string
	Role         string
	FacebookLink string
	Email        string
	Password     string
	MobileNumber string

	// HasRole marks form variants that render a role select. The role
	// requirement only applies when the field exists on the form.
	HasRole bool

	// SelfieProvided records whether the optional selfie step was
	// completed. It is stored on the profile but never validated.
	SelfieProvided bool
}

// RegistrationProfile is the stored profile document written on signup
// and read back on every login to decide the status gate.
type RegistrationProfile struct {
	UserID         string        `json:"userId"`
	FirstName      string        `json:"firstName"`
	LastName       string        `json:"lastName"`
	Gender         string        `json:"gender"`
	City           string        `json:"city"`
	Role           string        `json:"role,omitempty"`
	FacebookLink   string        `json:"facebookLink"`
	Email          string        `json:"email"`
	MobileNumber   string        `json:"mobileNumber"`
	SelfieProvided bool          `json:"selfieProvided"`
	Status         ProfileStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// DisplayName returns the greeting name used after an approved login.
func (p RegistrationProfile) DisplayName() string {
	return strings.TrimSpace(p.FirstName)
}

// ServiceCode is the stable error vocabulary spoken by [AccountService]
// implementations. The engine maps codes to user-facing wording; the
// service never produces display text itself.
type ServiceCode string

const (
	// CodeInvalidEmail is an exported constant or variable used by the signup engine.
	CodeInvalidEmail ServiceCode = "invalid-email"
	// CodeUserDisabled is an exported constant or variable used by the signup engine.
	CodeUserDisabled ServiceCode = "user-disabled"
	// CodeUserNotFound is an exported constant or variable used by the signup engine.
	CodeUserNotFound ServiceCode = "user-not-found"
	// CodeWrongPassword is an exported constant or variable used by the signup engine.
	CodeWrongPassword ServiceCode = "wrong-password"
	// CodeInvalidCredential is an exported constant or variable used by the signup engine.
	CodeInvalidCredential ServiceCode = "invalid-credential"
	// CodeNetworkRequestFailed is an exported constant or variable used by the signup engine.
	CodeNetworkRequestFailed ServiceCode = "network-request-failed"
	// CodeTooManyRequests is an exported constant or variable used by the signup engine.
	CodeTooManyRequests ServiceCode = "too-many-requests"
	// CodeEmailAlreadyInUse is an exported constant or variable used by the signup engine.
	CodeEmailAlreadyInUse ServiceCode = "email-already-in-use"
	// CodeWeakPassword is an exported constant or variable used by the signup engine.
	CodeWeakPassword ServiceCode = "weak-password"
	// CodeInvalidActionToken is an exported constant or variable used by the signup engine.
	CodeInvalidActionToken ServiceCode = "invalid-action-code"
)

// ServiceError wraps a backend failure with its [ServiceCode] so the
// engine can pick the right user-facing message with errors.As.
type ServiceError struct {
	Code ServiceCode
	Err  error
}

// NewServiceError describes the newserviceerror operation and its observable behavior.
//
// NewServiceError may return an error when input validation, dependency calls, or security checks fail.
// NewServiceError does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewServiceError(code ServiceCode, err error) *ServiceError {
	return &ServiceError{Code: code, Err: err}
}

// Error describes the error operation and its observable behavior.
//
// Error may return an error when input validation, dependency calls, or security checks fail.
// Error does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *ServiceError) Error() string {
	if e.Err == nil {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

// Unwrap describes the unwrap operation and its observable behavior.
//
// Unwrap may return an error when input validation, dependency calls, or security checks fail.
// Unwrap does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// AccountService is the credential backend the engine talks to. It owns
// password hashing, the email index, and the verification and reset
// action tokens. Failures surface as [ServiceError] values so the
// engine can translate them without knowing the backend.
//
//	Docs: docs/usage.md
type AccountService interface {
	CreateAccount(ctx context.Context, email, password string) (Identity, error)
	Authenticate(ctx context.Context, email, password string) (Identity, error)
	SendVerificationEmail(ctx context.Context, uid string) error
	ConfirmVerification(ctx context.Context, token string) (string, error)
	SendPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	DeleteAccount(ctx context.Context, uid string) error
}

// ProfileStore persists [RegistrationProfile] documents keyed by UID.
// Get must return [ErrProfileNotFound] for unknown UIDs; the login flow
// distinguishes a missing profile from a backend outage.
type ProfileStore interface {
	Save(ctx context.Context, profile RegistrationProfile) error
	Get(ctx context.Context, uid string) (RegistrationProfile, error)
	Delete(ctx context.Context, uid string) error
}

// RegisterResult is returned by [Engine.Register] on success.
type RegisterResult struct {
	UID              string
	VerificationSent bool
}

// LoginResult is returned by [Engine.Login] when the account is
// approved. Redirect mirrors the post-login navigation: the host should
// wait RedirectDelay before moving the user off the form.
type LoginResult struct {
	UID           string
	DisplayName   string
	SessionID     string
	AccessToken   string
	Redirect      bool
	RedirectDelay time.Duration
}
