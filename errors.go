package goSignup

import "errors"

var (
	// ErrValidationFailed is an exported constant or variable used by the signup engine.
	ErrValidationFailed = errors.New("form validation failed")
	// ErrInvalidCredentials is an exported constant or variable used by the signup engine.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDisabled is an exported constant or variable used by the signup engine.
	ErrAccountDisabled = errors.New("account disabled")
	// ErrLoginRateLimited is an exported constant or variable used by the signup engine.
	ErrLoginRateLimited = errors.New("login rate limited")
	// ErrSignupRateLimited is an exported constant or variable used by the signup engine.
	ErrSignupRateLimited = errors.New("signup rate limited")
	// ErrEmailUnverified is an exported constant or variable used by the signup engine.
	ErrEmailUnverified = errors.New("email address not verified")
	// ErrAccountPending is an exported constant or variable used by the signup engine.
	ErrAccountPending = errors.New("account pending approval")
	// ErrAccountRejected is an exported constant or variable used by the signup engine.
	ErrAccountRejected = errors.New("account rejected")
	// ErrAccountStatusUnknown is an exported constant or variable used by the signup engine.
	ErrAccountStatusUnknown = errors.New("account status unknown")
	// ErrProfileMissing is an exported constant or variable used by the signup engine.
	ErrProfileMissing = errors.New("user profile not found")
	// ErrProfileNotFound is returned by ProfileStore implementations for
	// unknown UIDs. The engine translates it to ErrProfileMissing at the
	// flow boundary.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrAccountExists is an exported constant or variable used by the signup engine.
	ErrAccountExists = errors.New("account already exists")
	// ErrWeakPassword is an exported constant or variable used by the signup engine.
	ErrWeakPassword = errors.New("password rejected by backend policy")
	// ErrVerificationInvalid is an exported constant or variable used by the signup engine.
	ErrVerificationInvalid = errors.New("verification token invalid")
	// ErrVerificationDisabled is an exported constant or variable used by the signup engine.
	ErrVerificationDisabled = errors.New("email verification disabled")
	// ErrPasswordResetInvalid is an exported constant or variable used by the signup engine.
	ErrPasswordResetInvalid = errors.New("password reset token invalid")
	// ErrPasswordResetDisabled is an exported constant or variable used by the signup engine.
	ErrPasswordResetDisabled = errors.New("password reset disabled")
	// ErrServiceUnavailable is an exported constant or variable used by the signup engine.
	ErrServiceUnavailable = errors.New("backend unavailable")
	// ErrSessionNotFound is an exported constant or variable used by the signup engine.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionCreationFailed is an exported constant or variable used by the signup engine.
	ErrSessionCreationFailed = errors.New("session creation failed")
	// ErrEngineNotReady is an exported constant or variable used by the signup engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
