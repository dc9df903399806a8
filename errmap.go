package goSignup

import (
	"errors"

	"github.com/MrEthical07/goSignup/validate"
)

// User-facing message catalog. Flow code never builds display strings
// inline; everything the presenter shows comes from here.
const (
	msgLoggingIn   = "Logging in..."
	msgSigningUp   = "Signing up..."
	msgSendingMail = "Sending reset email..."

	msgLoginPrefix  = "Login failed: "
	msgSignupPrefix = "Sign Up failed: "
	msgResetPrefix  = "Password reset failed: "

	msgInvalidEmail      = "Invalid email address."
	msgAccountDisabled   = "Your account has been disabled."
	msgBadCredentials    = "Invalid email or password."
	msgNetworkError      = "Network error. Please check your internet connection."
	msgTooManyLogins     = "Too many failed login attempts. Please try again later."
	msgUnknownLoginError = "An unknown error occurred during login."

	msgEmailInUse         = "The email address is already in use by another account."
	msgWeakPassword       = "The password is too weak. Please use a stronger password."
	msgTooManySignups     = "Too many signup attempts. Please try again later."
	msgUnknownSignupError = "An unknown error occurred during sign up."

	msgResetNoUser  = "No user found with that email address."
	msgResetFailed  = "Failed to send password reset email."
	msgResetNoEmail = "Please enter your email to reset password."

	msgProfileMissing = "User profile not found. Please contact support."
	msgStatusPending  = "Your account is pending approval. Please check your email for verification and wait for administrative review."
	msgStatusRejected = "Your account has been rejected. Please contact support for more information."
	msgStatusUnknown  = "Your account status is unknown. Please contact support."

	msgUnverified = "Please verify your email address before logging in. Check your inbox for the verification link."
	msgResent     = "Verification email sent. Please check your inbox."

	msgSignupSuccessMarkup = "<strong>Sign Up successful!</strong> Your data has been saved. Please verify your email address, then wait for administrative approval before logging in."
)

func welcomeMessage(firstName string) string {
	if firstName == "" {
		return "Welcome back!"
	}
	return "Welcome back, " + firstName + "!"
}

func resetSentMessage(email string) string {
	return "Password reset email sent to " + email + ". Please check your inbox."
}

// loginFailureMessage maps a login error to its display text and the
// form fields to highlight. The prefix is not included.
func loginFailureMessage(err error) (string, []validate.Field) {
	var se *ServiceError
	if errors.As(err, &se) {
		switch se.Code {
		case CodeInvalidEmail:
			return msgInvalidEmail, []validate.Field{validate.FieldEmail}
		case CodeUserDisabled:
			return msgAccountDisabled, nil
		case CodeUserNotFound, CodeWrongPassword, CodeInvalidCredential:
			return msgBadCredentials, []validate.Field{validate.FieldEmail, validate.FieldPassword}
		case CodeNetworkRequestFailed:
			return msgNetworkError, nil
		case CodeTooManyRequests:
			return msgTooManyLogins, nil
		}
	}

	switch {
	case errors.Is(err, ErrLoginRateLimited):
		return msgTooManyLogins, nil
	case errors.Is(err, ErrAccountDisabled):
		return msgAccountDisabled, nil
	case errors.Is(err, ErrInvalidCredentials):
		return msgBadCredentials, []validate.Field{validate.FieldEmail, validate.FieldPassword}
	case errors.Is(err, ErrServiceUnavailable):
		return msgNetworkError, nil
	default:
		return msgUnknownLoginError, nil
	}
}

// signupFailureMessage maps a signup error to display text plus field
// highlights.
func signupFailureMessage(err error) (string, []validate.Field) {
	var se *ServiceError
	if errors.As(err, &se) {
		switch se.Code {
		case CodeEmailAlreadyInUse:
			return msgEmailInUse, []validate.Field{validate.FieldEmail}
		case CodeWeakPassword:
			return msgWeakPassword, []validate.Field{validate.FieldPassword}
		case CodeInvalidEmail:
			return msgInvalidEmail, []validate.Field{validate.FieldEmail}
		case CodeNetworkRequestFailed:
			return msgNetworkError, nil
		case CodeTooManyRequests:
			return msgTooManySignups, nil
		}
	}

	switch {
	case errors.Is(err, ErrAccountExists):
		return msgEmailInUse, []validate.Field{validate.FieldEmail}
	case errors.Is(err, ErrWeakPassword):
		return msgWeakPassword, []validate.Field{validate.FieldPassword}
	case errors.Is(err, ErrSignupRateLimited):
		return msgTooManySignups, nil
	case errors.Is(err, ErrServiceUnavailable):
		return msgNetworkError, nil
	default:
		return msgUnknownSignupError, nil
	}
}

// resetFailureMessage maps a password reset error to display text.
func resetFailureMessage(err error) (string, []validate.Field) {
	var se *ServiceError
	if errors.As(err, &se) {
		switch se.Code {
		case CodeUserNotFound:
			return msgResetNoUser, []validate.Field{validate.FieldEmail}
		case CodeInvalidEmail:
			return msgInvalidEmail, []validate.Field{validate.FieldEmail}
		case CodeNetworkRequestFailed:
			return msgNetworkError, nil
		}
	}

	if errors.Is(err, ErrServiceUnavailable) {
		return msgNetworkError, nil
	}
	return msgResetFailed, nil
}

// serviceSentinel folds a ServiceError into the engine’s sentinel
// vocabulary so callers can branch with errors.Is.
func serviceSentinel(err error) error {
	var se *ServiceError
	if !errors.As(err, &se) {
		return err
	}

	switch se.Code {
	case CodeUserNotFound, CodeWrongPassword, CodeInvalidCredential:
		return ErrInvalidCredentials
	case CodeUserDisabled:
		return ErrAccountDisabled
	case CodeTooManyRequests:
		return ErrLoginRateLimited
	case CodeEmailAlreadyInUse:
		return ErrAccountExists
	case CodeWeakPassword:
		return ErrWeakPassword
	case CodeInvalidEmail:
		return ErrValidationFailed
	case CodeInvalidActionToken:
		return ErrVerificationInvalid
	case CodeNetworkRequestFailed:
		return ErrServiceUnavailable
	default:
		return err
	}
}
