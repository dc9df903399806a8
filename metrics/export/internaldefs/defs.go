package internaldefs

import (
	goSignup "github.com/MrEthical07/goSignup"
)

// CounterDef defines a public type used by goSignup APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goSignup.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goSignup APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goSignup.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the signup engine.
var CounterDefs = []CounterDef{
	{ID: goSignup.MetricLoginSuccess, Name: "gosignup_login_success_total", Help: "Successful login attempts."},
	{ID: goSignup.MetricLoginFailure, Name: "gosignup_login_failure_total", Help: "Failed login attempts."},
	{ID: goSignup.MetricLoginValidationFailed, Name: "gosignup_login_validation_failed_total", Help: "Login attempts rejected by field validation."},
	{ID: goSignup.MetricLoginRateLimited, Name: "gosignup_login_rate_limited_total", Help: "Rate-limited login attempts."},
	{ID: goSignup.MetricLoginUnverified, Name: "gosignup_login_unverified_total", Help: "Login attempts blocked by the email verification gate."},
	{ID: goSignup.MetricLoginPending, Name: "gosignup_login_pending_total", Help: "Login attempts blocked on a pending profile."},
	{ID: goSignup.MetricLoginRejected, Name: "gosignup_login_rejected_total", Help: "Login attempts blocked on a rejected profile."},
	{ID: goSignup.MetricLoginStatusUnknown, Name: "gosignup_login_status_unknown_total", Help: "Login attempts blocked on an unrecognized profile status."},
	{ID: goSignup.MetricProfileMissing, Name: "gosignup_profile_missing_total", Help: "Login attempts for accounts with no profile document."},
	{ID: goSignup.MetricSignupSuccess, Name: "gosignup_signup_success_total", Help: "Successful signups."},
	{ID: goSignup.MetricSignupFailure, Name: "gosignup_signup_failure_total", Help: "Failed signups."},
	{ID: goSignup.MetricSignupValidationFailed, Name: "gosignup_signup_validation_failed_total", Help: "Signup attempts rejected by field validation."},
	{ID: goSignup.MetricSignupDuplicate, Name: "gosignup_signup_duplicate_total", Help: "Signup attempts rejected as duplicate email."},
	{ID: goSignup.MetricSignupRateLimited, Name: "gosignup_signup_rate_limited_total", Help: "Rate-limited signup attempts."},
	{ID: goSignup.MetricSignupCompensated, Name: "gosignup_signup_compensated_total", Help: "Signups rolled back after a profile write failure."},
	{ID: goSignup.MetricVerificationSent, Name: "gosignup_verification_sent_total", Help: "Verification emails sent."},
	{ID: goSignup.MetricVerificationConfirmed, Name: "gosignup_verification_confirmed_total", Help: "Confirmed email verifications."},
	{ID: goSignup.MetricVerificationFailure, Name: "gosignup_verification_failure_total", Help: "Failed verification sends or confirmations."},
	{ID: goSignup.MetricPasswordResetRequest, Name: "gosignup_password_reset_request_total", Help: "Password reset requests."},
	{ID: goSignup.MetricPasswordResetConfirmSuccess, Name: "gosignup_password_reset_confirm_success_total", Help: "Successful password reset confirmations."},
	{ID: goSignup.MetricPasswordResetConfirmFailure, Name: "gosignup_password_reset_confirm_failure_total", Help: "Failed password reset confirmations."},
	{ID: goSignup.MetricRateLimitHit, Name: "gosignup_rate_limit_hit_total", Help: "Rate-limit checks that denied requests."},
	{ID: goSignup.MetricSessionCreated, Name: "gosignup_session_created_total", Help: "Created sessions."},
	{ID: goSignup.MetricSessionInvalidated, Name: "gosignup_session_invalidated_total", Help: "Invalidated sessions."},
	{ID: goSignup.MetricLogout, Name: "gosignup_logout_total", Help: "Logout operations."},
}

// HistogramDefs is an exported constant or variable used by the signup engine.
var HistogramDefs = []HistogramDef{
	{ID: goSignup.MetricLoginLatency, Name: "gosignup_login_latency_seconds", Help: "Login latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the signup engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the signup engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
