package goSignup

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventLoginSuccess          = "login_success"
	auditEventLoginFailure          = "login_failure"
	auditEventLoginValidationFailed = "login_validation_failed"
	auditEventLoginRateLimited      = "login_rate_limited"
	auditEventLoginUnverified       = "login_unverified"
	auditEventLoginStatusPending    = "login_status_pending"
	auditEventLoginStatusRejected   = "login_status_rejected"
	auditEventLoginStatusUnknown    = "login_status_unknown"
	auditEventLoginProfileMissing   = "login_profile_missing"
	auditEventSignupSuccess         = "signup_success"
	auditEventSignupFailure         = "signup_failure"
	auditEventSignupValidation      = "signup_validation_failed"
	auditEventSignupDuplicate       = "signup_duplicate"
	auditEventSignupRateLimited     = "signup_rate_limited"
	auditEventSignupCompensated     = "signup_compensated"
	auditEventVerificationSent      = "verification_sent"
	auditEventVerificationConfirm   = "verification_confirmed"
	auditEventVerificationFailed    = "verification_failed"
	auditEventPasswordResetRequest  = "password_reset_request"
	auditEventPasswordResetConfirm  = "password_reset_confirm"
	auditEventLogoutSession         = "logout_session"
	auditEventRateLimitTriggered    = "rate_limit_triggered"
)

// AuditErrorCode defines a public type used by goSignup APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrValidationFailed  AuditErrorCode = "validation_failed"
	auditErrInvalidCredential AuditErrorCode = "invalid_credentials"
	auditErrRateLimited       AuditErrorCode = "rate_limited"
	auditErrUnverified        AuditErrorCode = "account_unverified"
	auditErrPending           AuditErrorCode = "account_pending"
	auditErrRejected          AuditErrorCode = "account_rejected"
	auditErrStatusUnknown     AuditErrorCode = "account_status_unknown"
	auditErrDisabled          AuditErrorCode = "account_disabled"
	auditErrProfileMissing    AuditErrorCode = "profile_missing"
	auditErrDuplicate         AuditErrorCode = "duplicate"
	auditErrWeakPassword      AuditErrorCode = "weak_password"
	auditErrInvalidToken      AuditErrorCode = "invalid_token"
	auditErrSessionNotFound   AuditErrorCode = "session_not_found"
	auditErrSessionCreation   AuditErrorCode = "session_creation_failed"
	auditErrUnavailable       AuditErrorCode = "backend_unavailable"
	auditErrInternal          AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	sessionID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    userID,
		SessionID: sessionID,
		IP:        clientIPFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func (e *Engine) emitRateLimit(
	ctx context.Context,
	scope string,
	metadataBuilder func() map[string]string,
) {
	e.metricInc(MetricRateLimitHit)
	e.emitAudit(ctx, auditEventRateLimitTriggered, false, "", "", nil, func() map[string]string {
		base := map[string]string{
			"scope": scope,
		}
		if metadataBuilder == nil {
			return base
		}
		for k, v := range metadataBuilder() {
			base[k] = v
		}
		return base
	})
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrValidationFailed):
		return auditErrValidationFailed
	case errors.Is(err, ErrInvalidCredentials):
		return auditErrInvalidCredential
	case errors.Is(err, ErrLoginRateLimited),
		errors.Is(err, ErrSignupRateLimited):
		return auditErrRateLimited
	case errors.Is(err, ErrEmailUnverified):
		return auditErrUnverified
	case errors.Is(err, ErrAccountPending):
		return auditErrPending
	case errors.Is(err, ErrAccountRejected):
		return auditErrRejected
	case errors.Is(err, ErrAccountStatusUnknown):
		return auditErrStatusUnknown
	case errors.Is(err, ErrAccountDisabled):
		return auditErrDisabled
	case errors.Is(err, ErrProfileMissing),
		errors.Is(err, ErrProfileNotFound):
		return auditErrProfileMissing
	case errors.Is(err, ErrAccountExists):
		return auditErrDuplicate
	case errors.Is(err, ErrWeakPassword):
		return auditErrWeakPassword
	case errors.Is(err, ErrVerificationInvalid),
		errors.Is(err, ErrPasswordResetInvalid):
		return auditErrInvalidToken
	case errors.Is(err, ErrSessionNotFound):
		return auditErrSessionNotFound
	case errors.Is(err, ErrSessionCreationFailed):
		return auditErrSessionCreation
	case errors.Is(err, ErrServiceUnavailable):
		return auditErrUnavailable
	default:
		return auditErrInternal
	}
}
