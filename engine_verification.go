package goSignup

import (
	"context"

	"github.com/MrEthical07/goSignup/notify"
)

// ResendVerification re-sends the verification email for the account
// behind the currently shown unverified-email gate. It is wired to the
// gate’s resend action but can also be called directly.
//
// ResendVerification may return an error when input validation, dependency calls, or security checks fail.
// ResendVerification does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ResendVerification(ctx context.Context) error {
	if e == nil || e.accounts == nil {
		return ErrEngineNotReady
	}
	if !e.config.Verification.Enabled {
		return ErrVerificationDisabled
	}

	uid := e.pendingUnverified()
	if uid == "" {
		return ErrVerificationInvalid
	}

	if err := e.accounts.SendVerificationEmail(ctx, uid); err != nil {
		sentinel := serviceSentinel(err)
		e.metricInc(MetricVerificationFailure)
		e.emitAudit(ctx, auditEventVerificationFailed, false, uid, "", sentinel, nil)
		e.present(notify.Message{Text: msgNetworkError, Severity: notify.SeverityError})
		return sentinel
	}

	e.metricInc(MetricVerificationSent)
	e.emitAudit(ctx, auditEventVerificationSent, true, uid, "", nil, nil)
	e.present(notify.Message{Text: msgResent, Severity: notify.SeveritySuccess})
	return nil
}

// ConfirmVerification consumes a verification token from an email link
// and marks the account’s address as confirmed. Returns the UID of the
// verified account.
//
// ConfirmVerification may return an error when input validation, dependency calls, or security checks fail.
// ConfirmVerification does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ConfirmVerification(ctx context.Context, token string) (string, error) {
	if e == nil || e.accounts == nil {
		return "", ErrEngineNotReady
	}
	if !e.config.Verification.Enabled {
		return "", ErrVerificationDisabled
	}

	uid, err := e.accounts.ConfirmVerification(ctx, token)
	if err != nil {
		sentinel := serviceSentinel(err)
		e.metricInc(MetricVerificationFailure)
		e.emitAudit(ctx, auditEventVerificationFailed, false, "", "", sentinel, nil)
		return "", sentinel
	}

	e.mu.Lock()
	if e.pendingUnverifiedUID == uid {
		e.pendingUnverifiedUID = ""
	}
	e.mu.Unlock()

	e.metricInc(MetricVerificationConfirmed)
	e.emitAudit(ctx, auditEventVerificationConfirm, true, uid, "", nil, nil)
	return uid, nil
}
