package goSignup

import (
	"context"

	"github.com/MrEthical07/goSignup/notify"
	"github.com/MrEthical07/goSignup/validate"
)

// RequestPasswordReset sends a reset link for the given email. Unlike
// most reset flows this one reports unknown addresses to the user,
// matching the form behavior this engine replaces.
//
// RequestPasswordReset may return an error when input validation, dependency calls, or security checks fail.
// RequestPasswordReset does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) RequestPasswordReset(ctx context.Context, email string) error {
	if e == nil || e.accounts == nil {
		return ErrEngineNotReady
	}
	if !e.config.PasswordReset.Enabled {
		return ErrPasswordResetDisabled
	}

	if msg, ok := validate.Email(email); !ok {
		if e.presenter != nil {
			e.presenter.SetFieldError(string(validate.FieldEmail), msgResetNoEmail)
		}
		e.metricInc(MetricPasswordResetConfirmFailure)
		e.emitAudit(ctx, auditEventPasswordResetRequest, false, "", "", ErrValidationFailed, func() map[string]string {
			return map[string]string{
				"reason": msg,
			}
		})
		return ErrValidationFailed
	}

	e.clearFieldErrors()
	e.present(notify.Message{Text: msgSendingMail, Severity: notify.SeverityInfo, Persistent: true})

	if err := e.accounts.SendPasswordReset(ctx, email); err != nil {
		sentinel := serviceSentinel(err)
		e.metricInc(MetricPasswordResetConfirmFailure)
		e.emitAudit(ctx, auditEventPasswordResetRequest, false, "", "", sentinel, func() map[string]string {
			return map[string]string{
				"identifier": email,
			}
		})
		msg, fields := resetFailureMessage(err)
		e.presentFailure(msgResetPrefix+msg, fields)
		return sentinel
	}

	e.metricInc(MetricPasswordResetRequest)
	e.emitAudit(ctx, auditEventPasswordResetRequest, true, "", "", nil, func() map[string]string {
		return map[string]string{
			"identifier": email,
		}
	})
	e.present(notify.Message{Text: resetSentMessage(email), Severity: notify.SeveritySuccess})
	return nil
}

// ConfirmPasswordReset consumes a reset token and sets the new
// password. The new password must pass the same composition rules the
// signup form enforces.
//
// ConfirmPasswordReset may return an error when input validation, dependency calls, or security checks fail.
// ConfirmPasswordReset does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if e == nil || e.accounts == nil {
		return ErrEngineNotReady
	}
	if !e.config.PasswordReset.Enabled {
		return ErrPasswordResetDisabled
	}

	if _, ok := validate.Password(newPassword); !ok {
		e.metricInc(MetricPasswordResetConfirmFailure)
		e.emitAudit(ctx, auditEventPasswordResetConfirm, false, "", "", ErrValidationFailed, nil)
		return ErrValidationFailed
	}

	if err := e.accounts.ConfirmPasswordReset(ctx, token, newPassword); err != nil {
		sentinel := serviceSentinel(err)
		if sentinel == ErrVerificationInvalid {
			sentinel = ErrPasswordResetInvalid
		}
		e.metricInc(MetricPasswordResetConfirmFailure)
		e.emitAudit(ctx, auditEventPasswordResetConfirm, false, "", "", sentinel, nil)
		return sentinel
	}

	e.metricInc(MetricPasswordResetConfirmSuccess)
	e.emitAudit(ctx, auditEventPasswordResetConfirm, true, "", "", nil, nil)
	return nil
}
