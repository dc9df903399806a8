package goSignup

import (
	"context"
	"strconv"
	"time"

	"github.com/MrEthical07/goSignup/notify"
	"github.com/MrEthical07/goSignup/validate"
)

// Register runs the full signup flow: field validation, throttling,
// account creation, the verification email, then the profile write
// (with compensation on failure). The new profile always starts
// pending.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Register(ctx context.Context, form RegistrationForm) (*RegisterResult, error) {
	if e == nil || e.accounts == nil || e.profiles == nil {
		return nil, ErrEngineNotReady
	}

	ip := clientIPFromContext(ctx)

	errs := validate.Registration(validate.Form{
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Gender:       form.Gender,
		City:         form.City,
		Role:         form.Role,
		FacebookLink: form.FacebookLink,
		Email:        form.Email,
		Password:     form.Password,
		MobileNumber: form.MobileNumber,
		HasRole:      form.HasRole,
	})
	if !errs.OK() {
		e.presentFieldErrors(errs)
		e.metricInc(MetricSignupValidationFailed)
		e.emitAudit(ctx, auditEventSignupValidation, false, "", "", ErrValidationFailed, func() map[string]string {
			return map[string]string{
				"identifier":  form.Email,
				"field_count": strconv.Itoa(len(errs)),
			}
		})
		return nil, ErrValidationFailed
	}

	e.clearFieldErrors()
	e.lockForm()
	defer e.unlockForm()
	e.present(notify.Message{Text: msgSigningUp, Severity: notify.SeverityInfo, Persistent: true})

	if e.rateLimiter != nil {
		if err := e.rateLimiter.CheckSignup(ctx, ip); err != nil {
			e.metricInc(MetricSignupRateLimited)
			e.emitAudit(ctx, auditEventSignupRateLimited, false, "", "", ErrSignupRateLimited, func() map[string]string {
				return map[string]string{
					"identifier": form.Email,
				}
			})
			e.emitRateLimit(ctx, "signup", nil)
			e.present(notify.Message{Text: msgSignupPrefix + msgTooManySignups, Severity: notify.SeverityError})
			return nil, ErrSignupRateLimited
		}
	}

	identity, err := e.accounts.CreateAccount(ctx, form.Email, form.Password)
	if err != nil {
		sentinel := serviceSentinel(err)
		if sentinel == ErrAccountExists {
			e.metricInc(MetricSignupDuplicate)
			e.emitAudit(ctx, auditEventSignupDuplicate, false, "", "", sentinel, func() map[string]string {
				return map[string]string{
					"identifier": form.Email,
				}
			})
		} else {
			e.metricInc(MetricSignupFailure)
			e.emitAudit(ctx, auditEventSignupFailure, false, "", "", sentinel, func() map[string]string {
				return map[string]string{
					"identifier": form.Email,
				}
			})
		}
		msg, fields := signupFailureMessage(err)
		e.presentFailure(msgSignupPrefix+msg, fields)
		return nil, sentinel
	}

	verificationSent := false
	if e.config.Verification.Enabled {
		if err := e.accounts.SendVerificationEmail(ctx, identity.UID); err != nil {
			sentinel := serviceSentinel(err)
			e.metricInc(MetricVerificationFailure)
			e.metricInc(MetricSignupFailure)
			e.emitAudit(ctx, auditEventVerificationFailed, false, identity.UID, "", sentinel, nil)
			e.emitAudit(ctx, auditEventSignupFailure, false, identity.UID, "", sentinel, func() map[string]string {
				return map[string]string{
					"stage": "verification_email",
				}
			})
			msg, fields := signupFailureMessage(err)
			e.presentFailure(msgSignupPrefix+msg, fields)
			return nil, sentinel
		}
		verificationSent = true
		e.metricInc(MetricVerificationSent)
		e.emitAudit(ctx, auditEventVerificationSent, true, identity.UID, "", nil, nil)
	}

	profile := buildProfile(form, identity)
	if err := e.profiles.Save(ctx, profile); err != nil {
		if e.config.Account.CompensateOnProfileFailure {
			if delErr := e.accounts.DeleteAccount(ctx, identity.UID); delErr == nil {
				e.metricInc(MetricSignupCompensated)
				e.emitAudit(ctx, auditEventSignupCompensated, true, identity.UID, "", nil, nil)
			}
		}
		e.metricInc(MetricSignupFailure)
		e.emitAudit(ctx, auditEventSignupFailure, false, identity.UID, "", ErrServiceUnavailable, func() map[string]string {
			return map[string]string{
				"stage": "profile_write",
			}
		})
		e.present(notify.Message{Text: msgSignupPrefix + msgNetworkError, Severity: notify.SeverityError})
		return nil, ErrServiceUnavailable
	}

	e.metricInc(MetricSignupSuccess)
	e.emitAudit(ctx, auditEventSignupSuccess, true, identity.UID, "", nil, func() map[string]string {
		return map[string]string{
			"verification_sent": boolStr(verificationSent),
		}
	})
	e.present(notify.Message{
		Text:       msgSignupSuccessMarkup,
		Severity:   notify.SeveritySuccess,
		Markup:     true,
		Blocking:   true,
		Persistent: true,
	})

	return &RegisterResult{
		UID:              identity.UID,
		VerificationSent: verificationSent,
	}, nil
}

func buildProfile(form RegistrationForm, identity Identity) RegistrationProfile {
	return RegistrationProfile{
		UserID:         identity.UID,
		FirstName:      form.FirstName,
		LastName:       form.LastName,
		Gender:         form.Gender,
		City:           form.City,
		Role:           form.Role,
		FacebookLink:   form.FacebookLink,
		Email:          identity.Email,
		MobileNumber:   form.MobileNumber,
		SelfieProvided: form.SelfieProvided,
		Status:         StatusPending,
		CreatedAt:      time.Now().UTC(),
	}
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
