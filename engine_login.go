package goSignup

import (
	"context"
	"errors"
	"time"

	"github.com/MrEthical07/goSignup/notify"
	"github.com/MrEthical07/goSignup/validate"
)

// Login runs the full login flow: field validation, throttling,
// credential check, the email-verification gate, and the profile status
// gate. Only approved accounts get a session; every other outcome signs
// the user out conceptually and surfaces a presenter message.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if e == nil || e.accounts == nil || e.profiles == nil {
		return nil, ErrEngineNotReady
	}

	start := time.Now()
	ip := clientIPFromContext(ctx)

	if errs := validate.Login(email, password); !errs.OK() {
		e.presentFieldErrors(errs)
		e.metricInc(MetricLoginValidationFailed)
		e.emitAudit(ctx, auditEventLoginValidationFailed, false, "", "", ErrValidationFailed, func() map[string]string {
			return map[string]string{
				"identifier": email,
			}
		})
		return nil, ErrValidationFailed
	}

	e.clearFieldErrors()
	e.lockForm()
	defer e.unlockForm()
	e.present(notify.Message{Text: msgLoggingIn, Severity: notify.SeverityInfo, Persistent: true})

	if e.rateLimiter != nil {
		if err := e.rateLimiter.CheckLogin(ctx, email, ip); err != nil {
			e.metricInc(MetricLoginRateLimited)
			e.emitAudit(ctx, auditEventLoginRateLimited, false, "", "", ErrLoginRateLimited, func() map[string]string {
				return map[string]string{
					"identifier": email,
				}
			})
			e.emitRateLimit(ctx, "login", func() map[string]string {
				return map[string]string{
					"identifier": email,
				}
			})
			e.present(notify.Message{Text: msgLoginPrefix + msgTooManyLogins, Severity: notify.SeverityError})
			return nil, ErrLoginRateLimited
		}
	}

	identity, err := e.accounts.Authenticate(ctx, email, password)
	if err != nil {
		if e.rateLimiter != nil {
			_ = e.rateLimiter.IncrementLogin(ctx, email, ip)
		}
		sentinel := serviceSentinel(err)
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, "", "", sentinel, func() map[string]string {
			return map[string]string{
				"identifier": email,
			}
		})
		msg, fields := loginFailureMessage(err)
		e.presentFailure(msgLoginPrefix+msg, fields)
		return nil, sentinel
	}

	if e.config.Verification.RequireForLogin && !identity.EmailVerified {
		e.setPendingUnverified(identity.UID)
		e.metricInc(MetricLoginUnverified)
		e.emitAudit(ctx, auditEventLoginUnverified, false, identity.UID, "", ErrEmailUnverified, nil)
		e.present(notify.Message{
			Text:       msgUnverified,
			Severity:   notify.SeverityError,
			Persistent: true,
			Blocking:   true,
			Actions:    []notify.Action{notify.ActionResendVerification, notify.ActionClose},
		})
		return nil, ErrEmailUnverified
	}

	profile, err := e.profiles.Get(ctx, identity.UID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			e.metricInc(MetricProfileMissing)
			e.emitAudit(ctx, auditEventLoginProfileMissing, false, identity.UID, "", ErrProfileMissing, nil)
			e.present(notify.Message{Text: msgProfileMissing, Severity: notify.SeverityError})
			return nil, ErrProfileMissing
		}
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, identity.UID, "", ErrServiceUnavailable, nil)
		e.present(notify.Message{Text: msgLoginPrefix + msgNetworkError, Severity: notify.SeverityError})
		return nil, ErrServiceUnavailable
	}

	switch profile.Status {
	case StatusApproved:
		// fall through to session creation
	case StatusPending:
		e.metricInc(MetricLoginPending)
		e.emitAudit(ctx, auditEventLoginStatusPending, false, identity.UID, "", ErrAccountPending, nil)
		e.present(notify.Message{Text: msgStatusPending, Severity: notify.SeverityInfo})
		return nil, ErrAccountPending
	case StatusRejected:
		e.metricInc(MetricLoginRejected)
		e.emitAudit(ctx, auditEventLoginStatusRejected, false, identity.UID, "", ErrAccountRejected, nil)
		e.present(notify.Message{Text: msgStatusRejected, Severity: notify.SeverityError})
		return nil, ErrAccountRejected
	default:
		e.metricInc(MetricLoginStatusUnknown)
		e.emitAudit(ctx, auditEventLoginStatusUnknown, false, identity.UID, "", ErrAccountStatusUnknown, func() map[string]string {
			return map[string]string{
				"status": string(profile.Status),
			}
		})
		e.present(notify.Message{Text: msgStatusUnknown, Severity: notify.SeverityError})
		return nil, ErrAccountStatusUnknown
	}

	if e.rateLimiter != nil {
		_ = e.rateLimiter.ResetLogin(ctx, email, ip)
	}

	displayName := profile.DisplayName()
	sessionID, access, err := e.createSession(ctx, identity, displayName)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, identity.UID, "", err, nil)
		e.present(notify.Message{Text: msgLoginPrefix + msgNetworkError, Severity: notify.SeverityError})
		return nil, err
	}

	e.metricInc(MetricLoginSuccess)
	e.metricObserve(MetricLoginLatency, time.Since(start))
	e.emitAudit(ctx, auditEventLoginSuccess, true, identity.UID, sessionID, nil, nil)
	e.present(notify.Message{Text: welcomeMessage(displayName), Severity: notify.SeveritySuccess})

	return &LoginResult{
		UID:           identity.UID,
		DisplayName:   displayName,
		SessionID:     sessionID,
		AccessToken:   access,
		Redirect:      true,
		RedirectDelay: e.config.Presenter.RedirectDelay,
	}, nil
}

// presentFailure shows an error message and highlights the named fields
// with the same text, mirroring how the forms mark inputs invalid.
func (e *Engine) presentFailure(text string, fields []validate.Field) {
	if e == nil || e.presenter == nil {
		return
	}
	for _, f := range fields {
		e.presenter.SetFieldError(string(f), text)
	}
	e.present(notify.Message{Text: text, Severity: notify.SeverityError})
}
