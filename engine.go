package goSignup

import (
	"context"
	"sync"
	"time"

	"github.com/MrEthical07/goSignup/internal"
	"github.com/MrEthical07/goSignup/internal/rate"
	"github.com/MrEthical07/goSignup/jwt"
	"github.com/MrEthical07/goSignup/notify"
	"github.com/MrEthical07/goSignup/session"
	"github.com/MrEthical07/goSignup/validate"
)

// Engine defines a public type used by goSignup APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config       Config
	accounts     AccountService
	profiles     ProfileStore
	presenter    *notify.Presenter
	sessionStore *session.Store
	rateLimiter  *rate.Limiter
	jwtManager   *jwt.Manager
	audit        *auditDispatcher
	metrics      *Metrics

	// pendingUnverifiedUID remembers the account behind the currently
	// shown unverified-email gate so the resend action knows who to mail.
	mu                   sync.Mutex
	pendingUnverifiedUID string
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// Presenter returns the message presenter driven by the engine’s flows.
// Hosts read the current message, field errors, and lock state from it.
func (e *Engine) Presenter() *notify.Presenter {
	if e == nil {
		return nil
	}
	return e.presenter
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) metricObserve(id MetricID, d time.Duration) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Observe(id, d)
}

// Logout invalidates the given session. Unknown sessions are not an
// error; logout is idempotent from the caller’s point of view.
func (e *Engine) Logout(ctx context.Context, sessionID string) error {
	if e == nil || e.sessionStore == nil {
		return ErrEngineNotReady
	}

	if err := e.sessionStore.Delete(ctx, sessionID); err != nil {
		e.emitAudit(ctx, auditEventLogoutSession, false, "", sessionID, ErrServiceUnavailable, nil)
		return ErrServiceUnavailable
	}

	e.metricInc(MetricLogout)
	e.metricInc(MetricSessionInvalidated)
	e.emitAudit(ctx, auditEventLogoutSession, true, "", sessionID, nil, nil)
	return nil
}

// ValidateSession loads a live session by ID. Expired and unknown
// sessions both return [ErrSessionNotFound].
func (e *Engine) ValidateSession(ctx context.Context, sessionID string) (*session.Session, error) {
	if e == nil || e.sessionStore == nil {
		return nil, ErrEngineNotReady
	}

	sess, err := e.sessionStore.Get(ctx, sessionID)
	if err != nil {
		if err == session.ErrSessionNotFound {
			return nil, ErrSessionNotFound
		}
		return nil, ErrServiceUnavailable
	}
	return sess, nil
}

// createSession persists a new session for an approved login and mints
// the optional access token.
func (e *Engine) createSession(ctx context.Context, identity Identity, displayName string) (string, string, error) {
	sid, err := internal.NewSessionID()
	if err != nil {
		return "", "", ErrSessionCreationFailed
	}

	now := time.Now()
	sess := &session.Session{
		SessionID:     sid.String(),
		UID:           identity.UID,
		Email:         identity.Email,
		EmailVerified: identity.EmailVerified,
		DisplayName:   displayName,
		CreatedAt:     now.Unix(),
		ExpiresAt:     now.Add(e.config.Session.Lifetime).Unix(),
	}

	if err := e.sessionStore.Save(ctx, sess, e.config.Session.Lifetime); err != nil {
		return "", "", ErrSessionCreationFailed
	}

	var access string
	if e.jwtManager != nil {
		access, err = e.jwtManager.CreateAccess(identity.UID, sess.SessionID, identity.Email, identity.EmailVerified)
		if err != nil {
			// The session exists but the token does not. Roll back so a
			// retried login starts clean.
			_ = e.sessionStore.Delete(ctx, sess.SessionID)
			return "", "", ErrSessionCreationFailed
		}
	}

	e.metricInc(MetricSessionCreated)
	return sess.SessionID, access, nil
}

// handleDismiss is installed as the presenter’s dismiss handler. The
// close action just drops the gate state; resend re-mails the pending
// account.
func (e *Engine) handleDismiss(action notify.Action) {
	if e == nil {
		return
	}

	e.mu.Lock()
	uid := e.pendingUnverifiedUID
	if action == notify.ActionClose {
		e.pendingUnverifiedUID = ""
	}
	e.mu.Unlock()

	if action == notify.ActionResendVerification && uid != "" {
		_ = e.ResendVerification(context.Background())
	}
}

// present pushes a message when a presenter is attached. All flows stay
// usable headless; presentation is best-effort.
func (e *Engine) present(msg notify.Message) {
	if e == nil || e.presenter == nil {
		return
	}
	e.presenter.Present(msg)
}

func (e *Engine) presentFieldErrors(errs validate.Errors) {
	if e == nil || e.presenter == nil {
		return
	}
	e.presenter.ClearFieldErrors()
	for field, msg := range errs {
		e.presenter.SetFieldError(string(field), msg)
	}
}

func (e *Engine) clearFieldErrors() {
	if e == nil || e.presenter == nil {
		return
	}
	e.presenter.ClearFieldErrors()
}

func (e *Engine) lockForm() {
	if e == nil || e.presenter == nil {
		return
	}
	e.presenter.LockForm()
}

func (e *Engine) unlockForm() {
	if e == nil || e.presenter == nil {
		return
	}
	e.presenter.UnlockForm()
}

func (e *Engine) setPendingUnverified(uid string) {
	e.mu.Lock()
	e.pendingUnverifiedUID = uid
	e.mu.Unlock()
}

func (e *Engine) pendingUnverified() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pendingUnverifiedUID
}
