package notify

import (
	"sync"
	"time"
)

// Severity classifies a presented message.
type Severity int

const (
	// SeveritySuccess marks a positive outcome.
	SeveritySuccess Severity = iota
	// SeverityError marks a failure the user must react to.
	SeverityError
	// SeverityInfo marks a neutral status update.
	SeverityInfo
	// SeverityClear hides the current message; Present treats it as Clear.
	SeverityClear
)

// Action identifies an inline control on a blocking message.
type Action int

const (
	// ActionClose dismisses the message. On the verification gate it also
	// signs the user out.
	ActionClose Action = iota
	// ActionResendVerification re-dispatches the verification email.
	ActionResendVerification
)

const (
	// DefaultAutoHide is the plain-message auto-hide delay.
	DefaultAutoHide = 5 * time.Second
	// DefaultAutoHideMarkup is the auto-hide delay for rich markup success
	// messages.
	DefaultAutoHideMarkup = 8 * time.Second
)

// Message is one presenter payload.
type Message struct {
	Text     string
	Severity Severity
	// Markup marks Text as a structured rich block rather than literal
	// text. Markup success messages get the longer auto-hide delay.
	Markup bool
	// Persistent suppresses the auto-hide timer; dismissal requires an
	// explicit user action.
	Persistent bool
	// Blocking covers the underlying content and locks the form until the
	// message is cleared or dismissed.
	Blocking bool
	// Actions lists the inline controls offered on a blocking message.
	Actions []Action
}

// DismissHandler receives the action chosen when a blocking message is
// dismissed. It runs after the presenter has already unlocked the form.
type DismissHandler func(Action)

// Presenter owns message-box state, the per-field error slots, and the
// form lock.
type Presenter struct {
	mu sync.Mutex

	autoHide       time.Duration
	autoHideMarkup time.Duration
	clock          Clock

	current     *Message
	covered     bool
	locked      bool
	pendingLock bool

	timer Timer
	gen   uint64

	fieldErrors map[string]string
	onDismiss   DismissHandler
}

// NewPresenter builds a presenter with the standard auto-hide delays. A nil
// clock selects the system clock.
func NewPresenter(clock Clock) *Presenter {
	if clock == nil {
		clock = SystemClock()
	}
	return &Presenter{
		autoHide:       DefaultAutoHide,
		autoHideMarkup: DefaultAutoHideMarkup,
		clock:          clock,
		fieldErrors:    make(map[string]string),
	}
}

// SetAutoHide overrides both auto-hide delays. Zero keeps the current
// value.
func (p *Presenter) SetAutoHide(plain, markup time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if plain > 0 {
		p.autoHide = plain
	}
	if markup > 0 {
		p.autoHideMarkup = markup
	}
}

// SetDismissHandler installs the callback invoked with the chosen action
// when a blocking message is dismissed.
func (p *Presenter) SetDismissHandler(h DismissHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onDismiss = h
}

// Present shows a message, replacing any current one. SeverityClear is
// equivalent to Clear.
func (p *Presenter) Present(msg Message) {
	if msg.Severity == SeverityClear {
		p.Clear()
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopTimerLocked()
	m := msg
	p.current = &m
	p.covered = msg.Blocking
	if msg.Blocking {
		p.locked = true
	}

	if msg.Persistent {
		return
	}

	delay := p.autoHide
	if msg.Markup && msg.Severity == SeveritySuccess {
		delay = p.autoHideMarkup
	}
	gen := p.gen
	p.timer = p.clock.AfterFunc(delay, func() {
		p.expire(gen)
	})
}

// expire hides the message scheduled under gen. A newer Present or Clear
// bumps the generation, making stale timers no-ops.
func (p *Presenter) expire(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != gen {
		return
	}
	p.clearLocked()
}

// Clear hides the current message, restores covered content, and unlocks
// the form. Calling it with nothing shown has no effect.
func (p *Presenter) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearLocked()
}

// Dismiss clears like Clear and then reports the chosen action to the
// dismiss handler. Dismissing with nothing shown is a no-op and the
// handler does not run.
func (p *Presenter) Dismiss(action Action) {
	p.mu.Lock()
	if p.current == nil {
		p.mu.Unlock()
		return
	}
	handler := p.onDismiss
	p.clearLocked()
	p.mu.Unlock()

	if handler != nil {
		handler(action)
	}
}

func (p *Presenter) clearLocked() {
	p.stopTimerLocked()
	p.current = nil
	p.covered = false
	p.locked = p.pendingLock
}

func (p *Presenter) stopTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.gen++
}

// Current returns the visible message, if any.
func (p *Presenter) Current() (Message, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return Message{}, false
	}
	return *p.current, true
}

// Covered reports whether the current message covers the underlying
// content area.
func (p *Presenter) Covered() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.covered
}

// FormLocked reports whether form inputs and the submit control are
// disabled, either by an in-flight submission or a blocking message.
func (p *Presenter) FormLocked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.locked
}

// LockForm disables the form for the duration of an in-flight submission.
func (p *Presenter) LockForm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pendingLock = true
	p.locked = true
}

// UnlockForm lifts a submission lock. A blocking message still keeps the
// form locked until it is cleared.
func (p *Presenter) UnlockForm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pendingLock = false
	p.locked = p.current != nil && p.current.Blocking
}

// SetFieldError populates one field's error slot and makes it visible.
func (p *Presenter) SetFieldError(field, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fieldErrors[field] = message
}

// FieldError returns the message shown in a field's error slot.
func (p *Presenter) FieldError(field string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	msg, ok := p.fieldErrors[field]
	return msg, ok
}

// FieldErrors returns a copy of all populated error slots.
func (p *Presenter) FieldErrors() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]string, len(p.fieldErrors))
	for k, v := range p.fieldErrors {
		out[k] = v
	}
	return out
}

// ClearFieldErrors empties every error slot. Flows call this at the start
// of each validation pass.
func (p *Presenter) ClearFieldErrors() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.fieldErrors)
}
