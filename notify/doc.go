// Package notify implements the message presenter: the single surface
// through which flows report success, failure, and per-field validation
// errors to the user.
//
// # Behavior
//
// A presented message replaces the previous one. Non-persistent messages
// auto-hide on a timer (longer for rich markup success messages);
// persistent messages stay until an explicit Dismiss. Blocking messages
// lock the form while shown; Clear and Dismiss unlock it and are
// idempotent. Dismiss actions (close, resend verification) are forwarded
// to a handler installed by the owning flow.
//
// # Concurrency
//
// Presenter methods are safe for concurrent use. Timers fire on their own
// goroutine and are generation-guarded so a stale timer never hides a newer
// message.
package notify
