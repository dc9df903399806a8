// Package goSignup provides a registration and login engine for web
// signup forms: full-form validation, password strength scoring, a
// pending/approved/rejected profile status gate, Redis-backed sessions,
// and a message presenter that mirrors the form’s visible state.
//
// The package is designed for concurrent server workloads: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// goSignup is the public surface. It exposes [Engine], [Builder], [Config], and value types
// (RegistrationForm, LoginResult, MetricsSnapshot, etc.). Form rules live in validate/,
// strength scoring in strength/, phone input editing in phone/, and message
// presentation in notify/. Internal coordination — rate limiting, random
// identifiers — lives under internal/ and is never exported.
//
// # What this package must NOT do
//
//   - Expose Redis clients, internal stores, or key layouts in its public API.
//   - Perform I/O outside of Engine methods (construction via Builder is allocation-only
//     until Build).
//   - Import any sub-package that re-imports goSignup (no import cycles).
//
// # Behavior contract
//
// Login is status-gated: only accounts whose stored profile is approved ever
// receive a session. Pending, rejected, unknown-status, and unverified-email
// accounts are turned away with the matching presenter message and no session
// is created. Register writes the profile as pending and, when the profile
// write fails, removes the just-created account so the two stores never
// drift apart.
package goSignup
