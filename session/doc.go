// Package session provides Redis-backed persistence for signed-in identities.
//
// # Storage model
//
// Sessions are stored as compact JSON blobs under a configurable key prefix,
// one key per session, with the TTL carrying the expiry. There is no session
// index: the engine holds at most one active session per browser context, so
// lookups are always by session ID.
//
// # Architecture boundaries
//
// This package owns the [Store] (Redis operations) and the [Session] model.
// It does NOT interpret JWT tokens or enforce authentication policy — those
// responsibilities belong to the Engine.
//
// # What this package must NOT do
//
//   - Import goSignup or jwt (no upward imports).
//   - Decide account status or email-verification gating.
//   - Store plaintext secrets in [Session] fields.
package session
