// Package middleware exposes HTTP middleware adapters for session
// enforcement built on top of goSignup.Engine validation.
//
// # Guards
//
//   - [Guard] — requires a live session (bearer token or "sid" cookie).
//   - [RequireVerified] — additionally requires a verified email address.
//
// Each guard reads the session ID from the request, calls
// Engine.ValidateSession, and injects the validated session into the
// request context.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT implement
// authentication logic itself — all decisions are delegated to Engine.ValidateSession.
//
// # What this package must NOT do
//
//   - Access Redis directly (Engine handles I/O).
//   - Make authorization decisions beyond pass/reject from Engine.ValidateSession.
package middleware
