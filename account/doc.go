// Package account provides a Redis-backed credential service for the
// signup engine.
//
// The service owns account records, the email uniqueness index, and the
// action tokens embedded in verification and password-reset emails. It
// implements [goSignup.AccountService] and reports failures through
// [goSignup.ServiceError] codes so the engine can map them onto
// user-facing messages without inspecting storage errors.
//
// # Architecture boundaries
//
// This package talks to Redis and to a [Mailer]. It never touches the
// presenter, sessions, rate limiting, or profile documents. Profile
// data lives in the profile package; the engine coordinates the two
// during signup.
//
// # What this package must NOT do
//
//   - It must not store plaintext passwords or raw action tokens.
//     Passwords are hashed with argon2id and tokens are stored by
//     SHA-256 hash only.
//   - It must not decide login policy. Disabled and unverified accounts
//     are reported as-is; gating is the engine's job.
//   - It must not send presentation text. Mail content is the Mailer's
//     concern.
package account
