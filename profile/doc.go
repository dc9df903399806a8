// Package profile stores the registration documents the signup engine
// writes after account creation and reads back during login.
//
// [RedisStore] is the production implementation of
// [goSignup.ProfileStore]; [MemoryStore] backs tests and local wiring.
//
// # Architecture boundaries
//
// This package persists and retrieves profile documents, nothing else.
// Status transitions (pending to approved or rejected) are performed by
// administrative tooling through [RedisStore.SetStatus]; the engine
// itself only ever writes pending profiles and reads whatever status it
// finds.
//
// # What this package must NOT do
//
//   - It must not interpret status values. Gating on status is the
//     engine's job.
//   - It must not hold credentials. Passwords and email verification
//     state live in the account package.
package profile
