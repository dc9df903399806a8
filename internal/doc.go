// Package internal contains helper utilities that are intentionally private to goSignup,
// including secure random generation for session identifiers and email action tokens.
//
// # Sub-packages
//
//   - rate — core Redis-backed rate limit primitives
//
// # What this package must NOT do
//
//   - Export types that appear in the public goSignup API.
//   - Be imported by any package outside the goSignup module.
package internal
