// Package validate implements the field validation rules for the signup and
// login forms as pure functions.
//
// # Evaluation model
//
// Registration fields are checked independently: every rule runs and every
// failing field reports its own message, with no early exit across fields.
// The password rule is the single exception — its conditions are ordered
// (required, too short, too long, missing uppercase, missing symbol, missing
// digit) and only the first failing condition is reported.
//
// # Architecture boundaries
//
// This package owns binary pass/fail validation only. Password strength
// scoring is a separate, non-gating concern owned by package strength.
//
// # What this package must NOT do
//
//   - Import any other goSignup package.
//   - Touch the presenter, stores, or any I/O.
package validate
