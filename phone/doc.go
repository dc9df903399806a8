// Package phone implements the mobile-number input editor: a character-level
// editing filter that keeps the value pinned to the fixed "09" prefix and the
// 11-digit national format while the user types.
//
// # Invariants
//
// After every operation the value matches ^09\d{0,9}$, the caret sits at or
// after the prefix, and destructive edits that would touch the prefix are
// suppressed. The [Editor] restores these invariants itself; callers feed it
// raw edit events and render Value/Caret back to the input.
//
// # What this package must NOT do
//
//   - Import any other goSignup package.
//   - Validate the finished number — that is the validate package's rule.
package phone
