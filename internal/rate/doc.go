// Package rate provides internal primitives used to build Redis-backed rate limit keys,
// errors, and limiter behavior for the signup and login workflows.
//
// # Window semantics
//
// Fixed-window counters: INCR + conditional EXPIRE on first hit. Key prefixes:
//   - sl:  — login per-email
//   - sli: — login per-IP
//   - sr:  — registration per-IP
//
// # What this package must NOT do
//
//   - Decide user-facing wording for throttled requests (the engine maps
//     ErrRateLimited to the too-many-requests message).
//   - Be imported outside the goSignup module.
package rate
