// Package strength scores passwords into ordinal quality tiers for UI
// feedback. Scoring is advisory only and never gates validation: a password
// can rate Excellent here and still fail the validate rules, or vice versa.
package strength
