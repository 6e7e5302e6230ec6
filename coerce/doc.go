// Package coerce maps a [value.Value] produced by the entry pipeline onto a
// caller-supplied [schema.Schema], producing a [CoercedValue]: a generic Go
// value (string, int64, float64, bool, nil, []any, or map[string]any) shaped
// by the schema, plus the set of [CoercionFlag]s recovery required along the
// way.
//
// Coercion never panics on malformed input and never mutates its [value.Value]
// argument. Failures are reported as a [*ParseError] carrying a scope path, an
// error kind (one of the Err* sentinels), a one-line reason, and -- for union
// and multi-field object failures -- the sub-errors of every arm or field
// that was tried.
package coerce
