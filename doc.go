// Package jsonish converts loosely-formed text emitted by large language
// models into a typed value matching a caller-supplied schema: strict
// JSON parses as-is, and everything short of that -- markdown fences,
// trailing prose, unquoted keys, mismatched quotes, values embedded in a
// sentence -- is recovered by the [pipeline] entry pipeline and [fixer]
// state machine before the result is coerced against the schema by
// [coerce].
package jsonish
