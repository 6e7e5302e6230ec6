// Package fixer implements the fixing tokenizer/state machine: it consumes
// malformed, LLM-shaped JSON-ish text one codepoint at a time and emits a
// [value.Value], repairing common malformations (unquoted keys, trailing
// commas, mismatched quotes, stray comments, truncated input) as it goes.
//
// The machine is a stack of open collections (object, array, quoted
// string, triple-quoted string, backtick code fence, unquoted string, line
// comment, block comment), dispatched per character on whatever is on top
// of the stack -- the same "what's open right now decides what this
// character means" structure a hand-written JSON/YAML lexer uses, just
// deliberately permissive at every choice point instead of rejecting.
//
// [Fix] runs the machine in single-emit mode: it returns the first
// completed top-level value (or the accumulated fallback value if nothing
// ever closed). [FixAll] runs in multi-emit mode: the stack resets to
// empty after every top-level pop, and every emitted value accumulates,
// which is how the entry pipeline's multi-object scan asks "are there
// several JSON values concatenated in this text".
package fixer
