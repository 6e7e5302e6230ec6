package fixer

import "go.jacobcolvin.com/jsonish/value"

// Fix runs the fixing state machine in single-emit mode and returns the
// first completed top-level value. If the input never opens any
// recognizable collection or literal (empty or entirely unrecognizable
// text), it returns an empty, Incomplete string rather than a typed zero
// value, leaving classification to the caller.
func Fix(input string) value.Value {
	m := &machine{src: []rune(input)}

	results := m.run()
	if len(results) == 0 {
		return value.NewString("", value.Incomplete)
	}

	return results[0]
}

// FixAll runs the fixing state machine in multi-emit mode: every time the
// collection stack empties after a top-level value completes, that value
// is recorded and scanning resumes from scratch on whatever text remains.
// This is how the entry pipeline's multi-object strategy asks "are there
// several JSON values concatenated in this text".
func FixAll(input string) []value.Value {
	m := &machine{src: []rune(input), multi: true}

	return m.run()
}
