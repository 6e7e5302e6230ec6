package fixer

import (
	"regexp"
	"strings"
	"unicode"

	"go.jacobcolvin.com/jsonish/value"
)

var (
	intPattern  = regexp.MustCompile(`^-?\d+$`)
	fracPattern = regexp.MustCompile(`^-?\d+\.\d+([eE][+-]?\d+)?$`)
)

// classifyUnquoted turns the trimmed text an unquoted-string frame
// collected into the most specific leaf Value it matches: the boolean and
// null literals, then an integer or fractional number, falling back to a
// plain string (spec §4.2's unquoted-terminal classification).
func classifyUnquoted(trimmed string, state value.CompletionState) value.Value {
	switch trimmed {
	case "true":
		return value.NewBoolean(true)
	case "false":
		return value.NewBoolean(false)
	case "null", "Null", "NULL":
		return value.NewNull()
	}

	if intPattern.MatchString(trimmed) {
		return value.NewIntNumber(trimmed, state)
	}

	if fracPattern.MatchString(trimmed) {
		return value.NewFloatNumber(trimmed, state)
	}

	return value.NewString(trimmed, state)
}

// dedent strips the common leading whitespace shared by every non-blank
// line of s, the way a triple-quoted string or code fence's body is
// dedented relative to its opening delimiter's indentation.
func dedent(s string) string {
	lines := strings.Split(s, "\n")

	minIndent := -1

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := leadingWhitespaceLen(line)
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}

	if minIndent <= 0 {
		return s
	}

	out := make([]string, len(lines))

	for i, line := range lines {
		if len(line) >= minIndent {
			out[i] = line[minIndent:]
		} else {
			out[i] = strings.TrimLeft(line, " \t")
		}
	}

	return strings.Join(out, "\n")
}

func leadingWhitespaceLen(s string) int {
	n := 0

	for _, r := range s {
		if r == ' ' || r == '\t' {
			n++
		} else {
			break
		}
	}

	return n
}

// SplitFenceHeader splits a code fence's first line into a language tag
// and an optional path, on the first run of whitespace (spec §4.2, §9).
func SplitFenceHeader(header string) (lang, path string) {
	trimmed := strings.TrimSpace(header)
	if trimmed == "" {
		return "", ""
	}

	idx := strings.IndexFunc(trimmed, unicode.IsSpace)
	if idx < 0 {
		return trimmed, ""
	}

	return trimmed[:idx], strings.TrimSpace(trimmed[idx+1:])
}

// splitFenceBody separates a fence's accumulated buffer into its header
// line (language + path) and body (everything after the first newline).
// A fence with no newline at all is treated as an empty body with the
// whole buffer as header.
func splitFenceBody(raw string) (lang, path, body string) {
	idx := strings.IndexByte(raw, '\n')
	if idx < 0 {
		lang, path = SplitFenceHeader(raw)
		return lang, path, ""
	}

	lang, path = SplitFenceHeader(raw[:idx])

	return lang, path, raw[idx+1:]
}

func containsNewline(s string) bool {
	return strings.ContainsRune(s, '\n')
}

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}
