package fixer

import (
	"regexp"
	"strconv"

	"go.jacobcolvin.com/jsonish/value"
)

// shouldCloseUnescapedString looks ahead from pos (the position right
// after a candidate closing quote) and reports whether the quote really
// ends the string: the rest of the line up to the next structural
// character must be empty of anything but whitespace. This lets an
// apostrophe inside a double-quoted string ("it's fine") stay literal
// while a genuine closing quote followed by `, } ] :` (or EOF) closes.
func (m *machine) shouldCloseUnescapedString(pos int) bool {
	j := pos
	for j < len(m.src) && isSpace(m.src[j]) {
		j++
	}

	if j >= len(m.src) {
		return true
	}

	switch m.src[j] {
	case ',', '}', ']', ':':
		return true
	default:
		return false
	}
}

var keyLikeRegexp = regexp.MustCompile(`^"?[A-Za-z_][A-Za-z0-9_]*"?\s*:`)

// restOfLineLooksLikeKey reports whether the text from pos to the next
// newline (or EOF) looks like the start of the next object field --
// identifier-or-quoted-identifier followed by a colon. It backs both the
// comma-in-multiline-unquoted heuristic (a comma only separates fields
// when what follows on the line looks like a key) and the
// newline-terminates-an-unquoted-value heuristic.
func (m *machine) restOfLineLooksLikeKey(pos int) bool {
	end := pos
	for end < len(m.src) && m.src[end] != '\n' {
		end++
	}

	line := trimSpace(string(m.src[pos:end]))

	return keyLikeRegexp.MatchString(line)
}

// applyNullThenBrace implements the null-then-brace heuristic: the
// literal token "null" immediately followed by "{" (with nothing in
// between) is read not as a null value abutting a new object, but as the
// start of raw, truncated JSON that an upstream model emitted as if it
// were still inside a string. The whole run -- from "null" through the
// closing quote of the first string that is itself a value rather than a
// key -- is captured verbatim as a single String.
func (m *machine) applyNullThenBrace() {
	start := m.i
	m.advance() // consume the '{'

	foundValue := false

	for {
		r, ok := m.peek()
		if !ok {
			break
		}

		if r == '"' || r == '\'' || r == '`' {
			m.skipQuotedSpan(r)

			j := m.i
			for j < len(m.src) && isSpace(m.src[j]) {
				j++
			}

			if j < len(m.src) && m.src[j] == ':' {
				continue // this span was a key; keep scanning.
			}

			foundValue = true

			break
		}

		m.advance()
	}

	text := "null" + string(m.src[start:m.i])

	m.popTop()

	m.fixes = append(m.fixes, value.EmbeddedJsonAsString)

	state := value.Incomplete
	if foundValue {
		state = value.Complete
	}

	m.deliverValue(value.NewString(text, state))
}

// skipQuotedSpan advances m.i past one quoted run (opening quote already
// at the cursor), honoring backslash escapes, without building a value.
func (m *machine) skipQuotedSpan(quote rune) {
	m.advance() // opening quote

	for {
		r, ok := m.peek()
		if !ok {
			return
		}

		if r == '\\' {
			m.advance()

			if _, ok := m.peek(); ok {
				m.advance()
			}

			continue
		}

		m.advance()

		if r == quote {
			return
		}
	}
}

func parseHex4(src []rune, pos int) (int64, bool) {
	if pos+4 > len(src) {
		return 0, false
	}

	n, err := strconv.ParseInt(string(src[pos:pos+4]), 16, 32)
	if err != nil {
		return 0, false
	}

	return n, true
}
