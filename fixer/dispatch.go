package fixer

import (
	"go.jacobcolvin.com/jsonish/value"
)

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isUnquotedStart(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == '.' || r == '-' || r == '+' || r == '_' || r == '$':
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	default:
		return false
	}
}

// startValue is the dispatcher for every "nothing open yet, what does this
// character begin" position: no collection open at all, an object awaiting
// a key or a value, and an array awaiting a value. keyMode tags whatever
// leaf frame gets pushed so its eventual result is delivered as an object
// key rather than a value.
func (m *machine) startValue(keyMode bool) {
	r, ok := m.peek()
	if !ok {
		return
	}

	switch {
	case isSpace(r):
		m.advance()
	case r == '{':
		m.advance()
		m.push(&frame{kind: kindObject, pos: posAwaitKey})
	case r == '[':
		m.advance()
		m.push(&frame{kind: kindArray, pos: posAwaitValue})
	case r == '"' || r == '\'' || r == '`':
		if m.peekAt(1) == r && m.peekAt(2) == r {
			m.advance()
			m.advance()
			m.advance()

			kind := kindTriple
			if r == '`' {
				kind = kindFence
			}

			m.push(&frame{kind: kind, tripleCh: r, keyMode: keyMode})

			return
		}

		m.advance()
		m.push(&frame{kind: kindQuoted, quote: r, keyMode: keyMode})
	case r == '/' && m.peekAt(1) == '/':
		m.advance()
		m.advance()
		m.push(&frame{kind: kindLineComment})
	case r == '/' && m.peekAt(1) == '*':
		m.advance()
		m.advance()
		m.push(&frame{kind: kindBlockComment})
	case isUnquotedStart(r):
		f := &frame{kind: kindUnquoted, keyMode: keyMode}
		f.buf = append(f.buf, r)
		m.push(f)
		m.advance()
	default:
		// Nothing recognizable as the start of a value -- skip it rather
		// than spinning forever on punctuation JSON never produces here.
		m.advance()
	}
}

func (m *machine) stepObject(f *frame) {
	switch f.pos {
	case posAwaitKey:
		r, _ := m.peek()

		switch {
		case isSpace(r):
			m.advance()
		case r == '}':
			m.advance()
			m.closeObject(value.Complete)
		case r == ',':
			m.advance()
			m.fixes = append(m.fixes, value.RemovedTrailingComma)
		case r == '/' && m.peekAt(1) == '/':
			m.advance()
			m.advance()
			m.push(&frame{kind: kindLineComment})
		case r == '/' && m.peekAt(1) == '*':
			m.advance()
			m.advance()
			m.push(&frame{kind: kindBlockComment})
		default:
			m.startValue(true)
		}
	case posAwaitColon:
		r, _ := m.peek()

		switch {
		case isSpace(r):
			m.advance()
		case r == ':':
			m.advance()
			f.pos = posAwaitValue
		case r == ',':
			m.advance()
			f.pendingKey = ""
			f.pos = posAwaitKey
			m.fixes = append(m.fixes, value.RemovedTrailingComma)
		case r == '}':
			m.advance()
			f.pendingKey = ""
			m.closeObject(value.Complete)
		default:
			m.advance()
		}
	case posAwaitValue:
		r, _ := m.peek()

		switch {
		case isSpace(r):
			m.advance()
		case r == '}':
			m.advance()
			f.pendingKey = ""
			m.closeObject(value.Complete)
		default:
			m.startValue(false)
		}
	case posAfterValue:
		r, _ := m.peek()

		switch {
		case isSpace(r):
			m.advance()
		case r == ',':
			m.advance()
			f.pos = posAwaitKey
		case r == '}':
			m.advance()
			m.closeObject(value.Complete)
		default:
			m.advance()
		}
	}
}

func (m *machine) stepArray(f *frame) {
	switch f.pos {
	case posAwaitValue:
		r, _ := m.peek()

		switch {
		case isSpace(r):
			m.advance()
		case r == ']':
			if len(f.items) > 0 {
				// Only a comma moves a non-empty array back here.
				m.fixes = append(m.fixes, value.RemovedTrailingComma)
			}

			m.advance()
			m.closeArray(value.Complete)
		case r == ',':
			m.advance()
			m.fixes = append(m.fixes, value.RemovedTrailingComma)
		default:
			m.startValue(false)
		}
	case posAfterValue:
		r, _ := m.peek()

		switch {
		case isSpace(r):
			m.advance()
		case r == ',':
			m.advance()
			f.pos = posAwaitValue
		case r == ']':
			m.advance()
			m.closeArray(value.Complete)
		default:
			m.advance()
		}
	default:
	}
}

func (m *machine) stepQuoted(f *frame) {
	r, _ := m.peek()

	if r == '\\' {
		m.consumeEscape(f)
		return
	}

	if r == f.quote {
		if m.shouldCloseUnescapedString(m.i + 1) {
			m.advance()
			m.closeQuoted(value.Complete)

			return
		}

		f.buf = append(f.buf, r)
		m.advance()

		return
	}

	f.buf = append(f.buf, r)
	m.advance()
}

func (m *machine) consumeEscape(f *frame) {
	m.advance() // consume the backslash

	r, ok := m.peek()
	if !ok {
		return
	}

	switch r {
	case 'n':
		f.buf = append(f.buf, '\n')
		m.advance()
	case 't':
		f.buf = append(f.buf, '\t')
		m.advance()
	case 'r':
		f.buf = append(f.buf, '\r')
		m.advance()
	case 'b':
		f.buf = append(f.buf, '\b')
		m.advance()
	case 'f':
		f.buf = append(f.buf, '\f')
		m.advance()
	case '"', '\'', '\\', '/', '`':
		f.buf = append(f.buf, r)
		m.advance()
	case 'u':
		m.advance()

		if n, ok := parseHex4(m.src, m.i); ok {
			f.buf = append(f.buf, rune(n))
			m.i += 4

			return
		}

		f.buf = append(f.buf, 'u')
	default:
		f.buf = append(f.buf, r)
		m.advance()
	}
}

func (m *machine) stepFence(f *frame) {
	r, _ := m.peek()

	if r == f.tripleCh && m.peekAt(1) == f.tripleCh && m.peekAt(2) == f.tripleCh {
		m.advance()
		m.advance()
		m.advance()
		m.closeFence(value.Complete)

		return
	}

	f.buf = append(f.buf, r)
	m.advance()
}

func (m *machine) stepUnquoted(f *frame) {
	r, _ := m.peek()

	switch r {
	case ',':
		if containsNewline(string(f.buf)) && !m.restOfLineLooksLikeKey(m.i+1) {
			f.buf = append(f.buf, r)
			m.advance()

			return
		}

		// Don't consume: the enclosing collection reads the comma as its
		// separator.
		m.closeUnquoted(value.Complete)
	case ':', '}', ']':
		// Don't consume: the enclosing collection needs to see this
		// character to close or advance itself.
		m.closeUnquoted(value.Complete)
	case '\n':
		if m.restOfLineLooksLikeKey(m.i + 1) {
			m.advance()
			m.closeUnquoted(value.Complete)

			// The newline stands in for the missing comma: the next line's
			// key belongs to the enclosing object.
			if p := m.top(); p != nil && p.kind == kindObject && p.pos == posAfterValue {
				p.pos = posAwaitKey
			}

			return
		}

		f.buf = append(f.buf, r)
		m.advance()
	case '{':
		if trimSpace(string(f.buf)) == "null" {
			m.applyNullThenBrace()
			return
		}

		f.buf = append(f.buf, r)
		m.advance()
	case '/':
		if m.peekAt(1) == '*' {
			// A block comment inside an unquoted value is stripped; the
			// value resumes after "*/".
			m.advance()
			m.advance()
			m.push(&frame{kind: kindBlockComment})

			return
		}

		f.buf = append(f.buf, r)
		m.advance()
	default:
		f.buf = append(f.buf, r)
		m.advance()
	}
}

func (m *machine) stepLineComment(_ *frame) {
	r, _ := m.peek()

	if r == '\n' {
		m.advance()
		m.popTop()
		m.fixes = append(m.fixes, value.StrippedComment)

		return
	}

	m.advance()
}

func (m *machine) stepBlockComment(_ *frame) {
	r, _ := m.peek()

	if r == '*' && m.peekAt(1) == '/' {
		m.advance()
		m.advance()
		m.popTop()
		m.fixes = append(m.fixes, value.StrippedComment)

		return
	}

	m.advance()
}
