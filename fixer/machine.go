package fixer

import (
	"go.jacobcolvin.com/jsonish/value"
)

type frameKind int

const (
	kindObject frameKind = iota
	kindArray
	kindQuoted
	kindTriple
	kindFence
	kindUnquoted
	kindLineComment
	kindBlockComment
)

// collPos tracks where inside an Object or Array frame the cursor
// currently is. Object uses all four states; Array only ever uses
// posAwaitValue and posAfterValue.
type collPos int

const (
	posAwaitKey collPos = iota
	posAwaitColon
	posAwaitValue
	posAfterValue
)

// frame is one entry of the collection stack (spec §4.2). A single struct
// backs every kind; only the fields relevant to that kind are populated.
type frame struct {
	kind frameKind

	// object
	entries    []value.Entry
	pos        collPos
	pendingKey string

	// array
	items []value.Value

	// quoted / triple / fence / unquoted / comment
	buf []rune

	quote    rune // kindQuoted: opening quote rune ('"', '\'', '`')
	tripleCh rune // kindTriple / kindFence: the tripled delimiter rune

	// keyMode is set when this leaf frame's eventual result should be
	// delivered as an Object key rather than a value.
	keyMode bool
}

// none is the peekAt sentinel for positions past the end of input. No
// valid input rune is negative, so it never collides with real content.
const none rune = -1

type machine struct {
	src     []rune
	i       int
	stack   []*frame
	fixes   []value.Fix
	results []value.Value
	multi   bool
	done    bool
}

func (m *machine) peek() (rune, bool) {
	if m.i >= len(m.src) {
		return 0, false
	}

	return m.src[m.i], true
}

func (m *machine) peekAt(offset int) rune {
	idx := m.i + offset
	if idx < 0 || idx >= len(m.src) {
		return none
	}

	return m.src[idx]
}

func (m *machine) advance() {
	m.i++
}

func (m *machine) push(f *frame) {
	m.stack = append(m.stack, f)
}

func (m *machine) top() *frame {
	if len(m.stack) == 0 {
		return nil
	}

	return m.stack[len(m.stack)-1]
}

func (m *machine) popTop() *frame {
	n := len(m.stack)
	f := m.stack[n-1]
	m.stack = m.stack[:n-1]

	return f
}

// run drives the per-character dispatch until input is exhausted, then
// auto-closes whatever collections are still open (spec §4.2 heuristic 5).
func (m *machine) run() []value.Value {
	for m.i < len(m.src) && !m.done {
		top := m.top()

		switch {
		case top == nil:
			m.startValue(false)
		case top.kind == kindObject:
			m.stepObject(top)
		case top.kind == kindArray:
			m.stepArray(top)
		case top.kind == kindQuoted:
			m.stepQuoted(top)
		case top.kind == kindTriple || top.kind == kindFence:
			m.stepFence(top)
		case top.kind == kindUnquoted:
			m.stepUnquoted(top)
		case top.kind == kindLineComment:
			m.stepLineComment(top)
		case top.kind == kindBlockComment:
			m.stepBlockComment(top)
		}
	}

	if !m.done {
		m.closeAll()
	}

	return m.results
}

// closeAll auto-closes every still-open collection at EOF, innermost
// first, cascading each closed value into its parent the same way an
// explicit closing delimiter would.
func (m *machine) closeAll() {
	for len(m.stack) > 0 {
		switch m.top().kind {
		case kindObject:
			m.fixes = append(m.fixes, value.AddedClosingBrace)
			m.closeObject(value.Incomplete)
		case kindArray:
			m.fixes = append(m.fixes, value.AddedClosingBracket)
			m.closeArray(value.Incomplete)
		case kindQuoted:
			m.fixes = append(m.fixes, value.AddedClosingQuote)
			m.closeQuoted(value.Incomplete)
		case kindTriple, kindFence:
			m.fixes = append(m.fixes, value.AddedClosingQuote)
			m.closeFence(value.Incomplete)
		case kindUnquoted:
			m.closeUnquoted(value.Incomplete)
		case kindLineComment, kindBlockComment:
			m.popTop()
			m.fixes = append(m.fixes, value.StrippedComment)
		}
	}
}

// deliverValue routes a completed value into its parent collection (or,
// if the stack is now empty, emits it as a top-level result).
func (m *machine) deliverValue(v value.Value) {
	parent := m.top()
	if parent == nil {
		m.emitTopLevel(v)
		return
	}

	switch parent.kind {
	case kindObject:
		parent.entries = append(parent.entries, value.Entry{Key: parent.pendingKey, Value: v})
		parent.pendingKey = ""
		parent.pos = posAfterValue
	case kindArray:
		parent.items = append(parent.items, v)
		parent.pos = posAfterValue
	}
}

// deliverKey routes completed key text into the enclosing Object. If there
// is no enclosing Object (malformed input produced a bare key with
// nothing to attach it to), it falls back to emitting the key text as a
// top-level string.
func (m *machine) deliverKey(text string, wasUnquoted bool) {
	parent := m.top()
	if parent == nil || parent.kind != kindObject {
		m.emitTopLevel(value.NewString(text, value.Complete))
		return
	}

	parent.pendingKey = text
	parent.pos = posAwaitColon

	if wasUnquoted {
		m.fixes = append(m.fixes, value.UnquotedKey)
	}
}

// emitTopLevel wraps v in the Fixes accumulated while producing it (if
// any) and records it as a completed top-level result. In single-emit
// mode this is the only result the machine will ever produce.
func (m *machine) emitTopLevel(v value.Value) {
	for _, fx := range m.fixes {
		v = value.WithFix(v, fx)
	}

	m.results = append(m.results, v)
	m.fixes = nil

	if !m.multi {
		m.done = true
	}
}

func (m *machine) closeObject(state value.CompletionState) {
	f := m.popTop()
	m.deliverValue(value.NewObject(f.entries, state))
}

func (m *machine) closeArray(state value.CompletionState) {
	f := m.popTop()
	m.deliverValue(value.NewArray(f.items, state))
}

func (m *machine) closeQuoted(state value.CompletionState) {
	f := m.popTop()

	if f.quote == '\'' {
		m.fixes = append(m.fixes, value.ConvertedSingleQuote)
	}

	text := string(f.buf)

	if f.keyMode {
		m.deliverKey(text, false)
		return
	}

	m.deliverValue(value.NewString(text, state))
}

func (m *machine) closeFence(state value.CompletionState) {
	f := m.popTop()

	switch f.kind {
	case kindTriple:
		m.fixes = append(m.fixes, value.DedentedTripleQuote, value.ConvertedTripleQuote)

		body := dedent(string(f.buf))
		if f.keyMode {
			m.deliverKey(body, false)
			return
		}

		m.deliverValue(value.NewString(body, state))
	case kindFence:
		m.fixes = append(m.fixes, value.DedentedTripleQuote)

		lang, path, rawBody := splitFenceBody(string(f.buf))
		m.deliverValue(value.NewMarkdown(lang, path, value.NewString(dedent(rawBody), state)))
	}
}

func (m *machine) closeUnquoted(state value.CompletionState) {
	f := m.popTop()

	raw := string(f.buf)
	if containsNewline(raw) {
		m.fixes = append(m.fixes, value.MergedMultilineUnquoted)
	}

	trimmed := trimSpace(raw)

	if f.keyMode {
		m.deliverKey(trimmed, true)
		return
	}

	m.deliverValue(classifyUnquoted(trimmed, state))
}
