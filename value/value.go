package value

// CompletionState records whether a Value's closing delimiter was observed
// in the source text.
type CompletionState int

const (
	// Complete means the value's terminator (closing quote, brace, bracket,
	// or end of a well-formed literal) was present in the input.
	Complete CompletionState = iota
	// Incomplete means the value was cut off -- the input ended, or a
	// structural character forced an early close, before a terminator was
	// seen.
	Incomplete
)

func (c CompletionState) String() string {
	if c == Incomplete {
		return "incomplete"
	}

	return "complete"
}

// Kind identifies a Value's concrete variant.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBoolean
	KindNull
	KindArray
	KindObject
	KindMarkdown
	KindFixedJSON
	KindAnyOf
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindMarkdown:
		return "markdown"
	case KindFixedJSON:
		return "fixedJson"
	case KindAnyOf:
		return "anyOf"
	default:
		return "unknown"
	}
}

// Value is the intermediate tree produced by the entry pipeline. It has
// exactly nine implementations, one per variant in spec §3: [String],
// [Number], [Boolean], [Null], [Array], [Object], [Markdown], [FixedJSON],
// and [AnyOf].
type Value interface {
	// Kind reports which variant this Value is.
	Kind() Kind
	// Completion reports whether this Value (and, for Array/Object, every
	// descendant) was terminated in the source text.
	Completion() CompletionState

	isValue()
}

// String is quoted or unquoted text.
type String struct {
	Text  string
	State CompletionState
}

func NewString(text string, state CompletionState) *String {
	return &String{Text: text, State: state}
}

func (*String) Kind() Kind                    { return KindString }
func (s *String) Completion() CompletionState { return s.State }
func (*String) isValue()                      {}

// Number preserves the integer-vs-fractional distinction of its source
// text. Raw holds the numeral text (ASCII digits, an optional leading
// '-', and for a fractional number a '.' and/or an exponent); coercers reparse it with strconv rather than
// storing a pre-parsed int64/float64, so a number too large for int64
// round-trips through string coercion without loss.
type Number struct {
	Raw     string
	IsFloat bool
	State   CompletionState
}

func NewIntNumber(raw string, state CompletionState) *Number {
	return &Number{Raw: raw, IsFloat: false, State: state}
}

func NewFloatNumber(raw string, state CompletionState) *Number {
	return &Number{Raw: raw, IsFloat: true, State: state}
}

func (*Number) Kind() Kind                    { return KindNumber }
func (n *Number) Completion() CompletionState { return n.State }
func (*Number) isValue()                      {}

// Boolean is a parsed true/false literal. It carries no CompletionState:
// spec §3 lists Boolean and Null as the two variants a truncated input can
// never leave ambiguously "open".
type Boolean struct {
	Bool bool
}

func NewBoolean(b bool) *Boolean { return &Boolean{Bool: b} }

func (*Boolean) Kind() Kind                 { return KindBoolean }
func (*Boolean) Completion() CompletionState { return Complete }
func (*Boolean) isValue()                   {}

// Null is the JSON null literal.
type Null struct{}

func NewNull() *Null { return &Null{} }

func (*Null) Kind() Kind                 { return KindNull }
func (*Null) Completion() CompletionState { return Complete }
func (*Null) isValue()                   {}

// Array is an ordered sequence of Values.
type Array struct {
	Items []Value
	State CompletionState
}

func NewArray(items []Value, state CompletionState) *Array {
	return &Array{Items: items, State: state}
}

func (*Array) Kind() Kind { return KindArray }

// Completion is Incomplete if the array itself never saw its closing
// bracket, OR any element is itself Incomplete (spec §3 invariant: "an
// inner element may independently be Incomplete").
func (a *Array) Completion() CompletionState {
	if a.State == Incomplete {
		return Incomplete
	}

	for _, item := range a.Items {
		if item.Completion() == Incomplete {
			return Incomplete
		}
	}

	return Complete
}

func (*Array) isValue() {}

// Entry is one key/value pair of an Object. Keys are not deduplicated at
// this layer (spec §3): duplicates are preserved in order and resolved by
// the coercer.
type Entry struct {
	Key   string
	Value Value
}

// Object is an ordered sequence of key/value Entries.
type Object struct {
	Entries []Entry
	State   CompletionState
}

func NewObject(entries []Entry, state CompletionState) *Object {
	return &Object{Entries: entries, State: state}
}

func (*Object) Kind() Kind { return KindObject }

// Completion follows the same rule as [Array.Completion].
func (o *Object) Completion() CompletionState {
	if o.State == Incomplete {
		return Incomplete
	}

	for _, e := range o.Entries {
		if e.Value.Completion() == Incomplete {
			return Incomplete
		}
	}

	return Complete
}

func (*Object) isValue() {}

// Markdown wraps the body of a fenced code block with its language tag
// (and, per spec §9, an optional path parsed from the same line as the
// tag, e.g. "json path=foo").
type Markdown struct {
	Lang  string
	Path  string
	Inner Value
}

func NewMarkdown(lang, path string, inner Value) *Markdown {
	return &Markdown{Lang: lang, Path: path, Inner: inner}
}

func (*Markdown) Kind() Kind                    { return KindMarkdown }
func (m *Markdown) Completion() CompletionState { return m.Inner.Completion() }
func (*Markdown) isValue()                      {}

// FixedJSON wraps a Value whose production required recovery by the fixing
// state machine, alongside the append-only, never-empty list of Fixes
// applied to produce it.
type FixedJSON struct {
	Inner Value
	Fixes []Fix
}

func (*FixedJSON) Kind() Kind                    { return KindFixedJSON }
func (f *FixedJSON) Completion() CompletionState { return f.Inner.Completion() }
func (*FixedJSON) isValue()                      {}

// AnyOf is a temporary multi-candidate Value produced when more than one
// entry-pipeline strategy yielded a result. It appears only at the
// pipeline boundary; coercers must reduce it to a single Value (via the
// union resolver, spec §4.9) before returning.
type AnyOf struct {
	Candidates []Value
	Original   string
}

func NewAnyOf(candidates []Value, original string) *AnyOf {
	return &AnyOf{Candidates: candidates, Original: original}
}

func (*AnyOf) Kind() Kind { return KindAnyOf }

// Completion conservatively reports Incomplete: an AnyOf should never
// outlive [Simplify] plus the coercer's union resolution, so nothing
// depends on its completion state in practice.
func (*AnyOf) Completion() CompletionState { return Incomplete }
func (*AnyOf) isValue()                    {}
