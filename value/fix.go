package value

// Fix is a provenance tag recording one recovery transformation the fixing
// state machine (or an entry-pipeline strategy) applied to produce a Value.
// The enumeration matches spec §3 exactly.
type Fix int

const (
	GreppedForJSON Fix = iota
	InferredArray
	UnquotedKey
	AddedClosingBracket
	AddedClosingBrace
	AddedClosingQuote
	RemovedTrailingComma
	ConvertedSingleQuote
	ConvertedTripleQuote
	DedentedTripleQuote
	StrippedComment
	MergedMultilineUnquoted
	EmbeddedJsonAsString
)

var fixNames = [...]string{
	"GreppedForJSON",
	"InferredArray",
	"UnquotedKey",
	"AddedClosingBracket",
	"AddedClosingBrace",
	"AddedClosingQuote",
	"RemovedTrailingComma",
	"ConvertedSingleQuote",
	"ConvertedTripleQuote",
	"DedentedTripleQuote",
	"StrippedComment",
	"MergedMultilineUnquoted",
	"EmbeddedJsonAsString",
}

func (f Fix) String() string {
	if int(f) < 0 || int(f) >= len(fixNames) {
		return "Fix(unknown)"
	}

	return fixNames[f]
}

// WithFix wraps v in a [FixedJSON] carrying fix, flattening into the
// existing Fixes list if v is already a FixedJSON rather than nesting
// FixedJSON(FixedJSON(...)). v is never mutated.
func WithFix(v Value, fix Fix) Value {
	if fj, ok := v.(*FixedJSON); ok {
		fixes := make([]Fix, len(fj.Fixes)+1)
		copy(fixes, fj.Fixes)
		fixes[len(fj.Fixes)] = fix

		return &FixedJSON{Inner: fj.Inner, Fixes: fixes}
	}

	return &FixedJSON{Inner: v, Fixes: []Fix{fix}}
}

// Simplify collapses a single-candidate [AnyOf] down to that candidate.
// AnyOf only ever appears at the entry-pipeline boundary (spec §3), so this
// is intentionally shallow: it does not recurse into Array/Object/Markdown
// children.
func Simplify(v Value) Value {
	if ao, ok := v.(*AnyOf); ok && len(ao.Candidates) == 1 {
		return ao.Candidates[0]
	}

	return v
}

// CompleteDeeply returns a copy of v with every CompletionState in the tree
// forced to [Complete]. Neither the pipeline nor Parse calls it.
func CompleteDeeply(v Value) Value {
	switch n := v.(type) {
	case *String:
		return &String{Text: n.Text, State: Complete}
	case *Number:
		return &Number{Raw: n.Raw, IsFloat: n.IsFloat, State: Complete}
	case *Boolean, *Null:
		return v
	case *Array:
		items := make([]Value, len(n.Items))
		for i, item := range n.Items {
			items[i] = CompleteDeeply(item)
		}

		return &Array{Items: items, State: Complete}
	case *Object:
		entries := make([]Entry, len(n.Entries))
		for i, e := range n.Entries {
			entries[i] = Entry{Key: e.Key, Value: CompleteDeeply(e.Value)}
		}

		return &Object{Entries: entries, State: Complete}
	case *Markdown:
		return &Markdown{Lang: n.Lang, Path: n.Path, Inner: CompleteDeeply(n.Inner)}
	case *FixedJSON:
		return &FixedJSON{Inner: CompleteDeeply(n.Inner), Fixes: n.Fixes}
	case *AnyOf:
		candidates := make([]Value, len(n.Candidates))
		for i, c := range n.Candidates {
			candidates[i] = CompleteDeeply(c)
		}

		return &AnyOf{Candidates: candidates, Original: n.Original}
	default:
		return v
	}
}
