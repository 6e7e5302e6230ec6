package coerce

// FlagKind names one entry of the CoercionFlag enumeration in spec §3. Six
// kinds carry a payload (a depth, a count, an index, or a key), held in
// CoercionFlag.N/S rather than in a distinct Go type per kind.
type FlagKind int

const (
	FlagObjectFromMarkdown FlagKind = iota
	FlagObjectFromFixedJSON
	FlagDefaultFromNoValue
	FlagDefaultButHadValue
	FlagOptionalDefaultFromNoValue
	FlagDefaultButHadUnparseableValue
	FlagObjectToString
	FlagObjectToPrimitive
	FlagObjectToMap
	FlagExtraKey
	FlagStrippedPunctuation
	FlagSubstringMatch
	FlagSingleToArray
	FlagArrayItemParseError
	FlagMapKeyParseError
	FlagMapValueParseError
	FlagJSONToString
	FlagImpliedKey
	FlagInferredObject
	FlagUnionMatch
	FlagStrMatchOneFromMany
	FlagStringToBool
	FlagStringToNull
	FlagStringToFloat
	FlagFloatToInt
	FlagIncomplete
	FlagPending
	FlagFirstMatch
	FlagNoFields
	FlagConstraintResults
)

// CoercionFlag is a provenance tag emitted by a coercer, attached to the
// [CoercedValue] it produced. The union scorer (spec §4.9) sums Penalty()
// over a result's flag set (plus 10x child scores for composites) to rank
// candidate arms.
type CoercionFlag struct {
	Kind FlagKind
	N    int
	S    string
}

var flagKindNames = [...]string{
	FlagObjectFromMarkdown:            "ObjectFromMarkdown",
	FlagObjectFromFixedJSON:           "ObjectFromFixedJSON",
	FlagDefaultFromNoValue:            "DefaultFromNoValue",
	FlagDefaultButHadValue:            "DefaultButHadValue",
	FlagOptionalDefaultFromNoValue:    "OptionalDefaultFromNoValue",
	FlagDefaultButHadUnparseableValue: "DefaultButHadUnparseableValue",
	FlagObjectToString:                "ObjectToString",
	FlagObjectToPrimitive:             "ObjectToPrimitive",
	FlagObjectToMap:                   "ObjectToMap",
	FlagExtraKey:                      "ExtraKey",
	FlagStrippedPunctuation:           "StrippedPunctuation",
	FlagSubstringMatch:                "SubstringMatch",
	FlagSingleToArray:                 "SingleToArray",
	FlagArrayItemParseError:           "ArrayItemParseError",
	FlagMapKeyParseError:              "MapKeyParseError",
	FlagMapValueParseError:            "MapValueParseError",
	FlagJSONToString:                  "JSONToString",
	FlagImpliedKey:                    "ImpliedKey",
	FlagInferredObject:                "InferredObject",
	FlagUnionMatch:                    "UnionMatch",
	FlagStrMatchOneFromMany:           "StrMatchOneFromMany",
	FlagStringToBool:                  "StringToBool",
	FlagStringToNull:                 "StringToNull",
	FlagStringToFloat:                "StringToFloat",
	FlagFloatToInt:                   "FloatToInt",
	FlagIncomplete:                   "Incomplete",
	FlagPending:                      "Pending",
	FlagFirstMatch:                   "FirstMatch",
	FlagNoFields:                     "NoFields",
	FlagConstraintResults:            "ConstraintResults",
}

// String renders k's enumerator name, used in diagnostic logging and test
// golden files rather than its bare int value.
func (k FlagKind) String() string {
	if int(k) < 0 || int(k) >= len(flagKindNames) {
		return "FlagKind(?)"
	}

	return flagKindNames[k]
}

func flag(k FlagKind) CoercionFlag { return CoercionFlag{Kind: k} }

// FlagObjectFromMarkdownN is ObjectFromMarkdown(depth): unwrapping a Markdown
// value's Inner cost depth levels of un-nesting before a coercion was tried.
func FlagObjectFromMarkdownN(depth int) CoercionFlag {
	return CoercionFlag{Kind: FlagObjectFromMarkdown, N: depth}
}

// FlagUnionMatchN is UnionMatch(index): the winning arm's position among its
// union's Arms.
func FlagUnionMatchN(index int) CoercionFlag {
	return CoercionFlag{Kind: FlagUnionMatch, N: index}
}

// FlagStrMatchOneFromManyN is StrMatchOneFromMany(count): count is how many
// distinct enum/literal variants the tier-5 substring scan found in the
// candidate text.
func FlagStrMatchOneFromManyN(count int) CoercionFlag {
	return CoercionFlag{Kind: FlagStrMatchOneFromMany, N: count}
}

// FlagArrayItemParseErrorN is ArrayItemParseError(index).
func FlagArrayItemParseErrorN(index int) CoercionFlag {
	return CoercionFlag{Kind: FlagArrayItemParseError, N: index}
}

// FlagMapKeyParseErrorN is MapKeyParseError(i).
func FlagMapKeyParseErrorN(index int) CoercionFlag {
	return CoercionFlag{Kind: FlagMapKeyParseError, N: index}
}

// FlagMapValueParseErrorS is MapValueParseError(k).
func FlagMapValueParseErrorS(key string) CoercionFlag {
	return CoercionFlag{Kind: FlagMapValueParseError, S: key}
}

// Penalty implements the scoring table of spec §4.9. Lower is better; flags
// absent from the table (UnionMatch, ConstraintResults, Incomplete, Pending,
// InferredObject, ObjectFromFixedJson) score 0.
func (f CoercionFlag) Penalty() int {
	switch f.Kind {
	case FlagObjectFromMarkdown:
		return f.N
	case FlagStrMatchOneFromMany:
		return f.N
	case FlagDefaultFromNoValue:
		return 100
	case FlagDefaultButHadValue:
		return 110
	case FlagStrippedPunctuation:
		return 3
	case FlagObjectToString, FlagObjectToPrimitive, FlagObjectToMap,
		FlagSubstringMatch, FlagImpliedKey, FlagJSONToString,
		FlagDefaultButHadUnparseableValue, FlagArrayItemParseError:
		return 2
	case FlagOptionalDefaultFromNoValue, FlagExtraKey, FlagSingleToArray,
		FlagStringToBool, FlagStringToNull, FlagStringToFloat, FlagFloatToInt,
		FlagMapKeyParseError, FlagMapValueParseError, FlagNoFields, FlagFirstMatch:
		return 1
	default:
		return 0
	}
}

// CoercedValue is the coercer's output: a generic typed Value shaped by the
// schema arm it matched (string, int64, float64, bool, nil, []any, or
// map[string]any), the flag set recovery required, and -- for composites --
// the per-child CoercedValues the score formula recurses over.
type CoercedValue struct {
	Value    any
	Arm      any // schema.Schema, kept as `any` to avoid an import cycle with the score/debug helpers that don't need the interface
	Flags    []CoercionFlag
	Children []*CoercedValue
}

func newCoerced(v any, flags ...CoercionFlag) *CoercedValue {
	return &CoercedValue{Value: v, Flags: flags}
}

func (cv *CoercedValue) withFlags(flags ...CoercionFlag) *CoercedValue {
	cv.Flags = append(cv.Flags, flags...)

	return cv
}

func (cv *CoercedValue) hasFlag(k FlagKind) bool {
	for _, f := range cv.Flags {
		if f.Kind == k {
			return true
		}
	}

	return false
}

// Score implements spec §4.9's scoring formula recursively: own flags'
// penalties, plus 10x the sum of every child's score.
func (cv *CoercedValue) Score() int {
	if cv == nil {
		return 0
	}

	score := 0

	for _, f := range cv.Flags {
		score += f.Penalty()
	}

	for _, child := range cv.Children {
		score += 10 * child.Score()
	}

	return score
}
