package jsonish

import (
	"go.jacobcolvin.com/jsonish/coerce"
	"go.jacobcolvin.com/jsonish/pipeline"
	"go.jacobcolvin.com/jsonish/schema"
	"go.jacobcolvin.com/jsonish/value"
)

// Parse is the package's primary operation (spec §6): given raw input and
// a schema, it returns a value of the schema's inferred shape --
// string, int64, float64, bool, nil, []any, or map[string]any -- or a
// *ParseError describing why no interpretation satisfied the schema.
func Parse(input string, s schema.Schema, opts ...Option) (any, error) {
	cv, err := ParseCoerced(input, s, opts...)
	if err != nil {
		return nil, err
	}

	return cv.Value, nil
}

// ParseCoerced runs the same pipeline as [Parse] but returns the full
// *coerce.CoercedValue, exposing the coercion flags and recursive score
// spec §4.9's union resolver computed -- useful for callers that want to
// inspect why a particular interpretation won, not just what it was.
func ParseCoerced(input string, s schema.Schema, opts ...Option) (*coerce.CoercedValue, error) {
	o := NewOptions(opts...)

	v := runPipeline(input, o)

	return coerceWithRecovery(o, v, s)
}

func runPipeline(input string, o *Options) value.Value {
	cfg := pipeline.Config{
		AllowMarkdown:    o.AllowMarkdownJSON,
		AllowMultiObject: o.FindAllJSONObjects,
		AllowFixes:       o.AllowFixes,
		AllowAsString:    o.AllowAsString,
		IsDone:           o.IsDone,
		DepthLimit:       o.DepthLimit,
	}

	o.Logger.Debug("running entry pipeline", "input_len", len(input), "is_done", o.IsDone)

	v := pipeline.Run(input, cfg)

	if !o.IsDone {
		v = forceOutermostIncomplete(v)
	}

	return v
}

// coerceWithRecovery wraps coerce.Coerce with the Warn-on-panic posture
// SPEC_FULL.md §2.2 describes for a user-supplied schema whose
// introspection misbehaves (mirrors generator.go's slog.Warn on annotator
// prepare failure): a schema.Schema is caller-provided code, and a buggy
// Identity()/Kind() implementation panicking must not crash the parse.
func coerceWithRecovery(o *Options, v value.Value, s schema.Schema) (cv *coerce.CoercedValue, err error) {
	defer func() {
		if r := recover(); r != nil {
			o.Logger.Warn("schema introspection panicked during coercion", "recovered", r)

			cv = nil
			err = &coerce.ParseError{Reason: "schema introspection panicked"}
		}
	}()

	ctx := coerce.NewParsingContext().WithDepthLimit(o.DepthLimit)

	cv, err = coerce.Coerce(ctx, v, s)
	if err != nil {
		o.Logger.Debug("coercion failed", "error", err)

		return nil, err
	}

	o.Logger.Debug("coercion succeeded", "score", cv.Score())

	return cv, nil
}

// forceOutermostIncomplete re-tags only the outermost Value's own
// CompletionState as Incomplete (spec §5: "is_done=false ... suppresses
// the Complete tag on the outermost Value"), leaving every descendant's
// completion state exactly as the pipeline determined it. Boolean and
// Null carry no CompletionState at all -- per spec §3 they can never be
// left ambiguously open by truncation -- so they pass through unchanged.
func forceOutermostIncomplete(v value.Value) value.Value {
	switch n := v.(type) {
	case *value.String:
		return &value.String{Text: n.Text, State: value.Incomplete}
	case *value.Number:
		return &value.Number{Raw: n.Raw, IsFloat: n.IsFloat, State: value.Incomplete}
	case *value.Array:
		return &value.Array{Items: n.Items, State: value.Incomplete}
	case *value.Object:
		return &value.Object{Entries: n.Entries, State: value.Incomplete}
	case *value.Markdown:
		return value.NewMarkdown(n.Lang, n.Path, forceOutermostIncomplete(n.Inner))
	case *value.FixedJSON:
		return &value.FixedJSON{Inner: forceOutermostIncomplete(n.Inner), Fixes: n.Fixes}
	default:
		return v
	}
}
