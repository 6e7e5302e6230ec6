package coerce

import (
	"go.jacobcolvin.com/jsonish/schema"
	"go.jacobcolvin.com/jsonish/value"
)

// coerceArray implements spec §4.6's array coercion.
func coerceArray(ctx *ParsingContext, v value.Value, elem schema.Schema) (*CoercedValue, error) {
	v = unwrapFixed(v)

	arr, ok := v.(*value.Array)
	if !ok {
		return coerceSingleToArray(ctx, v, elem)
	}

	result := &CoercedValue{Value: []any{}}

	items := make([]any, 0, len(arr.Items))

	for i, item := range arr.Items {
		childCtx := ctx.pushIndex(i)

		cv, err := Coerce(childCtx, item, elem)
		if err != nil {
			if arr.Completion() == value.Incomplete && i == len(arr.Items)-1 && item.Completion() == value.Incomplete {
				// Conservative partial behavior (spec §4.6): a truncated
				// trailing element that fails to coerce is dropped silently,
				// not flagged, since it may simply be mid-stream.
				continue
			}

			result.withFlags(FlagArrayItemParseErrorN(i))

			continue
		}

		items = append(items, cv.Value)
		result.Children = append(result.Children, cv)
	}

	result.Value = items

	return result, nil
}

// coerceSingleToArray wraps a lone Value as a one-element array (spec §4.6
// step 2). When elem is a primitive and v is an Object, the element
// coercer's single-key-extraction rule (spec §4.4) is tried first via the
// regular Coerce dispatch -- coerceSingleToArray doesn't special-case it
// itself.
func coerceSingleToArray(ctx *ParsingContext, v value.Value, elem schema.Schema) (*CoercedValue, error) {
	cv, err := Coerce(ctx.pushIndex(0), v, elem)
	if err != nil {
		return nil, err
	}

	wrapped := &CoercedValue{
		Value:    []any{cv.Value},
		Flags:    []CoercionFlag{flag(FlagSingleToArray)},
		Children: []*CoercedValue{cv},
	}

	return wrapped, nil
}

func unwrapFixed(v value.Value) value.Value {
	if fj, ok := v.(*value.FixedJSON); ok {
		return unwrapFixed(fj.Inner)
	}

	return v
}
