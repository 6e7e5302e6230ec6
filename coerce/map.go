package coerce

import (
	"go.jacobcolvin.com/jsonish/schema"
	"go.jacobcolvin.com/jsonish/value"
)

// coerceMap implements spec §4.7's map coercion. keySchema is normally
// String, EnumSchema, or a LiteralSchema; nothing checks this beforehand.
// coerceMapKey fails every key for a non-string primitive key schema and
// accepts the key text as-is for any other kind.
func coerceMap(ctx *ParsingContext, v value.Value, keySchema, valSchema schema.Schema) (*CoercedValue, error) {
	v = unwrapFixed(v)

	obj, ok := v.(*value.Object)
	if !ok {
		return nil, newParseError(ctx.Scope(), ErrUnexpectedType, "map requires an object-shaped value")
	}

	out := make(map[string]any, len(obj.Entries))
	var children []*CoercedValue
	var flags []CoercionFlag

	// Duplicate keys: last occurrence wins (spec §4.7 step 2); earlier
	// occurrences are simply overwritten below, no flag.
	for i, entry := range obj.Entries {
		keyText, keyOK := coerceMapKey(entry.Key, keySchema)
		if !keyOK {
			flags = append(flags, FlagMapKeyParseErrorN(i))

			continue
		}

		childCtx := ctx.push(entry.Key)

		cv, err := Coerce(childCtx, entry.Value, valSchema)
		if err != nil {
			flags = append(flags, FlagMapValueParseErrorS(entry.Key))

			continue
		}

		out[keyText] = cv.Value
		children = append(children, cv)
	}

	return &CoercedValue{Value: out, Flags: flags, Children: children}, nil
}

// coerceMapKey runs the key through the string matcher when keySchema is an
// enum or literal chain; a bare String key schema accepts any key text
// as-is.
func coerceMapKey(key string, keySchema schema.Schema) (string, bool) {
	switch ks := keySchema.(type) {
	case *schema.Primitive:
		return key, ks.Kind() == schema.KindString
	case *schema.EnumSchema:
		candidates := make([]matchCandidate, len(ks.Members))
		for i, m := range ks.Members {
			candidates[i] = matchCandidate{name: m.Name, idx: i}
		}

		r, err := matchString(key, candidates, matchEnum)
		if err != nil {
			return "", false
		}

		return ks.Members[r.index].Name, true
	case *schema.LiteralSchema:
		s, ok := ks.Value.(string)

		return s, ok && s == key
	default:
		return key, true
	}
}
