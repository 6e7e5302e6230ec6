package coerce

import (
	"strings"

	"go.jacobcolvin.com/jsonish/schema"
	"go.jacobcolvin.com/jsonish/value"
)

// coerceObject implements spec §4.8's object/class coercion.
func coerceObject(ctx *ParsingContext, v value.Value, obj *schema.ObjectSchema) (*CoercedValue, error) {
	if leave := guardRecursion(ctx, obj, v); leave == nil {
		return nil, newParseError(ctx.Scope(), ErrCircularReference, "cycle detected coercing "+obj.Name)
	} else {
		defer leave()
	}

	shaped, flags, err := shapeObjectInput(ctx, v, obj)
	if err != nil {
		return nil, err
	}

	assignment, extra := matchFields(shaped.Entries, obj.Fields)

	result := &CoercedValue{Flags: flags}
	out := make(map[string]any, len(obj.Fields))

	var causes []*ParseError

	fieldsWithValue := 0

	for _, f := range obj.Fields {
		entries := assignment[f.Name]

		if len(entries) == 0 {
			cv, missingErr := missingFieldValue(ctx, f)
			if missingErr != nil {
				causes = append(causes, missingErr)

				continue
			}

			out[f.Name] = cv.Value
			result.Children = append(result.Children, cv)

			continue
		}

		entry := entries[len(entries)-1] // spec §9: last structural match wins on ambiguity

		childCtx := ctx.push(f.Name)

		cv, fieldErr := Coerce(childCtx, entry.Value, f.Schema)
		if fieldErr != nil {
			if f.Required {
				causes = append(causes, fieldErr.(*ParseError))

				continue
			}

			out[f.Name] = nil
			result.Children = append(result.Children, newCoerced(nil, flag(FlagDefaultButHadUnparseableValue)))

			continue
		}

		out[f.Name] = cv.Value
		result.Children = append(result.Children, cv)
		fieldsWithValue++
	}

	if len(causes) > 0 {
		return nil, newParseError(ctx.Scope(), ErrMissingRequiredField, "one or more required fields failed", causes...)
	}

	if fieldsWithValue == 0 && len(obj.Fields) > 0 {
		result.withFlags(flag(FlagNoFields))
	}

	for range extra {
		result.withFlags(flag(FlagExtraKey))
	}

	result.Value = out

	return result, nil
}

// guardRecursion consults ParsingContext's visited set (spec §4.8 step 6),
// returning nil if (obj, v)'s digest was already on the active recursion
// path. Non-nil, it returns the cleanup to call when this frame unwinds.
func guardRecursion(ctx *ParsingContext, obj *schema.ObjectSchema, v value.Value) func() {
	already, leave := ctx.visitKey(obj.Identity(), digest(v))
	if already {
		return nil
	}

	return leave
}

// shapeObjectInput implements spec §4.8 step 1's input-shape dispatch.
func shapeObjectInput(ctx *ParsingContext, v value.Value, obj *schema.ObjectSchema) (*value.Object, []CoercionFlag, error) {
	v = unwrapMarkdown(v)

	switch n := unwrapFixed(v).(type) {
	case *value.Object:
		return n, nil, nil

	case *value.Array:
		if len(obj.Fields) == 1 {
			wrapped := &value.Object{
				Entries: []value.Entry{{Key: obj.Fields[0].Name, Value: n}},
				State:   n.State,
			}

			return wrapped, []CoercionFlag{flag(FlagImpliedKey)}, nil
		}

		return nil, nil, newParseError(ctx.Scope(), ErrUnexpectedType, "array cannot shape object with != 1 field")

	default:
		if len(obj.Fields) == 1 {
			wrapped := &value.Object{
				Entries: []value.Entry{{Key: obj.Fields[0].Name, Value: v}},
				State:   v.Completion(),
			}

			return wrapped, []CoercionFlag{flag(FlagImpliedKey), flag(FlagInferredObject)}, nil
		}

		return nil, nil, newParseError(ctx.Scope(), ErrUnexpectedType, "value cannot shape object with != 1 field")
	}
}

func unwrapMarkdown(v value.Value) value.Value {
	for {
		md, ok := v.(*value.Markdown)
		if !ok {
			return v
		}

		v = md.Inner
	}
}

// matchFields implements spec §4.8 step 2's field-matching order: exact
// name, trimmed, case-insensitive, semantic alias folding, then the
// schema's own declared aliases. Every input entry is assigned to at most
// one field; entries matching no field are returned separately so the
// caller can flag them ExtraKey.
func matchFields(entries []value.Entry, fields []schema.Field) (assignment map[string][]value.Entry, extra []value.Entry) {
	assignment = make(map[string][]value.Entry)

	for _, entry := range entries {
		name, ok := matchOneField(entry.Key, fields)
		if !ok {
			extra = append(extra, entry)

			continue
		}

		assignment[name] = append(assignment[name], entry)
	}

	return assignment, extra
}

func matchOneField(key string, fields []schema.Field) (string, bool) {
	trimmed := strings.TrimSpace(key)
	canon := canonicalizeFieldName(key)

	for _, f := range fields {
		if key == f.Name {
			return f.Name, true
		}
	}

	for _, f := range fields {
		if trimmed == f.Name {
			return f.Name, true
		}
	}

	for _, f := range fields {
		if strings.EqualFold(trimmed, f.Name) {
			return f.Name, true
		}
	}

	for _, f := range fields {
		if canon == canonicalizeFieldName(f.Name) {
			return f.Name, true
		}
	}

	for _, f := range fields {
		for _, alias := range f.Aliases {
			if key == alias || trimmed == alias || strings.EqualFold(trimmed, alias) || canon == canonicalizeFieldName(alias) {
				return f.Name, true
			}
		}
	}

	return "", false
}

// canonicalizeFieldName folds snake_case, camelCase, kebab-case, and
// space-separated forms of a name onto the same canonical string, so
// "user_name", "userName", "user-name", and "user name" all match the field
// named any one of them.
func canonicalizeFieldName(name string) string {
	var b strings.Builder

	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ':
			continue
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// missingFieldValue implements spec §4.8 steps 3-4 for a field with no
// matched input entry.
func missingFieldValue(ctx *ParsingContext, f schema.Field) (*CoercedValue, *ParseError) {
	if def, ok := defaultOf(f.Schema); ok {
		return newCoerced(def, flag(FlagDefaultFromNoValue)), nil
	}

	if !f.Required {
		return newCoerced(nil, flag(FlagOptionalDefaultFromNoValue)), nil
	}

	return nil, newParseError(ctx.Scope(), ErrMissingRequiredField, "missing required field: "+f.Name)
}

// defaultOf reports the literal default value carried by a Default wrapper
// schema. Optional and Nullable carry no default value of their own -- a
// missing field wrapped in either falls through to the !f.Required branch
// in missingFieldValue, which is the only case that should ever produce
// FlagOptionalDefaultFromNoValue (spec §4.8 step 4; penalty 1, not the 100
// a true Default substitution costs).
func defaultOf(s schema.Schema) (any, bool) {
	d, ok := s.(*schema.DefaultSchema)
	if !ok {
		return nil, false
	}

	return d.Value, true
}
