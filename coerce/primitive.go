package coerce

import (
	"strconv"
	"strings"

	"go.jacobcolvin.com/jsonish/schema"
	"go.jacobcolvin.com/jsonish/value"
)

// coerceString implements spec §4.4's String primitive coercer.
func coerceString(ctx *ParsingContext, v value.Value) (*CoercedValue, error) {
	switch n := v.(type) {
	case *value.String:
		return newCoerced(stripSurroundingQuotes(n.Text)), nil

	case *value.Number:
		return newCoerced(n.Raw, flag(FlagJSONToString)), nil

	case *value.Boolean:
		return newCoerced(strconv.FormatBool(n.Bool), flag(FlagJSONToString)), nil

	case *value.Null:
		return newCoerced("null", flag(FlagJSONToString)), nil

	case *value.Object:
		if len(n.Entries) == 1 {
			cv, err := coerceString(ctx, n.Entries[0].Value)
			if err != nil {
				return nil, err
			}

			return cv.withFlags(flag(FlagObjectToPrimitive)), nil
		}

		return nil, newParseError(ctx.Scope(), ErrUnexpectedType, "object has more than one key, cannot coerce to string")

	case *value.Markdown:
		cv, err := coerceString(ctx, n.Inner)
		if err != nil {
			return nil, err
		}

		return cv.withFlags(FlagObjectFromMarkdownN(1)), nil

	case *value.FixedJSON:
		return coerceString(ctx, n.Inner)

	case *value.Array:
		return nil, newParseError(ctx.Scope(), ErrUnexpectedType, "array cannot coerce to string")

	default:
		return nil, newParseError(ctx.Scope(), ErrInternal, "unrecognized Value variant")
	}
}

// stripSurroundingQuotes removes one matching pair of leading/trailing quote
// characters, if present. This is distinct from the fixing state machine's
// quote handling: it applies even to a String the pipeline decided was
// already "done" but which still carries an LLM-added quote pair the schema
// didn't ask for.
func stripSurroundingQuotes(s string) string {
	if len(s) < 2 {
		return s
	}

	first, last := s[0], s[len(s)-1]

	if first == last && (first == '"' || first == '\'' || first == '`') {
		return s[1 : len(s)-1]
	}

	return s
}

// coerceNumber implements spec §4.4's Number primitive coercer.
func coerceNumber(ctx *ParsingContext, v value.Value, target *schema.Primitive, integer bool) (*CoercedValue, error) {
	switch n := v.(type) {
	case *value.Number:
		return numberFromRaw(ctx, n.Raw, n.IsFloat, integer)

	case *value.String:
		normalized, isFloat, ok := normalizeNumberText(n.Text)
		if !ok {
			return nil, newParseError(ctx.Scope(), ErrUnexpectedType, "string does not normalize to a number: "+n.Text)
		}

		cv, err := numberFromRaw(ctx, normalized, isFloat, integer)
		if err != nil {
			return nil, err
		}

		cv.Flags = append([]CoercionFlag{flag(FlagStringToFloat)}, cv.Flags...)

		return cv, nil

	case *value.Markdown:
		cv, err := coerceNumber(ctx, n.Inner, target, integer)
		if err != nil {
			return nil, err
		}

		return cv.withFlags(FlagObjectFromMarkdownN(1)), nil

	case *value.FixedJSON:
		return coerceNumber(ctx, n.Inner, target, integer)

	case *value.Object:
		if len(n.Entries) == 1 {
			cv, err := coerceNumber(ctx, n.Entries[0].Value, target, integer)
			if err != nil {
				return nil, err
			}

			return cv.withFlags(flag(FlagObjectToPrimitive)), nil
		}

		return nil, newParseError(ctx.Scope(), ErrUnexpectedType, "object has more than one key, cannot coerce to number")

	default:
		return nil, newParseError(ctx.Scope(), ErrUnexpectedType, "value cannot coerce to number")
	}
}

func numberFromRaw(ctx *ParsingContext, raw string, isFloat, integer bool) (*CoercedValue, error) {
	if !isFloat {
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, newParseError(ctx.Scope(), ErrUnexpectedType, "malformed integer: "+raw)
		}

		return newCoerced(i), nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, newParseError(ctx.Scope(), ErrUnexpectedType, "malformed number: "+raw)
	}

	if !integer {
		return newCoerced(f), nil
	}

	return newCoerced(roundHalfAwayFromZero(f), flag(FlagFloatToInt)), nil
}

func roundHalfAwayFromZero(f float64) int64 {
	if f >= 0 {
		return int64(f + 0.5)
	}

	return int64(f - 0.5)
}

// normalizeNumberText implements spec §4.4's String->Number normalization:
// comma-thousand-separators, currency prefixes, a trailing bare dot, and
// "a/b" fraction notation when both sides parse as integers (spec §4.2's
// "number normalization inside unquoted strings" note -- that normalization
// lives here, in the coercer, not the fixing state machine).
func normalizeNumberText(raw string) (normalized string, isFloat, ok bool) {
	s := strings.TrimSpace(raw)

	for _, prefix := range []string{"$", "€", "£", "¥"} {
		s = strings.TrimPrefix(s, prefix)
	}

	s = strings.TrimSpace(s)

	if before, after, found := strings.Cut(s, "/"); found {
		num, err1 := strconv.ParseInt(strings.TrimSpace(before), 10, 64)
		den, err2 := strconv.ParseInt(strings.TrimSpace(after), 10, 64)

		if err1 == nil && err2 == nil && den != 0 {
			return strconv.FormatFloat(float64(num)/float64(den), 'f', -1, 64), true, true
		}

		return "", false, false
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, ".")

	if s == "" {
		return "", false, false
	}

	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return s, false, true
	}

	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s, true, true
	}

	return "", false, false
}

// coerceBoolean implements spec §4.4's Boolean primitive coercer.
func coerceBoolean(ctx *ParsingContext, v value.Value) (*CoercedValue, error) {
	switch n := v.(type) {
	case *value.Boolean:
		return newCoerced(n.Bool), nil

	case *value.String:
		lower := strings.ToLower(strings.TrimSpace(n.Text))

		switch lower {
		case "true":
			return newCoerced(true), nil
		case "false":
			return newCoerced(false), nil
		}

		hasTrue := strings.Contains(lower, "true")
		hasFalse := strings.Contains(lower, "false")

		switch {
		case hasTrue && hasFalse:
			return nil, newParseError(ctx.Scope(), ErrAmbiguousBoolean, "both true and false appear in: "+n.Text)
		case hasTrue:
			return newCoerced(true, flag(FlagStringToBool)), nil
		case hasFalse:
			return newCoerced(false, flag(FlagStringToBool)), nil
		default:
			return nil, newParseError(ctx.Scope(), ErrUnexpectedType, "no boolean literal found in: "+n.Text)
		}

	case *value.Markdown:
		cv, err := coerceBoolean(ctx, n.Inner)
		if err != nil {
			return nil, err
		}

		return cv.withFlags(FlagObjectFromMarkdownN(1)), nil

	case *value.FixedJSON:
		return coerceBoolean(ctx, n.Inner)

	default:
		return nil, newParseError(ctx.Scope(), ErrUnexpectedType, "value cannot coerce to boolean")
	}
}

// coerceNull implements spec §4.4's Null primitive coercer.
func coerceNull(ctx *ParsingContext, v value.Value) (*CoercedValue, error) {
	switch n := v.(type) {
	case *value.Null:
		return newCoerced(nil), nil

	case *value.String:
		switch n.Text {
		case "null", "Null", "NULL":
			return newCoerced(nil, flag(FlagStringToNull)), nil
		}

		return nil, newParseError(ctx.Scope(), ErrUnexpectedNull, "string is not a null literal: "+n.Text)

	case *value.FixedJSON:
		return coerceNull(ctx, n.Inner)

	default:
		return nil, newParseError(ctx.Scope(), ErrUnexpectedNull, "value is not null")
	}
}
