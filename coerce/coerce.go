package coerce

import (
	"go.jacobcolvin.com/jsonish/schema"
	"go.jacobcolvin.com/jsonish/value"
)

// Coerce maps v onto s, dispatching on s's shape. It is the single entry
// point every composite coercer (array/map/object/union) recurses through,
// so wrapper schemas (Optional, Nullable, Default, Lazy) and the AnyOf
// pipeline boundary are only ever handled in one place.
func Coerce(ctx *ParsingContext, v value.Value, s schema.Schema) (*CoercedValue, error) {
	if ao, ok := v.(*value.AnyOf); ok {
		return coerceAnyOf(ctx, ao, s)
	}

	switch n := s.(type) {
	case *schema.OptionalSchema:
		return coerceOptional(ctx, v, n)

	case *schema.NullableSchema:
		return coerceNullable(ctx, v, n)

	case *schema.DefaultSchema:
		return coerceDefault(ctx, v, n)

	case *schema.LazySchema:
		depthCtx, err := ctx.enterDepth()
		if err != nil {
			return nil, err
		}

		return Coerce(depthCtx, v, n.Resolve())

	case *schema.Primitive:
		switch n.Kind() {
		case schema.KindString:
			return coerceString(ctx, v)
		case schema.KindNumber:
			return coerceNumber(ctx, v, n, n.IsInteger())
		case schema.KindBoolean:
			return coerceBoolean(ctx, v)
		case schema.KindNull:
			return coerceNull(ctx, v)
		}

	case *schema.ArraySchema:
		return coerceArray(ctx, v, n.Elem)

	case *schema.MapSchema:
		return coerceMap(ctx, v, n.Key, n.Val)

	case *schema.ObjectSchema:
		return coerceObject(ctx, v, n)

	case *schema.UnionSchema:
		return coerceUnion(ctx, v, n)

	case *schema.LiteralSchema:
		return coerceLiteral(ctx, v, n)

	case *schema.EnumSchema:
		return coerceEnum(ctx, v, n)
	}

	return nil, newParseError(ctx.Scope(), ErrInternal, "unrecognized schema kind")
}

// coerceAnyOf resolves the pipeline's multi-candidate AnyOf the same way a
// union schema resolves multiple arms (spec §4.9 applies to both): score
// each candidate's coercion and keep the best, falling back to every
// candidate's own cause on total failure.
func coerceAnyOf(ctx *ParsingContext, ao *value.AnyOf, s schema.Schema) (*CoercedValue, error) {
	type attempt struct {
		cv *CoercedValue
	}

	var attempts []attempt

	var causes []*ParseError

	for _, cand := range ao.Candidates {
		cv, err := Coerce(ctx, cand, s)
		if err != nil {
			causes = append(causes, err.(*ParseError))

			continue
		}

		attempts = append(attempts, attempt{cv: cv})
	}

	if len(attempts) == 0 {
		return nil, newParseError(ctx.Scope(), ErrNoUnionMatch, "no pipeline candidate coerced successfully", causes...)
	}

	best := attempts[0].cv
	bestScore := best.Score()

	for _, a := range attempts[1:] {
		if s := a.cv.Score(); s < bestScore {
			best = a.cv
			bestScore = s
		}
	}

	return best, nil
}

// coerceOptional implements spec §4.4's Optional wrapper: try Inner; on
// failure, or on a missing/Null input, produce Null with
// OptionalDefaultFromNoValue rather than failing.
func coerceOptional(ctx *ParsingContext, v value.Value, o *schema.OptionalSchema) (*CoercedValue, error) {
	if _, isNull := unwrapFixed(v).(*value.Null); isNull {
		return newCoerced(nil, flag(FlagOptionalDefaultFromNoValue)), nil
	}

	cv, err := Coerce(ctx, v, o.Inner)
	if err != nil {
		return newCoerced(nil, flag(FlagOptionalDefaultFromNoValue)), nil
	}

	return cv, nil
}

// coerceNullable implements spec §4.4's Nullable wrapper: accept an explicit
// Null in addition to Inner.
func coerceNullable(ctx *ParsingContext, v value.Value, n *schema.NullableSchema) (*CoercedValue, error) {
	if _, isNull := unwrapFixed(v).(*value.Null); isNull {
		return newCoerced(nil), nil
	}

	return Coerce(ctx, v, n.Inner)
}

// coerceDefault implements spec §4.4's Default wrapper.
func coerceDefault(ctx *ParsingContext, v value.Value, d *schema.DefaultSchema) (*CoercedValue, error) {
	if _, isNull := unwrapFixed(v).(*value.Null); isNull {
		return newCoerced(d.Value, flag(FlagDefaultFromNoValue)), nil
	}

	cv, err := Coerce(ctx, v, d.Inner)
	if err != nil {
		return newCoerced(d.Value, flag(FlagDefaultButHadUnparseableValue)), nil
	}

	return cv.withFlags(flag(FlagDefaultButHadValue)), nil
}

// coerceLiteral matches v's text (via coerceString, so Number/Boolean/
// Object-single-key inputs are accepted the same way any string target
// would be) against l's singleton value through the string matcher's
// string-literal tie policy.
func coerceLiteral(ctx *ParsingContext, v value.Value, l *schema.LiteralSchema) (*CoercedValue, error) {
	switch want := l.Value.(type) {
	case string:
		sv, err := coerceString(ctx, v)
		if err != nil {
			return nil, err
		}

		text, _ := sv.Value.(string)

		r, matchErr := matchString(text, []matchCandidate{{name: want, idx: 0}}, matchStringLiteral)
		if matchErr != nil {
			return nil, newParseError(ctx.Scope(), ErrUnexpectedType, "literal mismatch: "+text)
		}

		return newCoerced(want, r.flags...), nil

	case bool:
		bv, err := coerceBoolean(ctx, v)
		if err != nil {
			return nil, err
		}

		if bv.Value.(bool) != want {
			return nil, newParseError(ctx.Scope(), ErrUnexpectedType, "boolean literal mismatch")
		}

		return bv, nil

	default:
		_, wantIsInt := l.Value.(int64)

		nv, err := coerceNumber(ctx, v, schema.Number(), wantIsInt)
		if err != nil {
			return nil, err
		}

		if !literalNumberEquals(l.Value, nv.Value) {
			return nil, newParseError(ctx.Scope(), ErrUnexpectedType, "numeric literal mismatch")
		}

		return nv, nil
	}
}

func literalNumberEquals(want, got any) bool {
	toFloat := func(x any) (float64, bool) {
		switch n := x.(type) {
		case int64:
			return float64(n), true
		case float64:
			return n, true
		default:
			return 0, false
		}
	}

	wf, ok1 := toFloat(want)
	gf, ok2 := toFloat(got)

	return ok1 && ok2 && wf == gf
}

// coerceEnum matches v's text against e's members through the five-tier
// string matcher, using the enum tie policy (ties fail rather than pick a
// first match).
func coerceEnum(ctx *ParsingContext, v value.Value, e *schema.EnumSchema) (*CoercedValue, error) {
	sv, err := coerceString(ctx, v)
	if err != nil {
		return nil, err
	}

	text, _ := sv.Value.(string)

	candidates := make([]matchCandidate, len(e.Members))
	for i, m := range e.Members {
		candidates[i] = matchCandidate{name: m.Name, idx: i}
	}

	r, err := matchString(text, candidates, matchEnum)
	if err != nil {
		return nil, newParseError(ctx.Scope(), ErrAmbiguousMatch, "enum match failed for: "+text)
	}

	return newCoerced(e.Members[r.index].Name, r.flags...), nil
}
