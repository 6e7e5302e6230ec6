package coerce

import (
	"fmt"

	"go.jacobcolvin.com/jsonish/schema"
	"go.jacobcolvin.com/jsonish/value"
)

// unionResult is the memoized outcome of resolving one union against one
// value digest (spec §4.9's "Memoization & cycles").
type unionResult struct {
	cv  *CoercedValue
	err *ParseError
}

// coerceUnion implements spec §4.9's two-phase union resolver.
func coerceUnion(ctx *ParsingContext, v value.Value, u *schema.UnionSchema) (*CoercedValue, error) {
	if d, ok := discriminator(u); ok {
		if handled, cv, err := coerceDiscriminated(ctx, v, u, d); handled {
			return cv, err
		}
	}

	cacheKey := fmt.Sprintf("%p:%s", u, digest(v))

	if cached, ok := ctx.unionCache[cacheKey]; ok {
		if cached.err != nil {
			return nil, cached.err
		}

		return cached.cv, nil
	}

	depthCtx, err := ctx.enterDepth()
	if err != nil {
		pe := err.(*ParseError)
		ctx.unionCache[cacheKey] = &unionResult{err: pe}

		return nil, pe
	}

	cv, err := resolveUnion(depthCtx, v, u)

	var pe *ParseError
	if err != nil {
		pe = err.(*ParseError)
	}

	ctx.unionCache[cacheKey] = &unionResult{cv: cv, err: pe}

	return cv, err
}

// discriminator finds a field name shared by every arm of u (each arm must
// be an ObjectSchema) where that field's schema is a LiteralSchema -- spec
// §4.8 step 5's discriminated-union fast path.
func discriminator(u *schema.UnionSchema) (string, bool) {
	if len(u.Arms) < 2 {
		return "", false
	}

	objs := make([]*schema.ObjectSchema, len(u.Arms))

	for i, arm := range u.Arms {
		obj, ok := arm.(*schema.ObjectSchema)
		if !ok {
			return "", false
		}

		objs[i] = obj
	}

	for _, f := range objs[0].Fields {
		if _, ok := f.Schema.(*schema.LiteralSchema); !ok {
			continue
		}

		shared := true

		for _, obj := range objs[1:] {
			if !hasLiteralField(obj, f.Name) {
				shared = false

				break
			}
		}

		if shared {
			return f.Name, true
		}
	}

	return "", false
}

func hasLiteralField(obj *schema.ObjectSchema, name string) bool {
	for _, f := range obj.Fields {
		if f.Name == name {
			_, ok := f.Schema.(*schema.LiteralSchema)

			return ok
		}
	}

	return false
}

// coerceDiscriminated dispatches directly to the arm whose discriminator
// field literal matches the input's, skipping union scoring entirely (spec
// §4.8 step 5). handled is false when the input doesn't carry the
// discriminator field at all, so the caller falls back to full scoring.
func coerceDiscriminated(ctx *ParsingContext, v value.Value, u *schema.UnionSchema, field string) (handled bool, cv *CoercedValue, err error) {
	obj, ok := unwrapFixed(v).(*value.Object)
	if !ok {
		return false, nil, nil
	}

	var discText string

	found := false

	for _, e := range obj.Entries {
		if e.Key != field {
			continue
		}

		s, isStr := e.Value.(*value.String)
		if !isStr {
			return false, nil, nil
		}

		discText = s.Text
		found = true
	}

	if !found {
		return false, nil, nil
	}

	for i, arm := range u.Arms {
		armObj := arm.(*schema.ObjectSchema)

		for _, f := range armObj.Fields {
			if f.Name != field {
				continue
			}

			lit, _ := f.Schema.(*schema.LiteralSchema)

			if s, ok := lit.Value.(string); ok && s == discText {
				matched, matchErr := Coerce(ctx, v, arm)
				if matchErr != nil {
					return true, nil, matchErr
				}

				matched.withFlags(FlagUnionMatchN(i))

				return true, matched, nil
			}
		}
	}

	return false, nil, nil
}

func resolveUnion(ctx *ParsingContext, v value.Value, u *schema.UnionSchema) (*CoercedValue, error) {
	if i, cv, ok := fastExactDispatch(ctx, v, u); ok {
		cv.withFlags(FlagUnionMatchN(i))

		return cv, nil
	}

	type candidate struct {
		index int
		cv    *CoercedValue
	}

	var candidates []candidate

	var causes []*ParseError

	for i, arm := range u.Arms {
		cv, err := Coerce(ctx, v, arm)
		if err != nil {
			causes = append(causes, err.(*ParseError))

			continue
		}

		candidates = append(candidates, candidate{index: i, cv: cv})
	}

	if len(candidates) == 0 {
		return nil, newParseError(ctx.Scope(), ErrNoUnionMatch, "no union arm matched", causes...)
	}

	best := candidates[0]
	bestScore := scoreWithHeuristics(best.cv, u.Arms[best.index])

	for _, c := range candidates[1:] {
		s := scoreWithHeuristics(c.cv, u.Arms[c.index])
		if s < bestScore {
			best = c
			bestScore = s
		}
	}

	best.cv.withFlags(FlagUnionMatchN(best.index))

	return best.cv, nil
}

// fastExactDispatch implements spec §4.9 Phase A: try a conservative cast of
// v against each arm that would succeed without applying any coercion
// flags at all. If exactly one arm matches this way, it wins immediately.
func fastExactDispatch(ctx *ParsingContext, v value.Value, u *schema.UnionSchema) (int, *CoercedValue, bool) {
	matchIdx := -1
	var matchCV *CoercedValue

	count := 0

	for i, arm := range u.Arms {
		cv, err := Coerce(ctx, v, arm)
		if err != nil || len(cv.Flags) != 0 {
			continue
		}

		count++
		matchIdx = i
		matchCV = cv
	}

	if count == 1 {
		return matchIdx, matchCV, true
	}

	return 0, nil, false
}

// scoreWithHeuristics applies spec §4.9's pre-comparison selection
// heuristics on top of the raw Score(): each one that applies adds 1
// (SingleToArray wrapper, single-field-object-from-primitive wrapping, an
// all-defaults object, a primitive arm, markdown-sourced provenance). They
// break ties the raw score can't see, and when several apply to one arm
// they can also outweigh a small raw-score difference.
func scoreWithHeuristics(cv *CoercedValue, arm schema.Schema) int {
	score := cv.Score()

	if cv.hasFlag(FlagSingleToArray) {
		score++ // prefer a real Array over a SingleToArray wrapper
	}

	if obj, ok := arm.(*schema.ObjectSchema); ok && len(obj.Fields) == 1 {
		if cv.hasFlag(FlagImpliedKey) || cv.hasFlag(FlagInferredObject) {
			score++ // avoid spurious single-field wrapping of a primitive
		}
	}

	if cv.hasFlag(FlagNoFields) {
		score++ // prefer an object with >=1 non-default field
	}

	if isPrimitiveArm(arm) {
		score++ // prefer composite arms over primitive arms at equal score
	}

	if hasMarkdownProvenance(cv) {
		score++ // prefer markdown-free over markdown-sourced on a tie
	}

	return score
}

func isPrimitiveArm(s schema.Schema) bool {
	switch s.Kind() {
	case schema.KindString, schema.KindNumber, schema.KindBoolean, schema.KindNull:
		return true
	default:
		return false
	}
}

func hasMarkdownProvenance(cv *CoercedValue) bool {
	for _, f := range cv.Flags {
		if f.Kind == FlagObjectFromMarkdown {
			return true
		}
	}

	for _, child := range cv.Children {
		if hasMarkdownProvenance(child) {
			return true
		}
	}

	return false
}
