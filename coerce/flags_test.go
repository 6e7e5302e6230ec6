package coerce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/jsonish/coerce"
)

func TestCoercionFlagPenaltyTable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		flag    coerce.CoercionFlag
		penalty int
	}{
		{coerce.FlagUnionMatchN(3), 0},
		{coerce.CoercionFlag{Kind: coerce.FlagStringToFloat}, 1},
		{coerce.CoercionFlag{Kind: coerce.FlagFloatToInt}, 1},
		{coerce.CoercionFlag{Kind: coerce.FlagStrippedPunctuation}, 3},
		{coerce.CoercionFlag{Kind: coerce.FlagSubstringMatch}, 2},
		{coerce.CoercionFlag{Kind: coerce.FlagDefaultFromNoValue}, 100},
		{coerce.CoercionFlag{Kind: coerce.FlagDefaultButHadValue}, 110},
		{coerce.FlagObjectFromMarkdownN(4), 4},
		{coerce.FlagStrMatchOneFromManyN(7), 7},
		{coerce.CoercionFlag{Kind: coerce.FlagConstraintResults}, 0},
	}

	for _, c := range cases {
		assert.Equal(t, c.penalty, c.flag.Penalty())
	}
}

func TestCoercedValueScoreSumsOwnAndChildPenaltiesTenfold(t *testing.T) {
	t.Parallel()

	child := &coerce.CoercedValue{Flags: []coerce.CoercionFlag{{Kind: coerce.FlagExtraKey}}} // penalty 1
	parent := &coerce.CoercedValue{
		Flags:    []coerce.CoercionFlag{{Kind: coerce.FlagStrippedPunctuation}}, // penalty 3
		Children: []*coerce.CoercedValue{child},
	}

	// own penalty (3) + 10 * child score (1) = 13
	assert.Equal(t, 13, parent.Score())
}

func TestCoercedValueScoreNilSafe(t *testing.T) {
	t.Parallel()

	var cv *coerce.CoercedValue

	assert.Equal(t, 0, cv.Score())
}
