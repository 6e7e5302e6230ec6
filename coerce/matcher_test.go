package coerce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/jsonish/coerce"
	"go.jacobcolvin.com/jsonish/schema"
	"go.jacobcolvin.com/jsonish/value"
)

func TestCoerceEnumExactMatch(t *testing.T) {
	t.Parallel()

	e := schema.Enum(schema.EnumMember{Name: "RED"}, schema.EnumMember{Name: "BLUE"})

	cv, err := coerce.Coerce(coerce.NewParsingContext(), value.NewString("RED", value.Complete), e)
	require.NoError(t, err)
	assert.Equal(t, "RED", cv.Value)
	assert.Empty(t, cv.Flags)
}

func TestCoerceEnumPunctuationStripped(t *testing.T) {
	t.Parallel()

	e := schema.Enum(schema.EnumMember{Name: "TWO_WORDS"}, schema.EnumMember{Name: "OTHER"})

	cv, err := coerce.Coerce(coerce.NewParsingContext(), value.NewString("two_words.", value.Complete), e)
	require.NoError(t, err)
	assert.Equal(t, "TWO_WORDS", cv.Value)
	require.NotEmpty(t, cv.Flags)
	assert.Equal(t, coerce.FlagStrippedPunctuation, cv.Flags[0].Kind)
}

func TestCoerceEnumSubstringMatch(t *testing.T) {
	t.Parallel()

	e := schema.Enum(schema.EnumMember{Name: "APPROVED"}, schema.EnumMember{Name: "REJECTED"})

	cv, err := coerce.Coerce(coerce.NewParsingContext(), value.NewString("The request was APPROVED by the reviewer.", value.Complete), e)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", cv.Value)

	var hasSubstringFlag bool

	for _, f := range cv.Flags {
		if f.Kind == coerce.FlagSubstringMatch {
			hasSubstringFlag = true
		}
	}

	assert.True(t, hasSubstringFlag)
}

func TestCoerceEnumAmbiguousPreconditionFailsEvenWhenOneTierWouldMatch(t *testing.T) {
	t.Parallel()

	e := schema.Enum(schema.EnumMember{Name: "TWO"}, schema.EnumMember{Name: "THREE"})

	_, err := coerce.Coerce(coerce.NewParsingContext(), value.NewString("TWO or THREE", value.Complete), e)
	require.Error(t, err)
	require.ErrorIs(t, err, coerce.ErrAmbiguousMatch)
}

func TestCoerceEnumAmbiguousSubstringTieFails(t *testing.T) {
	t.Parallel()

	e := schema.Enum(schema.EnumMember{Name: "CAT"}, schema.EnumMember{Name: "DOG"})

	_, err := coerce.Coerce(coerce.NewParsingContext(), value.NewString("I saw a cat and a dog today.", value.Complete), e)
	require.Error(t, err)
}

func TestCoerceUnionOfLiteralsPrefersFirstArmOnScoreTie(t *testing.T) {
	t.Parallel()

	u := schema.Union(schema.Literal("Cat"), schema.Literal("Dog"))

	cv, err := coerce.Coerce(coerce.NewParsingContext(), value.NewString("I saw a cat and a dog today.", value.Complete), u)
	require.NoError(t, err)
	assert.Equal(t, "Cat", cv.Value)
}

func TestCoerceEnumDiacriticFold(t *testing.T) {
	t.Parallel()

	e := schema.Enum(schema.EnumMember{Name: "STRASSE"}, schema.EnumMember{Name: "OTHER"})

	cv, err := coerce.Coerce(coerce.NewParsingContext(), value.NewString("straße", value.Complete), e)
	require.NoError(t, err)
	assert.Equal(t, "STRASSE", cv.Value)
}
