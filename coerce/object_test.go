package coerce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/jsonish/coerce"
	"go.jacobcolvin.com/jsonish/schema"
	"go.jacobcolvin.com/jsonish/value"
)

func personSchema() *schema.ObjectSchema {
	return schema.Object("Person",
		schema.Field{Name: "name", Schema: schema.String(), Required: true},
		schema.Field{Name: "age", Schema: schema.Number(), Required: true},
	)
}

func TestCoerceObjectDirect(t *testing.T) {
	t.Parallel()

	obj := value.NewObject([]value.Entry{
		{Key: "name", Value: value.NewString("Ada", value.Complete)},
		{Key: "age", Value: value.NewIntNumber("30", value.Complete)},
	}, value.Complete)

	cv, err := coerce.Coerce(coerce.NewParsingContext(), obj, personSchema())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Ada", "age": int64(30)}, cv.Value)
}

func TestCoerceObjectFieldNameCaseInsensitive(t *testing.T) {
	t.Parallel()

	obj := value.NewObject([]value.Entry{
		{Key: "Name", Value: value.NewString("Ada", value.Complete)},
		{Key: "AGE", Value: value.NewIntNumber("30", value.Complete)},
	}, value.Complete)

	cv, err := coerce.Coerce(coerce.NewParsingContext(), obj, personSchema())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Ada", "age": int64(30)}, cv.Value)
}

func TestCoerceObjectFieldNameSnakeCaseFold(t *testing.T) {
	t.Parallel()

	s := schema.Object("Profile", schema.Field{Name: "userName", Schema: schema.String(), Required: true})

	obj := value.NewObject([]value.Entry{
		{Key: "user_name", Value: value.NewString("ada", value.Complete)},
	}, value.Complete)

	cv, err := coerce.Coerce(coerce.NewParsingContext(), obj, s)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"userName": "ada"}, cv.Value)
}

func TestCoerceObjectFieldAlias(t *testing.T) {
	t.Parallel()

	s := schema.Object("Profile", schema.Field{Name: "userName", Schema: schema.String(), Required: true, Aliases: []string{"login"}})

	obj := value.NewObject([]value.Entry{
		{Key: "login", Value: value.NewString("ada", value.Complete)},
	}, value.Complete)

	cv, err := coerce.Coerce(coerce.NewParsingContext(), obj, s)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"userName": "ada"}, cv.Value)
}

func TestCoerceObjectMissingRequiredFieldFails(t *testing.T) {
	t.Parallel()

	obj := value.NewObject([]value.Entry{
		{Key: "name", Value: value.NewString("Ada", value.Complete)},
	}, value.Complete)

	_, err := coerce.Coerce(coerce.NewParsingContext(), obj, personSchema())
	require.Error(t, err)
	require.ErrorIs(t, err, coerce.ErrMissingRequiredField)
}

func TestCoerceObjectOptionalMissingFieldOmitted(t *testing.T) {
	t.Parallel()

	s := schema.Object("Profile",
		schema.Field{Name: "name", Schema: schema.String(), Required: true},
		schema.Field{Name: "nickname", Schema: schema.Optional(schema.String()), Required: false},
	)

	obj := value.NewObject([]value.Entry{
		{Key: "name", Value: value.NewString("Ada", value.Complete)},
	}, value.Complete)

	cv, err := coerce.Coerce(coerce.NewParsingContext(), obj, s)
	require.NoError(t, err)
	m := cv.Value.(map[string]any)
	assert.Equal(t, "Ada", m["name"])
	assert.Nil(t, m["nickname"])

	var nicknameChild *coerce.CoercedValue

	for _, c := range cv.Children {
		if c.Value == nil {
			nicknameChild = c
		}
	}

	require.NotNil(t, nicknameChild)
	require.Len(t, nicknameChild.Flags, 1)
	assert.Equal(t, coerce.FlagOptionalDefaultFromNoValue, nicknameChild.Flags[0].Kind)
	assert.Equal(t, 1, nicknameChild.Score(), "a missing optional field must cost the cheap penalty, not FlagDefaultFromNoValue's 100")
}

func TestCoerceObjectDefaultFieldSubstituted(t *testing.T) {
	t.Parallel()

	s := schema.Object("Profile",
		schema.Field{Name: "role", Schema: schema.Default(schema.String(), "member"), Required: false},
	)

	obj := value.NewObject(nil, value.Complete)

	cv, err := coerce.Coerce(coerce.NewParsingContext(), obj, s)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"role": "member"}, cv.Value)
	require.Len(t, cv.Children, 1)
	assert.Equal(t, coerce.FlagDefaultFromNoValue, cv.Children[0].Flags[0].Kind)
}

func TestCoerceObjectNullableMissingFieldOmitted(t *testing.T) {
	t.Parallel()

	s := schema.Object("Profile",
		schema.Field{Name: "name", Schema: schema.String(), Required: true},
		schema.Field{Name: "bio", Schema: schema.Nullable(schema.String()), Required: false},
	)

	obj := value.NewObject([]value.Entry{
		{Key: "name", Value: value.NewString("Ada", value.Complete)},
	}, value.Complete)

	cv, err := coerce.Coerce(coerce.NewParsingContext(), obj, s)
	require.NoError(t, err)
	m := cv.Value.(map[string]any)
	assert.Equal(t, "Ada", m["name"])
	assert.Nil(t, m["bio"])

	var bioChild *coerce.CoercedValue

	for _, c := range cv.Children {
		if c.Value == nil {
			bioChild = c
		}
	}

	require.NotNil(t, bioChild)
	require.Len(t, bioChild.Flags, 1)
	assert.Equal(t, coerce.FlagOptionalDefaultFromNoValue, bioChild.Flags[0].Kind)
}

func TestCoerceObjectExtraKeyFlagged(t *testing.T) {
	t.Parallel()

	s := schema.Object("Profile", schema.Field{Name: "name", Schema: schema.String(), Required: true})

	obj := value.NewObject([]value.Entry{
		{Key: "name", Value: value.NewString("Ada", value.Complete)},
		{Key: "extra", Value: value.NewString("junk", value.Complete)},
	}, value.Complete)

	cv, err := coerce.Coerce(coerce.NewParsingContext(), obj, s)
	require.NoError(t, err)

	var found bool

	for _, f := range cv.Flags {
		if f.Kind == coerce.FlagExtraKey {
			found = true
		}
	}

	assert.True(t, found)
}

func TestCoerceObjectArrayImpliesSingleField(t *testing.T) {
	t.Parallel()

	s := schema.Object("Wrapper", schema.Field{Name: "items", Schema: schema.Array(schema.Number()), Required: true})

	arr := value.NewArray([]value.Value{value.NewIntNumber("1", value.Complete)}, value.Complete)

	cv, err := coerce.Coerce(coerce.NewParsingContext(), arr, s)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"items": []any{int64(1)}}, cv.Value)

	var found bool

	for _, f := range cv.Flags {
		if f.Kind == coerce.FlagImpliedKey {
			found = true
		}
	}

	assert.True(t, found)
}

func TestCoerceObjectPrimitiveWrapsIntoSingleField(t *testing.T) {
	t.Parallel()

	s := schema.Object("Wrapper", schema.Field{Name: "value", Schema: schema.String(), Required: true})

	cv, err := coerce.Coerce(coerce.NewParsingContext(), value.NewString("bare", value.Complete), s)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"value": "bare"}, cv.Value)

	var impliedKey, inferredObject bool

	for _, f := range cv.Flags {
		switch f.Kind {
		case coerce.FlagImpliedKey:
			impliedKey = true
		case coerce.FlagInferredObject:
			inferredObject = true
		}
	}

	assert.True(t, impliedKey)
	assert.True(t, inferredObject)
}

func TestCoerceObjectDiscriminatedUnion(t *testing.T) {
	t.Parallel()

	cat := schema.Object("Cat",
		schema.Field{Name: "kind", Schema: schema.Literal("cat"), Required: true},
		schema.Field{Name: "lives", Schema: schema.Number(), Required: true},
	)
	dog := schema.Object("Dog",
		schema.Field{Name: "kind", Schema: schema.Literal("dog"), Required: true},
		schema.Field{Name: "breed", Schema: schema.String(), Required: true},
	)

	u := schema.Union(cat, dog)

	obj := value.NewObject([]value.Entry{
		{Key: "kind", Value: value.NewString("dog", value.Complete)},
		{Key: "breed", Value: value.NewString("Collie", value.Complete)},
	}, value.Complete)

	cv, err := coerce.Coerce(coerce.NewParsingContext(), obj, u)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"kind": "dog", "breed": "Collie"}, cv.Value)
}
