package fixer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/jsonish/fixer"
	"go.jacobcolvin.com/jsonish/value"
)

func TestFixWellFormedJSON(t *testing.T) {
	t.Parallel()

	v := fixer.Fix(`{"a": 1, "b": [true, false, null]}`)

	obj, ok := v.(*value.Object)
	require.True(t, ok)
	require.Len(t, obj.Entries, 2)
	assert.Equal(t, value.Complete, obj.Completion())
}

func TestFixUnquotedKeys(t *testing.T) {
	t.Parallel()

	v := fixer.Fix(`{name: "Alice", age: 30}`)

	fj, ok := v.(*value.FixedJSON)
	require.True(t, ok)
	assert.Contains(t, fj.Fixes, value.UnquotedKey)

	obj, ok := fj.Inner.(*value.Object)
	require.True(t, ok)
	assert.Equal(t, "name", obj.Entries[0].Key)
	assert.Equal(t, "age", obj.Entries[1].Key)
}

func TestFixTrailingComma(t *testing.T) {
	t.Parallel()

	v := fixer.Fix(`[1, 2, 3,]`)

	fj, ok := v.(*value.FixedJSON)
	require.True(t, ok)
	assert.Contains(t, fj.Fixes, value.RemovedTrailingComma)

	arr, ok := fj.Inner.(*value.Array)
	require.True(t, ok)
	assert.Len(t, arr.Items, 3)
}

func TestFixSingleQuotedString(t *testing.T) {
	t.Parallel()

	v := fixer.Fix(`{'a': 'hello'}`)

	fj, ok := v.(*value.FixedJSON)
	require.True(t, ok)
	assert.Contains(t, fj.Fixes, value.ConvertedSingleQuote)

	obj := fj.Inner.(*value.Object)
	s := obj.Entries[0].Value.(*value.String)
	assert.Equal(t, "hello", s.Text)
}

func TestFixUnclosedObjectAtEOF(t *testing.T) {
	t.Parallel()

	v := fixer.Fix(`{"a": 1, "b": 2`)

	fj, ok := v.(*value.FixedJSON)
	require.True(t, ok)
	assert.Contains(t, fj.Fixes, value.AddedClosingBrace)
	assert.Equal(t, value.Incomplete, fj.Completion())

	obj := fj.Inner.(*value.Object)
	assert.Len(t, obj.Entries, 2)
}

func TestFixUnclosedStringAtEOF(t *testing.T) {
	t.Parallel()

	v := fixer.Fix(`{"a": "truncated value`)

	fj, ok := v.(*value.FixedJSON)
	require.True(t, ok)
	assert.Contains(t, fj.Fixes, value.AddedClosingQuote)
	assert.Contains(t, fj.Fixes, value.AddedClosingBrace)

	obj := fj.Inner.(*value.Object)
	s := obj.Entries[0].Value.(*value.String)
	assert.Equal(t, "truncated value", s.Text)
	assert.Equal(t, value.Incomplete, s.State)
}

func TestFixUnescapedApostropheInDoubleQuotedString(t *testing.T) {
	t.Parallel()

	v := fixer.Fix(`{"a": "it's fine"}`)

	obj := unwrapObject(t, v)
	s := obj.Entries[0].Value.(*value.String)
	assert.Equal(t, "it's fine", s.Text)
}

func TestFixTripleQuotedStringDedents(t *testing.T) {
	t.Parallel()

	v := fixer.Fix("{\"a\": \"\"\"\n    line1\n    line2\n    \"\"\"}")

	fj, ok := v.(*value.FixedJSON)
	require.True(t, ok)
	assert.Contains(t, fj.Fixes, value.DedentedTripleQuote)
	assert.Contains(t, fj.Fixes, value.ConvertedTripleQuote)

	obj := fj.Inner.(*value.Object)
	s := obj.Entries[0].Value.(*value.String)
	assert.Equal(t, "\nline1\nline2\n", s.Text)
}

func TestFixBacktickFenceProducesMarkdown(t *testing.T) {
	t.Parallel()

	v := fixer.Fix("{\"a\": ```json path=foo/bar.json\n{\"x\": 1}\n```}")

	obj := unwrapObject(t, v)
	md, ok := obj.Entries[0].Value.(*value.Markdown)
	require.True(t, ok)
	assert.Equal(t, "json", md.Lang)
	assert.Equal(t, "path=foo/bar.json", md.Path)

	inner, ok := md.Inner.(*value.String)
	require.True(t, ok)
	assert.Equal(t, `{"x": 1}`+"\n", inner.Text)
}

func TestFixStripsLineComment(t *testing.T) {
	t.Parallel()

	v := fixer.Fix("{\"a\": 1, // trailing note\n\"b\": 2}")

	fj, ok := v.(*value.FixedJSON)
	require.True(t, ok)
	assert.Contains(t, fj.Fixes, value.StrippedComment)

	obj := fj.Inner.(*value.Object)
	assert.Len(t, obj.Entries, 2)
}

func TestFixStripsBlockComment(t *testing.T) {
	t.Parallel()

	v := fixer.Fix("{\"a\": 1 /* unit: meters */, \"b\": 2}")

	fj, ok := v.(*value.FixedJSON)
	require.True(t, ok)
	assert.Contains(t, fj.Fixes, value.StrippedComment)

	obj := fj.Inner.(*value.Object)
	assert.Len(t, obj.Entries, 2)
}

func TestFixUnquotedValueEndsAtNextKeyLookingLine(t *testing.T) {
	t.Parallel()

	v := unwrapObject(t, fixer.Fix("{name: John Smith\nage: 30}"))

	name := v.Entries[0].Value.(*value.String)
	assert.Equal(t, "John Smith", name.Text)

	age := v.Entries[1].Value.(*value.Number)
	assert.Equal(t, "30", age.Raw)
}

func TestFixMultilineUnquotedValueMergedUntilNextKey(t *testing.T) {
	t.Parallel()

	v := fixer.Fix("{note: first line\nsecond line\nage: 5}")

	fj, ok := v.(*value.FixedJSON)
	require.True(t, ok)
	assert.Contains(t, fj.Fixes, value.MergedMultilineUnquoted)

	obj := fj.Inner.(*value.Object)
	note := obj.Entries[0].Value.(*value.String)
	assert.Equal(t, "first line\nsecond line", note.Text)

	age := obj.Entries[1].Value.(*value.Number)
	assert.Equal(t, "5", age.Raw)
}

func TestFixCommaInMultilineUnquotedIsLiteralWhenNotFollowedByKey(t *testing.T) {
	t.Parallel()

	v := fixer.Fix("{note: line one\nline two, not a key\nage: 5}")

	obj := unwrapObject(t, v)

	note := obj.Entries[0].Value.(*value.String)
	assert.Equal(t, "line one\nline two, not a key", note.Text)

	age := obj.Entries[1].Value.(*value.Number)
	assert.Equal(t, "5", age.Raw)
}

func TestFixNullThenBraceEmbedsRemainderAsString(t *testing.T) {
	t.Parallel()

	v := fixer.Fix(`{"field13": null{"foo1": {"field1": "A thing"`)

	fj, ok := v.(*value.FixedJSON)
	require.True(t, ok)
	assert.Contains(t, fj.Fixes, value.EmbeddedJsonAsString)
	assert.Contains(t, fj.Fixes, value.AddedClosingBrace)

	obj := fj.Inner.(*value.Object)
	s := obj.Entries[0].Value.(*value.String)
	assert.Equal(t, `null{"foo1": {"field1": "A thing"`, s.Text)
}

func TestFixAllSplitsConcatenatedObjects(t *testing.T) {
	t.Parallel()

	vs := fixer.FixAll(`{"a": 1} {"b": 2}`)

	require.Len(t, vs, 2)

	first := vs[0].(*value.Object)
	second := vs[1].(*value.Object)
	assert.Equal(t, "a", first.Entries[0].Key)
	assert.Equal(t, "b", second.Entries[0].Key)
}

func TestFixEmptyInputFallsBackToEmptyString(t *testing.T) {
	t.Parallel()

	v := fixer.Fix("")
	s, ok := v.(*value.String)
	require.True(t, ok)
	assert.Equal(t, "", s.Text)
	assert.Equal(t, value.Incomplete, s.State)
}

func TestClassifyUnquotedTerminals(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		check func(t *testing.T, v value.Value)
	}{
		"true": {
			input: "{a: true}",
			check: func(t *testing.T, v value.Value) {
				t.Helper()
				b := v.(*value.Boolean)
				assert.True(t, b.Bool)
			},
		},
		"false": {
			input: "{a: false}",
			check: func(t *testing.T, v value.Value) {
				t.Helper()
				b := v.(*value.Boolean)
				assert.False(t, b.Bool)
			},
		},
		"null": {
			input: "{a: null}",
			check: func(t *testing.T, v value.Value) {
				t.Helper()
				_, ok := v.(*value.Null)
				assert.True(t, ok)
			},
		},
		"integer": {
			input: "{a: 42}",
			check: func(t *testing.T, v value.Value) {
				t.Helper()
				n := v.(*value.Number)
				assert.Equal(t, "42", n.Raw)
				assert.False(t, n.IsFloat)
			},
		},
		"fraction": {
			input: "{a: 3.14}",
			check: func(t *testing.T, v value.Value) {
				t.Helper()
				n := v.(*value.Number)
				assert.Equal(t, "3.14", n.Raw)
				assert.True(t, n.IsFloat)
			},
		},
		"bareword": {
			input: "{a: hello}",
			check: func(t *testing.T, v value.Value) {
				t.Helper()
				s := v.(*value.String)
				assert.Equal(t, "hello", s.Text)
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			obj := unwrapObject(t, fixer.Fix(tc.input))
			require.Len(t, obj.Entries, 1)
			assert.Equal(t, "a", obj.Entries[0].Key)
			tc.check(t, obj.Entries[0].Value)
		})
	}
}

// unwrapObject strips an optional FixedJSON wrapper and requires the
// inner value to be an Object.
func unwrapObject(t *testing.T, v value.Value) *value.Object {
	t.Helper()

	if fj, ok := v.(*value.FixedJSON); ok {
		v = fj.Inner
	}

	obj, ok := v.(*value.Object)
	require.True(t, ok, "expected *value.Object, got %T", v)

	return obj
}
