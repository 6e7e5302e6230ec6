// Package schema defines the introspection surface the coercer needs from
// a schema description: shape (primitive/array/map/object/union/literal/
// enum), optional/nullable/default wrappers, and lazy thunks for recursive
// types. It deliberately does not try to be a general schema language --
// spec §1 treats "the schema-description library itself" as an external
// collaborator, kept out of scope on purpose.
//
// Two front doors build a [Schema] tree:
//
//   - The constructors in this package ([Object], [Array], [Map], [Union],
//     [Literal], [Enum], [Optional], [Nullable], [Default], [Lazy],
//     [String], [Number], [Boolean], [Null]) are the zero-dependency path.
//   - [FromJSONSchema] adapts a *jsonschema.Schema from
//     github.com/google/jsonschema-go, for callers who already have a JSON
//     Schema (hand-written, or produced by that library's reflector) and
//     would rather not hand-roll a second schema tree.
//
// Schema trees are built once and read many times. Concrete types are
// dispatched with a type switch, not a discriminator field -- the same
// shape github.com/goccy/go-yaml/ast uses for its node types, which this
// package's Kind/Identity split mirrors.
package schema
