// Package value defines the intermediate, weakly-typed tree that the entry
// pipeline produces and the coercer consumes.
//
// [Value] is a closed sum type, the same way github.com/goccy/go-yaml/ast
// represents a YAML document: one interface plus one concrete type per
// variant, dispatched with a type switch rather than a discriminator field.
// Values are never mutated after construction. [WithFix], [CompleteDeeply]
// and [Simplify] all return new trees; none of them touch their argument.
//
// Every variant except [Boolean] and [Null] carries a [CompletionState]
// recording whether its closing delimiter was actually observed in the
// source text, so a caller can tell "the model's output got cut off here"
// apart from "the model produced a well-formed empty object".
package value
