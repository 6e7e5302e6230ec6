// Package pipeline implements the entry pipeline: the sequence of
// progressively more permissive strategies that turn a raw, possibly
// malformed string into a [value.Value] tree (spec §4.3). Strict JSON is
// tried first; if it fails, markdown code-fence extraction, a multi-object
// bracket scan, and the [fixer] state machine each get a turn; a raw
// string is the strategy of last resort. When more than one strategy
// succeeds, the candidates are combined into a [value.AnyOf] for the
// coercer's union resolver to pick from.
package pipeline
