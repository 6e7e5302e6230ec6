package pipeline

// Config toggles which entry-pipeline strategies are active for a given
// call. Recursive calls (markdown block bodies, multi-object regions)
// narrow a copy of the parent Config rather than sharing it, so a
// strategy disabled for recursion never re-enables itself deeper in the
// tree.
type Config struct {
	// AllowMarkdown enables strategy 2 (fenced code block extraction).
	AllowMarkdown bool
	// AllowMultiObject enables strategy 3 (bracket-balanced region scan).
	AllowMultiObject bool
	// AllowFixes enables strategy 4 (the fixer state machine). Spec §4.3
	// never disables this strategy for any recursive call -- it is the
	// one guaranteed source of a candidate.
	AllowFixes bool
	// AllowAsString enables strategy 5 (raw string fallback).
	AllowAsString bool
	// IsDone reports whether the caller considers input complete. It
	// only affects the CompletionState of the strategy-5 raw-string
	// fallback (spec §5): every other strategy derives completion from
	// what it actually observed in the text.
	IsDone bool
	// DepthLimit caps pipeline recursion (spec §4.3, §5): markdown blocks
	// and multi-object regions recurse into the pipeline, and a
	// pathological input (deeply nested fences) must not recurse forever.
	DepthLimit int
}

// DefaultConfig returns the Config a top-level [Run] call uses unless the
// caller overrides it: every strategy enabled, input considered complete,
// depth capped at 100 per spec §4.3/§5.
func DefaultConfig() Config {
	return Config{
		AllowMarkdown:    true,
		AllowMultiObject: true,
		AllowFixes:       true,
		AllowAsString:    true,
		IsDone:           true,
		DepthLimit:       100,
	}
}
