package pipeline

import (
	"go.jacobcolvin.com/jsonish/fixer"
	"go.jacobcolvin.com/jsonish/value"
)

// Run drives the entry pipeline against input with cfg and returns the
// resulting Value: the strict-JSON result alone when input is valid JSON;
// otherwise a single candidate if exactly one strategy produced a result,
// or a simplified [value.AnyOf] of every candidate the enabled strategies
// produced (spec §4.3).
func Run(input string, cfg Config) value.Value {
	st := &state{cfg: cfg}

	return value.Simplify(st.run(input, 0))
}

type state struct {
	cfg Config
}

func (st *state) run(input string, depth int) value.Value {
	if depth > st.cfg.DepthLimit {
		return value.NewString(input, st.rawState())
	}

	var candidates []value.Value

	// Input that is already strict JSON needs no other strategy.
	if v, ok := strictJSON(input); ok {
		return v
	}

	if st.cfg.AllowMarkdown {
		candidates = append(candidates, st.markdownStrategy(input, depth)...)
	}

	if st.cfg.AllowMultiObject {
		candidates = append(candidates, st.multiObjectStrategy(input, depth)...)
	}

	if st.cfg.AllowFixes {
		candidates = append(candidates, fixer.Fix(input))
	}

	if st.cfg.AllowAsString {
		candidates = append(candidates, value.NewString(input, st.rawState()))
	}

	switch len(candidates) {
	case 0:
		return value.NewString(input, st.rawState())
	case 1:
		return candidates[0]
	default:
		return value.NewAnyOf(candidates, input)
	}
}

func (st *state) rawState() value.CompletionState {
	if st.cfg.IsDone {
		return value.Complete
	}

	return value.Incomplete
}

// markdownStrategy is entry-pipeline strategy 2. Each fenced block is
// parsed by a fresh recursive call with markdown extraction and the raw
// string fallback both disabled -- so a fence can't "discover" itself
// again, and an unparseable body still gets a real answer from strategy
// 3 or 4 rather than degrading straight to raw text. When two or more
// blocks are found, an aggregated Array of them is appended as an
// additional candidate alongside the individually wrapped blocks.
func (st *state) markdownStrategy(input string, depth int) []value.Value {
	blocks := findFences(input)
	if len(blocks) == 0 {
		return nil
	}

	childCfg := st.cfg
	childCfg.AllowMarkdown = false
	childCfg.AllowAsString = false

	out := make([]value.Value, 0, len(blocks)+1)

	for _, b := range blocks {
		childCfg.IsDone = b.complete

		child := &state{cfg: childCfg}
		inner := child.run(b.body, depth+1)

		out = append(out, value.NewMarkdown(b.lang, b.path, inner))
	}

	if len(out) >= 2 {
		arr := make([]value.Value, len(out))
		copy(arr, out)

		out = append(out, value.WithFix(value.NewArray(arr, value.Complete), value.InferredArray))
	}

	return out
}

// multiObjectStrategy is entry-pipeline strategy 3. Each balanced region
// is re-run with the multi-object scan and raw string fallback both
// disabled, and the resulting Value is tagged GreppedForJSON: it was
// found by scanning surrounding text for bracket-delimited regions, not
// by the caller handing over exactly one JSON value. When two or more
// regions parse, an aggregated Array of them is appended as an additional
// candidate alongside the individually wrapped regions.
func (st *state) multiObjectStrategy(input string, depth int) []value.Value {
	regions := findBalancedRegions(input)
	if len(regions) == 0 {
		return nil
	}

	childCfg := st.cfg
	childCfg.AllowMultiObject = false
	childCfg.AllowAsString = false

	parsed := make([]value.Value, 0, len(regions))

	for _, region := range regions {
		child := &state{cfg: childCfg}
		v := child.run(region, depth+1)
		parsed = append(parsed, value.WithFix(v, value.GreppedForJSON))
	}

	if len(parsed) < 2 {
		return parsed
	}

	arr := make([]value.Value, len(parsed))
	copy(arr, parsed)

	out := make([]value.Value, 0, len(parsed)+1)
	out = append(out, parsed...)
	out = append(out, value.WithFix(value.NewArray(arr, value.Complete), value.InferredArray))

	return out
}
