package coerce

import "fmt"

// defaultDepthLimit bounds recursion through lazy/self-referential schemas
// (spec §4.9, §9): a hit returns ErrDepthLimitExceeded rather than recursing
// forever.
const defaultDepthLimit = 100

// ParsingContext threads the current scope path and recursion guards through
// a single [Coerce] call tree. It is not safe for concurrent use; one
// ParsingContext belongs to one top-level Coerce call.
type ParsingContext struct {
	path       []string
	visited    map[string]bool
	unionCache map[string]*unionResult
	depth      int
	depthLimit int
}

// NewParsingContext returns a ParsingContext ready for a top-level Coerce
// call, with the default depth limit (100, spec §4.9/§9).
func NewParsingContext() *ParsingContext {
	return &ParsingContext{
		visited:    make(map[string]bool),
		unionCache: make(map[string]*unionResult),
		depthLimit: defaultDepthLimit,
	}
}

// WithDepthLimit overrides the default recursion cap.
func (c *ParsingContext) WithDepthLimit(n int) *ParsingContext {
	c.depthLimit = n

	return c
}

// Scope renders the current path dotted, e.g. "user.addresses[2].zip".
func (c *ParsingContext) Scope() string {
	out := ""

	for i, p := range c.path {
		if i > 0 && p[0] != '[' {
			out += "."
		}

		out += p
	}

	return out
}

// push returns a child context scoped one level deeper under name, sharing
// the recursion guards of c. Used for object fields and map entries.
func (c *ParsingContext) push(name string) *ParsingContext {
	child := *c
	child.path = append(append([]string{}, c.path...), name)

	return &child
}

// pushIndex is push for an array/list position, rendered "[i]" with no
// leading dot.
func (c *ParsingContext) pushIndex(i int) *ParsingContext {
	return c.push(fmt.Sprintf("[%d]", i))
}

// enterDepth increments the recursion counter, returning ErrDepthLimitExceeded
// if the cap is already hit. Every lazy-schema resolution and every
// (uncached) union resolution calls this first (spec §4.9: "Depth is capped (~100) to
// prevent pathological recursion; on cap, the arm fails").
func (c *ParsingContext) enterDepth() (*ParsingContext, error) {
	if c.depth >= c.depthLimit {
		return nil, newParseError(c.Scope(), ErrDepthLimitExceeded, "exceeded recursion depth limit")
	}

	child := *c
	child.depth = c.depth + 1

	return &child, nil
}

// visitKey reports whether (schemaIdentity, valueDigest) was already on the
// active recursion path, and marks it visited if not. Object coercion (spec
// §4.8 step 6) calls this before descending into a field so a
// self-referential schema paired with a cyclic value fails cleanly instead of
// recursing forever.
func (c *ParsingContext) visitKey(schemaIdentity any, valueDigest string) (alreadyVisited bool, leave func()) {
	key := fmt.Sprintf("%p:%s", schemaIdentity, valueDigest)

	if c.visited[key] {
		return true, func() {}
	}

	c.visited[key] = true

	return false, func() { delete(c.visited, key) }
}
