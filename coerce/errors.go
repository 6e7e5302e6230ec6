package coerce

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, one per error kind named in spec §7. Every failure a
// coercer returns wraps exactly one of these via [*ParseError.Kind].
var (
	ErrUnexpectedNull       = errors.New("unexpected null")
	ErrUnexpectedType       = errors.New("unexpected type")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrAmbiguousMatch       = errors.New("ambiguous match")
	ErrAmbiguousBoolean     = errors.New("ambiguous boolean")
	ErrNoUnionMatch         = errors.New("no union arm matched")
	ErrCircularReference    = errors.New("circular reference")
	ErrDepthLimitExceeded   = errors.New("depth limit exceeded")
	ErrInternal             = errors.New("internal error")
)

// ParseError is the one structured error type every coercer returns. Scope
// is the dotted [ParsingContext] path at the point of failure; Causes holds
// the per-arm failures of a failed union, or the per-field failures of an
// object that could not produce its required fields -- never both.
type ParseError struct {
	Scope  string
	Kind   error
	Reason string
	Causes []*ParseError
}

func newParseError(scope string, kind error, reason string, causes ...*ParseError) *ParseError {
	return &ParseError{Scope: scope, Kind: kind, Reason: reason, Causes: causes}
}

// Error renders "<scope>: <reason>", appending "(N causes)" when Causes is
// non-empty. The full cause tree is never printed inline -- callers that want
// it walk Causes themselves.
func (e *ParseError) Error() string {
	var b strings.Builder

	if e.Scope != "" {
		b.WriteString(e.Scope)
		b.WriteString(": ")
	}

	b.WriteString(e.Reason)

	if len(e.Causes) > 0 {
		fmt.Fprintf(&b, " (%d causes)", len(e.Causes))
	}

	return b.String()
}

// Unwrap returns Kind so errors.Is(err, coerce.ErrNoUnionMatch) works against
// a *ParseError the way it works against the teacher's generator errors.
func (e *ParseError) Unwrap() error { return e.Kind }
