package jsonish

import "go.jacobcolvin.com/jsonish/coerce"

// ParseError is the structured error every failed [Parse] returns (spec
// §7), re-exported here so callers never need to import [coerce]
// directly just to type-assert or errors.As against it.
type ParseError = coerce.ParseError

// Sentinel errors, re-exported from [coerce] so errors.Is(err,
// jsonish.ErrNoUnionMatch) works without an extra import.
var (
	ErrUnexpectedNull       = coerce.ErrUnexpectedNull
	ErrUnexpectedType       = coerce.ErrUnexpectedType
	ErrMissingRequiredField = coerce.ErrMissingRequiredField
	ErrAmbiguousMatch       = coerce.ErrAmbiguousMatch
	ErrAmbiguousBoolean     = coerce.ErrAmbiguousBoolean
	ErrNoUnionMatch         = coerce.ErrNoUnionMatch
	ErrCircularReference    = coerce.ErrCircularReference
	ErrDepthLimitExceeded   = coerce.ErrDepthLimitExceeded
	ErrInternal             = coerce.ErrInternal
)
