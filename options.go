package jsonish

import (
	"io"
	"log/slog"

	"go.jacobcolvin.com/jsonish/log"
)

// Option configures a [Parse] call, mirroring the closure-based
// configuration magicschema.NewGenerator(opts ...Option) uses: every
// option is a function that mutates an *Options under construction, so
// new options can be added without breaking existing call sites.
type Option func(*Options)

// Options is the fully resolved configuration for one [Parse] call. All
// four strategy-enabling fields default to true; IsDone defaults to true;
// DepthLimit defaults to 100 -- spec §6's "Options (recognized set, all
// default true unless noted)".
type Options struct {
	FindAllJSONObjects bool
	AllowMarkdownJSON  bool
	AllowFixes         bool
	AllowAsString      bool
	IsDone             bool
	DepthLimit         int
	Logger             *slog.Logger
}

// NewOptions applies opts over the spec's defaults. A caller that never
// supplies WithLogger gets a discarding logger, so Parse stays silent and
// allocation-free by default.
func NewOptions(opts ...Option) *Options {
	o := &Options{
		FindAllJSONObjects: true,
		AllowMarkdownJSON:  true,
		AllowFixes:         true,
		AllowAsString:      true,
		IsDone:             true,
		DepthLimit:         100,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}

	return o
}

// WithFindAllJSONObjects toggles strategy 3, the bracket-balanced
// multi-object scan.
func WithFindAllJSONObjects(b bool) Option {
	return func(o *Options) { o.FindAllJSONObjects = b }
}

// WithAllowMarkdownJSON toggles strategy 2, fenced code-block extraction.
func WithAllowMarkdownJSON(b bool) Option {
	return func(o *Options) { o.AllowMarkdownJSON = b }
}

// WithAllowFixes toggles strategy 4, the fixing state machine.
func WithAllowFixes(b bool) Option {
	return func(o *Options) { o.AllowFixes = b }
}

// WithAllowAsString toggles strategy 5, the raw string fallback.
func WithAllowAsString(b bool) Option {
	return func(o *Options) { o.AllowAsString = b }
}

// WithIsDone reports whether the caller considers input to be complete.
// When false, the outermost Value produced by the entry pipeline is left
// Incomplete regardless of what the pipeline itself observed, so a
// downstream consumer can treat the parse as provisional (spec §5).
func WithIsDone(b bool) Option {
	return func(o *Options) { o.IsDone = b }
}

// WithDepthLimit overrides the recursion cap applied to both the entry
// pipeline (nested markdown/multi-object recursion) and the coercer
// (lazy-schema and union recursion).
func WithDepthLimit(n int) Option {
	return func(o *Options) { o.DepthLimit = n }
}

// WithLogger sets the logger Parse writes diagnostics to: a Debug line when
// the entry pipeline runs, a Debug line when coercion succeeds or fails, and
// a Warn on a schema-introspection panic. The pipeline and coercer
// themselves do not log. A nil logger is treated as unset.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithLogLevel builds the diagnostic logger from level/format strings
// instead of a caller-built *slog.Logger -- the shape a caller-supplied
// option typically arrives in (log.CreateHandlerWithStrings's own doc
// comment), for a caller wiring Parse's tracing up to a flag pair rather
// than constructing a logger by hand. level and format accept the same
// strings as [log.GetLevel] and [log.GetFormat] ("debug"/"info"/"warn"/
// "error", "json"/"logfmt"). An unrecognized level or format leaves the
// logger unset, the same "leave it alone" posture WithLogger takes for an
// explicit nil, rather than panicking on a bad string.
func WithLogLevel(w io.Writer, level, format string) Option {
	return func(o *Options) {
		handler, err := log.CreateHandlerWithStrings(w, level, format)
		if err != nil {
			return
		}

		o.Logger = slog.New(handler)
	}
}
