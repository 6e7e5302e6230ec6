// Package log provides structured logging handler construction for use with
// [log/slog].
//
// It supports two output formats, [FormatJSON] and [FormatLogfmt]. Use
// [CreateHandler] to build a handler directly from a parsed [slog.Level] and
// [Format], or [CreateHandlerWithStrings] to parse both from strings first
// (the shape a caller-supplied option typically arrives in):
//
//	handler, err := log.CreateHandlerWithStrings(os.Stderr, "debug", "logfmt")
//	if err != nil {
//	    // ...
//	}
//	slog.SetDefault(slog.New(handler))
package log
