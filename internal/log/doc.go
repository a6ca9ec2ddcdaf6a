// Package log provides structured logging with secret redaction.
//
// wikigrab handles a text-to-speech API key and user-supplied headers that
// may carry cookies or tokens. The RedactHandler wraps any slog.Handler and
// masks attribute values that look like or are keyed as secrets, so they
// never reach log output regardless of verbosity.
package log
