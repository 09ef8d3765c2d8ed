// Package logger is a small, centralized logging facility. Components log a
// tag plus a detail value through either the package-level convenience
// functions (Log, Logf) or a private *Logger instance (NewLogger) when
// isolation is required, as in this package's own tests.
//
// Every entry is kept in a bounded ring buffer retrievable with Write/Tail
// and is also emitted as a structured,
// leveled record through an internal zerolog.Logger, whose destination
// defaults to io.Discard and can be redirected with SetOutput.
package logger
