// Package logger wraps log/slog with the level and format handling used by
// the normalizer. Diagnostics go to stderr so stdout stays free for the run
// summary.
package logger
