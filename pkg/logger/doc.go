// Package logger builds the slog.Logger used by the enver command. Output is
// text outside prod and JSON in prod, and every record carries the
// environment name.
package logger
