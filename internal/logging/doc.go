// Package logging provides slog-based logging for the mdcheck CLI.
//
// It offers a TTY-optimized text handler with optional color output,
// a JSON handler for machine consumption, and helpers for quiet mode
// and test logging.
package logging
