// Package logging builds the slog loggers used across anishelf.
//
// It maps config values to handler construction: console (text) or JSON
// output, level parsing, and fan-out to stdout plus a log file when a log
// directory is configured.
package logging
