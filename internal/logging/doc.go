// Package logging constructs the slog loggers used across lacquer. Two
// output formats are supported: a compact console form for interactive use
// and JSON for machine consumption. Diagnostics always go to a separate
// stream from the conversion report.
package logging
