// Package logging assembles the structured slog loggers used across strata.
//
// It centralizes level parsing and the console/JSON handler choice so the
// CLI, the loader, and watch mode emit log lines of the same shape. A no-op
// logger is provided for tests and wiring code that cannot fail.
package logging
