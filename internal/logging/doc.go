// Package logging assembles the structured slog loggers used across abprep.
//
// It centralizes level and output plumbing for the console and JSON handlers
// and provides a no-op logger for tests. Prefer these constructors over
// hand-rolled slog setup so every component emits data with the same shape.
package logging
