// Package logging builds the application's slog loggers and defines the
// standardized structured field names used across the pipeline.
//
// Console output uses slog's text handler, JSON output its JSON handler;
// both can fan out to a log file under the configured log directory.
// Component loggers and context-derived fields (section, stage,
// correlation ID) keep pipeline logs filterable.
package logging
