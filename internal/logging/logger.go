// Package logging defines the structured-logging interface the server and
// CLI code log through. The concrete implementation wraps log/slog; swapping
// the backend only touches this package.
package logging

import "context"

// Logger accepts a message plus alternating key/value args:
//
//	log.Info(ctx, "listening", "addr", addr)
type Logger interface {
	// Debug is for diagnostics normally filtered out in production.
	Debug(ctx context.Context, msg string, args ...any)

	Info(ctx context.Context, msg string, args ...any)

	// Warn marks unusual conditions the process survives.
	Warn(ctx context.Context, msg string, args ...any)

	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying the given key/value pairs on
	// every record.
	With(args ...any) Logger
}
