// Package logging defines the minimal structured-logging interface used
// across the project, backed by log/slog.
package logging

// Logger is a structured logger; variadic args are key–value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
