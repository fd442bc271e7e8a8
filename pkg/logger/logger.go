package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger

// Init configures the process logger. Production gets JSON output, anything
// else gets text at debug level.
func Init(environment string) {
	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	log = slog.New(handler)
}

func get() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Info(msg string, args ...any) {
	get().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
	os.Exit(1)
}

// normalize lets call sites pass a bare error or string as the only
// argument instead of a key-value pair.
func normalize(args []any) []any {
	if len(args) == 1 {
		switch v := args[0].(type) {
		case error:
			return []any{"error", v}
		case string:
			return []any{"detail", v}
		}
	}
	return args
}
