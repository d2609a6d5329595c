package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the bootstrap JSON logger on stdout. Logging is wired in
// two stages: this one runs before the database exists so connection and
// migration failures are still structured; once the store is up, main
// swaps in a MultiHandler that adds the system_logs sink.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	slog.SetDefault(slog.New(handler))
}

func levelFromEnv() slog.Level {
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
