package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// parseOutput maps LOG_OUTPUT to a writer. DISCARD silences the service.
func parseOutput(o string) io.Writer {
	switch strings.ToUpper(strings.TrimSpace(o)) {
	case "STDERR":
		return os.Stderr
	case "DISCARD":
		return io.Discard
	default:
		return os.Stdout
	}
}

// parseLevel accepts slog level names with offsets ("DEBUG", "INFO+2") and
// WARNING. Anything else is INFO.
func parseLevel(s string) slog.Level {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "WARNING" {
		return slog.LevelWarn
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
