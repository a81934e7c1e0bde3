package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phsym/console-slog"
)

// Preinit installs a debug-level console logger used until the configuration is loaded.
func Preinit() {
	slog.SetDefault(slog.New(newHandler(os.Stderr, slog.LevelDebug)))
}

// Setup installs the console logger at the configured level.
func Setup(level string) {
	slog.SetDefault(slog.New(newHandler(os.Stderr, ParseLevel(level))))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newHandler(w io.Writer, level slog.Level) slog.Handler {
	return console.NewHandler(w, &console.HandlerOptions{
		AddSource: true,
		Level:     level,
	})
}
