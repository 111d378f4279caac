package scheduler

import (
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewFileLogger returns a slog.Logger writing JSON lines to path,
// rotated by size/age/backup count. The daemon is the file's sole
// writer; the dashboard command builds no logger of its own, and
// NewStderrLogger is not called by any command.
func NewFileLogger(path string, level slog.Level) *slog.Logger {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewStderrLogger returns a slog.Logger for the dashboard process,
// which only logs warnings and errors and never writes to the
// rotated collector.log.
func NewStderrLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// ParseLevel maps a ProcessConfig log_level string to a slog.Level,
// defaulting to Info on anything unrecognized.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
