package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup configures the global slog logger to write to stderr, keeping
// stdout free for catalog output.
// If logOutputDir is non-empty, logs are also written as JSON to a
// timestamped file in that directory. The returned Closer closes that file.
func Setup(levelStr string, logOutputDir string) (io.Closer, error) {
	return SetupWriter(os.Stderr, levelStr, logOutputDir)
}

// SetupWriter is Setup with console output going to w.
func SetupWriter(w io.Writer, levelStr string, logOutputDir string) (io.Closer, error) {
	level := ParseLogLevel(levelStr)

	consoleHandler := tint.NewHandler(w, &tint.Options{Level: level})

	if logOutputDir == "" {
		slog.SetDefault(slog.New(consoleHandler))
		return nopCloser{}, nil
	}

	logDir := os.ExpandEnv(logOutputDir)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log output directory: %w", err)
	}

	logFilePath := filepath.Join(logDir, LogFileName(time.Now()))
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	fileHandler := slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(
		slogmulti.Fanout(consoleHandler, fileHandler),
	))

	fmt.Fprintf(os.Stderr, "Logging to file: %s\n", logFilePath)
	return logFile, nil
}

// LogFileName returns the name of the log file created at t.
func LogFileName(t time.Time) string {
	return fmt.Sprintf("wadparse_%s.log", t.Format("20060102_150405"))
}

// ParseLogLevel converts a string log level to slog.Level.
// Unknown levels fall back to info.
func ParseLogLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug", "trace":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error", "fatal":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
