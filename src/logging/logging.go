// Package logging configures the CLI's structured logger.
// Records are written as JSON to a rotating log file; every record carries
// the run ID of the invocation that produced it.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSize  = 10 // MB
	defaultMaxFiles = 5
	defaultMaxAge   = 30 // days
)

// Config holds logging configuration
type Config struct {
	Level    string // debug, info, warn, error (default: info)
	File     string // Log file path (empty = {log_dir}/cli.log)
	MaxSize  int    // Max log file size in MB (default: 10)
	MaxFiles int    // Max log files to keep (default: 5)
}

// ConfigFromViper reads the logging.* keys
func ConfigFromViper(v *viper.Viper) Config {
	return Config{
		Level:    v.GetString("logging.level"),
		File:     v.GetString("logging.file"),
		MaxSize:  v.GetInt("logging.max_size"),
		MaxFiles: v.GetInt("logging.max_files"),
	}
}

// ParseLevel maps a configured level name to a slog level
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

// NewRunID returns a fresh, time-sortable invocation identifier
func NewRunID() string {
	return ulid.Make().String()
}

// New builds a logger writing to the rotating file described by cfg.
// defaultFile is used when cfg.File is empty. The returned closer releases
// the log file.
func New(cfg Config, defaultFile, runID string) (*slog.Logger, io.Closer, error) {
	logPath := cfg.File
	if logPath == "" {
		logPath = defaultFile
	}
	if strings.HasPrefix(logPath, "~") {
		home, _ := os.UserHomeDir()
		logPath = filepath.Join(home, logPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	maxFiles := cfg.MaxFiles
	if maxFiles <= 0 {
		maxFiles = defaultMaxFiles
	}

	writer := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxSize,
		MaxBackups: maxFiles,
		MaxAge:     defaultMaxAge,
		Compress:   true,
	}

	return NewWithWriter(writer, ParseLevel(cfg.Level), runID), writer, nil
}

// NewWithWriter builds a JSON logger on an arbitrary writer
func NewWithWriter(w io.Writer, level slog.Level, runID string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	if runID != "" {
		logger = logger.With("run", runID)
	}
	return logger
}

// Stderr is the fallback logger used when the log file cannot be opened
func Stderr(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
