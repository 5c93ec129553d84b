package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type Config struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`

	// File output is rotated by lumberjack. Leave FilePath empty to log to
	// stdout only.
	FilePath       string `toml:"file_path"`
	FileMaxSizeMB  int    `toml:"file_max_size_mb"`
	FileMaxBackups int    `toml:"file_max_backups"`
	FileMaxAgeDays int    `toml:"file_max_age_days"`
}

type defaultLogger struct {
	level int
	inner *slog.Logger
}

// NewLogger returns a text logger writing to stdout.
func NewLogger(level int) *defaultLogger {
	return newLogger(level, "text", os.Stdout)
}

func New(cfg Config) *defaultLogger {
	var w io.Writer = os.Stdout
	if cfg.FilePath != "" {
		w = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.FileMaxSizeMB,
			MaxBackups: cfg.FileMaxBackups,
			MaxAge:     cfg.FileMaxAgeDays,
		})
	}

	return newLogger(ParseLevel(cfg.Level), cfg.Format, w)
}

func newLogger(level int, format string, w io.Writer) *defaultLogger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &defaultLogger{level: level, inner: slog.New(handler)}
}

func ParseLevel(s string) int {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARNING
	case "ERROR":
		return ERROR
	case "SILENCE":
		return SILENCE
	default:
		return INFO
	}
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	l.log(DEBUG, slog.LevelDebug, msg, a...)
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	l.log(INFO, slog.LevelInfo, msg, a...)
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	l.log(WARNING, slog.LevelWarn, msg, a...)
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	l.log(ERROR, slog.LevelError, msg, a...)
}

func (l *defaultLogger) log(level int, slogLevel slog.Level, msg string, a ...any) {
	if l.level > level {
		return
	}

	l.inner.Log(context.Background(), slogLevel, fmt.Sprintf(msg, a...))
}
