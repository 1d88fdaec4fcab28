// Package logging wraps zap for structured, file-backed logging. The
// terminal belongs to the TUI, so logs never go to stdout or stderr unless
// asked for.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	SugaredLogger *zap.SugaredLogger
}

// Options selects where and how much to log.
type Options struct {
	Level string // debug, info, warn, error
	File  string // path, "stderr" or "stdout"; empty disables logging
}

// New builds a JSON logger writing to opts.File.
func New(opts Options) (*Logger, error) {
	if opts.File == "" {
		return Nop(), nil
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	if opts.File != "stderr" && opts.File != "stdout" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{opts.File}
	cfg.ErrorOutputPaths = []string{opts.File}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{SugaredLogger: zapLogger.Sugar()}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// ParseLevel maps a config level name to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// DefaultFile returns $XDG_STATE_HOME/aromabench/aromabench.log, falling
// back to ~/.local/state.
func DefaultFile() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "aromabench", "aromabench.log"), nil
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Debugw(msg, keysAndValues...)
}
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Infow(msg, keysAndValues...)
}
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Warnw(msg, keysAndValues...)
}
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Errorw(msg, keysAndValues...)
}
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(keysAndValues...)}
}

// Printf-style methods let the logger stand in for libraries that expect
// Errorf/Warningf/Infof/Debugf, such as badger.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.SugaredLogger.Errorf(strings.TrimSpace(format), args...)
}
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.SugaredLogger.Warnf(strings.TrimSpace(format), args...)
}
func (l *Logger) Infof(format string, args ...interface{}) {
	l.SugaredLogger.Infof(strings.TrimSpace(format), args...)
}
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.SugaredLogger.Debugf(strings.TrimSpace(format), args...)
}
