// Package logger provides a small leveled logging facade.
package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Logger is the logging interface used across the application.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Warn(v ...interface{})
	Warnf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
	Fatal(v ...interface{})
	Fatalf(format string, v ...interface{})
}

// Level represents a logging threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

type leveledLogger struct {
	level Level
	out   map[Level]*log.Logger
	mu    sync.RWMutex
}

// New creates a logger whose threshold comes from the LOG_LEVEL
// environment variable (default info).
func New() Logger {
	return NewWithLevel(ParseLevel(os.Getenv("LOG_LEVEL")))
}

// NewWithLevel creates a logger with an explicit threshold.
func NewWithLevel(level Level) Logger {
	return &leveledLogger{
		level: level,
		out: map[Level]*log.Logger{
			LevelDebug: log.New(os.Stdout, "[DEBUG] ", log.LstdFlags|log.Lshortfile),
			LevelInfo:  log.New(os.Stdout, "[INFO] ", log.LstdFlags),
			LevelWarn:  log.New(os.Stdout, "[WARN] ", log.LstdFlags),
			LevelError: log.New(os.Stderr, "[ERROR] ", log.LstdFlags|log.Lshortfile),
		},
	}
}

// ParseLevel converts a string level name to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l *leveledLogger) enabled(level Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.level
}

func (l *leveledLogger) print(level Level, v ...interface{}) {
	if !l.enabled(level) {
		return
	}
	l.mu.RLock()
	out := l.out[level]
	l.mu.RUnlock()
	out.Output(3, fmt.Sprint(v...))
}

func (l *leveledLogger) printf(level Level, format string, v ...interface{}) {
	if !l.enabled(level) {
		return
	}
	l.mu.RLock()
	out := l.out[level]
	l.mu.RUnlock()
	out.Output(3, fmt.Sprintf(format, v...))
}

func (l *leveledLogger) Debug(v ...interface{})                 { l.print(LevelDebug, v...) }
func (l *leveledLogger) Debugf(format string, v ...interface{}) { l.printf(LevelDebug, format, v...) }
func (l *leveledLogger) Info(v ...interface{})                  { l.print(LevelInfo, v...) }
func (l *leveledLogger) Infof(format string, v ...interface{})  { l.printf(LevelInfo, format, v...) }
func (l *leveledLogger) Warn(v ...interface{})                  { l.print(LevelWarn, v...) }
func (l *leveledLogger) Warnf(format string, v ...interface{})  { l.printf(LevelWarn, format, v...) }
func (l *leveledLogger) Error(v ...interface{})                 { l.print(LevelError, v...) }
func (l *leveledLogger) Errorf(format string, v ...interface{}) { l.printf(LevelError, format, v...) }

func (l *leveledLogger) Fatal(v ...interface{}) {
	l.print(LevelError, v...)
	os.Exit(1)
}

func (l *leveledLogger) Fatalf(format string, v ...interface{}) {
	l.printf(LevelError, format, v...)
	os.Exit(1)
}
