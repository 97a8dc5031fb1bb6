package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	CRITICAL
)

// ParseLevel maps a level name to a LogLevel. Unknown names yield DEBUG and an error.
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	case "critical", "fatal":
		return CRITICAL, nil
	}
	return DEBUG, fmt.Errorf("unknown log level %q", name)
}

// Options selects where log lines go. Console and File are mutually
// exclusive; Console wins when both are set.
type Options struct {
	File    string
	Console bool
	Level   LogLevel
}

type Logger struct {
	level          LogLevel
	debugLogger    *log.Logger
	infoLogger     *log.Logger
	warnLogger     *log.Logger
	errorLogger    *log.Logger
	criticalLogger *log.Logger
	file           *os.File
}

func newLogger(w io.Writer, level LogLevel) *Logger {
	flags := log.Ldate | log.Ltime
	return &Logger{
		level:          level,
		debugLogger:    log.New(w, "DEBUG:    ", flags),
		infoLogger:     log.New(w, "INFO:     ", flags),
		warnLogger:     log.New(w, "WARN:     ", flags),
		errorLogger:    log.New(w, "ERROR:    ", flags),
		criticalLogger: log.New(w, "CRITICAL: ", flags),
	}
}

func (l *Logger) init(opts Options) error {
	if opts.Console {
		*l = *newLogger(os.Stderr, opts.Level)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	*l = *newLogger(file, opts.Level)
	l.file = file
	return nil
}

func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) enabled(level LogLevel) bool {
	return level >= l.level
}

func (l *Logger) Debug(v ...any) {
	if l.enabled(DEBUG) {
		l.debugLogger.Println(v...)
	}
}

func (l *Logger) Debugf(format string, v ...any) {
	if l.enabled(DEBUG) {
		l.debugLogger.Printf(format, v...)
	}
}

func (l *Logger) Info(v ...any) {
	if l.enabled(INFO) {
		l.infoLogger.Println(v...)
	}
}

func (l *Logger) Infof(format string, v ...any) {
	if l.enabled(INFO) {
		l.infoLogger.Printf(format, v...)
	}
}

func (l *Logger) Warn(v ...any) {
	if l.enabled(WARN) {
		l.warnLogger.Println(v...)
	}
}

func (l *Logger) Warnf(format string, v ...any) {
	if l.enabled(WARN) {
		l.warnLogger.Printf(format, v...)
	}
}

func (l *Logger) Error(v ...any) {
	if l.enabled(ERROR) {
		l.errorLogger.Println(v...)
	}
}

func (l *Logger) Errorf(format string, v ...any) {
	if l.enabled(ERROR) {
		l.errorLogger.Printf(format, v...)
	}
}

func (l *Logger) Critical(v ...any) {
	l.criticalLogger.Println(v...)
}

func (l *Logger) Criticalf(format string, v ...any) {
	l.criticalLogger.Printf(format, v...)
}
