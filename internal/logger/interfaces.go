package logger

import "io"

// LoggerInterface defines the interface for logging
type LoggerInterface interface {
	Debug(v ...any)
	Debugf(format string, v ...any)
	Info(v ...any)
	Infof(format string, v ...any)
	Warn(v ...any)
	Warnf(format string, v ...any)
	Error(v ...any)
	Errorf(format string, v ...any)
	Critical(v ...any)
	Criticalf(format string, v ...any)
	Close() error
}

// NewLogger creates a new logger instance
func NewLogger(opts Options) (LoggerInterface, error) {
	logger := &Logger{}
	if err := logger.init(opts); err != nil {
		return nil, err
	}
	return logger, nil
}

// NewWriterLogger creates a logger that writes to w
func NewWriterLogger(w io.Writer, level LogLevel) LoggerInterface {
	return newLogger(w, level)
}

// Discard returns a logger that drops everything
func Discard() LoggerInterface {
	return newLogger(io.Discard, CRITICAL)
}
