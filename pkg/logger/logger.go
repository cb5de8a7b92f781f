package logger

import (
	"go.uber.org/zap"
)

var log *zap.Logger

// SetLogger stores the package-level logger instance.
func SetLogger(l *zap.Logger) {
	log = l
}

// L returns the current logger, or nil if none has been initialized.
func L() *zap.Logger {
	return log
}

// GetLogger returns the global logger, initializing a fallback if needed.
func GetLogger() *zap.Logger {
	l := L()
	if l == nil {
		fallback := NewFallbackLogger()
		zap.ReplaceGlobals(fallback)
		SetLogger(fallback)
		return fallback
	}
	return l
}

// Sync flushes any buffered log entries. Should be called before the application exits.
func Sync() error {
	if log != nil {
		return log.Sync()
	}
	return nil
}

// SafeSync flushes logs, swallowing the EINVAL zap returns for console sinks.
func SafeSync() {
	_ = Sync()
}
