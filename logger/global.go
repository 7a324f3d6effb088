package logger

import (
	"context"
	"sync"
)

var (
	globalMu sync.RWMutex
	global   *Logger
)

// Init installs the process-wide logger from cfg. Hosts call it once at
// startup after loading configuration; until then the package functions
// write through a console default.
func Init(cfg *Config) {
	cfg.ApplyDefaults()
	SetGlobal(New(cfg, cfg.ServiceName))
}

// SetGlobal replaces the process-wide logger.
func SetGlobal(l *Logger) {
	globalMu.Lock()
	global = l
	globalMu.Unlock()
}

// Global returns the process-wide logger, installing a console default on
// first use.
func Global() *Logger {
	globalMu.RLock()
	l := global
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global = NewDefault("authflow")
	}
	return global
}

// WithComponent derives a component-tagged logger from the process-wide
// logger.
func WithComponent(name string) *Logger {
	return Global().WithComponent(name)
}

// WithContext derives a context-stamped logger from the process-wide
// logger.
func WithContext(ctx context.Context) *Logger {
	return Global().WithContext(ctx)
}

// Debug writes through the process-wide logger.
func Debug(msg string, fields ...map[string]any) {
	Global().Debug(msg, fields...)
}

// Info writes through the process-wide logger.
func Info(msg string, fields ...map[string]any) {
	Global().Info(msg, fields...)
}

// Warn writes through the process-wide logger.
func Warn(msg string, fields ...map[string]any) {
	Global().Warn(msg, fields...)
}

// Error writes through the process-wide logger.
func Error(msg string, fields ...map[string]any) {
	Global().Error(msg, fields...)
}

// Fatal writes through the process-wide logger and exits the process.
func Fatal(msg string, fields ...map[string]any) {
	Global().Fatal(msg, fields...)
}
