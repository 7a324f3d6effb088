package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a leveled structured logger bound to a service name. It wraps
// zerolog; construct one through New or take the package global. Each
// Logger carries its own level, so two components can log at different
// severities in the same process.
type Logger struct {
	zl      zerolog.Logger
	service string
}

// New builds a Logger from cfg. An unparseable level degrades to info
// instead of failing: logging has to come up even when its configuration
// is wrong, and Validate reports the problem separately.
func New(cfg *Config, service string) *Logger {
	return newLogger(cfg, service, nil)
}

// NewDefault returns a console logger at info level, the setup in effect
// until the host installs its own through Init.
func NewDefault(service string) *Logger {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return New(cfg, service)
}

// newLogger is the real constructor. Tests pass w to capture output; a nil
// w resolves from cfg.Output.
func newLogger(cfg *Config, service string, w io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if w == nil {
		if cfg.Output == "stderr" {
			w = os.Stderr
		} else {
			w = os.Stdout
		}
	}
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: cfg.NoColor}
	}

	zc := zerolog.New(w).Level(level).With().Timestamp()
	if service != "" {
		zc = zc.Str(FieldService, service)
	}
	if cfg.Caller {
		zc = zc.Caller()
	}

	return &Logger{zl: zc.Logger(), service: service}
}

// Zerolog exposes the underlying zerolog.Logger for call sites that need
// an API this wrapper does not carry.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

// WithComponent tags every entry with a component name. The flow packages
// each derive one of these so discovery, token-exchange, and userinfo
// diagnostics can be told apart.
func (l *Logger) WithComponent(name string) *Logger {
	return l.derive(l.zl.With().Str(FieldComponent, name).Logger())
}

// WithFields pre-binds fields onto every entry the returned logger writes.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	zc := l.zl.With()
	for k, v := range fields {
		zc = zc.Interface(k, v)
	}
	return l.derive(zc.Logger())
}

// WithError pre-binds an error field.
func (l *Logger) WithError(err error) *Logger {
	return l.derive(l.zl.With().Err(err).Logger())
}

func (l *Logger) derive(zl zerolog.Logger) *Logger {
	return &Logger{zl: zl, service: l.service}
}

// Debug writes a debug entry with optional field maps.
func (l *Logger) Debug(msg string, fields ...map[string]any) {
	l.emit(l.zl.Debug(), msg, fields)
}

// Info writes an info entry with optional field maps.
func (l *Logger) Info(msg string, fields ...map[string]any) {
	l.emit(l.zl.Info(), msg, fields)
}

// Warn writes a warning entry with optional field maps.
func (l *Logger) Warn(msg string, fields ...map[string]any) {
	l.emit(l.zl.Warn(), msg, fields)
}

// Error writes an error entry with optional field maps.
func (l *Logger) Error(msg string, fields ...map[string]any) {
	l.emit(l.zl.Error(), msg, fields)
}

// Fatal writes the entry and exits the process.
func (l *Logger) Fatal(msg string, fields ...map[string]any) {
	l.emit(l.zl.Fatal(), msg, fields)
}

func (l *Logger) emit(ev *zerolog.Event, msg string, fields []map[string]any) {
	for _, fm := range fields {
		for k, v := range fm {
			ev = ev.Interface(k, v)
		}
	}
	ev.Msg(msg)
}
