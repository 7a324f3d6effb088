package logger

import "sync"

// Named loggers let a host configure one component differently from the
// rest, say debug for oidc while everything else stays at info.
var (
	namedMu sync.RWMutex
	named   = map[string]*Logger{}
)

// Register binds a logger to a component name for later Get calls.
func Register(name string, l *Logger) {
	namedMu.Lock()
	named[name] = l
	namedMu.Unlock()
}

// Get returns the logger registered under name. Unregistered names fall
// back to the process-wide logger tagged with the name, so a component
// always gets something usable.
func Get(name string) *Logger {
	namedMu.RLock()
	l, ok := named[name]
	namedMu.RUnlock()
	if ok {
		return l
	}
	return Global().WithComponent(name)
}
