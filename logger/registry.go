package logger

import (
	"sync"
)

// registry is the global named-logger registry.
var registry = &loggerRegistry{
	loggers: make(map[string]*Logger),
}

type loggerRegistry struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}

// Register stores a named logger in the registry.
func Register(name string, l *Logger) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.loggers[name] = l
}

// Get retrieves a named logger. If the name is not registered it returns the
// global logger tagged with the requested component name.
func Get(name string) *Logger {
	registry.mu.RLock()
	l, ok := registry.loggers[name]
	registry.mu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// Reset drops every registered logger so later Get calls derive from the
// current global logger again. Init calls it.
func Reset() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.loggers = make(map[string]*Logger)
}
