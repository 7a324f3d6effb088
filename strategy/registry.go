package strategy

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds named Strategy instances behind a lock so hosts can
// wire several authentication schemes (OIDC, API key, etc.) and pick
// one per route or per request.
//
// Usage:
//
//	reg := strategy.NewRegistry()
//	reg.Register("oidc", oidcStrategy)
//	reg.SetDefault("oidc")
//
//	// In handler setup
//	s, _ := reg.Default()
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Strategy
	primary string
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Strategy)}
}

// Register adds s under the given name, replacing any previous entry.
// The first name ever registered becomes the default until SetDefault
// says otherwise.
func (r *Registry) Register(name string, s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.primary == "" {
		r.primary = name
	}
	r.byName[name] = s
}

// SetDefault picks which registered strategy Default returns.
// The name must already be registered.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; !ok {
		return fmt.Errorf("strategy: cannot default to unknown strategy %q", name)
	}
	r.primary = name
	return nil
}

// Get looks up a strategy by name. The second return reports whether
// the name was registered.
func (r *Registry) Get(name string) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byName[name]
	return s, ok
}

// MustGet is Get for wiring code that treats a missing name as a
// programming error. It panics when the name is not registered.
func (r *Registry) MustGet(name string) Strategy {
	s, ok := r.Get(name)
	if !ok {
		panic(fmt.Sprintf("strategy: no strategy named %q", name))
	}
	return s
}

// Default returns the current default strategy, or false when nothing
// has been registered yet.
func (r *Registry) Default() (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.primary == "" {
		return nil, false
	}
	s, ok := r.byName[r.primary]
	return s, ok
}

// Names lists the registered strategy names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
