package dispatcher

import (
	"sort"
	"sync"

	"github.com/dshills/vimdent/internal/dispatcher/handler"
)

// Registry maps exact command names to handlers. An alias is a second
// name for a command; it resolves to its target before routing.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]handler.Handler
	aliases  map[string]string
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]handler.Handler),
		aliases:  make(map[string]string),
	}
}

// Register sets the handler for a command name, replacing any previous one.
func (r *Registry) Register(name string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Unregister removes the handler for a command name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, name)
}

// Alias makes alias another name for target.
func (r *Registry) Alias(alias, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = target
}

// Resolve returns the command an alias stands for, or name itself.
func (r *Registry) Resolve(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if target, ok := r.aliases[name]; ok {
		return target
	}
	return name
}

// Get returns the handler registered for name after alias resolution.
// Returns nil if no handler is registered.
func (r *Registry) Get(name string) handler.Handler {
	name = r.Resolve(name)

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[name]
}

// Has returns true if a handler is registered for the name.
func (r *Registry) Has(name string) bool {
	return r.Get(name) != nil
}

// List returns all registered command names and aliases, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers)+len(r.aliases))
	for name := range r.handlers {
		names = append(names, name)
	}
	for alias := range r.aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// Aliases returns a copy of the alias table.
func (r *Registry) Aliases() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}
