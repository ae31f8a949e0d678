package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Module is the interface that all directive modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the directive handlers available to one compiler instance.
// It is populated once at construction and only read afterwards.
type Registry struct {
	handlers map[string]Handler
}

// New creates a registry and registers the given modules into it.
func New(modules ...Module) *Registry {
	r := &Registry{handlers: make(map[string]Handler)}
	for _, mod := range modules {
		mod.Register(r)
	}
	return r
}

// RegisterHandler binds a directive name to its handler.
func (r *Registry) RegisterHandler(name string, handler Handler) {
	key := strings.ToLower(name)
	if _, exists := r.handlers[key]; exists {
		panic(fmt.Sprintf("directive handler with name '%s' already registered", name))
	}
	if handler == nil {
		panic(fmt.Sprintf("directive handler '%s' is nil", name))
	}
	slog.Debug("Registering directive handler.", "name", key)
	r.handlers[key] = handler
}

// Lookup returns the handler for a directive name, if any.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[strings.ToLower(name)]
	return h, ok
}

// Names returns the registered directive names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
