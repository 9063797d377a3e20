package adapter

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Factory builds one adapter instance. A nil logger is replaced with a
// discard logger by the adapter constructor.
type Factory func(*slog.Logger) Adapter

// adapterRegistry maps engine names to factories. Engine packages fill it
// from init(), so registration races only with itself, never with lookups
// from command code.
type adapterRegistry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

var defaultRegistry = &adapterRegistry{factories: make(map[string]Factory)}

func (r *adapterRegistry) register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

func (r *adapterRegistry) lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

func (r *adapterRegistry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register installs the factory for an engine name. Engine packages call
// this from init(); importing an engine package for effect is how a build
// opts into that engine.
func Register(name string, factory Factory) {
	defaultRegistry.register(name, factory)
}

// Get returns the factory registered under name.
func Get(name string) (Factory, bool) {
	return defaultRegistry.lookup(name)
}

// NewAdapter builds the adapter selected by cfg.Type. The returned adapter
// is not yet connected; call Connect with the same config.
func NewAdapter(cfg Config, logger *slog.Logger) (Adapter, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("adapter type not specified")
	}

	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, &UnknownAdapterError{
			Type:      cfg.Type,
			Available: ListAdapters(),
		}
	}
	return factory(logger), nil
}

// ListAdapters returns the registered engine names in sorted order.
func ListAdapters() []string {
	return defaultRegistry.names()
}

// IsRegistered reports whether an engine name has a factory.
func IsRegistered(name string) bool {
	_, ok := Get(name)
	return ok
}

// UnknownAdapterError reports a config type with no registered factory,
// carrying the names that would have worked.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unknown adapter type %q\nAvailable adapters: %v\nHint: Check the connection type in your profile or leapdb.yaml", e.Type, e.Available)
}
