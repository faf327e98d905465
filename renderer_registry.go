// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fx

import (
	"errors"
	"sort"
	"sync"
)

// RendererFactory creates a renderer instance for a registered backend.
// Implementations should validate their environment and return descriptive
// errors.
type RendererFactory func() (Renderer, error)

// RendererEntry represents a registered renderer backend.
type RendererEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Standard priorities:
	//   - 100: GPU backends
	//   - 10: pure software backends
	Priority int

	// Factory creates renderer instances.
	Factory RendererFactory

	// Available reports if the backend is usable on this system.
	Available func() bool
}

// globalRenderers is the default registry.
var globalRenderers = &RendererRegistry{}

// RendererRegistry manages registered renderer backends.
//
// The registry lets backends register themselves without requiring changes
// to the core library. A blank import is enough to make one selectable:
//
//	import _ "github.com/gogpu/fx/backend/wgpu"
//
// Example usage:
//
//	r, err := fx.NewRendererByName("wgpu")
//	// or auto-select best available:
//	r, err := fx.NewRenderer("")
type RendererRegistry struct {
	mu      sync.RWMutex
	entries map[string]*RendererEntry
}

// NewRendererRegistry creates a new empty registry.
// Most code should use the global registry via RegisterRenderer and
// NewRenderer.
func NewRendererRegistry() *RendererRegistry {
	return &RendererRegistry{
		entries: make(map[string]*RendererEntry),
	}
}

// RegisterRenderer adds a backend to the global registry.
//
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func RegisterRenderer(name string, priority int, factory RendererFactory, available func() bool) {
	globalRenderers.Register(name, priority, factory, available)
}

// UnregisterRenderer removes a backend from the global registry.
func UnregisterRenderer(name string) {
	globalRenderers.Unregister(name)
}

// RendererNames returns all registered backend names sorted by priority
// (highest first).
func RendererNames() []string {
	return globalRenderers.List()
}

// AvailableRenderers returns names of all available backends sorted by
// priority.
func AvailableRenderers() []string {
	return globalRenderers.Available()
}

// RendererAvailable reports whether a named backend is registered and
// available on this system.
func RendererAvailable(name string) bool {
	entry, ok := globalRenderers.Get(name)
	return ok && entry.Available()
}

// NewRenderer creates a renderer by backend name. The empty name selects the
// highest-priority available backend.
func NewRenderer(name string) (Renderer, error) {
	if name == "" {
		return globalRenderers.New()
	}
	return globalRenderers.NewByName(name)
}

// NewRendererByName creates a renderer using a specific named backend.
func NewRendererByName(name string) (Renderer, error) {
	return globalRenderers.NewByName(name)
}

// Register adds a backend to this registry.
func (r *RendererRegistry) Register(name string, priority int, factory RendererFactory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*RendererEntry)
	}

	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &RendererEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *RendererRegistry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *RendererRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available backends sorted by priority.
func (r *RendererRegistry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns information about a specific backend.
func (r *RendererRegistry) Get(name string) (*RendererEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}

	// Return a copy to prevent modification
	entryCopy := *entry
	return &entryCopy, true
}

// New creates a renderer using the best available backend.
func (r *RendererRegistry) New() (Renderer, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoRendererAvailable
	}

	// Try each available backend in priority order
	var lastErr error
	for _, name := range available {
		renderer, err := r.NewByName(name)
		if err == nil {
			return renderer, nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrNoRendererAvailable
}

// NewByName creates a renderer using a specific backend.
func (r *RendererRegistry) NewByName(name string) (Renderer, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &RendererNotFoundError{Name: name}
	}

	if !entry.Available() {
		return nil, &RendererUnavailableError{Name: name}
	}

	return entry.Factory()
}

// sortedNames returns backend names sorted by priority (highest first), ties
// broken by name for stable listings. If onlyAvailable is true, filters to
// available backends only. Must be called with lock held.
func (r *RendererRegistry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	type entry struct {
		name     string
		priority int
	}

	entries := make([]entry, 0, len(r.entries))
	for name, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, entry{name: name, priority: e.Priority})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Errors.
var (
	// ErrNoRendererAvailable is returned when no renderer backends are
	// registered or available on the current system.
	ErrNoRendererAvailable = errors.New("fx: no renderer backend available")
)

// RendererNotFoundError indicates a named backend is not registered.
type RendererNotFoundError struct {
	Name string
}

func (e *RendererNotFoundError) Error() string {
	return "fx: renderer backend not found: " + e.Name
}

// RendererUnavailableError indicates a backend exists but is not available.
type RendererUnavailableError struct {
	Name string
}

func (e *RendererUnavailableError) Error() string {
	return "fx: renderer backend unavailable: " + e.Name
}
