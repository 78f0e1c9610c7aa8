package basemap

import (
	"slices"
	"sync"
)

// Registry maps basemap names to sources and tracks the active one.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]Source
	order   []string
	active  string
}

func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]Source),
	}
}

// Register adds src or replaces the source of the same name. A replaced
// source keeps its position in Names.
func (r *Registry) Register(src Source) error {
	if err := src.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sources[src.Name]; !exists {
		r.order = append(r.order, src.Name)
	}
	r.sources[src.Name] = src
	return nil
}

// ResolveURL returns the fetch URL of addr on src.
func (r *Registry) ResolveURL(src Source, addr TileAddress) string {
	return src.TileURL(addr)
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

func (r *Registry) Lookup(name string) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src, ok := r.sources[name]
	return src, ok
}

// Activate makes name the active source. On failure the active source is
// left unchanged.
func (r *Registry) Activate(name string) (Source, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	src, ok := r.sources[name]
	if !ok {
		return Source{}, &UnknownSourceError{Name: name}
	}
	r.active = name
	return src, nil
}

// Active returns the active source, if any has been activated.
func (r *Registry) Active() (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.active == "" {
		return Source{}, false
	}
	src, ok := r.sources[r.active]
	return src, ok
}
