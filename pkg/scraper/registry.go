package scraper

import (
	"errors"
	"fmt"
	"sort"

	"github.com/czemtsop/data-jobs/internal/config"
)

// Registered source names.
const (
	SourceRemoteOK = "remoteok"
	SourceJobicy   = "jobicy"
	SourceJooble   = "jooble"
)

// ErrNotRegistered is returned when a source name has no known adapter.
var ErrNotRegistered = errors.New("scraper not registered")

// Factory builds a Scraper from its source name and configuration block.
// Construction is pure: no network or filesystem access.
type Factory func(name string, cfg config.SourceConfig) (Scraper, error)

// Registry maps source names to adapter constructors, resolved at startup.
// Adding a source means registering one more entry.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a registry with every built-in adapter registered.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register(SourceRemoteOK, NewRemoteOK)
	r.Register(SourceJobicy, NewJobicy)
	r.Register(SourceJooble, NewJooble)
	return r
}

// Register adds or replaces the factory for a source name.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Create builds the adapter for name, or fails with ErrNotRegistered.
func (r *Registry) Create(name string, cfg config.SourceConfig) (Scraper, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotRegistered)
	}
	return f(name, cfg)
}

// Names returns every registered source name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
