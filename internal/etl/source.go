package etl

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
)

// ── Source ──────────────────────────────────────────────────
// A Source retrieves a whole tabular dataset from one kind of location.
// Implementations live in etl/sources/, one file per source type.

// SourceSpec describes a source type and the URL schemes it serves.
type SourceSpec struct {
	Type    string   `json:"type"`
	Label   string   `json:"label"`
	Schemes []string `json:"schemes"`
}

// Source is the interface every data source must implement.
type Source interface {
	// Spec returns metadata about this source type.
	Spec() SourceSpec

	// Read fetches and parses every record at location.
	// Failures are reported as *FetchError.
	Read(ctx context.Context, location string) ([]Record, error)
}

// Fetcher is what the dataset layer depends on.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]Record, error)
}

// ── Source Registry ────────────────────────────────────────

// Registry dispatches fetches to the source registered for a URL scheme.
type Registry struct {
	mu       sync.RWMutex
	byType   map[string]Source
	byScheme map[string]Source
}

// NewRegistry returns a registry holding the given sources.
func NewRegistry(sources ...Source) *Registry {
	r := &Registry{
		byType:   map[string]Source{},
		byScheme: map[string]Source{},
	}
	for _, s := range sources {
		r.Register(s)
	}
	return r
}

// Register adds a source. A later source wins a scheme collision.
func (r *Registry) Register(s Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	spec := s.Spec()
	r.byType[spec.Type] = s
	for _, scheme := range spec.Schemes {
		r.byScheme[strings.ToLower(scheme)] = s
	}
}

// GetSource returns a registered source by type, or an error if not found.
func (r *Registry) GetSource(typ string) (Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byType[typ]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %q", typ)
	}
	return s, nil
}

// SourceFor returns the source serving location's scheme. A location
// without a scheme is treated as a filesystem path.
func (r *Registry) SourceFor(location string) (Source, error) {
	scheme := SchemeOf(location)
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byScheme[scheme]
	if !ok {
		return nil, fmt.Errorf("no source registered for scheme %q", scheme)
	}
	return s, nil
}

// ListSources returns the specs of all registered sources, sorted by type.
func (r *Registry) ListSources() []SourceSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	specs := make([]SourceSpec, 0, len(r.byType))
	for _, s := range r.byType {
		specs = append(specs, s.Spec())
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Type < specs[j].Type })
	return specs
}

// Fetch reads location through the matching source.
func (r *Registry) Fetch(ctx context.Context, location string) ([]Record, error) {
	s, err := r.SourceFor(location)
	if err != nil {
		return nil, &FetchError{URL: location, Primary: err}
	}
	return s.Read(ctx, location)
}

// SchemeOf returns the lower-cased URL scheme of location, or "file" when
// location has none (including Windows drive letters).
func SchemeOf(location string) string {
	u, err := url.Parse(location)
	if err != nil || len(u.Scheme) <= 1 {
		return "file"
	}
	return strings.ToLower(u.Scheme)
}
