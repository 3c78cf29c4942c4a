package repositories

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/notesync/internal/domain/entities"
	domainRepos "github.com/rios0rios0/notesync/internal/domain/repositories"
)

// ContentFactory creates a ContentRepository authenticated with the given token.
type ContentFactory func(token string) domainRepos.ContentRepository

// ContentRegistry manages the remote store implementations by provider name.
type ContentRegistry struct {
	factories map[string]ContentFactory
}

// NewContentRegistry creates an empty content registry.
func NewContentRegistry() *ContentRegistry {
	return &ContentRegistry{
		factories: make(map[string]ContentFactory),
	}
}

// Register adds a factory under the given name (e.g. "github").
func (r *ContentRegistry) Register(name string, factory ContentFactory) {
	r.factories[name] = factory
}

// Get returns a client for the named provider. An empty token is rejected
// before any request is attempted.
func (r *ContentRegistry) Get(name, token string) (domainRepos.ContentRepository, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider type: %q", name)
	}
	if token == "" {
		return nil, entities.NewSyncError(entities.KindAuth, "connect", "", fmt.Errorf("no token for provider %q", name))
	}
	return factory(token), nil
}

// Names returns the registered provider names, sorted.
func (r *ContentRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
