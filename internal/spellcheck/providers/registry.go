package providers

import (
	"context"
	"log"
	"sync"

	"github.com/mrlokans/scribe/internal/spellcheck"
)

// priority orders engines from most to least capable. Best returns the
// first one that is actually available.
var priority = []string{"neural", "aspell", "fuzzy", "wordlist"}

// ProviderStatus describes one engine for health reporting.
type ProviderStatus struct {
	Available   bool     `json:"available"`
	Initialized bool     `json:"initialized"`
	Languages   []string `json:"languages"`
}

// Registry owns the known spell check engines. Construction is lazy and
// initialization failures are tolerated: a registry with zero available
// providers is a valid, if degraded, state.
type Registry struct {
	mu             sync.RWMutex
	providers      map[string]spellcheck.Provider
	initialized    map[string]bool
	neuralEndpoint string
	language       string
}

// NewRegistry creates a registry. neuralEndpoint may be empty, which
// leaves the neural engine permanently unavailable.
func NewRegistry(neuralEndpoint, language string) *Registry {
	if language == "" {
		language = "en"
	}
	return &Registry{
		providers:      make(map[string]spellcheck.Provider),
		initialized:    make(map[string]bool),
		neuralEndpoint: neuralEndpoint,
		language:       language,
	}
}

func (r *Registry) construct(name string) spellcheck.Provider {
	switch name {
	case "neural":
		return NewNeuralProvider(r.neuralEndpoint)
	case "aspell":
		return NewAspellProvider(r.language)
	case "fuzzy":
		return NewFuzzyProvider()
	case "wordlist":
		return NewWordlistProvider()
	}
	return nil
}

// InitializeAll attempts to initialize every known engine and reports
// per-engine success. It never fails as a whole.
func (r *Registry) InitializeAll(ctx context.Context) map[string]bool {
	results := make(map[string]bool, len(priority))
	for _, name := range priority {
		provider := r.Get(name)
		if provider == nil {
			results[name] = false
			continue
		}

		r.mu.RLock()
		done := r.initialized[name]
		r.mu.RUnlock()
		if done {
			results[name] = provider.Available()
			continue
		}

		ok := provider.Initialize(ctx)
		r.mu.Lock()
		r.initialized[name] = true
		r.mu.Unlock()

		if ok {
			log.Printf("Spell check engine ready: %s", name)
		} else {
			log.Printf("Spell check engine unavailable: %s", name)
		}
		results[name] = ok
	}
	return results
}

// Get returns the named engine, constructing it on first use, or nil for
// an unknown name. Availability is not guaranteed.
func (r *Registry) Get(name string) spellcheck.Provider {
	r.mu.RLock()
	provider, ok := r.providers[name]
	r.mu.RUnlock()
	if ok {
		return provider
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if provider, ok := r.providers[name]; ok {
		return provider
	}
	provider = r.construct(name)
	if provider != nil {
		r.providers[name] = provider
	}
	return provider
}

// Best returns the highest-priority available engine, or nil when none
// is available.
func (r *Registry) Best() spellcheck.Provider {
	for _, name := range priority {
		r.mu.RLock()
		provider, ok := r.providers[name]
		r.mu.RUnlock()
		if ok && provider.Available() {
			return provider
		}
	}
	return nil
}

// Names returns the known engine names in priority order.
func (r *Registry) Names() []string {
	names := make([]string, len(priority))
	copy(names, priority)
	return names
}

// Status reports every known engine for health checks.
func (r *Registry) Status() map[string]ProviderStatus {
	status := make(map[string]ProviderStatus, len(priority))
	for _, name := range priority {
		r.mu.RLock()
		provider, constructed := r.providers[name]
		initialized := r.initialized[name]
		r.mu.RUnlock()

		s := ProviderStatus{Initialized: initialized}
		if constructed {
			s.Available = provider.Available()
			s.Languages = provider.Languages()
		}
		status[name] = s
	}
	return status
}

// CloseAll shuts down every constructed engine. Individual close errors
// are logged and do not stop the rest.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, provider := range r.providers {
		if err := provider.Close(); err != nil {
			log.Printf("Failed to close spell check engine %s: %v", name, err)
		}
	}
}
