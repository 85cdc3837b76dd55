package agent

import (
	"context"
	"sync"

	"github.com/tandemchat/tandem/internal/domain"
)

// Factory builds the agent behind a selector. It is called at most once per
// selector for the lifetime of the registry.
type Factory func(ctx context.Context, selector string) (Agent, error)

// Registry hands out one shared agent instance per selector, constructing
// them lazily. First access from concurrent requests is safe: construction
// happens under the lock and later callers reuse the cached instance.
type Registry struct {
	mu      sync.Mutex
	agents  map[string]Agent
	factory Factory
}

func NewRegistry(factory Factory) *Registry {
	return &Registry{
		agents:  make(map[string]Agent),
		factory: factory,
	}
}

func (r *Registry) Get(ctx context.Context, selector string) (Agent, error) {
	if selector != TypeChat && selector != TypeSearch {
		return nil, domain.ErrUnknownAgent
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.agents[selector]; ok {
		return a, nil
	}

	a, err := r.factory(ctx, selector)
	if err != nil {
		return nil, err
	}
	r.agents[selector] = a
	return a, nil
}
