package invoke

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bytedance/gg/gmap"

	"github.com/agentfleet/fleet/internal/agent"
)

// Registry maps providers to their invokers. It is populated once at
// startup and read concurrently by the scheduler and the CLI.
type Registry struct {
	invokers map[agent.Provider]Invoker
	mu       sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		invokers: make(map[agent.Provider]Invoker),
	}
}

func (r *Registry) Register(p agent.Provider, inv Invoker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invokers[p] = inv
}

func (r *Registry) Lookup(p agent.Provider) (Invoker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.invokers[p]
	return inv, ok
}

func (r *Registry) Providers() []agent.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := gmap.Keys(r.invokers)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Validate checks that every provider the model catalog advertises has
// a registered invoker, so a stored agent can never dispatch into a
// missing entry at run time.
func (r *Registry) Validate(catalog agent.Catalog) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range gmap.Keys(catalog) {
		if _, ok := r.invokers[p]; !ok {
			return fmt.Errorf("no invoker registered for provider: %s", p)
		}
	}
	return nil
}
