package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/agentfleet/fleet/internal/agent"
)

// Store provides thread-safe persistence of the agent collection to a
// JSON file. Insertion order is preserved across save/load: the file
// holds a plain array and new agents are prepended, so a reloaded list
// reads exactly as it was displayed. All writes are whole-record
// replace-by-id; concurrent writers resolve by last-write-wins.
type Store struct {
	path   string
	agents []agent.Agent
	mu     sync.RWMutex
}

// NewStore creates a Store backed by the given file path.
// If the file does not exist it will be created on the first Save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads persisted agents from disk. A missing file seeds the
// collection with the bundled example agents (first-run experience).
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.agents = seedAgents()
			return nil
		}
		return fmt.Errorf("read agent store: %w", err)
	}
	if len(data) == 0 {
		s.agents = nil
		return nil
	}

	var agents []agent.Agent
	if err := sonic.Unmarshal(data, &agents); err != nil {
		return fmt.Errorf("unmarshal agent store: %w", err)
	}
	s.agents = agents
	return nil
}

// Save writes the collection to disk atomically (tmp + rename).
func (s *Store) Save() error {
	s.mu.RLock()
	agents := make([]agent.Agent, len(s.agents))
	copy(agents, s.agents)
	s.mu.RUnlock()

	data, err := sonic.Marshal(agents)
	if err != nil {
		return fmt.Errorf("marshal agent store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tmp store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename store: %w", err)
	}
	return nil
}

// Add prepends a new agent. Returns an error if the ID already exists.
func (s *Store) Add(a agent.Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(a.ID) >= 0 {
		return fmt.Errorf("agent already exists: %s", a.ID)
	}
	s.agents = append([]agent.Agent{a}, s.agents...)
	return nil
}

// Update replaces an existing agent by ID. Updating an ID that is no
// longer present is a no-op: a completed run writing back after the
// user deleted the agent simply disappears.
func (s *Store) Update(a agent.Agent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(a.ID); i >= 0 {
		s.agents[i] = a
	}
}

// Remove deletes an agent by ID. Removing a missing ID is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.agents = append(s.agents[:i], s.agents[i+1:]...)
	}
}

// Get returns an agent by ID.
func (s *Store) Get(id string) (agent.Agent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.agents[i], true
	}
	return agent.Agent{}, false
}

// List returns all agents in display order.
func (s *Store) List() []agent.Agent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]agent.Agent, len(s.agents))
	copy(out, s.agents)
	return out
}

// ListDue returns the agents the poll loop should trigger at now:
// not Running, not Paused, non-manual rule, next run instant arrived.
func (s *Store) ListDue(now time.Time) []agent.Agent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var due []agent.Agent
	for _, a := range s.agents {
		if a.Schedulable() && a.DueAt(now) {
			due = append(due, a)
		}
	}
	return due
}

// Len returns the number of stored agents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.agents)
}

// indexOf returns the position of id, or -1. Callers hold s.mu.
func (s *Store) indexOf(id string) int {
	for i := range s.agents {
		if s.agents[i].ID == id {
			return i
		}
	}
	return -1
}
