package credential

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/agentfleet/fleet/internal/agent"
)

// Store holds one API secret per provider in a YAML file with owner-only
// permissions. This is the runtime's stand-in for the user's key vault:
// plain local storage, no encryption, matching the single-user risk
// profile of the agent store next to it.
type Store struct {
	path    string
	secrets map[agent.Provider]string
	mu      sync.RWMutex
}

// NewStore creates a credential store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{
		path:    path,
		secrets: make(map[agent.Provider]string),
	}
}

// Load reads persisted credentials. Safe to call on a missing file.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read credentials file: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse credentials yaml: %w", err)
	}

	s.secrets = make(map[agent.Provider]string, len(raw))
	for k, v := range raw {
		p := agent.Provider(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if p == "" || v == "" {
			continue
		}
		s.secrets[p] = v
	}
	return nil
}

// Save writes all credentials to disk with 0600 permissions.
func (s *Store) Save() error {
	s.mu.RLock()
	raw := make(map[string]string, len(s.secrets))
	for k, v := range s.secrets {
		raw[k.String()] = v
	}
	s.mu.RUnlock()

	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create credentials directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write tmp credentials: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename credentials: %w", err)
	}
	return nil
}

// Get returns the secret for a provider, if one is set.
func (s *Store) Get(p agent.Provider) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	secret, ok := s.secrets[p]
	return secret, ok
}

// Set stores a secret for a provider, replacing any previous one.
func (s *Store) Set(p agent.Provider, secret string) error {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return fmt.Errorf("secret for %s cannot be empty", p)
	}
	s.mu.Lock()
	s.secrets[p] = secret
	s.mu.Unlock()
	return nil
}

// Clear removes a provider's secret. Clearing an absent key is a no-op.
func (s *Store) Clear(p agent.Provider) {
	s.mu.Lock()
	delete(s.secrets, p)
	s.mu.Unlock()
}

// Providers lists the providers that currently have a secret, sorted.
func (s *Store) Providers() []agent.Provider {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]agent.Provider, 0, len(s.secrets))
	for p := range s.secrets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
