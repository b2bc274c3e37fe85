package credential

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/agentfleet/fleet/internal/agent"
)

func TestStore_SetGetClear(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "credentials.yaml"))

	if _, ok := s.Get(agent.ProviderGoogle); ok {
		t.Fatal("unset provider should report no secret")
	}

	if err := s.Set(agent.ProviderGoogle, "key-123"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(agent.ProviderOpenAI, "  "); err == nil {
		t.Fatal("blank secret should be rejected")
	}

	secret, ok := s.Get(agent.ProviderGoogle)
	if !ok || secret != "key-123" {
		t.Fatalf("Get: %q, %v", secret, ok)
	}

	s.Clear(agent.ProviderGoogle)
	if _, ok := s.Get(agent.ProviderGoogle); ok {
		t.Fatal("cleared provider should report no secret")
	}
	s.Clear(agent.ProviderGoogle) // double clear is a no-op
}

func TestStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")

	s1 := NewStore(path)
	_ = s1.Set(agent.ProviderGoogle, "g-key")
	_ = s1.Set(agent.ProviderAnthropic, "a-key")
	if err := s1.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("credentials file mode = %o, want 0600", perm)
		}
	}

	s2 := NewStore(path)
	if err := s2.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if secret, ok := s2.Get(agent.ProviderAnthropic); !ok || secret != "a-key" {
		t.Fatalf("reloaded secret: %q, %v", secret, ok)
	}
	providers := s2.Providers()
	if len(providers) != 2 || providers[0] != agent.ProviderAnthropic || providers[1] != agent.ProviderGoogle {
		t.Fatalf("Providers: %v", providers)
	}
}

func TestStore_Load_MissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope.yaml"))
	if err := s.Load(); err != nil {
		t.Fatalf("Load on missing file should not error: %v", err)
	}
}
