package invoke

import (
	"context"
	"errors"
	"testing"

	"github.com/agentfleet/fleet/internal/agent"
)

func TestDedupeSources(t *testing.T) {
	in := []agent.Source{
		{URI: "https://a.example", Title: "A"},
		{URI: "https://b.example"},
		{URI: "https://a.example", Title: "A duplicate"},
		{URI: "", Title: "no uri"},
	}

	out := DedupeSources(in)
	if len(out) != 2 {
		t.Fatalf("DedupeSources: %v", out)
	}
	if out[0].URI != "https://a.example" || out[0].Title != "A" {
		t.Errorf("first occurrence should win: %+v", out[0])
	}
	if out[1].Title != "https://b.example" {
		t.Errorf("missing title should fall back to URI: %+v", out[1])
	}

	if DedupeSources(nil) != nil {
		t.Error("nil input should stay nil")
	}
}

func TestRegistry_Validate(t *testing.T) {
	r := NewRegistry()
	for _, p := range agent.SupportedProviders {
		r.Register(p, Unsupported(p))
	}
	if err := r.Validate(agent.DefaultCatalog()); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	partial := NewRegistry()
	partial.Register(agent.ProviderGoogle, Unsupported(agent.ProviderGoogle))
	if err := partial.Validate(agent.DefaultCatalog()); err == nil {
		t.Fatal("catalog provider without invoker should fail validation")
	}
}

func TestUnsupportedInvoker(t *testing.T) {
	inv := Unsupported(agent.ProviderKling)
	a := &agent.Agent{ID: "a1", Provider: agent.ProviderKling, Type: agent.TypeVideo}

	_, err := inv.Invoke(context.Background(), a, "key")
	var ue *UnsupportedError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnsupportedError, got %v", err)
	}
	if ue.Provider != agent.ProviderKling || ue.Type != agent.TypeVideo {
		t.Fatalf("error carries wrong pairing: %+v", ue)
	}
}
