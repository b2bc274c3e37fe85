package agent

import (
	"fmt"
	"sort"

	"github.com/bytedance/gg/gmap"
)

// ModelInfo is one selectable model in the catalog.
type ModelInfo struct {
	Name  string `json:"name"`  // display name
	Value string `json:"value"` // vendor model identifier
}

// Catalog is the closed provider x type dispatch table: which models
// each provider offers for each agent type. Lookups go through Models
// and Supports; there is no way to get a silent nil for a valid pair.
type Catalog map[Provider]map[Type][]ModelInfo

// DefaultCatalog mirrors the models each supported vendor exposes for
// each agent type.
func DefaultCatalog() Catalog {
	return Catalog{
		ProviderGoogle: {
			TypeText:  {{Name: "Gemini 2.5 Flash", Value: "gemini-2.5-flash"}},
			TypeImage: {{Name: "Imagen 3", Value: "imagen-3.0-generate-002"}},
			TypeVideo: {{Name: "Veo", Value: "veo"}},
		},
		ProviderOpenAI: {
			TypeText: {
				{Name: "GPT-4o", Value: "gpt-4o"},
				{Name: "GPT-4 Turbo", Value: "gpt-4-turbo"},
				{Name: "GPT-3.5 Turbo", Value: "gpt-3.5-turbo"},
			},
			TypeImage: {{Name: "DALL-E 3", Value: "dall-e-3"}},
		},
		ProviderAnthropic: {
			TypeText: {
				{Name: "Claude 3.5 Sonnet", Value: "claude-3-5-sonnet-20240620"},
				{Name: "Claude 3 Opus", Value: "claude-3-opus-20240229"},
				{Name: "Claude 3 Haiku", Value: "claude-3-haiku-20240307"},
			},
		},
		ProviderGrok: {
			TypeText: {
				{Name: "Llama 3 70b", Value: "llama3-70b-8192"},
				{Name: "Llama 3 8b", Value: "llama3-8b-8192"},
				{Name: "Mixtral 8x7b", Value: "mixtral-8x7b-32768"},
				{Name: "Gemma 7b", Value: "gemma-7b-it"},
			},
		},
		ProviderKling: {
			TypeVideo: {{Name: "Kling", Value: "kling"}},
		},
	}
}

// Validate checks the table for structural completeness at startup:
// known providers and types only, no empty model lists, no duplicate
// model identifiers within a provider/type pair.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("model catalog is empty")
	}
	for p, byType := range c {
		if !p.IsValid() {
			return fmt.Errorf("model catalog references unknown provider: %s", p)
		}
		if len(byType) == 0 {
			return fmt.Errorf("model catalog entry for %s has no agent types", p)
		}
		for t, models := range byType {
			if !t.IsValid() {
				return fmt.Errorf("model catalog entry %s references unknown agent type: %s", p, t)
			}
			if len(models) == 0 {
				return fmt.Errorf("model catalog entry %s/%s has no models", p, t)
			}
			seen := make(map[string]struct{}, len(models))
			for _, m := range models {
				if m.Value == "" {
					return fmt.Errorf("model catalog entry %s/%s has a model with no identifier", p, t)
				}
				if _, dup := seen[m.Value]; dup {
					return fmt.Errorf("model catalog entry %s/%s lists %s twice", p, t, m.Value)
				}
				seen[m.Value] = struct{}{}
			}
		}
	}
	return nil
}

// Supports reports whether the provider offers any model for the type.
func (c Catalog) Supports(p Provider, t Type) bool {
	byType, ok := c[p]
	if !ok {
		return false
	}
	_, ok = byType[t]
	return ok
}

// Models returns the models the provider offers for the type.
func (c Catalog) Models(p Provider, t Type) []ModelInfo {
	byType, ok := c[p]
	if !ok {
		return nil
	}
	out := make([]ModelInfo, len(byType[t]))
	copy(out, byType[t])
	return out
}

// HasModel reports whether value is a listed model for provider/type.
func (c Catalog) HasModel(p Provider, t Type, value string) bool {
	for _, m := range c.Models(p, t) {
		if m.Value == value {
			return true
		}
	}
	return false
}

// Providers returns the catalog's providers in stable order.
func (c Catalog) Providers() []Provider {
	out := gmap.Keys(c)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
