package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agentfleet/fleet/internal/recurrence"
)

// Validate applies the strict edit-time checks: identity and binding
// fields present, model listed in the catalog, Text prompts structurally
// valid JSON, recurrence rule complete. Runtime tolerates looser data
// (a half-formed rule simply never schedules); saves do not.
func (a *Agent) Validate(catalog Catalog) error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("agent id is required")
	}
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("agent name is required")
	}
	if !a.Provider.IsValid() {
		return fmt.Errorf("unknown provider: %s", a.Provider)
	}
	if !a.Type.IsValid() {
		return fmt.Errorf("unknown agent type: %s", a.Type)
	}
	if !catalog.Supports(a.Provider, a.Type) {
		return fmt.Errorf("provider %s offers no %s models", a.Provider, a.Type)
	}
	if !catalog.HasModel(a.Provider, a.Type, a.Model) {
		return fmt.Errorf("model %s is not a %s %s model", a.Model, a.Provider, a.Type)
	}
	if a.Type == TypeText {
		if _, err := ParsePrompt(a.Prompt); err != nil {
			return fmt.Errorf("invalid text prompt: %w", err)
		}
	} else if strings.TrimSpace(a.Prompt) == "" {
		return errors.New("prompt is required")
	}
	if a.WebSearch && (a.Type != TypeText || a.Provider != ProviderGoogle) {
		return errors.New("web search is only available for google text agents")
	}
	if err := recurrence.ValidateRule(a.Rule); err != nil {
		return fmt.Errorf("invalid recurrence rule: %w", err)
	}
	return nil
}
