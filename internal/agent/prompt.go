package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// StructuredPrompt is the JSON shape Text agents carry in their Prompt
// field. Image and Video agents use the raw prompt text directly.
type StructuredPrompt struct {
	Protocol     string `json:"protocol,omitempty"`
	SystemPrompt string `json:"system_prompt"`
	UserPrompt   string `json:"user_prompt"`
}

// ParsePrompt decodes a Text agent's structured prompt. Malformed JSON
// is a validation error: it blocks saves at edit time and fails the run
// at execution time.
func ParsePrompt(prompt string) (*StructuredPrompt, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, errors.New("prompt is empty")
	}

	var sp StructuredPrompt
	if err := sonic.Unmarshal([]byte(prompt), &sp); err != nil {
		return nil, fmt.Errorf("prompt is not valid JSON: %w", err)
	}
	if strings.TrimSpace(sp.UserPrompt) == "" {
		return nil, errors.New("prompt is missing user_prompt")
	}
	return &sp, nil
}
