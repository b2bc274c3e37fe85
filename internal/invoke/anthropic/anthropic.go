package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino/schema"

	"github.com/agentfleet/fleet/internal/agent"
	"github.com/agentfleet/fleet/internal/invoke"
)

var _ invoke.Invoker = (*Invoker)(nil)

const defaultMaxTokens = 2048

type Config struct {
	// BaseURL overrides the Anthropic API endpoint. Empty uses the default.
	BaseURL string
	// MaxTokens caps the response length. Zero falls back to 2048.
	MaxTokens int
}

// Invoker runs text agents against the Anthropic messages API.
type Invoker struct {
	config Config
}

func New(config Config) *Invoker {
	if config.MaxTokens <= 0 {
		config.MaxTokens = defaultMaxTokens
	}
	return &Invoker{config: config}
}

func (v *Invoker) Invoke(ctx context.Context, a *agent.Agent, apiKey string) (*invoke.Result, error) {
	if a.Type != agent.TypeText {
		return nil, &invoke.UnsupportedError{Provider: a.Provider, Type: a.Type}
	}

	sp, err := agent.ParsePrompt(a.Prompt)
	if err != nil {
		return nil, fmt.Errorf("parse prompt for agent %s: %w", a.ID, err)
	}

	cfg := &claude.Config{
		APIKey:    apiKey,
		Model:     a.Model,
		MaxTokens: v.config.MaxTokens,
	}
	if baseURL := strings.TrimSpace(v.config.BaseURL); baseURL != "" {
		cfg.BaseURL = &baseURL
	}

	chatModel, err := claude.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model for %s: %w", a.Model, err)
	}

	messages := make([]*schema.Message, 0, 2)
	if sp.SystemPrompt != "" {
		messages = append(messages, schema.SystemMessage(sp.SystemPrompt))
	}
	messages = append(messages, schema.UserMessage(sp.UserPrompt))

	resp, err := chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("anthropic API call failed: %w", err)
	}

	output := strings.TrimSpace(resp.Content)
	if output == "" {
		output = "No response from model."
	}
	return &invoke.Result{Output: output}, nil
}
