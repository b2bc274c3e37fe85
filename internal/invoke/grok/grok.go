package grok

import (
	"context"
	"fmt"
	"strings"

	emodel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/schema"

	"github.com/agentfleet/fleet/internal/agent"
	"github.com/agentfleet/fleet/internal/invoke"
)

var _ invoke.Invoker = (*Invoker)(nil)

// Grok models are served through Groq's OpenAI-compatible endpoint.
const defaultBaseURL = "https://api.groq.com/openai/v1"

type Config struct {
	// BaseURL overrides the Groq endpoint. Empty uses the default.
	BaseURL string
}

// Invoker runs text agents through the OpenAI-compatible chat model
// pointed at Groq.
type Invoker struct {
	config Config
}

func New(config Config) *Invoker {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
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

	chatModel, err := emodel.NewChatModel(ctx, &emodel.ChatModelConfig{
		APIKey:  apiKey,
		Model:   a.Model,
		BaseURL: v.config.BaseURL,
		ByAzure: false,
	})
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
		return nil, fmt.Errorf("grok API call failed: %w", err)
	}

	output := strings.TrimSpace(resp.Content)
	if output == "" {
		output = "No response from model."
	}
	return &invoke.Result{Output: output}, nil
}
