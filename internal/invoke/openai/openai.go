package openai

import (
	"context"
	"fmt"
	"strings"

	emodel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/schema"
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/agentfleet/fleet/internal/agent"
	"github.com/agentfleet/fleet/internal/invoke"
)

var _ invoke.Invoker = (*Invoker)(nil)

type Config struct {
	// BaseURL overrides the OpenAI API endpoint. Empty uses the default.
	BaseURL string
}

// Invoker runs text agents through the eino chat model and image agents
// through the images endpoint (base64 payload, single image per run).
type Invoker struct {
	config Config
}

func New(config Config) *Invoker {
	return &Invoker{config: config}
}

func (v *Invoker) Invoke(ctx context.Context, a *agent.Agent, apiKey string) (*invoke.Result, error) {
	switch a.Type {
	case agent.TypeText:
		return v.generateText(ctx, a, apiKey)
	case agent.TypeImage:
		return v.generateImage(ctx, a, apiKey)
	default:
		return nil, &invoke.UnsupportedError{Provider: a.Provider, Type: a.Type}
	}
}

func (v *Invoker) generateText(ctx context.Context, a *agent.Agent, apiKey string) (*invoke.Result, error) {
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
		return nil, fmt.Errorf("openai API call failed: %w", err)
	}

	output := strings.TrimSpace(resp.Content)
	if output == "" {
		output = "No response from model."
	}
	return &invoke.Result{Output: output}, nil
}

func (v *Invoker) generateImage(ctx context.Context, a *agent.Agent, apiKey string) (*invoke.Result, error) {
	cfg := goopenai.DefaultConfig(apiKey)
	if v.config.BaseURL != "" {
		cfg.BaseURL = v.config.BaseURL
	}
	client := goopenai.NewClientWithConfig(cfg)

	quality := goopenai.CreateImageQualityStandard
	if a.OutputQuality == agent.QualityFull {
		quality = goopenai.CreateImageQualityHD
	}

	resp, err := client.CreateImage(ctx, goopenai.ImageRequest{
		Prompt:         a.Prompt,
		Model:          a.Model,
		N:              1,
		Size:           goopenai.CreateImageSize1024x1024,
		Quality:        quality,
		ResponseFormat: goopenai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("openai image API call failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, fmt.Errorf("no image data received from API")
	}

	return &invoke.Result{Output: resp.Data[0].B64JSON}, nil
}
