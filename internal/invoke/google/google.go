package google

import (
	"context"
	"fmt"
	"strings"

	gmodel "github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/agentfleet/fleet/internal/agent"
	"github.com/agentfleet/fleet/internal/invoke"
)

var _ invoke.Invoker = (*Invoker)(nil)

type Config struct {
	// BaseURL overrides the Gemini API endpoint. Empty uses the default.
	BaseURL string
}

// Invoker runs text agents against the Gemini API. Web-search agents go
// through the genai client directly so grounding citations come back;
// plain text agents go through the eino chat model.
type Invoker struct {
	config Config
}

func New(config Config) *Invoker {
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

	client, err := v.newClient(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("new gemini client failed: %w", err)
	}

	if a.WebSearch {
		return v.generateGrounded(ctx, client, a.Model, sp)
	}
	return v.generate(ctx, client, a.Model, sp)
}

func (v *Invoker) newClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if v.config.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: v.config.BaseURL}
	}
	return genai.NewClient(ctx, clientCfg)
}

func (v *Invoker) generate(ctx context.Context, client *genai.Client, modelName string, sp *agent.StructuredPrompt) (*invoke.Result, error) {
	chatModel, err := gmodel.NewChatModel(ctx, &gmodel.Config{
		Client: client,
		Model:  modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model for %s: %w", modelName, err)
	}

	messages := make([]*schema.Message, 0, 2)
	if sp.SystemPrompt != "" {
		messages = append(messages, schema.SystemMessage(sp.SystemPrompt))
	}
	messages = append(messages, schema.UserMessage(sp.UserPrompt))

	resp, err := chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	output := strings.TrimSpace(resp.Content)
	if output == "" {
		output = "No response from model."
	}
	return &invoke.Result{Output: output}, nil
}

func (v *Invoker) generateGrounded(ctx context.Context, client *genai.Client, modelName string, sp *agent.StructuredPrompt) (*invoke.Result, error) {
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}
	if sp.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(sp.SystemPrompt, genai.RoleUser)
	}

	resp, err := client.Models.GenerateContent(ctx, modelName, genai.Text(sp.UserPrompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	output := strings.TrimSpace(resp.Text())
	if output == "" {
		output = "No response from model."
	}

	return &invoke.Result{
		Output:  output,
		Sources: invoke.DedupeSources(groundingSources(resp)),
	}, nil
}

// groundingSources pulls web citations out of the first candidate's
// grounding metadata. Non-web chunks are skipped.
func groundingSources(resp *genai.GenerateContentResponse) []agent.Source {
	if len(resp.Candidates) == 0 {
		return nil
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return nil
	}

	sources := make([]agent.Source, 0, len(meta.GroundingChunks))
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		sources = append(sources, agent.Source{
			URI:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
	}
	return sources
}
