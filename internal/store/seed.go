package store

import (
	"time"

	"github.com/agentfleet/fleet/internal/agent"
	"github.com/agentfleet/fleet/internal/recurrence"
)

// seedAgents returns the example agents shipped with a fresh install.
// All of them are manual so nothing fires until the user opts in.
func seedAgents() []agent.Agent {
	now := time.Now()
	manual := recurrence.Rule{Kind: recurrence.Manual}

	return []agent.Agent{
		{
			ID:            "example-image",
			Name:          "OpenAI: Photorealistic Images",
			Goal:          "Generate photorealistic images with DALL-E 3.",
			Provider:      agent.ProviderOpenAI,
			Model:         "dall-e-3",
			Type:          agent.TypeImage,
			Prompt:        "A photorealistic image of an astronaut riding a horse on Mars.",
			OutputQuality: agent.QualityStandard,
			Status:        agent.StatusIdle,
			Rule:          manual,
			CreatedAt:     now,
		},
		{
			ID:       "example-story",
			Name:     "Google: Creative Story Writer",
			Goal:     "Generate short, creative stories based on a simple prompt using Gemini.",
			Provider: agent.ProviderGoogle,
			Model:    "gemini-2.5-flash",
			Type:     agent.TypeText,
			Prompt: `{
  "protocol": "mcp-0.1",
  "system_prompt": "You are a master storyteller. Your stories are engaging, concise, and have a touch of wonder.",
  "user_prompt": "Write a 100-word story about a robot who discovers music."
}`,
			Status:    agent.StatusIdle,
			Rule:      manual,
			CreatedAt: now,
		},
		{
			ID:        "example-news",
			Name:      "Google: News Summarizer",
			Goal:      "Get up-to-date summaries on current events with web search.",
			Provider:  agent.ProviderGoogle,
			Model:     "gemini-2.5-flash",
			Type:      agent.TypeText,
			WebSearch: true,
			Prompt: `{
  "protocol": "mcp-0.1",
  "system_prompt": "You are a news analyst. You provide concise, neutral summaries of recent events based on web search results. Always cite your sources.",
  "user_prompt": "What are the latest developments in AI-powered robotics?"
}`,
			Status:    agent.StatusIdle,
			Rule:      manual,
			CreatedAt: now,
		},
		{
			ID:       "example-explainer",
			Name:     "Anthropic: Code Explainer",
			Goal:     "Explain complex code snippets in simple terms using Claude 3.5 Sonnet.",
			Provider: agent.ProviderAnthropic,
			Model:    "claude-3-5-sonnet-20240620",
			Type:     agent.TypeText,
			Prompt: `{
  "protocol": "mcp-0.1",
  "system_prompt": "You are an expert software engineer who is great at teaching beginners. You explain code clearly and concisely, avoiding jargon where possible.",
  "user_prompt": "Explain what a memoization helper does and when to reach for one."
}`,
			Status:    agent.StatusIdle,
			Rule:      manual,
			CreatedAt: now,
		},
	}
}
