package agent

import (
	"time"

	"github.com/agentfleet/fleet/internal/recurrence"
)

// Provider identifies the AI vendor an agent is bound to.
type Provider string

const (
	ProviderGoogle    Provider = "google"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGrok      Provider = "grok"
	ProviderKling     Provider = "kling"
)

var SupportedProviders = []Provider{
	ProviderGoogle,
	ProviderOpenAI,
	ProviderAnthropic,
	ProviderGrok,
	ProviderKling,
}

func (p Provider) IsValid() bool {
	switch p {
	case ProviderGoogle, ProviderOpenAI, ProviderAnthropic, ProviderGrok, ProviderKling:
		return true
	default:
		return false
	}
}

func (p Provider) String() string {
	return string(p)
}

// Type determines how the provider call and its output are interpreted.
type Type string

const (
	TypeText  Type = "Text"
	TypeImage Type = "Image"
	TypeVideo Type = "Video"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeText, TypeImage, TypeVideo:
		return true
	default:
		return false
	}
}

// Quality selects image output quality (image agents only).
type Quality string

const (
	QualityStandard Quality = "Standard"
	QualityFull     Quality = "Full"
)

// Status is an agent's lifecycle state.
type Status string

const (
	StatusIdle    Status = "Idle"
	StatusRunning Status = "Running"
	StatusPaused  Status = "Paused"
	StatusError   Status = "Error"
)

// Source is a single citation returned by a grounded response.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Agent is a stored task specification bound to an AI provider/model.
// Run artifacts (Output, Error, Sources) are replaced wholesale on
// every run; no history is retained.
type Agent struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Goal     string   `json:"goal"`
	Provider Provider `json:"provider"`
	Model    string   `json:"model"`
	Type     Type     `json:"type"`

	// Prompt is raw text, or for Text agents a JSON object carrying
	// system_prompt and user_prompt (see ParsePrompt).
	Prompt string `json:"prompt"`

	OutputQuality Quality `json:"output_quality,omitempty"` // image agents only
	WebSearch     bool    `json:"web_search,omitempty"`     // text + google only

	Status  Status   `json:"status"`
	Output  string   `json:"output,omitempty"`
	Error   string   `json:"error,omitempty"`
	Sources []Source `json:"sources,omitempty"`

	Rule      recurrence.Rule `json:"rule"`
	NextRunAt *time.Time      `json:"next_run_at,omitempty"`
	LastRunAt *time.Time      `json:"last_run_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ClearArtifacts drops the previous run's output before a new run.
func (a *Agent) ClearArtifacts() {
	a.Output = ""
	a.Error = ""
	a.Sources = nil
}

// Schedulable reports whether the poll loop should consider this agent
// at all. Running agents are never re-triggered (prevents overlapping
// runs); Paused agents are excluded from the due-check.
func (a *Agent) Schedulable() bool {
	if a.Status == StatusRunning || a.Status == StatusPaused {
		return false
	}
	return a.Rule.Kind != recurrence.Manual
}

// DueAt reports whether the agent's next run instant has arrived.
func (a *Agent) DueAt(now time.Time) bool {
	return a.NextRunAt != nil && !a.NextRunAt.After(now)
}
