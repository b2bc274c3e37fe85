package agent

import (
	"testing"
	"time"

	"github.com/agentfleet/fleet/internal/recurrence"
)

func TestParsePrompt(t *testing.T) {
	sp, err := ParsePrompt(`{"protocol":"mcp-0.1","system_prompt":"be terse","user_prompt":"hello"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sp.SystemPrompt != "be terse" || sp.UserPrompt != "hello" {
		t.Errorf("parsed prompt: %+v", sp)
	}
}

func TestParsePrompt_Invalid(t *testing.T) {
	cases := []string{
		"",
		"not json",
		`{"system_prompt":"only system"}`,
	}
	for _, c := range cases {
		if _, err := ParsePrompt(c); err == nil {
			t.Errorf("ParsePrompt(%q) should fail", c)
		}
	}
}

func TestCatalog_Validate(t *testing.T) {
	if err := DefaultCatalog().Validate(); err != nil {
		t.Fatalf("default catalog must validate: %v", err)
	}

	bad := Catalog{Provider("mystery"): {TypeText: {{Name: "x", Value: "x"}}}}
	if err := bad.Validate(); err == nil {
		t.Fatal("unknown provider should fail validation")
	}

	empty := Catalog{ProviderGoogle: {TypeText: {}}}
	if err := empty.Validate(); err == nil {
		t.Fatal("empty model list should fail validation")
	}

	dup := Catalog{ProviderGoogle: {TypeText: {
		{Name: "a", Value: "m"},
		{Name: "b", Value: "m"},
	}}}
	if err := dup.Validate(); err == nil {
		t.Fatal("duplicate model identifier should fail validation")
	}
}

func TestCatalog_Lookups(t *testing.T) {
	c := DefaultCatalog()

	if !c.Supports(ProviderOpenAI, TypeImage) {
		t.Error("openai should support image agents")
	}
	if c.Supports(ProviderAnthropic, TypeImage) {
		t.Error("anthropic should not support image agents")
	}
	if c.Supports(ProviderKling, TypeText) {
		t.Error("kling should not support text agents")
	}
	if !c.HasModel(ProviderGrok, TypeText, "llama3-70b-8192") {
		t.Error("grok text model lookup failed")
	}
	if c.HasModel(ProviderGrok, TypeText, "gpt-4o") {
		t.Error("gpt-4o is not a grok model")
	}
}

func TestAgent_Schedulable(t *testing.T) {
	daily := recurrence.Rule{Kind: recurrence.Daily, TimeOfDay: "09:00"}
	tests := []struct {
		status Status
		rule   recurrence.Rule
		want   bool
	}{
		{StatusIdle, daily, true},
		{StatusError, daily, true},
		{StatusRunning, daily, false},
		{StatusPaused, daily, false},
		{StatusIdle, recurrence.Rule{Kind: recurrence.Manual}, false},
	}
	for _, tt := range tests {
		a := &Agent{Status: tt.status, Rule: tt.rule}
		if got := a.Schedulable(); got != tt.want {
			t.Errorf("status=%s kind=%s: Schedulable()=%v, want %v", tt.status, tt.rule.Kind, got, tt.want)
		}
	}
}

func TestAgent_DueAt(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Second)
	future := now.Add(time.Hour)

	if (&Agent{NextRunAt: &past}).DueAt(now) != true {
		t.Error("past next-run should be due")
	}
	if (&Agent{NextRunAt: &now}).DueAt(now) != true {
		t.Error("next-run equal to now should be due")
	}
	if (&Agent{NextRunAt: &future}).DueAt(now) {
		t.Error("future next-run should not be due")
	}
	if (&Agent{}).DueAt(now) {
		t.Error("absent next-run should not be due")
	}
}

func TestAgent_Validate(t *testing.T) {
	catalog := DefaultCatalog()
	base := Agent{
		ID:       "a1",
		Name:     "news",
		Provider: ProviderGoogle,
		Model:    "gemini-2.5-flash",
		Type:     TypeText,
		Prompt:   `{"system_prompt":"s","user_prompt":"u"}`,
		Rule:     recurrence.Rule{Kind: recurrence.Manual},
	}
	if err := base.Validate(catalog); err != nil {
		t.Fatalf("base agent should validate: %v", err)
	}

	badModel := base
	badModel.Model = "gpt-4o"
	if err := badModel.Validate(catalog); err == nil {
		t.Error("google agent with an openai model should fail")
	}

	badPrompt := base
	badPrompt.Prompt = "plain text"
	if err := badPrompt.Validate(catalog); err == nil {
		t.Error("text agent with non-JSON prompt should fail")
	}

	badSearch := base
	badSearch.Provider = ProviderOpenAI
	badSearch.Model = "gpt-4o"
	badSearch.WebSearch = true
	if err := badSearch.Validate(catalog); err == nil {
		t.Error("web search outside google text should fail")
	}

	badRule := base
	badRule.Rule = recurrence.Rule{Kind: recurrence.Daily}
	if err := badRule.Validate(catalog); err == nil {
		t.Error("incomplete recurrence rule should fail at save time")
	}
}
