package main

import (
	"fmt"
	"time"

	"github.com/agentfleet/fleet/internal/agent"
	"github.com/agentfleet/fleet/internal/config"
	"github.com/agentfleet/fleet/internal/consts"
	"github.com/agentfleet/fleet/internal/credential"
	"github.com/agentfleet/fleet/internal/invoke"
	"github.com/agentfleet/fleet/internal/invoke/anthropic"
	"github.com/agentfleet/fleet/internal/invoke/google"
	"github.com/agentfleet/fleet/internal/invoke/grok"
	"github.com/agentfleet/fleet/internal/invoke/openai"
	"github.com/agentfleet/fleet/internal/scheduler"
	"github.com/agentfleet/fleet/internal/store"
)

// runtime bundles everything a command needs: config, the two stores,
// the model catalog, and the invoker registry.
type runtime struct {
	cfg      *config.Config
	store    *store.Store
	creds    *credential.Store
	catalog  agent.Catalog
	registry *invoke.Registry
	sched    *scheduler.Scheduler
}

func buildRuntime() (*runtime, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	catalog := agent.DefaultCatalog()
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("model catalog is inconsistent: %w", err)
	}

	st := store.NewStore(consts.DefaultAgentsPath())
	if err := st.Load(); err != nil {
		return nil, fmt.Errorf("load agent store: %w", err)
	}

	creds := credential.NewStore(consts.DefaultCredentialsPath())
	if err := creds.Load(); err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	registry := buildRegistry(cfg)
	if err := registry.Validate(catalog); err != nil {
		return nil, fmt.Errorf("invoker registry is incomplete: %w", err)
	}

	tick := time.Duration(cfg.Scheduler.TickSec) * time.Second
	sched := scheduler.New(st, creds, registry, tick)

	return &runtime{
		cfg:      cfg,
		store:    st,
		creds:    creds,
		catalog:  catalog,
		registry: registry,
		sched:    sched,
	}, nil
}

func buildRegistry(cfg *config.Config) *invoke.Registry {
	registry := invoke.NewRegistry()
	registry.Register(agent.ProviderGoogle, google.New(google.Config{
		BaseURL: cfg.Provider("google").BaseURL,
	}))
	registry.Register(agent.ProviderOpenAI, openai.New(openai.Config{
		BaseURL: cfg.Provider("openai").BaseURL,
	}))
	registry.Register(agent.ProviderAnthropic, anthropic.New(anthropic.Config{
		BaseURL:   cfg.Provider("anthropic").BaseURL,
		MaxTokens: cfg.Provider("anthropic").MaxTokens,
	}))
	registry.Register(agent.ProviderGrok, grok.New(grok.Config{
		BaseURL: cfg.Provider("grok").BaseURL,
	}))
	registry.Register(agent.ProviderKling, invoke.Unsupported(agent.ProviderKling))
	return registry
}
