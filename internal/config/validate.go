package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agentfleet/fleet/internal/agent"
)

const defaultTickSec = 15

// Validate normalizes the config in place, filling defaults for every
// omitted field. A zero-valued Config validates to a usable one.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}

	c.Logging.Level = strings.TrimSpace(strings.ToLower(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "both"
	}

	if c.Scheduler.Enabled == nil {
		enabled := true
		c.Scheduler.Enabled = &enabled
	}
	if c.Scheduler.TickSec <= 0 {
		c.Scheduler.TickSec = defaultTickSec
	}

	normalizedProviders := make(map[string]ProviderConfig, len(c.Providers))
	for key, one := range c.Providers {
		providerID := strings.TrimSpace(strings.ToLower(key))
		if providerID == "" {
			return errors.New("provider id cannot be empty")
		}
		if !agent.Provider(providerID).IsValid() {
			return fmt.Errorf("unknown provider in config: %s", providerID)
		}
		if one.MaxTokens < 0 {
			return fmt.Errorf("providers[%s].max_tokens cannot be negative", providerID)
		}
		one.ID = providerID
		one.BaseURL = strings.TrimSpace(one.BaseURL)
		normalizedProviders[providerID] = one
	}
	c.Providers = normalizedProviders
	return nil
}
