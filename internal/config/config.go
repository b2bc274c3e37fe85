package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

type (
	Config struct {
		Logging   LoggingConfig             `yaml:"logging"`
		Scheduler SchedulerConfig           `yaml:"scheduler"`
		Providers map[string]ProviderConfig `yaml:"providers"`
	}

	LoggingConfig struct {
		Level      string `yaml:"level"`  // debug, info, warn, error
		Format     string `yaml:"format"` // json, text
		Output     string `yaml:"output"` // stdout, file, both
		File       string `yaml:"file"`
		MaxSize    int    `yaml:"max_size"` // MB
		MaxBackups int    `yaml:"max_backups"`
		MaxAge     int    `yaml:"max_age"` // days
	}

	SchedulerConfig struct {
		Enabled *bool `yaml:"enabled"`
		TickSec int   `yaml:"tick_sec"`
	}

	// ProviderConfig carries per-provider endpoint overrides. The map key
	// in Config.Providers is the provider name (google, openai, ...).
	ProviderConfig struct {
		ID        string `yaml:"-"`
		BaseURL   string `yaml:"base_url"`
		MaxTokens int    `yaml:"max_tokens"`
	}
)

// Provider returns the override block for a provider, zero-valued when
// none is configured.
func (c *Config) Provider(name string) ProviderConfig {
	if c == nil {
		return ProviderConfig{}
	}
	return c.Providers[name]
}

// UpdateByName replaces one named section of the config.
func (c *Config) UpdateByName(name string, value any) error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	normalizedName := strings.ToLower(strings.TrimSpace(name))
	if normalizedName == "" {
		return fmt.Errorf("name is required")
	}

	switch normalizedName {
	case "config":
		typed, ok := value.(*Config)
		if !ok || typed == nil {
			return fmt.Errorf("name 'config' requires *Config")
		}
		*c = *typed
	case "logging":
		typed, ok := value.(*LoggingConfig)
		if !ok || typed == nil {
			return fmt.Errorf("name 'logging' requires *LoggingConfig")
		}
		c.Logging = *typed
	case "scheduler":
		typed, ok := value.(*SchedulerConfig)
		if !ok || typed == nil {
			return fmt.Errorf("name 'scheduler' requires *SchedulerConfig")
		}
		c.Scheduler = *typed
	case "providers":
		typed, ok := value.(*map[string]ProviderConfig)
		if !ok || typed == nil {
			return fmt.Errorf("name 'providers' requires *map[string]ProviderConfig")
		}
		next := make(map[string]ProviderConfig, len(*typed))
		for k, v := range *typed {
			next[k] = v
		}
		c.Providers = next
	default:
		return fmt.Errorf("unsupported config name: %s", name)
	}

	return nil
}

// Clone .
func (c *Config) Clone() (*Config, error) {
	if c == nil {
		return nil, fmt.Errorf("config is nil")
	}

	raw, err := sonic.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	var cloned Config
	if err := sonic.Unmarshal(raw, &cloned); err != nil {
		return nil, fmt.Errorf("unmarshal config clone: %w", err)
	}

	return &cloned, nil
}

// Hash .
func (c *Config) Hash() string {
	json := sonic.Config{SortMapKeys: true, UseNumber: true}.Froze()
	raw, _ := json.Marshal(c)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
