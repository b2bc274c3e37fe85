package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/agentfleet/fleet/internal/config"
	"github.com/agentfleet/fleet/internal/consts"
)

var configHwd = &ConfigRunner{}

type ConfigRunner struct{}

func (r *ConfigRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect and update the runtime configuration",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the effective configuration with defaults applied",
				Action: r.show,
			},
			{
				Name:  "set",
				Usage: "Update configuration values and write them back",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "tick-sec", Usage: "Scheduler poll interval in seconds"},
					&cli.BoolFlag{Name: "enabled", Usage: "Enable or disable the scheduler"},
					&cli.StringFlag{Name: "log-level", Usage: "Log level (debug, info, warn, error)"},
					&cli.StringFlag{Name: "log-output", Usage: "Log output (stdout, file, both)"},
					&cli.StringFlag{Name: "log-file", Usage: "Log file path"},
				},
				Action: r.set,
			},
		},
	}
}

func (r *ConfigRunner) show(_ context.Context, _ *cli.Command) error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	hash, err := config.Hash()
	if err != nil {
		return err
	}

	fmt.Printf("# %s (revision %s)\n", consts.DefaultConfigPath(), hash[:12])
	fmt.Print(string(raw))
	return nil
}

func (r *ConfigRunner) set(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	changed := false

	sched := cfg.Scheduler
	if v := strings.TrimSpace(cmd.String("tick-sec")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid --tick-sec value %q", v)
		}
		sched.TickSec = n
		changed = true
	}
	if cmd.IsSet("enabled") {
		enabled := cmd.Bool("enabled")
		sched.Enabled = &enabled
		changed = true
	}
	if changed {
		if err := config.Apply("scheduler", &sched); err != nil {
			return fmt.Errorf("apply scheduler config: %w", err)
		}
	}

	logging := cfg.Logging
	loggingChanged := false
	if v := strings.TrimSpace(cmd.String("log-level")); v != "" {
		logging.Level = v
		loggingChanged = true
	}
	if v := strings.TrimSpace(cmd.String("log-output")); v != "" {
		logging.Output = v
		loggingChanged = true
	}
	if v := strings.TrimSpace(cmd.String("log-file")); v != "" {
		logging.File = v
		loggingChanged = true
	}
	if loggingChanged {
		if err := config.Apply("logging", &logging); err != nil {
			return fmt.Errorf("apply logging config: %w", err)
		}
		changed = true
	}

	if !changed {
		return errors.New("nothing to change, pass at least one flag")
	}

	if err := config.Save(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Updated %s\n", consts.DefaultConfigPath())
	return nil
}
