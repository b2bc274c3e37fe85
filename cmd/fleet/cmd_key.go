package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/agentfleet/fleet/internal/agent"
	"github.com/agentfleet/fleet/internal/consts"
	"github.com/agentfleet/fleet/internal/credential"
)

var keyHwd = &KeyRunner{}

type KeyRunner struct{}

func (r *KeyRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:  "key",
		Usage: "Manage provider API keys",
		Commands: []*cli.Command{
			{
				Name:      "set",
				Usage:     "Store the API key for a provider",
				ArgsUsage: "<provider> <api-key>",
				Action:    r.set,
			},
			{
				Name:      "clear",
				Usage:     "Remove the API key for a provider",
				ArgsUsage: "<provider>",
				Action:    r.clear,
			},
			{
				Name:   "list",
				Usage:  "List providers that have a key configured",
				Action: r.list,
			},
		},
	}
}

func (r *KeyRunner) set(_ context.Context, cmd *cli.Command) error {
	provider, err := parseProvider(cmd.Args().First())
	if err != nil {
		return err
	}
	apiKey := strings.TrimSpace(cmd.Args().Get(1))
	if apiKey == "" {
		return errors.New("api key is required")
	}

	creds, err := loadCredentials()
	if err != nil {
		return err
	}
	if err := creds.Set(provider, apiKey); err != nil {
		return err
	}
	if err := creds.Save(); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}

	fmt.Printf("Stored API key for %s\n", provider)
	return nil
}

func (r *KeyRunner) clear(_ context.Context, cmd *cli.Command) error {
	provider, err := parseProvider(cmd.Args().First())
	if err != nil {
		return err
	}

	creds, err := loadCredentials()
	if err != nil {
		return err
	}
	creds.Clear(provider)
	if err := creds.Save(); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}

	fmt.Printf("Cleared API key for %s\n", provider)
	return nil
}

func (r *KeyRunner) list(_ context.Context, _ *cli.Command) error {
	creds, err := loadCredentials()
	if err != nil {
		return err
	}

	configured := creds.Providers()
	for _, p := range agent.SupportedProviders {
		mark := "not set"
		for _, c := range configured {
			if c == p {
				mark = "configured"
				break
			}
		}
		fmt.Printf("%-10s %s\n", p, mark)
	}
	return nil
}

func loadCredentials() (*credential.Store, error) {
	creds := credential.NewStore(consts.DefaultCredentialsPath())
	if err := creds.Load(); err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	return creds, nil
}

func parseProvider(arg string) (agent.Provider, error) {
	p := agent.Provider(strings.ToLower(strings.TrimSpace(arg)))
	if p == "" {
		return "", errors.New("provider is required")
	}
	if !p.IsValid() {
		return "", fmt.Errorf("unknown provider %q (expected one of %v)", arg, agent.SupportedProviders)
	}
	return p, nil
}
