package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/agentfleet/fleet/internal/agent"
	"github.com/agentfleet/fleet/internal/recurrence"
)

var agentHwd = &AgentRunner{}

type AgentRunner struct{}

var (
	cIdle    = color.New(color.FgGreen)
	cRunning = color.New(color.FgCyan)
	cPaused  = color.New(color.FgYellow)
	cError   = color.New(color.FgRed)
	cDim     = color.New(color.FgHiBlack)
	cHeader  = color.New(color.Bold)
)

func (r *AgentRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:  "agent",
		Usage: "Manage stored agents",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all agents with status and schedule",
				Action: r.list,
			},
			{
				Name:      "show",
				Usage:     "Show one agent in full, including its last output",
				ArgsUsage: "<agent-id>",
				Action:    r.show,
			},
			{
				Name:   "add",
				Usage:  "Create a new agent",
				Flags:  r.addFlags(),
				Action: r.add,
			},
			{
				Name:      "rm",
				Usage:     "Delete an agent",
				ArgsUsage: "<agent-id>",
				Action:    r.remove,
			},
			{
				Name:      "run",
				Usage:     "Run an agent right now and wait for the result",
				ArgsUsage: "<agent-id>",
				Action:    r.run,
			},
			{
				Name:      "pause",
				Usage:     "Exclude an agent from scheduling",
				ArgsUsage: "<agent-id>",
				Action:    r.pause,
			},
			{
				Name:      "resume",
				Usage:     "Put a paused agent back on its schedule",
				ArgsUsage: "<agent-id>",
				Action:    r.resume,
			},
		},
	}
}

func (r *AgentRunner) addFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Display name"},
		&cli.StringFlag{Name: "goal", Usage: "Short description of what the agent is for"},
		&cli.StringFlag{Name: "provider", Aliases: []string{"p"}, Usage: "AI provider (google, openai, anthropic, grok, kling)"},
		&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Usage: "Model value from the provider's catalog"},
		&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Agent type (Text, Image, Video)", Value: string(agent.TypeText)},
		&cli.StringFlag{Name: "prompt", Usage: "Raw prompt, or a JSON object with system_prompt and user_prompt for text agents"},
		&cli.StringFlag{Name: "quality", Usage: "Image quality (Standard, Full)", Value: string(agent.QualityStandard)},
		&cli.BoolFlag{Name: "web-search", Usage: "Enable web search grounding (google text agents only)"},
		&cli.StringFlag{Name: "schedule", Aliases: []string{"s"}, Usage: "Recurrence (manual, once, hourly, daily, weekly, monthly)", Value: string(recurrence.Manual)},
		&cli.StringFlag{Name: "at", Usage: "Run instant for --schedule once (RFC3339, e.g. 2026-09-01T09:00:00Z)"},
		&cli.StringFlag{Name: "time", Usage: "Time of day for daily/weekly/monthly schedules (HH:MM)"},
		&cli.StringFlag{Name: "weekday", Usage: "Weekday for weekly schedules (0=Sunday .. 6=Saturday)"},
		&cli.StringFlag{Name: "day", Usage: "Day of month for monthly schedules (1-31)"},
	}
}

func (r *AgentRunner) list(_ context.Context, _ *cli.Command) error {
	rt, err := buildRuntime()
	if err != nil {
		return err
	}

	agents := rt.store.List()
	if len(agents) == 0 {
		fmt.Println("No agents yet. Create one with \"fleet agent add\".")
		return nil
	}

	cHeader.Printf("%-14s %-32s %-22s %-8s %s\n", "ID", "NAME", "PROVIDER/MODEL", "STATUS", "SCHEDULE")
	for _, a := range agents {
		schedule := recurrence.Describe(a.Rule)
		if a.NextRunAt != nil {
			schedule += cDim.Sprintf(" (next %s)", a.NextRunAt.Format("01-02 15:04"))
		}
		fmt.Printf("%-14s %-32s %-22s %-8s %s\n",
			truncate(a.ID, 14),
			truncate(a.Name, 32),
			truncate(fmt.Sprintf("%s/%s", a.Provider, a.Model), 22),
			statusColor(a.Status).Sprint(a.Status),
			schedule,
		)
	}
	return nil
}

func (r *AgentRunner) show(_ context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.Args().First())
	if id == "" {
		return errors.New("agent id is required")
	}

	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	a, ok := rt.store.Get(id)
	if !ok {
		return fmt.Errorf("agent %q not found", id)
	}

	cHeader.Printf("%s (%s)\n", a.Name, a.ID)
	fmt.Printf("  Goal:      %s\n", a.Goal)
	fmt.Printf("  Provider:  %s / %s (%s)\n", a.Provider, a.Model, a.Type)
	fmt.Printf("  Status:    %s\n", statusColor(a.Status).Sprint(a.Status))
	fmt.Printf("  Schedule:  %s\n", recurrence.Describe(a.Rule))
	if a.NextRunAt != nil {
		fmt.Printf("  Next run:  %s\n", a.NextRunAt.Format(time.RFC3339))
	}
	if a.LastRunAt != nil {
		fmt.Printf("  Last run:  %s\n", a.LastRunAt.Format(time.RFC3339))
	}
	if a.Error != "" {
		cError.Printf("  Error:     %s\n", a.Error)
	}
	if a.Output != "" {
		fmt.Println("  Output:")
		for _, line := range strings.Split(a.Output, "\n") {
			fmt.Printf("    %s\n", line)
		}
	}
	if len(a.Sources) > 0 {
		fmt.Println("  Sources:")
		for _, s := range a.Sources {
			fmt.Printf("    - %s (%s)\n", s.Title, cDim.Sprint(s.URI))
		}
	}
	return nil
}

func (r *AgentRunner) add(_ context.Context, cmd *cli.Command) error {
	rt, err := buildRuntime()
	if err != nil {
		return err
	}

	rule, err := r.buildRule(cmd)
	if err != nil {
		return err
	}

	a := agent.Agent{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(cmd.String("name")),
		Goal:          strings.TrimSpace(cmd.String("goal")),
		Provider:      agent.Provider(strings.ToLower(strings.TrimSpace(cmd.String("provider")))),
		Model:         strings.TrimSpace(cmd.String("model")),
		Type:          agent.Type(strings.TrimSpace(cmd.String("type"))),
		Prompt:        cmd.String("prompt"),
		OutputQuality: agent.Quality(strings.TrimSpace(cmd.String("quality"))),
		WebSearch:     cmd.Bool("web-search"),
		Status:        agent.StatusIdle,
		Rule:          rule,
		CreatedAt:     time.Now(),
	}
	if a.Name == "" {
		return errors.New("--name is required")
	}

	if err := a.Validate(rt.catalog); err != nil {
		return fmt.Errorf("invalid agent: %w", err)
	}

	if next, ok := recurrence.NextRun(a.Rule, time.Now()); ok {
		a.NextRunAt = &next
	}

	if err := rt.store.Add(a); err != nil {
		return err
	}
	if err := rt.store.Save(); err != nil {
		return fmt.Errorf("persist agent: %w", err)
	}

	fmt.Printf("Created agent %s (%s). %s\n", a.Name, a.ID, recurrence.Describe(a.Rule))
	return nil
}

func (r *AgentRunner) buildRule(cmd *cli.Command) (recurrence.Rule, error) {
	rule := recurrence.Rule{
		Kind:      recurrence.Kind(strings.ToLower(strings.TrimSpace(cmd.String("schedule")))),
		TimeOfDay: strings.TrimSpace(cmd.String("time")),
	}

	if at := strings.TrimSpace(cmd.String("at")); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return rule, fmt.Errorf("invalid --at value %q: %w", at, err)
		}
		rule.At = &parsed
	}
	if weekday := strings.TrimSpace(cmd.String("weekday")); weekday != "" {
		n, err := strconv.Atoi(weekday)
		if err != nil {
			return rule, fmt.Errorf("invalid --weekday value %q", weekday)
		}
		rule.Weekday = &n
	}
	if day := strings.TrimSpace(cmd.String("day")); day != "" {
		n, err := strconv.Atoi(day)
		if err != nil {
			return rule, fmt.Errorf("invalid --day value %q", day)
		}
		rule.DayOfMonth = &n
	}

	return rule, nil
}

func (r *AgentRunner) remove(_ context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.Args().First())
	if id == "" {
		return errors.New("agent id is required")
	}

	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	if _, ok := rt.store.Get(id); !ok {
		return fmt.Errorf("agent %q not found", id)
	}

	rt.store.Remove(id)
	if err := rt.store.Save(); err != nil {
		return fmt.Errorf("persist removal: %w", err)
	}
	fmt.Printf("Removed agent %s\n", id)
	return nil
}

func (r *AgentRunner) run(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.Args().First())
	if id == "" {
		return errors.New("agent id is required")
	}

	rt, err := buildRuntime()
	if err != nil {
		return err
	}

	fmt.Printf("Running agent %s...\n", id)
	if err := rt.sched.Run(ctx, id); err != nil {
		return err
	}

	a, _ := rt.store.Get(id)
	fmt.Println(a.Output)
	if len(a.Sources) > 0 {
		fmt.Println("Sources:")
		for _, s := range a.Sources {
			fmt.Printf("  - %s (%s)\n", s.Title, s.URI)
		}
	}
	return nil
}

func (r *AgentRunner) pause(_ context.Context, cmd *cli.Command) error {
	return r.setPaused(cmd, true)
}

func (r *AgentRunner) resume(_ context.Context, cmd *cli.Command) error {
	return r.setPaused(cmd, false)
}

func (r *AgentRunner) setPaused(cmd *cli.Command, paused bool) error {
	id := strings.TrimSpace(cmd.Args().First())
	if id == "" {
		return errors.New("agent id is required")
	}

	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	a, ok := rt.store.Get(id)
	if !ok {
		return fmt.Errorf("agent %q not found", id)
	}

	if paused {
		if a.Status == agent.StatusRunning {
			return fmt.Errorf("agent %q is currently running", id)
		}
		a.Status = agent.StatusPaused
	} else {
		if a.Status != agent.StatusPaused {
			return fmt.Errorf("agent %q is not paused", id)
		}
		a.Status = agent.StatusIdle
		// A missed schedule fires on the next tick; compute a fresh
		// instant only when none is pending.
		if a.NextRunAt == nil {
			if next, ok := recurrence.NextRun(a.Rule, time.Now()); ok {
				a.NextRunAt = &next
			}
		}
	}

	rt.store.Update(a)
	if err := rt.store.Save(); err != nil {
		return fmt.Errorf("persist agent: %w", err)
	}

	if paused {
		fmt.Printf("Paused agent %s\n", id)
	} else {
		fmt.Printf("Resumed agent %s. %s\n", id, recurrence.Describe(a.Rule))
	}
	return nil
}

func statusColor(s agent.Status) *color.Color {
	switch s {
	case agent.StatusRunning:
		return cRunning
	case agent.StatusPaused:
		return cPaused
	case agent.StatusError:
		return cError
	default:
		return cIdle
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
