package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/agentfleet/fleet/internal/config"
	"github.com/agentfleet/fleet/internal/pkg/logs"
)

var serveHwd = &ServeRunner{}

type ServeRunner struct{}

func (r *ServeRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the scheduler until interrupted, firing due agents",
		Action: r.run,
	}
}

func (r *ServeRunner) run(ctx context.Context, _ *cli.Command) error {
	rt, err := buildRuntime()
	if err != nil {
		return err
	}

	if err := r.initLogger(rt.cfg.Logging); err != nil {
		return fmt.Errorf("init logger error: %w", err)
	}

	if rt.cfg.Scheduler.Enabled != nil && !*rt.cfg.Scheduler.Enabled {
		fmt.Println("Scheduler is disabled in config. Nothing to do.")
		return nil
	}

	// First boot writes the seeded examples so the files exist on disk.
	if err := rt.store.Save(); err != nil {
		return fmt.Errorf("persist agent store: %w", err)
	}

	logs.CtxInfo(ctx, "booting fleet scheduler (%d agents loaded)", rt.store.Len())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := rt.sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	logs.CtxInfo(ctx, "ALL IS WELL!!! Press Ctrl+C to stop.")

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalCh)

	select {
	case sig := <-signalCh:
		logs.CtxInfo(ctx, "Received shutdown signal (%s). Stopping scheduler...", sig.String())
	case <-ctx.Done():
		logs.CtxInfo(ctx, "Context canceled. Stopping scheduler...")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	rt.sched.Stop(stopCtx)

	if err := rt.store.Save(); err != nil {
		logs.CtxError(ctx, "save agent store on shutdown: %v", err)
	}

	logs.CtxInfo(ctx, "all stopped, good bye!")
	logs.Flush()
	return nil
}

func (r *ServeRunner) initLogger(cfg config.LoggingConfig) error {
	return logs.Init(logs.Options{
		Level:      cfg.Level,
		Format:     cfg.Format,
		Output:     cfg.Output,
		File:       cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
	})
}
