package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/agentfleet/fleet/internal/agent"
	"github.com/agentfleet/fleet/internal/invoke"
	"github.com/agentfleet/fleet/internal/pkg/logs"
	"github.com/agentfleet/fleet/internal/recurrence"
	"github.com/agentfleet/fleet/internal/store"
)

const defaultTick = 15 * time.Second

var (
	ErrAgentNotFound     = errors.New("agent not found")
	ErrCredentialMissing = errors.New("no API key set for provider")
	ErrAlreadyRunning    = errors.New("agent is already running")
)

// Credentials resolves the API secret for a provider at run time.
type Credentials interface {
	Get(p agent.Provider) (string, bool)
}

// Scheduler polls the agent store and fires due agents. It also carries
// the full run contract, so manual runs from the CLI go through the
// same path as scheduled ones.
type Scheduler struct {
	store    *store.Store
	creds    Credentials
	registry *invoke.Registry
	tick     time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a scheduler. A non-positive tick falls back to 15s.
func New(st *store.Store, creds Credentials, registry *invoke.Registry, tick time.Duration) *Scheduler {
	if tick <= 0 {
		tick = defaultTick
	}
	return &Scheduler{
		store:    st,
		creds:    creds,
		registry: registry,
		tick:     tick,
	}
}

// Start begins the polling loop. The store must already be loaded.
func (s *Scheduler) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()

	logs.CtxInfo(ctx, "[scheduler] started (tick=%s)", s.tick)
	return nil
}

// Stop cancels the polling loop and waits for in-flight runs to finish,
// bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logs.CtxWarn(ctx, "[scheduler] stop timed out waiting for running agents")
	}

	logs.CtxInfo(ctx, "[scheduler] stopped")
}

// Run executes an agent by ID through the full run contract.
func (s *Scheduler) Run(ctx context.Context, id string) error {
	a, ok := s.store.Get(id)
	if !ok {
		return fmt.Errorf("run agent %s: %w", id, ErrAgentNotFound)
	}
	return s.run(ctx, a)
}

func (s *Scheduler) loop(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pollTick(ctx)
		}
	}
}

func (s *Scheduler) pollTick(ctx context.Context) {
	now := time.Now()
	due := s.store.ListDue(now)
	if len(due) > 0 {
		logs.CtxDebug(ctx, "[scheduler] tick: %d agents due", len(due))
	}
	for _, a := range due {
		a := a
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.run(ctx, a); err != nil {
				logs.CtxWarn(ctx, "[scheduler] agent %s: %v", a.ID, err)
			}
		}()
	}
}

// run is the single run contract: precondition checks that abort before
// any state change, mark running and clear previous artifacts, dispatch
// to the provider with no timeout, then record the outcome and the next
// run instant.
func (s *Scheduler) run(ctx context.Context, a agent.Agent) error {
	if a.Status == agent.StatusRunning {
		return fmt.Errorf("agent %s: %w", a.ID, ErrAlreadyRunning)
	}

	// Precondition failures leave the stored agent exactly as it was:
	// no Running or Error transition, nothing persisted.
	apiKey, ok := s.creds.Get(a.Provider)
	if !ok {
		return fmt.Errorf("agent %s: %w: %s", a.ID, ErrCredentialMissing, a.Provider)
	}
	inv, ok := s.registry.Lookup(a.Provider)
	if !ok {
		return fmt.Errorf("agent %s: no invoker registered for provider %s", a.ID, a.Provider)
	}

	ctx = logs.SetLogID(ctx, logs.NewLogID())

	a.Status = agent.StatusRunning
	a.ClearArtifacts()
	s.persist(a)
	logs.CtxInfo(ctx, "[scheduler] running agent %s (%s)", a.Name, a.ID)

	// The dispatch outlives loop cancellation: Stop waits for in-flight
	// runs instead of aborting them into a persisted Error state.
	result, err := inv.Invoke(context.WithoutCancel(ctx), &a, apiKey)
	now := time.Now()

	if err != nil {
		a.Status = agent.StatusError
		a.Error = err.Error()
		// NextRunAt keeps its pre-run value, so a recurring agent is
		// retried on the next tick rather than skipping a cycle.
		s.persist(a)
		logs.CtxWarn(ctx, "[scheduler] agent %s (%s) failed: %v", a.Name, a.ID, err)
		return fmt.Errorf("agent %s run failed: %w", a.ID, err)
	}

	a.Output = result.Output
	a.Sources = result.Sources
	a.Status = agent.StatusIdle
	a.LastRunAt = &now

	// A one-shot that has fired becomes manual so it never fires again.
	if a.Rule.Kind == recurrence.Once {
		a.Rule = recurrence.Rule{Kind: recurrence.Manual}
	}
	if next, ok := recurrence.NextRun(a.Rule, now); ok {
		a.NextRunAt = &next
	} else {
		a.NextRunAt = nil
	}

	s.persist(a)
	logs.CtxInfo(ctx, "[scheduler] agent %s (%s) finished", a.Name, a.ID)
	return nil
}

func (s *Scheduler) persist(a agent.Agent) {
	s.store.Update(a)
	if err := s.store.Save(); err != nil {
		logs.Warn("[scheduler] persist agent %s: %v", a.ID, err)
	}
}
