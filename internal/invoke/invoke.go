package invoke

import (
	"context"
	"fmt"

	"github.com/agentfleet/fleet/internal/agent"
)

// Result is a completed provider invocation. Output is the generated
// text, or a base64 image payload for image agents. Sources carries
// web-search citations when the provider returned grounded output.
type Result struct {
	Output  string
	Sources []agent.Source
}

// Invoker performs a single provider call for an agent. Implementations
// are stateless with respect to the agent collection: the secret is
// handed in per call, and no request timeout is applied (the call runs
// until the provider responds or transport errors).
type Invoker interface {
	Invoke(ctx context.Context, a *agent.Agent, apiKey string) (*Result, error)
}

// UnsupportedError reports a provider/type pairing the dispatch table
// cannot serve. It is a descriptive failure, never a silent no-op.
type UnsupportedError struct {
	Provider agent.Provider
	Type     agent.Type
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s generation is not supported for provider: %s", e.Type, e.Provider)
}

// Unsupported returns an invoker that rejects every call. Used for
// providers whose entire catalog surface (for example video-only
// vendors) has no invocation path yet.
func Unsupported(p agent.Provider) Invoker {
	return unsupportedInvoker{provider: p}
}

type unsupportedInvoker struct {
	provider agent.Provider
}

func (u unsupportedInvoker) Invoke(_ context.Context, a *agent.Agent, _ string) (*Result, error) {
	return nil, &UnsupportedError{Provider: u.provider, Type: a.Type}
}
