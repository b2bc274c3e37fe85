package invoke

import "github.com/agentfleet/fleet/internal/agent"

// DedupeSources collapses grounding citations by URI, keeping the first
// occurrence of each. A citation without a title falls back to its URI
// so every kept source stays displayable.
func DedupeSources(in []agent.Source) []agent.Source {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]agent.Source, 0, len(in))
	for _, s := range in {
		if s.URI == "" {
			continue
		}
		if _, ok := seen[s.URI]; ok {
			continue
		}
		seen[s.URI] = struct{}{}
		if s.Title == "" {
			s.Title = s.URI
		}
		out = append(out, s)
	}
	return out
}
