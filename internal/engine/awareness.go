// Awareness: radius-based broadcast at startup, network diffusion per tick.
package engine

import (
	"sort"

	"github.com/talgya/civitas/internal/model"
	"github.com/talgya/civitas/internal/space"
)

// minCommStrength is the communication threshold below which a neighbor
// does not spread awareness of its memberships.
const minCommStrength = 0.2

// broadcastAwareness makes every institution within the awareness radius
// directly visible to an agent. Runs once, after all agents and
// institutions exist.
func (s *Simulation) broadcastAwareness() {
	for _, inst := range s.Institutions {
		for _, a := range s.Agents {
			if space.Distance(a.Position, inst.Position) <= s.awarenessRadius {
				a.AwareOf[inst.ID] = struct{}{}
			}
		}
	}
}

// diffuseAwareness absorbs the live membership sets of the agent's graph
// neighbors into its awareness. Pure union: awareness never shrinks.
func (s *Simulation) diffuseAwareness(a *model.Agent) {
	for _, nid := range s.Graph.Neighbors(a.ID) {
		neighbor, ok := s.AgentIndex[nid]
		if !ok || neighbor.CommStrength < minCommStrength {
			continue
		}
		for id := range neighbor.Memberships {
			a.AwareOf[id] = struct{}{}
		}
	}
}

// sortedAware returns the agent's awareness set as an ascending slice, the
// deterministic iteration order used everywhere institutions are scanned.
func sortedAware(a *model.Agent) []model.InstitutionID {
	out := make([]model.InstitutionID, 0, len(a.AwareOf))
	for id := range a.AwareOf {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
