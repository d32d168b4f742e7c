// The tick state machine: awareness diffusion, due reoptimizations,
// membership churn, graph rebuild, history record.
package engine

import (
	"log/slog"
	"sort"

	"github.com/talgya/civitas/internal/model"
)

// Step advances the simulation by one tick. Agents are processed in a
// seeded random permutation; the order is semantically significant for
// diffusion and for which agents win scarce capacity, and is reproducible
// under a fixed seed.
func (s *Simulation) Step() {
	for _, idx := range s.src.Perm(len(s.Agents)) {
		a := s.Agents[idx]
		a.TicksSinceRealloc++
		s.diffuseAwareness(a)
		if a.TicksSinceRealloc >= s.reallocFreq {
			s.reallocate(a)
		}
	}

	s.Graph.Rebuild(s.Institutions, s.HoursAt)
	s.tick++
	s.History.Record(s)

	slog.Debug("tick complete",
		"tick", s.tick,
		"edges", s.Graph.EdgeCount(),
	)
}

// Run advances the simulation n ticks.
func (s *Simulation) Run(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

// reallocate replaces the agent's allocation and memberships with a fresh
// optimizer result. Leaving an institution never fails; joining one at
// capacity is rejected, and the rejected allocation entry is dropped so
// memberships and allocation keys stay in sync.
func (s *Simulation) reallocate(a *model.Agent) {
	allocation := s.Optimize(a)

	for id := range a.Memberships {
		if _, kept := allocation[id]; kept {
			continue
		}
		if inst, ok := s.InstIndex[id]; ok {
			delete(inst.Members, a.ID)
		}
	}

	memberships := make(map[model.InstitutionID]struct{}, len(allocation))
	for _, id := range sortedKeys(allocation) {
		if _, already := a.Memberships[id]; already {
			memberships[id] = struct{}{}
			continue
		}
		inst, ok := s.InstIndex[id]
		if !ok || !inst.HasRoom() {
			delete(allocation, id)
			continue
		}
		inst.Members[a.ID] = struct{}{}
		memberships[id] = struct{}{}
	}

	a.Allocation = allocation
	a.Memberships = memberships
	a.TicksSinceRealloc = 0
}

func sortedKeys(m map[model.InstitutionID]float64) []model.InstitutionID {
	out := make([]model.InstitutionID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
