// Per-tick aggregate statistics, one series pair per practice type.
package engine

import (
	"github.com/talgya/civitas/internal/model"
)

// PracticeStats is one tick's aggregate for a single practice type.
type PracticeStats struct {
	AvgHours      float64 // Total hours at the practice / agent count
	Participation float64 // Agents with >= 1 hour at the practice / agent count
}

// participantHours is the minimum allocation that counts as participating.
const participantHours = 1.0

// History records per-practice aggregate series indexed by tick.
type History struct {
	Ticks         []int
	AvgHours      [model.NumPractices][]float64
	Participation [model.NumPractices][]float64
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Len returns the number of recorded ticks.
func (h *History) Len() int {
	return len(h.Ticks)
}

// Record appends one entry per practice type for the simulation's current
// tick.
func (h *History) Record(s *Simulation) {
	stats := s.Aggregate()
	h.Ticks = append(h.Ticks, s.tick)
	for p := 0; p < model.NumPractices; p++ {
		h.AvgHours[p] = append(h.AvgHours[p], stats[p].AvgHours)
		h.Participation[p] = append(h.Participation[p], stats[p].Participation)
	}
}

// Aggregate computes the current per-practice statistics without recording
// them. Pure read of frozen state: calling it twice yields identical
// numbers. Stale institution references in allocations are skipped.
func (s *Simulation) Aggregate() [model.NumPractices]PracticeStats {
	var stats [model.NumPractices]PracticeStats
	n := float64(len(s.Agents))
	if n == 0 {
		return stats
	}

	var totalHours [model.NumPractices]float64
	var participants [model.NumPractices]int

	for _, a := range s.Agents {
		var hoursByPractice [model.NumPractices]float64
		for id, h := range a.Allocation {
			inst, ok := s.InstIndex[id]
			if !ok {
				continue
			}
			hoursByPractice[inst.Practice] += h
		}
		for p := 0; p < model.NumPractices; p++ {
			totalHours[p] += hoursByPractice[p]
			if hoursByPractice[p] >= participantHours {
				participants[p]++
			}
		}
	}

	for p := 0; p < model.NumPractices; p++ {
		stats[p].AvgHours = totalHours[p] / n
		stats[p].Participation = float64(participants[p]) / n
	}
	return stats
}
