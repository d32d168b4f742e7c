// Package model provides the agent and institution data model plus the
// fixed catalog of practice profiles.
package model

import (
	"github.com/talgya/civitas/internal/space"
)

// AgentID is a unique identifier for an agent.
type AgentID uint64

// InstitutionID is a unique identifier for an institution. IDs are assigned
// in configuration order and serve as the stable tie-break key wherever a
// deterministic ordering over institutions is needed.
type InstitutionID uint64

// ValueDim indexes a dimension of the shared value space.
type ValueDim uint8

const (
	DimCommunity ValueDim = iota
	DimTradition
	DimGrowth
	DimCivic
	DimStatus
	DimLeisure
	DimWealth
)

// NumDims is the number of value dimensions.
const NumDims = 7

// ValueVector holds one scalar per value dimension. Agent values live in
// [0,1]; institution culture vectors may carry signed entries.
// Fixed-size array, inline in Agent — no per-agent map allocation.
type ValueVector [NumDims]float64

// Dot returns the dot product of two vectors (the "fit" between an
// institution's culture and an agent's values).
func (v ValueVector) Dot(o ValueVector) float64 {
	var sum float64
	for i := range v {
		sum += v[i] * o[i]
	}
	return sum
}

var dimNames = [NumDims]string{
	"community", "tradition", "growth", "civic", "status", "leisure", "wealth",
}

// DimName returns the canonical name of a dimension.
func DimName(d ValueDim) string {
	if int(d) < len(dimNames) {
		return dimNames[d]
	}
	return "unknown"
}

// DimByName resolves a dimension name; ok is false for unknown names.
func DimByName(name string) (ValueDim, bool) {
	for i, n := range dimNames {
		if n == name {
			return ValueDim(i), true
		}
	}
	return 0, false
}

// DefaultTimeBudget is the weekly hour budget every agent starts with.
const DefaultTimeBudget = 168.0

// Agent is a person in the simulation. The engine exclusively owns the
// agent collection; institutions refer to agents by ID only.
type Agent struct {
	ID       AgentID     `json:"id"`
	Position space.Point `json:"position"`

	Values ValueVector `json:"values"` // Each in [0,1]

	TimeBudget float64 `json:"time_budget"` // Weekly hours (168)
	Money      float64 `json:"money"`       // Starting cash balance

	// Allocation maps institution → weekly hours; entries are >= 0.5.
	Allocation map[InstitutionID]float64 `json:"allocation"`

	// Memberships is a subset of Allocation's keys, which is a subset of AwareOf.
	Memberships map[InstitutionID]struct{} `json:"memberships"`

	// AwareOf only ever grows; diffusion and radius broadcast add to it.
	AwareOf map[InstitutionID]struct{} `json:"aware_of"`

	CommStrength      float64 `json:"comm_strength"` // In [0.5, 1.0]
	TicksSinceRealloc int     `json:"ticks_since_realloc"`
}

// NewAgent returns an agent with empty allocation and awareness sets.
func NewAgent(id AgentID, pos space.Point) *Agent {
	return &Agent{
		ID:          id,
		Position:    pos,
		TimeBudget:  DefaultTimeBudget,
		Allocation:  make(map[InstitutionID]float64),
		Memberships: make(map[InstitutionID]struct{}),
		AwareOf:     make(map[InstitutionID]struct{}),
	}
}

// TotalAllocated returns the sum of all allocated hours.
func (a *Agent) TotalAllocated() float64 {
	var total float64
	for _, h := range a.Allocation {
		total += h
	}
	return total
}

// FreeTime returns unallocated hours in the weekly budget.
func (a *Agent) FreeTime() float64 {
	return a.TimeBudget - a.TotalAllocated()
}

// Institution offers one practice at a spatial position, with bounded
// capacity. Members is a non-owning back-reference: agent IDs resolved
// through the engine's agent index.
type Institution struct {
	ID       InstitutionID `json:"id"`
	Name     string        `json:"name"`
	Practice PracticeType  `json:"practice"`
	Capacity int           `json:"capacity"`

	Members map[AgentID]struct{} `json:"members"`

	Culture       ValueVector `json:"culture"` // Signed entries
	CostPerHour   float64     `json:"cost_per_hour"`
	IncomePerHour float64     `json:"income_per_hour"`

	Position space.Point `json:"position"`
}

// NewInstitution returns an institution with an empty member set.
func NewInstitution(id InstitutionID, name string, practice PracticeType, capacity int) *Institution {
	return &Institution{
		ID:       id,
		Name:     name,
		Practice: practice,
		Capacity: capacity,
		Members:  make(map[AgentID]struct{}),
	}
}

// HasRoom reports whether the member set is below capacity.
func (in *Institution) HasRoom() bool {
	return len(in.Members) < in.Capacity
}
