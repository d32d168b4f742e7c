// Simulation ties the population, institutions, social graph, and history
// together and advances them tick by tick.
package engine

import (
	"fmt"

	"github.com/talgya/civitas/internal/config"
	"github.com/talgya/civitas/internal/entropy"
	"github.com/talgya/civitas/internal/model"
	"github.com/talgya/civitas/internal/network"
	"github.com/talgya/civitas/internal/space"
)

// initialJoinProb is the membership probability for an aware agent whose
// value fit with an institution is positive.
const initialJoinProb = 0.3

// Simulation owns all mutable state: agents, institutions, graph, history.
// Single-threaded by contract; no concurrent writers.
type Simulation struct {
	Agents     []*model.Agent
	AgentIndex map[model.AgentID]*model.Agent

	Institutions []*model.Institution
	InstIndex    map[model.InstitutionID]*model.Institution

	Graph   *network.Graph
	History *History

	awarenessRadius float64
	reallocFreq     int
	src             *entropy.Source
	tick            int
}

// New builds a simulation from configuration and a seeded entropy source:
// agents and institutions are placed and sampled, initial awareness is
// broadcast by radius, initial memberships are drawn, and the social graph
// is synthesized. Tick 0 is recorded in the history.
func New(cfg *config.Config, src *entropy.Source) (*Simulation, error) {
	if cfg.Agents <= 0 {
		return nil, fmt.Errorf("agent count must be positive, got %d", cfg.Agents)
	}
	layout, ok := space.LayoutByName(cfg.Layout)
	if !ok {
		return nil, fmt.Errorf("unknown layout %q", cfg.Layout)
	}

	s := &Simulation{
		AgentIndex:      make(map[model.AgentID]*model.Agent, cfg.Agents),
		InstIndex:       make(map[model.InstitutionID]*model.Institution, len(cfg.Institutions)),
		awarenessRadius: cfg.AwarenessRadius,
		reallocFreq:     cfg.ReallocationFrequency,
		src:             src,
	}

	field := space.NewField(layout, src)

	for i := 0; i < cfg.Agents; i++ {
		a := model.NewAgent(model.AgentID(i), field.Place())
		sampleValues(a, cfg.Values, src)
		a.Money = src.Uniform(500, 2000)
		a.CommStrength = src.Uniform(0.5, 1.0)
		// Everyone is due for reoptimization on the first tick.
		a.TicksSinceRealloc = cfg.ReallocationFrequency
		s.Agents = append(s.Agents, a)
		s.AgentIndex[a.ID] = a
	}

	for i, spec := range cfg.Institutions {
		practice, ok := model.PracticeByName(spec.Type)
		if !ok {
			return nil, fmt.Errorf("institution %q: unknown practice type %q", spec.Name, spec.Type)
		}
		inst := model.NewInstitution(model.InstitutionID(i), spec.Name, practice, spec.Capacity)
		inst.Culture = cultureVector(spec.Culture)
		inst.CostPerHour = spec.CostPerHour
		inst.IncomePerHour = spec.IncomePerHour
		inst.Position = field.Place()
		s.Institutions = append(s.Institutions, inst)
		s.InstIndex[inst.ID] = inst
	}

	s.broadcastAwareness()
	s.assignInitialMemberships()

	ids := make([]model.AgentID, len(s.Agents))
	for i, a := range s.Agents {
		ids[i] = a.ID
	}
	s.Graph = network.NewRandom(ids, cfg.NetworkDensity, src)
	s.Graph.Rebuild(s.Institutions, s.HoursAt)

	s.History = NewHistory()
	s.History.Record(s)
	return s, nil
}

// sampleValues fills an agent's value vector: every dimension defaults to
// U(0,1), then configured dimensions are redrawn from a clipped normal.
func sampleValues(a *model.Agent, settings map[string]config.ValueSetting, src *entropy.Source) {
	for d := range a.Values {
		a.Values[d] = src.Float()
	}
	// Configured dimensions are applied in canonical order so draws do not
	// depend on map iteration order.
	for d := model.ValueDim(0); d < model.NumDims; d++ {
		if vs, ok := settings[model.DimName(d)]; ok {
			a.Values[d] = src.NormalClipped(vs.Mean, vs.Spread, 0, 1)
		}
	}
}

// cultureVector converts a name-keyed culture map into a vector. Unknown
// dimension names are skipped.
func cultureVector(m map[string]float64) model.ValueVector {
	var v model.ValueVector
	for name, val := range m {
		if d, ok := model.DimByName(name); ok {
			v[d] = val
		}
	}
	return v
}

// assignInitialMemberships lets each agent join aware institutions with
// probability initialJoinProb when culture·values > 0 and capacity allows.
// Initial hours come from per-practice heuristics rather than the optimizer.
func (s *Simulation) assignInitialMemberships() {
	for _, a := range s.Agents {
		for _, id := range sortedAware(a) {
			inst := s.InstIndex[id]
			fit := inst.Culture.Dot(a.Values)
			if fit <= 0 || s.src.Float() >= initialJoinProb || !inst.HasRoom() {
				continue
			}
			inst.Members[a.ID] = struct{}{}
			a.Memberships[id] = struct{}{}
			a.Allocation[id] = s.initialHours(inst.Practice)
		}
	}
}

func (s *Simulation) initialHours(p model.PracticeType) float64 {
	switch p {
	case model.PracticeWork:
		return 40
	case model.PracticeChurch:
		return s.src.Uniform(3, 8)
	case model.PracticeClub:
		return s.src.Uniform(2, 6)
	case model.PracticeEducation:
		return s.src.Uniform(10, 20)
	default:
		return s.src.Uniform(5, 15)
	}
}

// HoursAt reports an agent's currently allocated hours at an institution.
func (s *Simulation) HoursAt(agentID model.AgentID, instID model.InstitutionID) float64 {
	a, ok := s.AgentIndex[agentID]
	if !ok {
		return 0
	}
	return a.Allocation[instID]
}

// CurrentTick returns the most recently completed tick number.
func (s *Simulation) CurrentTick() int {
	return s.tick
}

// DominantPractice returns the non-work practice where the agent spends
// the most hours, or ok=false if it spends none.
func (s *Simulation) DominantPractice(a *model.Agent) (model.PracticeType, bool) {
	var totals [model.NumPractices]float64
	for id, h := range a.Allocation {
		inst, ok := s.InstIndex[id]
		if !ok || inst.Practice == model.PracticeWork {
			continue
		}
		totals[inst.Practice] += h
	}

	best := model.PracticeType(0)
	bestHours := 0.0
	for p := 0; p < model.NumPractices; p++ {
		if totals[p] > bestHours {
			best = model.PracticeType(p)
			bestHours = totals[p]
		}
	}
	return best, bestHours > 0
}
