package engine

import (
	"testing"

	"github.com/talgya/civitas/internal/config"
	"github.com/talgya/civitas/internal/entropy"
	"github.com/talgya/civitas/internal/model"
)

func TestNewRejectsZeroAgents(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Agents = 0
	if _, err := New(cfg, entropy.NewSource(1)); err == nil {
		t.Error("expected error for zero agents")
	}
}

func TestNewRejectsUnknownPractice(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Institutions = []config.InstitutionSpec{
		{Name: "Guild", Type: "guild", Capacity: 10},
	}
	if _, err := New(cfg, entropy.NewSource(1)); err == nil {
		t.Error("expected error for unknown practice type")
	}
}

func TestNewRejectsUnknownLayout(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Layout = "spiral"
	if _, err := New(cfg, entropy.NewSource(1)); err == nil {
		t.Error("expected error for unknown layout")
	}
}

// checkInvariants asserts the cross-cutting invariants that must hold at
// every tick: budget, capacity, set containment, and member-set symmetry.
func checkInvariants(t *testing.T, s *Simulation) {
	t.Helper()

	for _, a := range s.Agents {
		if total := a.TotalAllocated(); total > a.TimeBudget+1e-9 {
			t.Errorf("agent %d: allocation %f exceeds budget", a.ID, total)
		}
		for v, val := range a.Values {
			if val < 0 || val > 1 {
				t.Errorf("agent %d: value %s = %f outside [0,1]", a.ID, model.DimName(model.ValueDim(v)), val)
			}
		}
		for id := range a.Memberships {
			if _, ok := a.AwareOf[id]; !ok {
				t.Errorf("agent %d: member of %d without awareness", a.ID, id)
			}
			if _, ok := a.Allocation[id]; !ok {
				t.Errorf("agent %d: member of %d without allocation entry", a.ID, id)
			}
			inst, ok := s.InstIndex[id]
			if !ok {
				t.Errorf("agent %d: membership in unknown institution %d", a.ID, id)
				continue
			}
			if _, ok := inst.Members[a.ID]; !ok {
				t.Errorf("agent %d: institution %d does not list it as member", a.ID, id)
			}
		}
		for _, h := range a.Allocation {
			if h < 0.5 {
				t.Errorf("agent %d: allocation entry %f below 0.5", a.ID, h)
			}
		}
	}

	for _, inst := range s.Institutions {
		if len(inst.Members) > inst.Capacity {
			t.Errorf("institution %d: %d members over capacity %d", inst.ID, len(inst.Members), inst.Capacity)
		}
		for id := range inst.Members {
			a, ok := s.AgentIndex[id]
			if !ok {
				t.Errorf("institution %d: unknown member %d", inst.ID, id)
				continue
			}
			if _, ok := a.Memberships[inst.ID]; !ok {
				t.Errorf("institution %d: member %d does not know it", inst.ID, id)
			}
		}
	}
}

func TestNewEstablishesInvariants(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Agents = 80
	sim, err := New(cfg, entropy.NewSource(9))
	if err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, sim)
	if sim.History.Len() != 1 {
		t.Errorf("history should hold tick 0, got %d entries", sim.History.Len())
	}
}

// Scenario: one church covering the whole field, perfect value fit. Each
// aware agent joins with probability 0.3, so membership across seeded runs
// is centered near 3 of 10.
func TestInitialMembershipProbability(t *testing.T) {
	cfg := &config.Config{
		Agents:                10,
		NetworkDensity:        0.05,
		AwarenessRadius:       2.0, // Covers the entire unit square
		ReallocationFrequency: 4,
		Layout:                "uniform",
		Values: map[string]config.ValueSetting{
			"community": {Mean: 1.0, Spread: 0},
			"tradition": {Mean: 0, Spread: 0},
			"growth":    {Mean: 0, Spread: 0},
			"civic":     {Mean: 0, Spread: 0},
			"status":    {Mean: 0, Spread: 0},
			"leisure":   {Mean: 0, Spread: 0},
			"wealth":    {Mean: 0, Spread: 0},
		},
		Institutions: []config.InstitutionSpec{
			{
				Name: "Chapel", Type: "church", Capacity: 100,
				Culture: map[string]float64{"community": 1.0},
			},
		},
	}

	const runs = 300
	total := 0
	for seed := int64(0); seed < runs; seed++ {
		sim, err := New(cfg, entropy.NewSource(seed))
		if err != nil {
			t.Fatal(err)
		}
		members := len(sim.Institutions[0].Members)
		if members < 0 || members > 10 {
			t.Fatalf("seed %d: member count %d outside [0,10]", seed, members)
		}
		total += members
	}

	mean := float64(total) / runs
	if mean < 2.4 || mean > 3.6 {
		t.Errorf("mean membership %f not centered near 3", mean)
	}
}

// Scenario: one employer with income, capacity for everyone. After a full
// reoptimization cycle no member exceeds the work cap, and 40 hours beat
// 0 hours for every wealth-positive agent.
func TestWorkScenario(t *testing.T) {
	cfg := &config.Config{
		Agents:                10,
		NetworkDensity:        0.1,
		AwarenessRadius:       2.0,
		ReallocationFrequency: 1,
		Layout:                "uniform",
		Values: map[string]config.ValueSetting{
			"wealth":  {Mean: 0.8, Spread: 0},
			"leisure": {Mean: 0.1, Spread: 0},
		},
		Institutions: []config.InstitutionSpec{
			{
				Name: "Mill", Type: "work", Capacity: 10,
				Culture:       map[string]float64{"wealth": 1.0},
				IncomePerHour: 25,
			},
		},
	}

	sim, err := New(cfg, entropy.NewSource(3))
	if err != nil {
		t.Fatal(err)
	}
	sim.Step()
	checkInvariants(t, sim)

	mill := sim.Institutions[0]
	for id := range mill.Members {
		a := sim.AgentIndex[id]
		if h := a.Allocation[mill.ID]; h > 60 {
			t.Errorf("agent %d: work hours %f exceed cap 60", id, h)
		}
	}
	for _, a := range sim.Agents {
		if a.Values[model.DimWealth] > 0 {
			if sim.Utility(a, mill, 40) <= sim.Utility(a, mill, 0) {
				t.Errorf("agent %d: 40 work hours should beat 0", a.ID)
			}
		}
	}
}

func TestDominantPractice(t *testing.T) {
	church := model.NewInstitution(0, "Chapel", model.PracticeChurch, 10)
	work := model.NewInstitution(1, "Mill", model.PracticeWork, 10)
	a := testAgent(model.ValueVector{1, 0, 0, 0, 0, 0, 0}, 500)
	s := newBenchSim([]*model.Agent{a}, []*model.Institution{church, work})

	if _, ok := s.DominantPractice(a); ok {
		t.Error("agent with no hours should have no dominant practice")
	}

	a.Allocation[work.ID] = 40 // Work is excluded
	a.Allocation[church.ID] = 6
	p, ok := s.DominantPractice(a)
	if !ok || p != model.PracticeChurch {
		t.Errorf("dominant practice = %v (%v), want church", p, ok)
	}
}
