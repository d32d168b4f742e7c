// Greedy time-budget optimizer: one hour at a time to the institution with
// the highest marginal utility, under per-practice caps and an
// affordability guard.
package engine

import (
	"math"

	"github.com/talgya/civitas/internal/model"
)

// acceptThreshold is the minimum marginal utility worth an hour; below it
// the greedy loop stops.
const acceptThreshold = 0.005

// minAllocationHours filters trace allocations out of the result.
const minAllocationHours = 0.5

// moneyScale converts cash flow into utility units.
const moneyScale = 0.01

// Utility returns the utility an agent derives from h hours at an
// institution: diminishing-returns value benefits plus wealth-weighted
// income for work, minus wealth-weighted cost for everything else.
// Zero for h <= 0.
func (s *Simulation) Utility(a *model.Agent, inst *model.Institution, h float64) float64 {
	if h <= 0 {
		return 0
	}
	p := model.Profile(inst.Practice)
	effective := math.Pow(h, 1.0/p.Gamma)
	u := p.Benefits.Dot(a.Values) * effective

	wealth := a.Values[model.DimWealth]
	if inst.Practice == model.PracticeWork {
		u += h * inst.IncomePerHour * wealth * moneyScale
	} else {
		u -= h * inst.CostPerHour * wealth * moneyScale
	}
	return u
}

// MarginalUtility returns the utility gained by the next hour at an
// institution, given current allocated hours.
func (s *Simulation) MarginalUtility(a *model.Agent, inst *model.Institution, current float64) float64 {
	return s.Utility(a, inst, current+1) - s.Utility(a, inst, current)
}

// Optimize computes a fresh greedy allocation over the agent's awareness
// set. Candidates are scanned in ascending institution ID and only a
// strictly greater marginal utility displaces the incumbent, so ties
// resolve to the lowest ID. The result never exceeds the time budget and
// only keeps entries of at least minAllocationHours.
func (s *Simulation) Optimize(a *model.Agent) map[model.InstitutionID]float64 {
	aware := sortedAware(a)
	allocation := make(map[model.InstitutionID]float64, len(aware))
	for _, id := range aware {
		if _, ok := s.InstIndex[id]; ok {
			allocation[id] = 0
		}
	}

	remaining := a.TimeBudget
	for iter := 0; iter < int(a.TimeBudget); iter++ {
		if remaining <= 0 {
			break
		}

		best := model.InstitutionID(0)
		bestUtil := math.Inf(-1)
		found := false

		for _, id := range aware {
			inst, ok := s.InstIndex[id]
			if !ok {
				continue
			}
			current := allocation[id]
			if current >= model.Profile(inst.Practice).MaxHours {
				continue
			}
			if inst.Practice != model.PracticeWork && !s.canAfford(a, inst, allocation) {
				continue
			}
			mu := s.MarginalUtility(a, inst, current)
			if mu > bestUtil {
				best = id
				bestUtil = mu
				found = true
			}
		}

		if !found || bestUtil <= acceptThreshold {
			break
		}
		allocation[best]++
		remaining--
	}

	for id, h := range allocation {
		if h < minAllocationHours {
			delete(allocation, id)
		}
	}
	return allocation
}

// canAfford checks the affordability guard: the projected cash balance
// (starting money plus income from allocated work hours minus cost of
// allocated hours) must cover the institution's next hour.
func (s *Simulation) canAfford(a *model.Agent, inst *model.Institution, allocation map[model.InstitutionID]float64) bool {
	balance := a.Money
	for id, h := range allocation {
		other, ok := s.InstIndex[id]
		if !ok {
			continue
		}
		balance += h * other.IncomePerHour
		balance -= h * other.CostPerHour
	}
	return balance-inst.CostPerHour >= 0
}
