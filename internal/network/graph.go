// Package network synthesizes the weighted social graph: a random
// substrate of family/neighbor ties plus overlay edges derived from
// institutional co-membership.
package network

import (
	"sort"

	"github.com/talgya/civitas/internal/entropy"
	"github.com/talgya/civitas/internal/model"
)

// substrateWeight is the base tie strength of a substrate edge.
const substrateWeight = 1.0

// Edge is an undirected weighted edge with A < B.
type Edge struct {
	A      model.AgentID `json:"a"`
	B      model.AgentID `json:"b"`
	Weight float64       `json:"weight"`
}

// Graph is an undirected weighted graph over agent IDs. The substrate is
// generated once; overlay weights are derived state, recomputed from
// scratch on every Rebuild so they never accumulate across ticks.
type Graph struct {
	nodes     []model.AgentID
	substrate []Edge
	adj       map[model.AgentID]map[model.AgentID]float64
}

// NewRandom builds the substrate as an Erdős–Rényi graph over the given
// agents: each unordered pair is connected with probability density.
func NewRandom(ids []model.AgentID, density float64, src *entropy.Source) *Graph {
	nodes := make([]model.AgentID, len(ids))
	copy(nodes, ids)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	g := &Graph{nodes: nodes}
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if src.Float() < density {
				g.substrate = append(g.substrate, Edge{A: nodes[i], B: nodes[j], Weight: substrateWeight})
			}
		}
	}
	g.resetToSubstrate()
	return g
}

func (g *Graph) resetToSubstrate() {
	g.adj = make(map[model.AgentID]map[model.AgentID]float64, len(g.nodes))
	for _, e := range g.substrate {
		g.addWeight(e.A, e.B, e.Weight)
	}
}

func (g *Graph) addWeight(a, b model.AgentID, w float64) {
	if g.adj[a] == nil {
		g.adj[a] = make(map[model.AgentID]float64)
	}
	if g.adj[b] == nil {
		g.adj[b] = make(map[model.AgentID]float64)
	}
	g.adj[a][b] += w
	g.adj[b][a] += w
}

// HoursFunc reports an agent's currently allocated hours at an institution.
type HoursFunc func(model.AgentID, model.InstitutionID) float64

// Rebuild drops all overlay edges and recomputes them from current
// memberships: for every unordered pair of co-members of an institution,
// edge weight grows by the mean of the two members' hours there. Pairs
// sharing several institutions accumulate weight within one rebuild only.
func (g *Graph) Rebuild(institutions []*model.Institution, hours HoursFunc) {
	g.resetToSubstrate()

	for _, inst := range institutions {
		members := make([]model.AgentID, 0, len(inst.Members))
		for id := range inst.Members {
			members = append(members, id)
		}
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })

		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				w := (hours(members[i], inst.ID) + hours(members[j], inst.ID)) / 2
				if w > 0 {
					g.addWeight(members[i], members[j], w)
				}
			}
		}
	}
}

// Neighbors returns the adjacent agent IDs in ascending order.
func (g *Graph) Neighbors(id model.AgentID) []model.AgentID {
	row := g.adj[id]
	if len(row) == 0 {
		return nil
	}
	out := make([]model.AgentID, 0, len(row))
	for n := range row {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Weight returns the edge weight between two agents, or 0 if no edge exists.
func (g *Graph) Weight(a, b model.AgentID) float64 {
	return g.adj[a][b]
}

// HasEdge reports whether an edge exists between two agents.
func (g *Graph) HasEdge(a, b model.AgentID) bool {
	_, ok := g.adj[a][b]
	return ok
}

// Nodes returns all agent IDs in ascending order.
func (g *Graph) Nodes() []model.AgentID {
	out := make([]model.AgentID, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns every undirected edge once (A < B), sorted by (A, B).
func (g *Graph) Edges() []Edge {
	var out []Edge
	for a, row := range g.adj {
		for b, w := range row {
			if a < b {
				out = append(out, Edge{A: a, B: b, Weight: w})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, row := range g.adj {
		total += len(row)
	}
	return total / 2
}

// SubstrateEdgeCount returns the number of substrate (family/neighbor) edges.
func (g *Graph) SubstrateEdgeCount() int {
	return len(g.substrate)
}
