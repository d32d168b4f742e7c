// Package space places agents and institutions in the unit square and
// answers distance queries.
package space

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/civitas/internal/entropy"
)

// Point is a position in the unit square.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Layout selects how positions are drawn.
type Layout uint8

const (
	// LayoutUniform draws positions independently and uniformly.
	LayoutUniform Layout = iota
	// LayoutClustered biases positions toward simplex-noise density peaks,
	// so the population forms neighborhoods.
	LayoutClustered
)

// LayoutByName resolves a layout name; ok is false for unknown names.
func LayoutByName(name string) (Layout, bool) {
	switch name {
	case "", "uniform":
		return LayoutUniform, true
	case "clustered":
		return LayoutClustered, true
	}
	return 0, false
}

// Field generates positions under a layout. A clustered field keeps a
// noise generator seeded from the run's entropy source.
type Field struct {
	layout Layout
	src    *entropy.Source
	noise  opensimplex.Noise
}

// NewField creates a field. The noise layer is only built for the
// clustered layout.
func NewField(layout Layout, src *entropy.Source) *Field {
	f := &Field{layout: layout, src: src}
	if layout == LayoutClustered {
		f.noise = opensimplex.NewNormalized(src.Seed64())
	}
	return f
}

// noiseFrequency scales unit-square coordinates into noise space; a few
// density peaks across the square.
const noiseFrequency = 3.0

// Place draws one position.
func (f *Field) Place() Point {
	if f.layout == LayoutUniform {
		return Point{X: f.src.Float(), Y: f.src.Float()}
	}

	// Rejection sampling against normalized noise density. The acceptance
	// loop is bounded; fall through to the last candidate if unlucky.
	var p Point
	for i := 0; i < 32; i++ {
		p = Point{X: f.src.Float(), Y: f.src.Float()}
		density := f.noise.Eval2(p.X*noiseFrequency, p.Y*noiseFrequency)
		if f.src.Float() < density {
			return p
		}
	}
	return p
}

// PlaceN draws n positions.
func (f *Field) PlaceN(n int) []Point {
	out := make([]Point, n)
	for i := range out {
		out[i] = f.Place()
	}
	return out
}
