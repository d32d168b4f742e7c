package space

import (
	"math"
	"testing"

	"github.com/talgya/civitas/internal/entropy"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b     Point
		expected float64
	}{
		{Point{0, 0}, Point{0, 0}, 0},
		{Point{0, 0}, Point{3, 4}, 5},
		{Point{0.5, 0.5}, Point{0.5, 0.9}, 0.4},
	}
	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Distance(%v, %v) = %f, want %f", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestLayoutByName(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		ok     bool
	}{
		{"uniform", LayoutUniform, true},
		{"", LayoutUniform, true},
		{"clustered", LayoutClustered, true},
		{"hexagonal", 0, false},
	}
	for _, tt := range tests {
		got, ok := LayoutByName(tt.name)
		if ok != tt.ok || (ok && got != tt.layout) {
			t.Errorf("LayoutByName(%q) = (%v, %v), want (%v, %v)", tt.name, got, ok, tt.layout, tt.ok)
		}
	}
}

func TestPlaceInUnitSquare(t *testing.T) {
	for _, layout := range []Layout{LayoutUniform, LayoutClustered} {
		f := NewField(layout, entropy.NewSource(11))
		for _, p := range f.PlaceN(500) {
			if p.X < 0 || p.X >= 1 || p.Y < 0 || p.Y >= 1 {
				t.Fatalf("layout %d: point %v outside unit square", layout, p)
			}
		}
	}
}

func TestPlaceDeterministic(t *testing.T) {
	for _, layout := range []Layout{LayoutUniform, LayoutClustered} {
		a := NewField(layout, entropy.NewSource(42)).PlaceN(100)
		b := NewField(layout, entropy.NewSource(42)).PlaceN(100)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("layout %d: placement diverged at %d: %v vs %v", layout, i, a[i], b[i])
			}
		}
	}
}
