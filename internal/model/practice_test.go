package model

import (
	"testing"
)

func TestProfileTable(t *testing.T) {
	for _, p := range Practices() {
		prof := Profile(p)
		if prof.Gamma <= 1 {
			t.Errorf("%s: diminishing-returns exponent must be > 1, got %f", PracticeName(p), prof.Gamma)
		}
		if prof.MaxHours <= 0 {
			t.Errorf("%s: max hours must be positive, got %f", PracticeName(p), prof.MaxHours)
		}
		if prof.OptimalHours <= 0 {
			t.Errorf("%s: optimal hours must be positive, got %f", PracticeName(p), prof.OptimalHours)
		}
	}
}

func TestProfileCaps(t *testing.T) {
	tests := []struct {
		practice PracticeType
		max      float64
	}{
		{PracticeWork, 60},
		{PracticeChurch, 20},
		{PracticeClub, 15},
		{PracticePoliticalOrg, 30},
		{PracticeEducation, 40},
		{PracticeCommunityCenter, 50},
	}
	for _, tt := range tests {
		if got := Profile(tt.practice).MaxHours; got != tt.max {
			t.Errorf("%s: cap = %f, want %f", PracticeName(tt.practice), got, tt.max)
		}
	}
}

func TestProfileUnknownType(t *testing.T) {
	prof := Profile(PracticeType(200))
	if prof.MaxHours != DefaultMaxHours {
		t.Errorf("unknown type cap = %f, want %f", prof.MaxHours, DefaultMaxHours)
	}
	if prof.Benefits != (ValueVector{}) {
		t.Errorf("unknown type should have zero benefits, got %v", prof.Benefits)
	}
}

func TestPracticeByName(t *testing.T) {
	for _, p := range Practices() {
		got, ok := PracticeByName(PracticeName(p))
		if !ok || got != p {
			t.Errorf("round-trip failed for %s", PracticeName(p))
		}
	}
	if _, ok := PracticeByName("bowling_league"); ok {
		t.Error("expected unknown practice name to fail")
	}
}
