package config

import "sort"

// Presets is the built-in scenario catalog.
var Presets = map[string]func() *Config{
	"small-town":   DefaultConfig,
	"company-town": companyTown,
	"secular-city": secularCity,
}

// GetPreset returns a fresh config for a named preset, or nil if unknown.
func GetPreset(name string) *Config {
	f, ok := Presets[name]
	if !ok {
		return nil
	}
	return f()
}

// ListPresets returns all preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// companyTown: one dominant employer, high wealth orientation, little else.
func companyTown() *Config {
	cfg := DefaultConfig()
	cfg.Values = map[string]ValueSetting{
		"wealth":    {Mean: 0.7, Spread: 0.15},
		"community": {Mean: 0.4, Spread: 0.2},
		"leisure":   {Mean: 0.3, Spread: 0.15},
	}
	cfg.Institutions = []InstitutionSpec{
		{
			Name: "Consolidated Works", Type: "work", Capacity: 200,
			Culture:       map[string]float64{"wealth": 1.0, "status": 0.6},
			IncomePerHour: 28,
		},
		{
			Name: "Company Chapel", Type: "church", Capacity: 60,
			Culture:     map[string]float64{"tradition": 0.9, "community": 0.5},
			CostPerHour: 1,
		},
		{
			Name: "Union Hall", Type: "political_org", Capacity: 80,
			Culture:     map[string]float64{"civic": 0.9, "community": 0.6},
			CostPerHour: 2,
		},
	}
	return cfg
}

// secularCity: dense clustered population, strong clubs and education,
// weak churches.
func secularCity() *Config {
	cfg := DefaultConfig()
	cfg.Agents = 400
	cfg.Layout = "clustered"
	cfg.NetworkDensity = 0.02
	cfg.AwarenessRadius = 0.2
	cfg.Values = map[string]ValueSetting{
		"growth":    {Mean: 0.7, Spread: 0.15},
		"tradition": {Mean: 0.3, Spread: 0.15},
		"leisure":   {Mean: 0.6, Spread: 0.2},
	}
	cfg.Institutions = []InstitutionSpec{
		{
			Name: "Tech Park", Type: "work", Capacity: 250,
			Culture:       map[string]float64{"growth": 0.8, "wealth": 0.7},
			IncomePerHour: 35,
		},
		{
			Name: "Old Cathedral", Type: "church", Capacity: 40,
			Culture:     map[string]float64{"tradition": 1.0},
			CostPerHour: 2,
		},
		{
			Name: "Climbing Gym", Type: "club", Capacity: 90,
			Culture:     map[string]float64{"leisure": 0.9, "status": 0.4},
			CostPerHour: 10,
		},
		{
			Name: "Evening College", Type: "education", Capacity: 150,
			Culture:     map[string]float64{"growth": 1.0, "civic": 0.3},
			CostPerHour: 12,
		},
		{
			Name: "Civic League", Type: "political_org", Capacity: 70,
			Culture:     map[string]float64{"civic": 1.0, "growth": 0.2},
			CostPerHour: 3,
		},
	}
	return cfg
}
