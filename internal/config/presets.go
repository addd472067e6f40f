package config

// Presets are ready-made sweep setups for a few well-studied diseases.
// Gamma is the inverse of the mean infectious period in days; the R0 range
// brackets published estimates.
var Presets = map[string]*Config{
	"influenza": {
		Gamma: 1.0 / 4.0, Population: 1_000_000, Infected: 1,
		Horizon: 180, Points: 180,
		R0: R0Config{Min: 1.0, Max: 2.5, Step: 0.1},
	},
	"measles": {
		Gamma: 1.0 / 8.0, Population: 1_000_000, Infected: 1,
		Horizon: 365, Points: 365,
		R0: R0Config{Min: 10.0, Max: 18.0, Step: 0.5},
	},
	"covid": {
		Gamma: 1.0 / 10.0, Population: 1_000_000, Infected: 1,
		Horizon: 365, Points: 365,
		R0: R0Config{Min: 1.5, Max: 4.0, Step: 0.1},
	},
}

func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.Solver == "" {
		cfg.Solver = "dopri"
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
