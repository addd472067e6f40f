package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGamma      = 0.1
	DefaultPopulation = 1_000_000
	DefaultInfected   = 1.0
	DefaultHorizon    = 365.0
	DefaultPoints     = 365
	DefaultR0Min      = 1.0
	DefaultR0Max      = 5.0
	DefaultR0Step     = 0.1
)

type Config struct {
	Gamma      float64  `yaml:"gamma"`
	Population float64  `yaml:"population"`
	Infected   float64  `yaml:"infected"`
	Horizon    float64  `yaml:"horizon"`
	Points     int      `yaml:"points"`
	Solver     string   `yaml:"solver"`
	Tolerance  float64  `yaml:"tolerance"`
	Workers    int      `yaml:"workers"`
	R0         R0Config `yaml:"r0"`
}

type R0Config struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

func DefaultConfig() *Config {
	return &Config{
		Gamma:      DefaultGamma,
		Population: DefaultPopulation,
		Infected:   DefaultInfected,
		Horizon:    DefaultHorizon,
		Points:     DefaultPoints,
		Solver:     "dopri",
		R0: R0Config{
			Min:  DefaultR0Min,
			Max:  DefaultR0Max,
			Step: DefaultR0Step,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
