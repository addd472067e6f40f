// Package store persists sweep runs under a data directory, one
// subdirectory per run holding metadata.json and dataset.csv.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mohar-s/episweep/internal/export"
	"github.com/mohar-s/episweep/internal/metrics"
	"github.com/mohar-s/episweep/internal/sweep"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string            `json:"id"`
	Timestamp  time.Time         `json:"timestamp"`
	Gamma      float64           `json:"gamma"`
	Population float64           `json:"population"`
	Infected   float64           `json:"infected"`
	Horizon    float64           `json:"horizon"`
	Points     int               `json:"points"`
	Solver     string            `json:"solver"`
	R0Values   []float64         `json:"r0_values"`
	Summaries  []metrics.Summary `json:"summaries"`
}

func (s *Store) Save(cfg sweep.Config, ds sweep.Dataset) (string, error) {
	runID := fmt.Sprintf("sweep_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		Gamma:      cfg.Gamma,
		Population: cfg.Population,
		Infected:   cfg.InitialInfected,
		Horizon:    cfg.Horizon,
		Points:     cfg.Points,
		Solver:     cfg.Solver,
		R0Values:   cfg.R0,
		Summaries:  metrics.SummarizeAll(ds),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "dataset.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := export.WriteCSV(csvFile, ds); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadDataset(runID string) (sweep.Dataset, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "dataset.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return export.ReadCSV(f)
}
