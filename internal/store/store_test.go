package store

import (
	"testing"

	"github.com/mohar-s/episweep/internal/sweep"
)

func testSweep() (sweep.Config, sweep.Dataset) {
	cfg := sweep.Config{
		R0:              []float64{1.5, 2.5},
		Gamma:           0.1,
		Population:      1000,
		InitialInfected: 1,
		Horizon:         10,
		Points:          3,
		Solver:          "dopri",
	}
	ds := sweep.Dataset{
		{T: 0, R0: 1.5, S: 999, I: 1, R: 0},
		{T: 5, R0: 1.5, S: 998, I: 1.3, R: 0.7},
		{T: 10, R0: 1.5, S: 997, I: 1.5, R: 1.5},
		{T: 0, R0: 2.5, S: 999, I: 1, R: 0},
		{T: 5, R0: 2.5, S: 996, I: 2.8, R: 1.2},
		{T: 10, R0: 2.5, S: 990, I: 6, R: 4},
	}
	return cfg, ds
}

func TestStore_SaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	cfg, ds := testSweep()
	runID, err := st.Save(cfg, ds)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("ID = %q, want %q", meta.ID, runID)
	}
	if meta.Gamma != 0.1 || meta.Population != 1000 {
		t.Errorf("metadata lost parameters: %+v", meta)
	}
	if len(meta.Summaries) != 2 {
		t.Errorf("got %d summaries, want 2", len(meta.Summaries))
	}

	loaded, err := st.LoadDataset(runID)
	if err != nil {
		t.Fatalf("load dataset failed: %v", err)
	}
	if len(loaded) != len(ds) {
		t.Fatalf("dataset has %d samples, want %d", len(loaded), len(ds))
	}
	if got := loaded.R0Values(); len(got) != 2 || got[0] != 1.5 {
		t.Errorf("R0 groups = %v", got)
	}
}

func TestStore_List(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("fresh store lists %d runs", len(runs))
	}

	cfg, ds := testSweep()
	if _, err := st.Save(cfg, ds); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("listed %d runs, want 1", len(runs))
	}
}

func TestStore_ListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/does-not-exist")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("missing base dir should list empty, got error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs", len(runs))
	}
}
