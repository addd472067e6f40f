package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mohar-s/episweep/internal/sweep"
)

func sampleDataset() sweep.Dataset {
	return sweep.Dataset{
		{T: 0, R0: 2.0, S: 999, I: 1, R: 0},
		{T: 1, R0: 2.0, S: 998.5, I: 1.2, R: 0.3},
		{T: 0, R0: 3.0, S: 999, I: 1, R: 0},
		{T: 1, R0: 3.0, S: 998.2, I: 1.4, R: 0.4},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleDataset()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "t,r0,S,I,R" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 5 {
		t.Errorf("got %d lines, want 5", len(lines))
	}

	ds, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(ds) != 4 {
		t.Fatalf("got %d samples, want 4", len(ds))
	}
	if ds[1].S != 998.5 || ds[1].R0 != 2.0 {
		t.Errorf("sample 1 = %+v", ds[1])
	}
	if got := ds.R0Values(); len(got) != 2 {
		t.Errorf("round-tripped dataset has %d R0 groups, want 2", len(got))
	}
}

func TestReadCSV_Empty(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("t,r0,S,I,R\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(ds) != 0 {
		t.Errorf("got %d samples from header-only input", len(ds))
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleDataset()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var decoded []map[string]float64
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 4 {
		t.Fatalf("got %d records, want 4", len(decoded))
	}
	if decoded[0]["s"] != 999 || decoded[0]["r0"] != 2.0 {
		t.Errorf("record 0 = %v", decoded[0])
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	series := sampleDataset().Series(2.0)
	if err := WriteSVG(&buf, series, 800, 400); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, `<?xml`) {
		t.Error("missing XML declaration")
	}
	if strings.Count(out, "<polyline") != 3 {
		t.Errorf("expected 3 polylines (S, I, R), got %d", strings.Count(out, "<polyline"))
	}
	if !strings.Contains(out, "R0=2.00") {
		t.Error("missing R0 label")
	}
}

func TestWriteSVG_TooShort(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, sweep.Dataset{{T: 0, R0: 2, S: 1, I: 0, R: 0}}, 800, 400); err == nil {
		t.Error("expected error for single-sample series")
	}
}
