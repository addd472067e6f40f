// Package export writes sweep datasets in the formats the presentation
// layer consumes: CSV and JSON tables, and a standalone SVG chart.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/mohar-s/episweep/internal/sweep"
)

// WriteCSV writes the dataset as a table with columns t,r0,S,I,R, one row
// per sample, preserving dataset order (grouped by R0, t increasing).
func WriteCSV(w io.Writer, ds sweep.Dataset) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"t", "r0", "S", "I", "R"}); err != nil {
		return err
	}

	for _, s := range ds {
		row := []string{
			strconv.FormatFloat(s.T, 'f', 6, 64),
			strconv.FormatFloat(s.R0, 'f', 6, 64),
			strconv.FormatFloat(s.S, 'f', 6, 64),
			strconv.FormatFloat(s.I, 'f', 6, 64),
			strconv.FormatFloat(s.R, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a table previously written by WriteCSV.
func ReadCSV(r io.Reader) (sweep.Dataset, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return sweep.Dataset{}, nil
	}

	ds := make(sweep.Dataset, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != 5 {
			continue
		}
		vals := make([]float64, 5)
		ok := true
		for i, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		ds = append(ds, sweep.Sample{T: vals[0], R0: vals[1], S: vals[2], I: vals[3], R: vals[4]})
	}
	return ds, nil
}
