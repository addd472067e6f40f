package export

import (
	"encoding/json"
	"io"

	"github.com/mohar-s/episweep/internal/sweep"
)

// WriteJSON writes the dataset as an indented JSON array of samples.
func WriteJSON(w io.Writer, ds sweep.Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ds)
}
