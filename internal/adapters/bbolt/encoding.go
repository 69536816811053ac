// JSON-serializable forms for stored blobs.
//
// encoding/json rejects NaN, and reward matrices use NaN for arm/trial
// pairs that were never realized, so datasets are stored with a nullable
// reward matrix: nil cell = unrecorded.
package bbolt

import (
	"math"

	"github.com/partialobs/simoos/internal/ports"
)

// datasetJSON is the stored form of ports.Dataset.
type datasetJSON struct {
	Contexts [][]float64  `json:"contexts"`
	Rewards  [][]*float64 `json:"rewards"`
}

func encodeDataset(ds *ports.Dataset) datasetJSON {
	out := datasetJSON{
		Contexts: ds.Contexts,
		Rewards:  make([][]*float64, len(ds.Rewards)),
	}
	for t, row := range ds.Rewards {
		enc := make([]*float64, len(row))
		for a := range row {
			if !math.IsNaN(row[a]) {
				v := row[a]
				enc[a] = &v
			}
		}
		out.Rewards[t] = enc
	}
	return out
}

func decodeDataset(dj datasetJSON) *ports.Dataset {
	ds := &ports.Dataset{
		Contexts: dj.Contexts,
		Rewards:  make([][]float64, len(dj.Rewards)),
	}
	for t, row := range dj.Rewards {
		dec := make([]float64, len(row))
		for a, p := range row {
			if p == nil {
				dec[a] = math.NaN()
			} else {
				dec[a] = *p
			}
		}
		ds.Rewards[t] = dec
	}
	return ds
}
