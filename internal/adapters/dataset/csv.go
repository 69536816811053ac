// Package dataset loads and generates the context/reward matrices the
// simulator replays. CSV is the interchange format: one row per trial,
// plain decimal numbers, and empty cells (or "NaN") in a reward file for
// arm/trial pairs that were never realized.
package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/partialobs/simoos/internal/ports"
)

// LoadMatrix reads a CSV file into a dense float matrix. Empty cells and
// "NaN" parse to NaN; every row must have the same number of columns.
func LoadMatrix(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open matrix: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: empty matrix", path)
	}

	out := make([][]float64, len(records))
	for i, rec := range records {
		row := make([]float64, len(rec))
		for j, cell := range rec {
			if cell == "" || cell == "NaN" {
				row[j] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("read %s: row %d col %d: %w", path, i+1, j+1, err)
			}
			row[j] = v
		}
		out[i] = row
	}
	return out, nil
}

// SaveMatrix writes a matrix as CSV. NaN serializes to an empty cell, so a
// save/load round-trip preserves unrecorded entries.
func SaveMatrix(path string, m [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create matrix: %w", err)
	}

	w := csv.NewWriter(f)
	rec := []string{}
	for _, row := range m {
		rec = rec[:0]
		for _, v := range row {
			if math.IsNaN(v) {
				rec = append(rec, "")
				continue
			}
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(rec); err != nil {
			f.Close()
			return fmt.Errorf("write matrix: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write matrix: %w", err)
	}
	return f.Close()
}

// Load reads a dataset from a pair of CSV files and checks the shapes
// agree. Context cells must all be recorded; only rewards may be missing.
func Load(contextsPath, rewardsPath string) (*ports.Dataset, error) {
	contexts, err := LoadMatrix(contextsPath)
	if err != nil {
		return nil, err
	}
	rewards, err := LoadMatrix(rewardsPath)
	if err != nil {
		return nil, err
	}
	if len(contexts) != len(rewards) {
		return nil, fmt.Errorf("dataset: %d context rows but %d reward rows", len(contexts), len(rewards))
	}
	for t, row := range contexts {
		for i, v := range row {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("dataset: missing context value at trial %d feature %d", t, i)
			}
		}
	}
	return &ports.Dataset{Contexts: contexts, Rewards: rewards}, nil
}

// Save writes a dataset to a pair of CSV files.
func Save(ds *ports.Dataset, contextsPath, rewardsPath string) error {
	if err := SaveMatrix(contextsPath, ds.Contexts); err != nil {
		return err
	}
	return SaveMatrix(rewardsPath, ds.Rewards)
}
