// Package state implements the partial-observation state-indexing engine:
// the per-feature value catalog, the mixed-radix bijection between partial
// context vectors and dense integer state indices, and the round-completion
// predicate used by online algorithms.
package state

import (
	"fmt"
	"sort"

	"github.com/partialobs/simoos/internal/domain/obs"
	"github.com/partialobs/simoos/internal/ports"
)

// Catalog records, per feature, the sorted distinct values seen in a
// dataset. Rank 0 of every feature is reserved for the unobserved sentinel;
// concrete values occupy ranks 1..len(Values[i]) in ascending value order.
// Built once per dataset, read-only thereafter.
type Catalog struct {
	Values [][]float64 // sorted distinct concrete values per feature
	Counts []int       // len(Values[i]) + 1, sentinel included
}

// BuildCatalog scans an N×D matrix of fully observed contexts and returns
// the catalog of per-feature value alphabets.
func BuildCatalog(contexts [][]float64) (*Catalog, error) {
	if len(contexts) == 0 {
		return nil, fmt.Errorf("build catalog: empty context matrix")
	}
	dim := len(contexts[0])
	if dim == 0 {
		return nil, fmt.Errorf("build catalog: zero-dimensional contexts")
	}
	for t, row := range contexts {
		if len(row) != dim {
			return nil, fmt.Errorf("build catalog: row %d has %d features, want %d", t, len(row), dim)
		}
	}

	c := &Catalog{
		Values: make([][]float64, dim),
		Counts: make([]int, dim),
	}
	for i := 0; i < dim; i++ {
		distinct := make(map[float64]struct{}, len(contexts))
		for _, row := range contexts {
			distinct[row[i]] = struct{}{}
		}
		vals := make([]float64, 0, len(distinct))
		for v := range distinct {
			vals = append(vals, v)
		}
		sort.Float64s(vals)
		c.Values[i] = vals
		c.Counts[i] = len(vals) + 1
	}
	return c, nil
}

// Dim returns the context dimensionality the catalog was built for.
func (c *Catalog) Dim() int { return len(c.Counts) }

// rank returns the position of f within feature i's alphabet: 0 for the
// unobserved sentinel, 1+position for a concrete value. ok is false when a
// concrete value is not in the catalog.
func (c *Catalog) rank(i int, f ports.Feature) (int, bool) {
	if !f.Observed {
		return 0, true
	}
	vals := c.Values[i]
	pos := sort.SearchFloat64s(vals, f.Value)
	if pos == len(vals) || vals[pos] != f.Value {
		return 0, false
	}
	return pos + 1, true
}

// Observed wraps a concrete feature value.
func Observed(v float64) ports.Feature { return ports.Feature{Observed: true, Value: v} }

// Unobserved returns the sentinel feature slot.
func Unobserved() ports.Feature { return ports.Feature{} }

// Mask turns a fully observed context row into the partial vector produced
// by an observation action: observed positions keep their value, the rest
// become the sentinel.
func Mask(row []float64, a obs.Action) []ports.Feature {
	pv := make([]ports.Feature, len(row))
	for i, v := range row {
		if i < len(a) && a[i] != 0 {
			pv[i] = ports.Feature{Observed: true, Value: v}
		}
	}
	return pv
}
