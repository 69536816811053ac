package state

import (
	"errors"
	"fmt"

	"github.com/partialobs/simoos/internal/domain/obs"
	"github.com/partialobs/simoos/internal/ports"
)

// ErrContractViolation marks malformed indexing inputs: a sentinel at an
// observed position, a concrete value at an unobserved one, a value missing
// from the catalog, or mismatched lengths. Never silently corrected.
var ErrContractViolation = errors.New("state indexing contract violation")

// SpaceSize returns, for an observation action, the number of reachable
// states and the addressable array size.
//
// Reachable states carry a concrete value at every observed position, so
// each observed feature contributes Counts[i]-1 combinations; the array
// size counts the sentinel too (Counts[i]) because the indexing math is
// defined over the full per-feature alphabet. Unobserved positions never
// vary and contribute nothing to either product. The all-zero action has a
// single "no observation" state: both values are 1.
func (c *Catalog) SpaceSize(a obs.Action) (reachable, arraySize int, err error) {
	if len(a) != c.Dim() {
		return 0, 0, fmt.Errorf("%w: action length %d, catalog dim %d", ErrContractViolation, len(a), c.Dim())
	}
	reachable, arraySize = 1, 1
	for i, b := range a {
		if b != 0 {
			reachable *= c.Counts[i] - 1
			arraySize *= c.Counts[i]
		}
	}
	return reachable, arraySize, nil
}

// IndexOf maps a partial vector to its dense state index under an
// observation action.
//
// The encoding is a mixed-radix positional fold: observed positions are
// visited in feature order, each contributing a digit (the value's catalog
// rank, sentinel = 0) with radix Counts[i]. Unobserved positions carry no
// information and are skipped, so indices are dense in [0, arraySize) as
// returned by SpaceSize. Injective over all sentinel-inclusive combinations
// by construction.
//
// Every position must be a sentinel iff its observation bit is 0; anything
// else fails with ErrContractViolation.
func (c *Catalog) IndexOf(pv []ports.Feature, a obs.Action) (int, error) {
	if len(a) != c.Dim() || len(pv) != c.Dim() {
		return 0, fmt.Errorf("%w: vector length %d, action length %d, catalog dim %d",
			ErrContractViolation, len(pv), len(a), c.Dim())
	}

	index := 0
	for i, b := range a {
		if (b != 0) != pv[i].Observed {
			return 0, fmt.Errorf("%w: position %d observed=%v but observation bit=%d",
				ErrContractViolation, i, pv[i].Observed, b)
		}
		if b == 0 {
			continue
		}
		r, ok := c.rank(i, pv[i])
		if !ok {
			return 0, fmt.Errorf("%w: value %v at position %d not in catalog",
				ErrContractViolation, pv[i].Value, i)
		}
		index = index*c.Counts[i] + r
	}
	return index, nil
}

// VectorOf is the inverse of IndexOf: it decodes a state index back into
// the partial vector it addresses under the given observation action.
// Standard mixed-radix decoding, least significant feature first. Exists
// primarily to support round-trip testing.
func (c *Catalog) VectorOf(index int, a obs.Action) ([]ports.Feature, error) {
	if len(a) != c.Dim() {
		return nil, fmt.Errorf("%w: action length %d, catalog dim %d", ErrContractViolation, len(a), c.Dim())
	}
	_, arraySize, err := c.SpaceSize(a)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= arraySize {
		return nil, fmt.Errorf("%w: index %d out of range [0, %d)", ErrContractViolation, index, arraySize)
	}

	pv := make([]ports.Feature, c.Dim())
	for i := c.Dim() - 1; i >= 0; i-- {
		if a[i] == 0 {
			continue
		}
		r := index % c.Counts[i]
		index /= c.Counts[i]
		if r > 0 {
			pv[i] = ports.Feature{Observed: true, Value: c.Values[i][r-1]}
		}
		// r == 0 decodes to the sentinel: addressable but unreachable for
		// an observed position. The round-trip back through IndexOf fails
		// its sentinel check for such indices, as it must.
	}
	return pv, nil
}
