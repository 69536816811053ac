// Package obs implements observation actions: binary feature-subset vectors
// an agent can pay to observe at a trial. It covers budgeted enumeration of
// all actions and generation of sub-actions/substates for information
// sharing across related partial observations.
//
// All functions are pure and deterministic: the same inputs always produce
// the same vectors in the same order.
package obs

import (
	"fmt"
	"strings"
)

// Action is an observation action: a binary vector over the context
// features. Action[i] == 1 means feature i is observed (and paid for).
type Action []int

// Weight returns the Hamming weight — the number of observed features.
func (a Action) Weight() int {
	w := 0
	for _, b := range a {
		if b != 0 {
			w++
		}
	}
	return w
}

// Indices returns the positions of the observed features, ascending.
func (a Action) Indices() []int {
	idx := make([]int, 0, a.Weight())
	for i, b := range a {
		if b != 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

// Covers reports whether sub is an element-wise sub-vector of a
// (sub[i] <= a[i] for every position).
func (a Action) Covers(sub Action) bool {
	if len(sub) != len(a) {
		return false
	}
	for i, b := range sub {
		if b != 0 && a[i] == 0 {
			return false
		}
	}
	return true
}

// Cost returns the total observation cost of the action under a per-feature
// cost vector: the dot product of the binary vector with costs.
func (a Action) Cost(costs []float64) float64 {
	total := 0.0
	for i, b := range a {
		if b != 0 {
			total += costs[i]
		}
	}
	return total
}

// Equal reports whether two actions are identical.
func (a Action) Equal(b Action) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if (a[i] != 0) != (b[i] != 0) {
			return false
		}
	}
	return true
}

// String renders the action as a bit string, e.g. "0110".
func (a Action) String() string {
	var sb strings.Builder
	for _, b := range a {
		if b != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// EnumerateAll returns all 2^d binary vectors of length d by direct binary
// expansion of 0..2^d-1, most significant bit first. Cost is 2^d, so d is
// practically bounded around 20; Enumerate documents the limit.
func EnumerateAll(d int) []Action {
	out := make([]Action, 1<<d)
	for i := range out {
		a := make(Action, d)
		for p := 0; p < d; p++ {
			a[p] = (i >> (d - 1 - p)) & 1
		}
		out[i] = a
	}
	return out
}

// Enumerate returns every distinct binary vector of length d with Hamming
// weight at most m, each exactly once. The order is deterministic: when
// m == d the full 2^d expansion in numeric order, otherwise weight-ascending
// with positions in lexicographic order.
//
// The m == d fast path exists because weight-by-weight generation of all
// subsets is much slower than direct binary expansion when every subset is
// wanted anyway. Both paths are exponential; callers must bound d (around 20
// for the full expansion).
func Enumerate(d, m int) ([]Action, error) {
	if d < 0 || m < 0 || m > d {
		return nil, fmt.Errorf("enumerate observation actions: invalid dims d=%d m=%d", d, m)
	}
	if m == d {
		return EnumerateAll(d), nil
	}

	var out []Action
	for k := 0; k <= m; k++ {
		out = append(out, chooseK(d, k)...)
	}
	return out, nil
}

// chooseK generates all length-d binary vectors with exactly k ones, in
// lexicographic order of the chosen positions. Distinct by construction —
// no dedup pass is needed.
func chooseK(d, k int) []Action {
	var out []Action
	pos := make([]int, k)

	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			a := make(Action, d)
			for _, p := range pos {
				a[p] = 1
			}
			out = append(out, a)
			return
		}
		for p := start; p <= d-(k-depth); p++ {
			pos[depth] = p
			rec(p+1, depth+1)
		}
	}
	rec(0, 0)
	return out
}
