package obs

import (
	"fmt"

	"github.com/partialobs/simoos/internal/ports"
)

// SubActions returns every observation action that is an element-wise
// sub-vector of a. For an action with weight k there are exactly 2^k of
// them, distinct by construction, ordered by the binary expansion over the
// observed positions (all-zero first, a itself last).
func SubActions(a Action) []Action {
	observed := a.Indices()
	k := len(observed)

	out := make([]Action, 1<<k)
	for i := range out {
		sub := make(Action, len(a))
		for j, p := range observed {
			sub[p] = (i >> (k - 1 - j)) & 1
		}
		out[i] = sub
	}
	return out
}

// Substate masks a partial vector down to sub: every position where sub has
// bit 0 becomes unobserved, every position with bit 1 keeps its value.
// sub must not observe a position that is unobserved in pv — that would
// fabricate information — so that case is a contract error.
func Substate(pv []ports.Feature, sub Action) ([]ports.Feature, error) {
	if len(pv) != len(sub) {
		return nil, fmt.Errorf("substate: vector length %d != action length %d", len(pv), len(sub))
	}
	for i, b := range sub {
		if b != 0 && !pv[i].Observed {
			return nil, fmt.Errorf("substate: sub-action observes position %d which is unobserved in the vector", i)
		}
	}

	out := make([]ports.Feature, len(pv))
	for i, b := range sub {
		if b != 0 {
			out[i] = pv[i]
		}
	}
	return out, nil
}

// Substates returns every substate of pv obtainable by forgetting a subset
// of the features observed under action a, together with the sub-action
// that produced each one. The all-unobserved trivial substate is always
// included; pv itself is the last element.
//
// pv must be consistent with a (observed exactly where a has bit 1).
func Substates(pv []ports.Feature, a Action) ([][]ports.Feature, []Action, error) {
	if len(pv) != len(a) {
		return nil, nil, fmt.Errorf("substates: vector length %d != action length %d", len(pv), len(a))
	}
	for i, b := range a {
		if (b != 0) != pv[i].Observed {
			return nil, nil, fmt.Errorf("substates: position %d observed=%v but action bit=%d", i, pv[i].Observed, b)
		}
	}

	subs := SubActions(a)
	vectors := make([][]ports.Feature, len(subs))
	for i, sub := range subs {
		v, err := Substate(pv, sub)
		if err != nil {
			return nil, nil, err
		}
		vectors[i] = v
	}
	return vectors, subs, nil
}
