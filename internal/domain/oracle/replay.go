package oracle

import (
	"fmt"
	"math"

	"github.com/partialobs/simoos/internal/ports"
)

// Name identifies the oracle in results, including its trade-off parameter.
func (o *Oracle) Name() string {
	return fmt.Sprintf("SimOOS-Oracle (beta=%g)", o.cfg.Beta)
}

// ChooseFeaturesToObserve returns the selected action's observed feature
// indices, restricted to the indices currently on offer. The observation
// never adapts; that is the defining property of the fixed oracle.
func (o *Oracle) ChooseFeaturesToObserve(trial int, featureIndices []int) []int {
	available := make(map[int]bool, len(featureIndices))
	for _, i := range featureIndices {
		available[i] = true
	}
	out := make([]int, 0, len(featureIndices))
	for _, i := range o.SelectedAction().Indices() {
		if available[i] {
			out = append(out, i)
		}
	}
	return out
}

// ChooseArm maps the trial's partial vector to its state index under the
// fixed action and returns the pool position of that state's precomputed
// best arm.
//
// A state never populated from historical data yields ErrUnreachableState.
// When the best arm is absent from the pool the behavior depends on
// Config.FallbackToPool: fail fast with ErrArmNotInPool, or fall back to
// the pool arm with the highest historical mean for this state (first
// maximum on ties).
func (o *Oracle) ChooseArm(trial int, observed []ports.Feature, poolIndices []int) (int, error) {
	tbl := &o.tables[o.sel]

	idx, err := o.catalog.IndexOf(observed, tbl.action)
	if err != nil {
		return 0, err
	}
	if tbl.visits[idx] == 0 || tbl.best[idx] < 0 {
		return 0, fmt.Errorf("%w: state %d under action %s", ErrUnreachableState, idx, tbl.action)
	}
	o.states = append(o.states, idx)

	for pos, arm := range poolIndices {
		if arm == tbl.best[idx] {
			return pos, nil
		}
	}

	if o.cfg.FallbackToPool {
		bestPos := -1
		for pos, arm := range poolIndices {
			if arm < 0 || arm >= o.cfg.Arms || math.IsNaN(tbl.mean[idx][arm]) {
				continue
			}
			if bestPos < 0 || tbl.mean[idx][arm] > tbl.mean[idx][poolIndices[bestPos]] {
				bestPos = pos
			}
		}
		if bestPos >= 0 {
			return bestPos, nil
		}
	}
	return 0, fmt.Errorf("%w: arm %d at state %d, pool %v", ErrArmNotInPool, tbl.best[idx], idx, poolIndices)
}

// Update accumulates the trial's gain (reward minus the fixed action's
// observation cost) into the cumulative-gain sequence and the per-trial
// reward/cost logs. Trials must arrive strictly in order; the harness
// guarantees it.
func (o *Oracle) Update(trial int, poolPos int, reward float64, costs []float64, observed []ports.Feature, poolIndices []int) {
	cost := o.SelectedAction().Cost(costs)

	o.arms = append(o.arms, poolIndices[poolPos])
	o.rewards = append(o.rewards, reward)
	o.costs = append(o.costs, cost)
	o.gains = append(o.gains, reward-cost)
	o.cum = append(o.cum, o.cum[len(o.cum)-1]+reward-cost)
}

// States returns the per-trial state-index log recorded by ChooseArm.
func (o *Oracle) States() []int { return o.states }

// Result snapshots the replay logs as a ports.RunResult.
func (o *Oracle) Result() *ports.RunResult {
	return &ports.RunResult{
		Policy:         o.Name(),
		Trials:         len(o.gains),
		Arms:           append([]int(nil), o.arms...),
		Rewards:        append([]float64(nil), o.rewards...),
		Costs:          append([]float64(nil), o.costs...),
		Gains:          append([]float64(nil), o.gains...),
		CumulativeGain: append([]float64(nil), o.cum...),
		TotalGain:      o.cum[len(o.cum)-1],
	}
}
