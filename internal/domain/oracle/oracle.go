// Package oracle implements the fixed-observation oracle policy: a
// non-adaptive baseline with hindsight access to the true state-occurrence
// probabilities and expected rewards of a historical dataset. It picks the
// single observation action maximizing expected reward minus observation
// cost, then replays that action for the whole time horizon.
package oracle

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/partialobs/simoos/internal/domain/obs"
	"github.com/partialobs/simoos/internal/domain/state"
	"github.com/partialobs/simoos/internal/ports"
)

var (
	// ErrUnreachableState is returned when a trial's partial vector maps to
	// a state never populated from historical data. Surfacing it (rather
	// than defaulting) distinguishes insufficient training data from a
	// caller bug.
	ErrUnreachableState = errors.New("oracle: state has no historical statistics")

	// ErrArmNotInPool is returned when the precomputed best arm for a state
	// is absent from the offered pool and no fallback applies.
	ErrArmNotInPool = errors.New("oracle: best arm not in offered pool")
)

// Config parameterizes the oracle's batch construction.
type Config struct {
	// Costs is the per-feature observation cost vector, length D.
	Costs []float64
	// Arms is the number of arms in the reward matrix.
	Arms int
	// Budget is the maximum number of simultaneously observed features.
	Budget int
	// Beta trades expected reward against observation cost in the action
	// value: value = beta*E[best reward] - cost.
	Beta float64
	// FallbackToPool selects the arm-not-in-pool behavior at replay time:
	// false fails fast with ErrArmNotInPool, true falls back to the best
	// arm (by historical mean for the trial's state) present in the pool.
	FallbackToPool bool
}

// actionTable holds the per-state statistics for one observation action.
// Arrays are arenas sized by the closed-form addressable state count; only
// indices reached from the dataset are populated.
type actionTable struct {
	action obs.Action
	visits []int       // group size per state index
	prob   []float64   // visits / time horizon
	mean   [][]float64 // per state per arm mean recorded reward, NaN default
	best   []int       // best arm per state, -1 default
	bestR  []float64   // best arm's mean reward per state, NaN default
	value  float64     // beta * sum(prob*bestR) - observation cost
}

// Oracle is a ports.Policy. Construction computes the full statistics
// tables; replay is read-only apart from the per-trial gain logs, which the
// oracle instance exclusively owns.
type Oracle struct {
	cfg     Config
	catalog *state.Catalog
	tables  []actionTable
	sel     int // index of the selected observation action

	// Replay logs, appended strictly in trial order.
	states  []int
	arms    []int
	rewards []float64
	costs   []float64
	gains   []float64
	cum     []float64
}

// New builds the oracle from a fully observed dataset: feature-value
// catalog, budgeted observation-action enumeration, per-(action,state,arm)
// reward statistics, and the value-maximizing fixed observation action.
func New(ds *ports.Dataset, cfg Config) (*Oracle, error) {
	n, dim := ds.Trials(), ds.Dim()
	if n == 0 || dim == 0 {
		return nil, fmt.Errorf("oracle: empty dataset")
	}
	if len(ds.Rewards) != n {
		return nil, fmt.Errorf("oracle: %d context rows but %d reward rows", n, len(ds.Rewards))
	}
	if cfg.Arms <= 0 || cfg.Arms > ds.Arms() {
		return nil, fmt.Errorf("oracle: %d arms configured, dataset has %d", cfg.Arms, ds.Arms())
	}
	if len(cfg.Costs) != dim {
		return nil, fmt.Errorf("oracle: cost vector length %d, context dimensionality %d", len(cfg.Costs), dim)
	}

	catalog, err := state.BuildCatalog(ds.Contexts)
	if err != nil {
		return nil, err
	}
	actions, err := obs.Enumerate(dim, cfg.Budget)
	if err != nil {
		return nil, err
	}

	o := &Oracle{
		cfg:     cfg,
		catalog: catalog,
		tables:  make([]actionTable, len(actions)),
		cum:     []float64{0},
	}
	for i, a := range actions {
		tbl, err := o.buildTable(ds, a)
		if err != nil {
			return nil, err
		}
		o.tables[i] = tbl
	}

	// Select the value-maximizing action; ties break toward the first
	// maximum in enumeration order.
	o.sel = 0
	for i := 1; i < len(o.tables); i++ {
		if o.tables[i].value > o.tables[o.sel].value {
			o.sel = i
		}
	}
	return o, nil
}

// buildTable computes the statistics arena for one observation action:
// trials are grouped by the state index of their masked context row, then
// each group yields its occurrence probability and per-arm mean over
// recorded rewards.
func (o *Oracle) buildTable(ds *ports.Dataset, a obs.Action) (actionTable, error) {
	n := ds.Trials()
	_, arraySize, err := o.catalog.SpaceSize(a)
	if err != nil {
		return actionTable{}, err
	}

	tbl := actionTable{
		action: a,
		visits: make([]int, arraySize),
		prob:   make([]float64, arraySize),
		mean:   make([][]float64, arraySize),
		best:   make([]int, arraySize),
		bestR:  make([]float64, arraySize),
	}
	for s := range tbl.best {
		tbl.best[s] = -1
		tbl.bestR[s] = math.NaN()
	}

	groups := make([][]int, arraySize)
	for t := 0; t < n; t++ {
		idx, err := o.catalog.IndexOf(state.Mask(ds.Contexts[t], a), a)
		if err != nil {
			return actionTable{}, err
		}
		tbl.visits[idx]++
		groups[idx] = append(groups[idx], t)
	}

	for s, trials := range groups {
		if len(trials) == 0 {
			continue
		}
		tbl.prob[s] = float64(len(trials)) / float64(n)

		means := make([]float64, o.cfg.Arms)
		for k := 0; k < o.cfg.Arms; k++ {
			recorded := make([]float64, 0, len(trials))
			for _, t := range trials {
				if r := ds.Rewards[t][k]; !math.IsNaN(r) {
					recorded = append(recorded, r)
				}
			}
			if len(recorded) == 0 {
				means[k] = math.NaN()
				continue
			}
			means[k] = stat.Mean(recorded, nil)
		}
		tbl.mean[s] = means

		if best := argmax(means); best >= 0 {
			tbl.best[s] = best
			tbl.bestR[s] = means[best]
		}
	}

	// States with no recorded reward for any arm have prob > 0 but an
	// undefined best reward; they contribute nothing to the action value.
	expected := 0.0
	for s := range tbl.prob {
		if tbl.best[s] >= 0 {
			expected += tbl.prob[s] * tbl.bestR[s]
		}
	}
	tbl.value = o.cfg.Beta*expected - a.Cost(o.cfg.Costs)
	return tbl, nil
}

// argmax returns the index of the first maximum, skipping NaN entries;
// -1 when every entry is NaN.
func argmax(xs []float64) int {
	best := -1
	for i, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if best < 0 || x > xs[best] {
			best = i
		}
	}
	return best
}

// SelectedAction returns the fixed observation action chosen at
// construction time. The oracle observes it for every trial.
func (o *Oracle) SelectedAction() obs.Action { return o.tables[o.sel].action }

// Actions returns the enumerated observation actions in selection order.
func (o *Oracle) Actions() []obs.Action {
	out := make([]obs.Action, len(o.tables))
	for i := range o.tables {
		out[i] = o.tables[i].action
	}
	return out
}

// ActionValues returns each enumerated action's scalar value
// beta*E[best reward] - cost, aligned with Actions.
func (o *Oracle) ActionValues() []float64 {
	out := make([]float64, len(o.tables))
	for i := range o.tables {
		out[i] = o.tables[i].value
	}
	return out
}

// StateProb returns the empirical occurrence probability of a state under
// the selected action. Zero for states never reached from the dataset.
func (o *Oracle) StateProb(stateIndex int) float64 {
	return o.tables[o.sel].prob[stateIndex]
}
