package app

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/partialobs/simoos/internal/domain/oracle"
	"github.com/partialobs/simoos/internal/domain/policy"
	"github.com/partialobs/simoos/internal/ports"
)

// Runner replays a dataset trial-by-trial against a policy. Trials are
// strictly ordered; the runner is the sole owner of its result buffers.
type Runner struct {
	ds     *ports.Dataset
	policy ports.Policy
	costs  []float64
}

// NewRunner validates the dataset/cost shapes and pairs them with a policy.
func NewRunner(ds *ports.Dataset, p ports.Policy, costs []float64) (*Runner, error) {
	if ds.Trials() == 0 || ds.Dim() == 0 {
		return nil, fmt.Errorf("runner: empty dataset")
	}
	if len(ds.Rewards) != ds.Trials() {
		return nil, fmt.Errorf("runner: %d context rows but %d reward rows", ds.Trials(), len(ds.Rewards))
	}
	if len(costs) != ds.Dim() {
		return nil, fmt.Errorf("runner: cost vector length %d, context dimensionality %d", len(costs), ds.Dim())
	}
	return &Runner{ds: ds, policy: p, costs: costs}, nil
}

// NewPolicy constructs the policy an experiment file names.
func NewPolicy(cfg *ExperimentConfig, ds *ports.Dataset) (ports.Policy, error) {
	switch cfg.Policy {
	case PolicyOracle:
		return oracle.New(ds, oracle.Config{
			Costs:          cfg.Costs,
			Arms:           ds.Arms(),
			Budget:         cfg.Budget,
			Beta:           cfg.Beta,
			FallbackToPool: cfg.Fallback,
		})
	case PolicyUCB1:
		return policy.NewUCB1(ds.Arms(), cfg.Alpha)
	default:
		return nil, fmt.Errorf("unknown policy %q", cfg.Policy)
	}
}

// Run replays every trial: the policy picks features to observe, the runner
// builds the resulting partial vector and the pool of arms with a recorded
// reward, the policy picks an arm, and the runner settles reward minus
// observation cost. Trials with an empty pool are skipped; their gain entry
// is zero and the cumulative gain carries over.
func (r *Runner) Run() (*ports.RunResult, error) {
	n, dim := r.ds.Trials(), r.ds.Dim()

	allFeatures := make([]int, dim)
	for i := range allFeatures {
		allFeatures[i] = i
	}

	res := &ports.RunResult{
		Policy:         r.policy.Name(),
		Trials:         n,
		Arms:           make([]int, n),
		Rewards:        make([]float64, n),
		Costs:          make([]float64, n),
		Gains:          make([]float64, n),
		CumulativeGain: make([]float64, n+1),
	}

	for t := 0; t < n; t++ {
		res.CumulativeGain[t+1] = res.CumulativeGain[t]
		res.Arms[t] = -1

		pool := recordedArms(r.ds.Rewards[t])
		if len(pool) == 0 {
			continue
		}

		chosen := r.policy.ChooseFeaturesToObserve(t, allFeatures)
		observed := make([]ports.Feature, dim)
		cost := 0.0
		for _, i := range chosen {
			if i < 0 || i >= dim {
				return nil, fmt.Errorf("trial %d: policy chose feature %d outside [0, %d)", t, i, dim)
			}
			observed[i] = ports.Feature{Observed: true, Value: r.ds.Contexts[t][i]}
			cost += r.costs[i]
		}

		pos, err := r.policy.ChooseArm(t, observed, pool)
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", t, err)
		}
		if pos < 0 || pos >= len(pool) {
			return nil, fmt.Errorf("trial %d: policy returned pool position %d outside [0, %d)", t, pos, len(pool))
		}
		arm := pool[pos]
		reward := r.ds.Rewards[t][arm]

		r.policy.Update(t, pos, reward, r.costs, observed, pool)

		res.Arms[t] = arm
		res.Rewards[t] = reward
		res.Costs[t] = cost
		res.Gains[t] = reward - cost
		res.CumulativeGain[t+1] = res.CumulativeGain[t] + reward - cost
	}

	res.TotalGain = floats.Sum(res.Gains)
	return res, nil
}

// recordedArms returns the indices of arms with a recorded (non-NaN) reward
// at a trial. Replay is only well-defined over those.
func recordedArms(rewards []float64) []int {
	pool := make([]int, 0, len(rewards))
	for a, r := range rewards {
		if !math.IsNaN(r) {
			pool = append(pool, a)
		}
	}
	return pool
}
