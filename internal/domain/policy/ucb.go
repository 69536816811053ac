// Package policy holds online bandit policies that plug into the same
// harness contract as the oracle. Only UCB1 lives here; it observes every
// available feature and ignores context, which makes it the simplest
// baseline the oracle can be compared against.
package policy

import (
	"fmt"
	"math"

	"github.com/partialobs/simoos/internal/ports"
)

// UCB1 is the classic upper-confidence-bound arm selector with exploration
// factor alpha. It keeps an incremental mean reward q and a pull count n
// per arm.
type UCB1 struct {
	alpha float64
	q     []float64
	n     []float64
}

// NewUCB1 creates a UCB1 policy over nArms arms. Pull counts start at one,
// matching the reference initialization, so the confidence term is defined
// from the first trial.
func NewUCB1(nArms int, alpha float64) (*UCB1, error) {
	if nArms <= 0 {
		return nil, fmt.Errorf("ucb1: need at least one arm, got %d", nArms)
	}
	if alpha < 0 {
		return nil, fmt.Errorf("ucb1: negative exploration factor %v", alpha)
	}
	u := &UCB1{
		alpha: alpha,
		q:     make([]float64, nArms),
		n:     make([]float64, nArms),
	}
	for i := range u.n {
		u.n[i] = 1
	}
	return u, nil
}

// Name identifies the policy in results.
func (u *UCB1) Name() string { return fmt.Sprintf("UCB1 (alpha=%.2f)", u.alpha) }

// ChooseFeaturesToObserve returns every available feature: UCB1 does no
// feature selection.
func (u *UCB1) ChooseFeaturesToObserve(trial int, featureIndices []int) []int {
	return featureIndices
}

// ChooseArm returns the pool position maximizing the upper confidence bound
// q[a] + sqrt(alpha*ln(t+1)/n[a]); first maximum on ties.
func (u *UCB1) ChooseArm(trial int, observed []ports.Feature, poolIndices []int) (int, error) {
	if len(poolIndices) == 0 {
		return 0, fmt.Errorf("ucb1: empty arm pool at trial %d", trial)
	}
	best, bestUCB := 0, math.Inf(-1)
	for pos, arm := range poolIndices {
		if arm < 0 || arm >= len(u.q) {
			return 0, fmt.Errorf("ucb1: arm %d out of range at trial %d", arm, trial)
		}
		ucb := u.q[arm] + math.Sqrt(u.alpha*math.Log(float64(trial+1))/u.n[arm])
		if ucb > bestUCB {
			best, bestUCB = pos, ucb
		}
	}
	return best, nil
}

// Update folds the observed reward into the chosen arm's incremental mean.
func (u *UCB1) Update(trial int, poolPos int, reward float64, costs []float64, observed []ports.Feature, poolIndices []int) {
	arm := poolIndices[poolPos]
	u.n[arm]++
	u.q[arm] += (reward - u.q[arm]) / u.n[arm]
}
