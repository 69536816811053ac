package oracle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partialobs/simoos/internal/domain/state"
	"github.com/partialobs/simoos/internal/ports"
)

// predictiveDataset builds a dataset where feature 0 perfectly predicts the
// best arm (arm == value of feature 0) and feature 1 is uninformative noise.
func predictiveDataset() *ports.Dataset {
	ds := &ports.Dataset{}
	for t := 0; t < 40; t++ {
		f0 := float64(t % 2)
		f1 := float64((t / 2) % 2)
		ds.Contexts = append(ds.Contexts, []float64{f0, f1})

		rewards := []float64{0, 0}
		rewards[int(f0)] = 1
		ds.Rewards = append(ds.Rewards, rewards)
	}
	return ds
}

func TestNew_SelectsPredictiveFeatureWhenBetaLarge(t *testing.T) {
	o, err := New(predictiveDataset(), Config{
		Costs:  []float64{0.1, 0.1},
		Arms:   2,
		Budget: 2,
		Beta:   1,
	})
	require.NoError(t, err)

	// Observing feature 0 yields expected best reward 1 at cost 0.1;
	// nothing beats value 0.9.
	sel := o.SelectedAction()
	assert.Equal(t, 1, sel[0], "selected action %s must observe feature 0", sel)
	assert.Equal(t, 0, sel[1], "noise feature is not worth its cost")

	values := o.ActionValues()
	actions := o.Actions()
	require.Len(t, values, len(actions))
	for i, a := range actions {
		switch a.String() {
		case "00":
			assert.InDelta(t, 0.5, values[i], 1e-9) // best marginal mean, no cost
		case "10":
			assert.InDelta(t, 0.9, values[i], 1e-9)
		case "01":
			assert.InDelta(t, 0.4, values[i], 1e-9)
		case "11":
			assert.InDelta(t, 0.8, values[i], 1e-9)
		}
	}
}

func TestNew_BetaZeroSelectsAllZeroAction(t *testing.T) {
	o, err := New(predictiveDataset(), Config{
		Costs:  []float64{0.1, 0.1},
		Arms:   2,
		Budget: 2,
		Beta:   0,
	})
	require.NoError(t, err)

	// With rewards valued at nothing, observing anything only costs.
	assert.Equal(t, 0, o.SelectedAction().Weight())
}

func TestNew_FreeObservationTiesBreakByEnumerationOrder(t *testing.T) {
	// Zero costs: observing feature 0 alone and both features have the same
	// value 1.0. The first maximum in enumeration order must win.
	o, err := New(predictiveDataset(), Config{
		Costs:  []float64{0, 0},
		Arms:   2,
		Budget: 2,
		Beta:   1,
	})
	require.NoError(t, err)

	// Full-budget enumeration order is 00, 01, 10, 11; both "10" and "11"
	// have value 1, so "10" wins.
	assert.Equal(t, "10", o.SelectedAction().String())
}

func TestNew_RejectsMalformedInputs(t *testing.T) {
	ds := predictiveDataset()

	_, err := New(&ports.Dataset{}, Config{Costs: []float64{0, 0}, Arms: 2, Budget: 1, Beta: 1})
	assert.Error(t, err)

	_, err = New(ds, Config{Costs: []float64{0.1}, Arms: 2, Budget: 1, Beta: 1})
	assert.Error(t, err)

	_, err = New(ds, Config{Costs: []float64{0.1, 0.1}, Arms: 5, Budget: 1, Beta: 1})
	assert.Error(t, err)

	_, err = New(ds, Config{Costs: []float64{0.1, 0.1}, Arms: 2, Budget: 3, Beta: 1})
	assert.Error(t, err)
}

func TestChooseArm_ReturnsPoolPositionOfBestArm(t *testing.T) {
	o, err := New(predictiveDataset(), Config{
		Costs:  []float64{0.1, 0.1},
		Arms:   2,
		Budget: 2,
		Beta:   1,
	})
	require.NoError(t, err)

	features := o.ChooseFeaturesToObserve(0, []int{0, 1})
	assert.Equal(t, []int{0}, features)

	observed := []ports.Feature{state.Observed(1), state.Unobserved()}
	pos, err := o.ChooseArm(0, observed, []int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, pos) // arm 1 is best when feature 0 == 1

	observed = []ports.Feature{state.Observed(0), state.Unobserved()}
	pos, err = o.ChooseArm(1, observed, []int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, pos) // arm 0 sits at pool position 1
}

func TestChooseArm_ArmNotInPool_FailFast(t *testing.T) {
	o, err := New(predictiveDataset(), Config{
		Costs:  []float64{0.1, 0.1},
		Arms:   2,
		Budget: 2,
		Beta:   1,
	})
	require.NoError(t, err)

	observed := []ports.Feature{state.Observed(1), state.Unobserved()}
	_, err = o.ChooseArm(0, observed, []int{0})
	assert.ErrorIs(t, err, ErrArmNotInPool)
}

func TestChooseArm_ArmNotInPool_Fallback(t *testing.T) {
	o, err := New(predictiveDataset(), Config{
		Costs:          []float64{0.1, 0.1},
		Arms:           2,
		Budget:         2,
		Beta:           1,
		FallbackToPool: true,
	})
	require.NoError(t, err)

	// Best arm (1) is excluded; the only pool arm has a recorded mean, so
	// the fallback picks it.
	observed := []ports.Feature{state.Observed(1), state.Unobserved()}
	pos, err := o.ChooseArm(0, observed, []int{0})
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
}

func TestChooseArm_UnreachableState(t *testing.T) {
	// The best arm is the XOR of the two features, so only observing both
	// is fully informative and the oracle fixes the all-ones action. The
	// combination (1, 1) never occurs, but both single values do, so the
	// partial vector indexes cleanly into a never-populated state.
	ds := &ports.Dataset{
		Contexts: [][]float64{{0, 0}, {0, 1}, {1, 0}, {0, 0}},
		Rewards:  [][]float64{{1, 0}, {0, 1}, {0, 1}, {1, 0}},
	}
	o, err := New(ds, Config{
		Costs:  []float64{0, 0},
		Arms:   2,
		Budget: 2,
		Beta:   10,
	})
	require.NoError(t, err)
	require.Equal(t, "11", o.SelectedAction().String())

	observed := []ports.Feature{state.Observed(1), state.Observed(1)}
	_, err = o.ChooseArm(0, observed, []int{0, 1})
	assert.ErrorIs(t, err, ErrUnreachableState)
}

func TestChooseArm_ContractViolationPropagates(t *testing.T) {
	o, err := New(predictiveDataset(), Config{
		Costs:  []float64{0.1, 0.1},
		Arms:   2,
		Budget: 2,
		Beta:   1,
	})
	require.NoError(t, err)

	// Selected action observes feature 0 only; an all-sentinel vector
	// violates the sentinel-iff-unobserved contract.
	_, err = o.ChooseArm(0, []ports.Feature{state.Unobserved(), state.Unobserved()}, []int{0, 1})
	assert.ErrorIs(t, err, state.ErrContractViolation)
}

func TestBuildTable_UnrecordedRewardsAreSkipped(t *testing.T) {
	nan := math.NaN()
	ds := &ports.Dataset{
		Contexts: [][]float64{{0}, {0}, {0}, {0}},
		// Arm 0 recorded twice (mean 0.5), arm 1 never recorded.
		Rewards: [][]float64{{1, nan}, {0, nan}, {nan, nan}, {nan, nan}},
	}
	o, err := New(ds, Config{Costs: []float64{0}, Arms: 2, Budget: 1, Beta: 1})
	require.NoError(t, err)

	// Observing the constant feature adds nothing, so the value ties at the
	// recorded mean 0.5 and the all-zero action wins by enumeration order.
	require.Equal(t, "0", o.SelectedAction().String())

	pos, err := o.ChooseArm(0, []ports.Feature{state.Unobserved()}, []int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 0, pos, "only the recorded arm can be best")
}

func TestUpdate_AccumulatesGains(t *testing.T) {
	o, err := New(predictiveDataset(), Config{
		Costs:  []float64{0.25, 0.1},
		Arms:   2,
		Budget: 2,
		Beta:   1,
	})
	require.NoError(t, err)
	require.Equal(t, "10", o.SelectedAction().String())

	costs := []float64{0.25, 0.1}
	observed := []ports.Feature{state.Observed(1), state.Unobserved()}
	pool := []int{0, 1}

	pos, err := o.ChooseArm(0, observed, pool)
	require.NoError(t, err)
	o.Update(0, pos, 1.0, costs, observed, pool)

	pos, err = o.ChooseArm(1, observed, pool)
	require.NoError(t, err)
	o.Update(1, pos, 0.0, costs, observed, pool)

	res := o.Result()
	assert.Equal(t, 2, res.Trials)
	assert.Equal(t, []int{1, 1}, res.Arms)
	assert.Equal(t, []float64{1, 0}, res.Rewards)
	assert.InDelta(t, 0.25, res.Costs[0], 1e-12) // fixed action observes feature 0 only
	assert.InDelta(t, 0.75, res.Gains[0], 1e-12)
	assert.InDelta(t, -0.25, res.Gains[1], 1e-12)
	require.Len(t, res.CumulativeGain, 3)
	assert.InDelta(t, 0.0, res.CumulativeGain[0], 1e-12)
	assert.InDelta(t, 0.75, res.CumulativeGain[1], 1e-12)
	assert.InDelta(t, 0.5, res.CumulativeGain[2], 1e-12)
	assert.InDelta(t, 0.5, res.TotalGain, 1e-12)

	assert.Len(t, o.States(), 2)
}
