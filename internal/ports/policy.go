// Package ports defines the interfaces (contracts) that adapters and
// policies must implement. These are the boundaries of the hexagonal
// architecture. Domain logic depends only on these interfaces, never on
// concrete implementations.
package ports

// Feature is one slot of a partial context vector: either a concrete
// observed value or explicitly unobserved. The zero value is "unobserved" —
// a tagged variant, so a real feature value can never collide with the
// sentinel.
type Feature struct {
	Observed bool
	Value    float64
}

// Policy is the per-trial contract every bandit policy in the harness
// implements — the fixed-observation oracle as well as online learners.
//
// Call order per trial t: ChooseFeaturesToObserve, ChooseArm, Update.
// Trials are strictly ordered; the harness never calls trial t before all
// trials < t are complete.
type Policy interface {
	// Name identifies the policy in results and logs.
	Name() string

	// ChooseFeaturesToObserve returns the subset of featureIndices the
	// policy wants observed (and paid for) at this trial.
	ChooseFeaturesToObserve(trial int, featureIndices []int) []int

	// ChooseArm returns the index *into poolIndices* of the arm to pull,
	// given the partial context produced by the chosen observation.
	ChooseArm(trial int, observed []Feature, poolIndices []int) (int, error)

	// Update reports the outcome of the trial back to the policy.
	// poolPos is the value previously returned by ChooseArm; costs is the
	// full per-feature cost vector for the trial.
	Update(trial int, poolPos int, reward float64, costs []float64, observed []Feature, poolIndices []int)
}
