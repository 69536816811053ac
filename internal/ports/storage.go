package ports

// Dataset is a fully observed historical record: an N×D context matrix and
// an N×numArms reward matrix. Rewards[t][a] is NaN when arm a was never
// realized at trial t (logged bandit data is partial by nature).
type Dataset struct {
	Contexts [][]float64 `json:"contexts"`
	Rewards  [][]float64 `json:"rewards"`
}

// Trials returns the number of recorded trials.
func (d *Dataset) Trials() int { return len(d.Contexts) }

// Dim returns the context dimensionality, 0 for an empty dataset.
func (d *Dataset) Dim() int {
	if len(d.Contexts) == 0 {
		return 0
	}
	return len(d.Contexts[0])
}

// Arms returns the number of arms, 0 for an empty dataset.
func (d *Dataset) Arms() int {
	if len(d.Rewards) == 0 {
		return 0
	}
	return len(d.Rewards[0])
}

// RunResult is the per-trial log of one policy replayed over a dataset.
// CumulativeGain has length Trials+1 with a leading zero, so
// CumulativeGain[t+1] is the gain collected up to and including trial t.
type RunResult struct {
	Policy         string    `json:"policy"`
	Trials         int       `json:"trials"`
	Arms           []int     `json:"arms"`
	Rewards        []float64 `json:"rewards"`
	Costs          []float64 `json:"costs"`
	Gains          []float64 `json:"gains"`
	CumulativeGain []float64 `json:"cumulative_gain"`
	TotalGain      float64   `json:"total_gain"`
}

// Storage persists datasets and run results to durable storage.
//
// Crash safety: saves must be transactional. A crash mid-write must not
// corrupt previously committed data.
type Storage interface {
	// SaveDataset persists a dataset under a name, overwriting any prior one.
	SaveDataset(name string, ds *Dataset) error

	// LoadDataset retrieves a dataset by name. Returns nil, nil if absent.
	LoadDataset(name string) (*Dataset, error)

	// SaveRun persists a run result under an experiment name.
	SaveRun(experiment string, res *RunResult) error

	// LoadRun retrieves a run result. Returns nil, nil if absent.
	LoadRun(experiment string) (*RunResult, error)

	// ListRuns returns the names of all stored runs, sorted.
	ListRuns() ([]string, error)

	// DeleteExperiment removes the run stored under name. Idempotent.
	DeleteExperiment(name string) error
}
