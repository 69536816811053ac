package dataset

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/partialobs/simoos/internal/ports"
)

// SynthConfig parameterizes the synthetic generator.
type SynthConfig struct {
	Trials   int     // number of rows
	Features int     // context dimensionality, at least 1
	Arms     int     // number of arms, at least 2
	Values   int     // distinct values per feature, at least 2
	Signal   float64 // P(reward=1) when the predicted arm is pulled
	Noise    float64 // P(reward=1) for every other arm
	Seed     uint64
}

// Generate builds a seeded synthetic dataset with the structure the costly
// observation problem is about: feature 0 determines which arm pays
// (arm = value of feature 0 mod Arms), the remaining features are
// uninformative. Rewards are Bernoulli draws — Signal for the predicted
// arm, Noise for the rest. Deterministic for a fixed config.
func Generate(cfg SynthConfig) (*ports.Dataset, error) {
	if cfg.Trials <= 0 || cfg.Features < 1 || cfg.Arms < 2 || cfg.Values < 2 {
		return nil, fmt.Errorf("synthetic dataset: invalid shape %+v", cfg)
	}
	if cfg.Signal < 0 || cfg.Signal > 1 || cfg.Noise < 0 || cfg.Noise > 1 {
		return nil, fmt.Errorf("synthetic dataset: probabilities must be in [0,1]")
	}

	src := rand.NewSource(cfg.Seed)
	uniform := distuv.Uniform{Min: 0, Max: float64(cfg.Values), Src: src}
	signal := distuv.Bernoulli{P: cfg.Signal, Src: src}
	noise := distuv.Bernoulli{P: cfg.Noise, Src: src}

	ds := &ports.Dataset{
		Contexts: make([][]float64, cfg.Trials),
		Rewards:  make([][]float64, cfg.Trials),
	}
	for t := 0; t < cfg.Trials; t++ {
		row := make([]float64, cfg.Features)
		for i := range row {
			row[i] = float64(int(uniform.Rand()))
		}
		ds.Contexts[t] = row

		best := int(row[0]) % cfg.Arms
		rewards := make([]float64, cfg.Arms)
		for a := range rewards {
			if a == best {
				rewards[a] = signal.Rand()
			} else {
				rewards[a] = noise.Rand()
			}
		}
		ds.Rewards[t] = rewards
	}
	return ds, nil
}
