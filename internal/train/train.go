// Package train drives epoch-level training of mlp networks.
//
// Example usage:
//
//	net := mlp.New(2, 1, []int{2}, mlp.Config{})
//	res, err := train.Fit(net, dataset.XOR(), train.Config{
//	    LearningRate: 0.5,
//	    Epochs:       5000,
//	    TargetMSE:    0.001,
//	})
package train

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/born-ml/perceptron/internal/dataset"
	"github.com/born-ml/perceptron/internal/mlp"
	"github.com/born-ml/perceptron/internal/parallel"
)

// ErrNoSamples is returned when training is asked to run on an empty set.
var ErrNoSamples = errors.New("train: no samples")

// Config holds configuration for a training run.
type Config struct {
	LearningRate float64 // Step size for every TrainSingle call (default: 0.5)
	Epochs       int     // Maximum passes over the samples (default: 1000)
	TargetMSE    float64 // Stop once an epoch's mean error drops below this (default: 0, run all epochs)
	Shuffle      bool    // Visit samples in a fresh random order each epoch
	Seed         int64   // Seed for the shuffle order

	// Progress, if set, is called after every epoch with the mean of the
	// errors TrainSingle reported during it.
	Progress func(epoch int, mse float64)
}

func (c Config) withDefaults() Config {
	if c.LearningRate == 0 {
		c.LearningRate = 0.5
	}
	if c.Epochs == 0 {
		c.Epochs = 1000
	}
	return c
}

// Result summarizes a training run.
type Result struct {
	Epochs    int     // Epochs actually run
	MSE       float64 // Mean error of the last epoch
	Converged bool    // Whether TargetMSE was reached
}

// Fit trains net on samples one example at a time.
//
// Sample dimensions are checked before any weight changes; a mismatch
// returns an error wrapping mlp.ErrDimensionMismatch.
func Fit(net *mlp.Network, samples []dataset.Sample, cfg Config) (Result, error) {
	cfg = cfg.withDefaults()
	if err := check(net, samples); err != nil {
		return Result{}, err
	}

	order := make([]int, len(samples))
	for i := range order {
		order[i] = i
	}
	var rng *rand.Rand
	if cfg.Shuffle {
		//nolint:gosec // Using math/rand for sample order (not security-critical)
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	var res Result
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		if rng != nil {
			rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		}

		var sum float64
		for _, idx := range order {
			s := samples[idx]
			sum += net.TrainSingle(s.Input, s.Target, cfg.LearningRate)
		}

		res.Epochs = epoch
		res.MSE = sum / float64(len(samples))
		if cfg.Progress != nil {
			cfg.Progress(epoch, res.MSE)
		}
		if cfg.TargetMSE > 0 && res.MSE < cfg.TargetMSE {
			res.Converged = true
			break
		}
	}
	return res, nil
}

// Evaluate returns the mean over samples of the per-sample mean squared error
// of net's output. Weights are not modified.
func Evaluate(net *mlp.Network, samples []dataset.Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += mlp.MeanSquaredError(s.Target, net.Run(s.Input))
	}
	return sum / float64(len(samples))
}

// FitBest trains restarts independent networks and returns the one with the
// lowest Evaluate error. Candidate i is built by factory(cfg.Seed+i) and
// shuffled with the same seed. Each candidate is trained by exactly one
// worker; cfg.Progress is not called.
func FitBest(
	factory func(seed int64) *mlp.Network,
	samples []dataset.Sample,
	cfg Config,
	restarts int,
	pcfg parallel.Config,
) (*mlp.Network, Result, error) {
	restarts = max(restarts, 1)
	cfg.Progress = nil

	nets := make([]*mlp.Network, restarts)
	results := make([]Result, restarts)
	scores := make([]float64, restarts)
	errs := make([]error, restarts)

	parallel.For(restarts, func(i int) {
		c := cfg
		c.Seed = cfg.Seed + int64(i)
		nets[i] = factory(c.Seed)
		results[i], errs[i] = Fit(nets[i], samples, c)
		if errs[i] == nil {
			scores[i] = Evaluate(nets[i], samples)
		}
	}, pcfg)

	best := -1
	for i := range nets {
		if errs[i] != nil {
			return nil, Result{}, fmt.Errorf("restart %d: %w", i, errs[i])
		}
		if best < 0 || scores[i] < scores[best] {
			best = i
		}
	}
	return nets[best], results[best], nil
}

func check(net *mlp.Network, samples []dataset.Sample) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	for i, s := range samples {
		if len(s.Input) != net.InputSize() {
			return fmt.Errorf("sample %d input: %w: expected %d, got %d",
				i, mlp.ErrDimensionMismatch, net.InputSize(), len(s.Input))
		}
		if len(s.Target) != net.OutputSize() {
			return fmt.Errorf("sample %d target: %w: expected %d, got %d",
				i, mlp.ErrDimensionMismatch, net.OutputSize(), len(s.Target))
		}
	}
	return nil
}
