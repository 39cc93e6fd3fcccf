// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides epoch-level training loops for mlp networks.
package train

import (
	"github.com/born-ml/perceptron/internal/dataset"
	"github.com/born-ml/perceptron/internal/mlp"
	"github.com/born-ml/perceptron/internal/parallel"
	"github.com/born-ml/perceptron/internal/train"
)

// Sample is one training example.
type Sample = dataset.Sample

// Config holds configuration for a training run.
type Config = train.Config

// Result summarizes a training run.
type Result = train.Result

// ParallelConfig bounds how many networks FitBest trains at once.
type ParallelConfig = parallel.Config

// ErrNoSamples is returned when training is asked to run on an empty set.
var ErrNoSamples = train.ErrNoSamples

// DefaultParallelConfig uses one worker per CPU.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// Fit trains net on samples one example at a time.
//
// Example:
//
//	res, err := train.Fit(net, train.XOR(), train.Config{LearningRate: 0.5, Epochs: 5000})
func Fit(net *mlp.Network, samples []Sample, cfg Config) (Result, error) {
	return train.Fit(net, samples, cfg)
}

// Evaluate returns the mean per-sample squared error of net on samples.
func Evaluate(net *mlp.Network, samples []Sample) float64 {
	return train.Evaluate(net, samples)
}

// FitBest trains restarts independently seeded networks and keeps the best.
func FitBest(
	factory func(seed int64) *mlp.Network,
	samples []Sample,
	cfg Config,
	restarts int,
	pcfg ParallelConfig,
) (*mlp.Network, Result, error) {
	return train.FitBest(factory, samples, cfg, restarts, pcfg)
}

// XOR returns the exclusive-or truth table.
func XOR() []Sample {
	return dataset.XOR()
}

// LoadCSV reads samples from a CSV file whose first inputs columns are the
// input vector and whose remaining columns are the target.
func LoadCSV(path string, inputs int) ([]Sample, error) {
	return dataset.LoadCSV(path, inputs)
}
