// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mlp

import (
	"io"

	"github.com/born-ml/perceptron/internal/mlp"
)

// Network is a feedforward multilayer perceptron.
type Network = mlp.Network

// Layer is an ordered group of units sharing one input vector.
type Layer = mlp.Layer

// Unit is a single neuron with one weight per input plus a bias weight.
type Unit = mlp.Unit

// Config controls how New initializes a network.
type Config = mlp.Config

// Activation selects the squashing function of every unit.
type Activation = mlp.Activation

// Activations

// Sigmoid squashes to (0, 1).
const Sigmoid = mlp.Sigmoid

// Tanh squashes to (-1, 1).
const Tanh = mlp.Tanh

// ParseActivation parses "sigmoid" or "tanh".
func ParseActivation(name string) (Activation, error) {
	return mlp.ParseActivation(name)
}

// Errors

// Error kinds, matched with errors.Is.
var (
	ErrDimensionMismatch = mlp.ErrDimensionMismatch
	ErrMalformedRecord   = mlp.ErrMalformedRecord
	ErrIO                = mlp.ErrIO
)

// Construction

// New creates a network with random weights in [-0.5, 0.5).
//
// Example:
//
//	net := mlp.New(2, 1, []int{2}, mlp.Config{})  // 2 inputs, one hidden layer of 2, 1 output
func New(inputSize, outputSize int, hidden []int, cfg Config) *Network {
	return mlp.New(inputSize, outputSize, hidden, cfg)
}

// NewFromLayers assembles a network from existing layers, first to last.
func NewFromLayers(inputSize int, layers []*Layer) (*Network, error) {
	return mlp.NewFromLayers(inputSize, layers)
}

// NewLayerFromWeights creates a layer from per-unit weight vectors, bias last.
func NewLayerFromWeights(perUnitWeights [][]float64, inputArity int, act Activation) (*Layer, error) {
	return mlp.NewLayerFromWeights(perUnitWeights, inputArity, act)
}

// Persistence

// Load reads a network from a file written by Network.Save.
func Load(path string, act Activation) (*Network, error) {
	return mlp.Load(path, act)
}

// Read reads a network written by Network.Write from an open stream.
func Read(r io.Reader, act Activation) (*Network, error) {
	return mlp.Read(r, act)
}

// MeanSquaredError returns the mean of the squared elementwise differences.
func MeanSquaredError(expected, actual []float64) float64 {
	return mlp.MeanSquaredError(expected, actual)
}
