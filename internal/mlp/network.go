package mlp

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Config controls how New initializes a network.
type Config struct {
	Activation Activation // Activation of every unit (default: Sigmoid)
	Rand       *rand.Rand // Source for initial weights (default: math/rand package source)
}

// Network is a feedforward multilayer perceptron: zero or more hidden layers
// followed by exactly one output layer.
//
// A Network is not safe for concurrent use. Run and TrainSingle both write the
// cached outputs of every layer; use one Network per goroutine or guard it
// with a mutex.
type Network struct {
	input      []float64
	layers     []*Layer // last element is the output layer
	activation Activation
}

// New creates a network with random weights.
//
// hidden lists the hidden layer sizes from input to output and may be empty,
// in which case the output layer reads the raw input directly.
//
// Panics if any size is not positive.
func New(inputSize, outputSize int, hidden []int, cfg Config) *Network {
	if inputSize <= 0 {
		panic(fmt.Sprintf("mlp.New: input size must be positive, got %d", inputSize))
	}
	if outputSize <= 0 {
		panic(fmt.Sprintf("mlp.New: output size must be positive, got %d", outputSize))
	}

	layers := make([]*Layer, 0, len(hidden)+1)
	arity := inputSize
	for i, size := range hidden {
		if size <= 0 {
			panic(fmt.Sprintf("mlp.New: hidden layer %d size must be positive, got %d", i, size))
		}
		layers = append(layers, NewLayer(size, arity, cfg.Activation, cfg.Rand))
		arity = size
	}
	layers = append(layers, NewLayer(outputSize, arity, cfg.Activation, cfg.Rand))

	return &Network{
		input:      make([]float64, inputSize),
		layers:     layers,
		activation: cfg.Activation,
	}
}

// NewFromLayers assembles a network from existing layers, first to last.
//
// Returns an error wrapping ErrDimensionMismatch if the first layer does not
// read inputSize values or any later layer's input arity differs from the
// size of the layer before it.
func NewFromLayers(inputSize int, layers []*Layer) (*Network, error) {
	if inputSize <= 0 {
		return nil, fmt.Errorf("%w: input size must be positive, got %d", ErrDimensionMismatch, inputSize)
	}
	if len(layers) == 0 {
		return nil, fmt.Errorf("%w: network needs an output layer", ErrDimensionMismatch)
	}

	arity := inputSize
	for i, l := range layers {
		if l.Size() == 0 {
			return nil, fmt.Errorf("layer %d: %w: layer has no units", i, ErrDimensionMismatch)
		}
		if l.InputArity() != arity {
			return nil, fmt.Errorf("layer %d: %w: expected %d inputs, got %d",
				i, ErrDimensionMismatch, arity, l.InputArity())
		}
		arity = l.Size()
	}

	return &Network{
		input:      make([]float64, inputSize),
		layers:     append([]*Layer(nil), layers...),
		activation: layers[0].Unit(0).Activation(),
	}, nil
}

// InputSize returns the length of the input vector.
func (n *Network) InputSize() int {
	return len(n.input)
}

// OutputSize returns the number of units in the output layer.
func (n *Network) OutputSize() int {
	return n.outputLayer().Size()
}

// Activation returns the activation the network was built with.
func (n *Network) Activation() Activation {
	return n.activation
}

// Layers returns the layers from first hidden to output.
func (n *Network) Layers() []*Layer {
	return append([]*Layer(nil), n.layers...)
}

func (n *Network) outputLayer() *Layer {
	return n.layers[len(n.layers)-1]
}

// Run forward-propagates input and returns a copy of the output layer's
// output. Weights are not modified.
//
// Panics with ErrDimensionMismatch unless len(input) equals InputSize.
func (n *Network) Run(input []float64) []float64 {
	if len(input) != len(n.input) {
		dimensionPanic("Network.Run", len(n.input), len(input))
	}
	copy(n.input, input)
	return append([]float64(nil), n.forward()...)
}

// TrainSingle performs one backpropagation step on a single example and
// returns the mean squared error measured after the weights were updated.
//
// The step is: forward pass, output deltas seeded with expected-output,
// backward pass from the output layer to the first layer, weight update from
// the first layer to the output layer using the activations of that forward
// pass, then a second forward pass to measure the error.
//
// Panics with ErrDimensionMismatch if input or expected has the wrong length.
func (n *Network) TrainSingle(input, expected []float64, learningRate float64) float64 {
	if len(input) != len(n.input) {
		dimensionPanic("Network.TrainSingle input", len(n.input), len(input))
	}
	if len(expected) != n.OutputSize() {
		dimensionPanic("Network.TrainSingle expected output", n.OutputSize(), len(expected))
	}
	copy(n.input, input)

	output := n.forward()
	deltas := make([]float64, len(output))
	floats.SubTo(deltas, expected, output)

	for i := len(n.layers) - 1; i >= 0; i-- {
		deltas = n.layers[i].Backward(deltas)
	}

	// Layer outputs still hold the pre-update activations here; the update
	// pass must not recompute them.
	inputs := n.input
	for _, l := range n.layers {
		l.UpdateWeights(inputs, learningRate)
		inputs = l.output
	}

	return MeanSquaredError(expected, n.forward())
}

// forward runs every layer in order on n.input and returns the output layer's
// cached output.
func (n *Network) forward() []float64 {
	values := n.input
	for _, l := range n.layers {
		values = l.Forward(values)
	}
	return values
}

// MeanSquaredError returns the mean of the squared elementwise differences.
// Panics if the vectors differ in length.
func MeanSquaredError(expected, actual []float64) float64 {
	diff := make([]float64, len(expected))
	floats.SubTo(diff, expected, actual)
	return floats.Dot(diff, diff) / float64(len(diff))
}
