package mlp

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Unit is a single neuron: one weight per input plus a trailing bias weight
// whose input is fixed at 1.
//
// Output and delta are scratch state. Output is valid after Forward, delta
// after BackwardDelta, both for the most recent input only.
type Unit struct {
	weights    []float64 // len = inputArity + 1, bias last
	activation Activation
	fn         activationFuncs
	output     float64
	delta      float64
}

// NewUnit creates a unit with inputArity inputs and weights drawn uniformly
// from [-0.5, 0.5). A nil rng uses the math/rand package source.
func NewUnit(inputArity int, act Activation, rng *rand.Rand) *Unit {
	weights := make([]float64, inputArity+1)
	for i := range weights {
		weights[i] = randomWeight(rng)
	}
	return &Unit{weights: weights, activation: act, fn: act.funcs()}
}

// NewUnitFromWeights creates a unit that adopts weights as-is, bias last.
// The unit's input arity is len(weights)-1.
func NewUnitFromWeights(weights []float64, act Activation) *Unit {
	return &Unit{weights: weights, activation: act, fn: act.funcs()}
}

func randomWeight(rng *rand.Rand) float64 {
	if rng != nil {
		return rng.Float64() - 0.5
	}
	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	return rand.Float64() - 0.5
}

// InputArity returns the number of inputs, not counting the bias.
func (u *Unit) InputArity() int {
	return len(u.weights) - 1
}

// Weights returns a copy of the weights, bias last.
func (u *Unit) Weights() []float64 {
	return append([]float64(nil), u.weights...)
}

// Activation returns the unit's activation.
func (u *Unit) Activation() Activation {
	return u.activation
}

// Output returns the activated output of the last Forward call.
func (u *Unit) Output() float64 {
	return u.output
}

// Delta returns the error signal of the last BackwardDelta call.
func (u *Unit) Delta() float64 {
	return u.delta
}

// Forward computes activation(bias + Σ inputs[i]*weights[i]), caches it as the
// unit's output and returns it.
//
// Panics with ErrDimensionMismatch unless len(inputs) equals InputArity.
func (u *Unit) Forward(inputs []float64) float64 {
	n := u.InputArity()
	if len(inputs) != n {
		dimensionPanic("Unit.Forward", n, len(inputs))
	}
	sum := u.weights[n] + floats.Dot(inputs, u.weights[:n])
	u.output = u.fn.forward(sum)
	return u.output
}

// BackwardDelta sets delta = derivative(output) * weightedDeltaSum.
// Forward must have run for the current input.
func (u *Unit) BackwardDelta(weightedDeltaSum float64) {
	u.delta = u.fn.derivative(u.output) * weightedDeltaSum
}

// UpdateWeights adds learningRate*delta*inputs[i] to each input weight and
// learningRate*delta to the bias. BackwardDelta must have run first.
func (u *Unit) UpdateWeights(inputs []float64, learningRate float64) {
	n := u.InputArity()
	if len(inputs) != n {
		dimensionPanic("Unit.UpdateWeights", n, len(inputs))
	}
	step := learningRate * u.delta
	floats.AddScaled(u.weights[:n], step, inputs)
	u.weights[n] += step
}

// WeightedDelta returns delta*weights[index] for an input index, and the bare
// delta for any index outside [0, InputArity).
func (u *Unit) WeightedDelta(index int) float64 {
	if index < 0 || index >= u.InputArity() {
		return u.delta
	}
	return u.delta * u.weights[index]
}
