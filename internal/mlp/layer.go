package mlp

import (
	"fmt"
	"math/rand"
)

// Layer is an ordered group of units that all read the same input vector.
// Unit i's output lands at index i of the layer's output vector.
//
// A layer does not know its neighbours; the owning Network walks its layer
// slice by index.
type Layer struct {
	units      []*Unit
	inputArity int
	output     []float64
}

// NewLayer creates count units with random weights, each reading inputArity
// inputs. inputArity is the previous layer's size, or the network input size
// for the first layer.
func NewLayer(count, inputArity int, act Activation, rng *rand.Rand) *Layer {
	units := make([]*Unit, count)
	for i := range units {
		units[i] = NewUnit(inputArity, act, rng)
	}
	return newLayer(units, inputArity)
}

// NewLayerFromWeights creates one unit per weight vector. Every vector must
// hold inputArity+1 values, bias last.
//
// Returns an error wrapping ErrDimensionMismatch if any vector has the wrong
// length.
func NewLayerFromWeights(perUnitWeights [][]float64, inputArity int, act Activation) (*Layer, error) {
	units := make([]*Unit, len(perUnitWeights))
	for i, w := range perUnitWeights {
		if len(w) != inputArity+1 {
			return nil, fmt.Errorf("unit %d: %w: expected %d weights, got %d",
				i, ErrDimensionMismatch, inputArity+1, len(w))
		}
		units[i] = NewUnitFromWeights(append([]float64(nil), w...), act)
	}
	return newLayer(units, inputArity), nil
}

func newLayer(units []*Unit, inputArity int) *Layer {
	return &Layer{
		units:      units,
		inputArity: inputArity,
		output:     make([]float64, len(units)),
	}
}

// Size returns the number of units.
func (l *Layer) Size() int {
	return len(l.units)
}

// InputArity returns the length of the input vector the layer expects.
func (l *Layer) InputArity() int {
	return l.inputArity
}

// Unit returns the i-th unit.
func (l *Layer) Unit(i int) *Unit {
	return l.units[i]
}

// Output returns a copy of the outputs from the last Forward call.
func (l *Layer) Output() []float64 {
	return append([]float64(nil), l.output...)
}

// Weights returns a copy of every unit's weights, in unit order.
func (l *Layer) Weights() [][]float64 {
	w := make([][]float64, len(l.units))
	for i, u := range l.units {
		w[i] = u.Weights()
	}
	return w
}

// Forward runs every unit on inputs and returns the layer's output vector.
// The returned slice is owned by the layer and is overwritten by the next
// Forward call.
//
// Panics with ErrDimensionMismatch unless len(inputs) equals InputArity.
func (l *Layer) Forward(inputs []float64) []float64 {
	if len(inputs) != l.inputArity {
		dimensionPanic("Layer.Forward", l.inputArity, len(inputs))
	}
	for i, u := range l.units {
		l.output[i] = u.Forward(inputs)
	}
	return l.output
}

// Backward sets each unit's delta from weightedDeltaSum and returns the
// weighted-delta vector for the layer feeding this one: element j is
// Σ_i unit[i].WeightedDelta(j).
//
// Panics with ErrDimensionMismatch unless len(weightedDeltaSum) equals Size.
func (l *Layer) Backward(weightedDeltaSum []float64) []float64 {
	if len(weightedDeltaSum) != len(l.units) {
		dimensionPanic("Layer.Backward", len(l.units), len(weightedDeltaSum))
	}
	// All deltas must be final before they are read below.
	for i, u := range l.units {
		u.BackwardDelta(weightedDeltaSum[i])
	}

	upstream := make([]float64, l.inputArity)
	for _, u := range l.units {
		for j := range upstream {
			upstream[j] += u.WeightedDelta(j)
		}
	}
	return upstream
}

// UpdateWeights applies every unit's delta against inputs, the same vector
// the layer saw in the Forward call that produced those deltas.
func (l *Layer) UpdateWeights(inputs []float64, learningRate float64) {
	for _, u := range l.units {
		u.UpdateWeights(inputs, learningRate)
	}
}
