package mlp

import (
	"fmt"
	"math"
	"strings"
)

// Activation selects the squashing function of every unit in a network.
//
// The network file format does not record the activation. A network must be
// loaded with the same Activation it was trained with.
type Activation int

// Supported activations.
const (
	// Sigmoid squashes to (0, 1): σ(x) = 1 / (1 + exp(-x)).
	Sigmoid Activation = iota

	// Tanh squashes to (-1, 1).
	Tanh
)

// activationFuncs is the forward function and its derivative. The derivative
// takes the activated output y = f(x), not x, so a unit can feed its cached
// output straight into it.
type activationFuncs struct {
	forward    func(float64) float64
	derivative func(float64) float64
}

var activations = [...]activationFuncs{
	Sigmoid: {forward: sigmoid, derivative: sigmoidDeriv},
	Tanh:    {forward: tanh, derivative: tanhDeriv},
}

func sigmoid(x float64) float64 {
	switch {
	case x < -45.0:
		return 0.0
	case x > 45.0:
		return 1.0
	default:
		return 1.0 / (1.0 + math.Exp(-x))
	}
}

func sigmoidDeriv(y float64) float64 {
	return y * (1 - y)
}

func tanh(x float64) float64 {
	switch {
	case x < -10.0:
		return -1.0
	case x > 10.0:
		return 1.0
	default:
		return math.Tanh(x)
	}
}

func tanhDeriv(y float64) float64 {
	return (1 + y) * (1 - y)
}

// funcs resolves the activation to its function pair.
// Panics on a value outside the enumeration.
func (a Activation) funcs() activationFuncs {
	if !a.Valid() {
		panic(fmt.Sprintf("mlp: unknown activation %d", int(a)))
	}
	return activations[a]
}

// Valid reports whether a is one of the supported activations.
func (a Activation) Valid() bool {
	return a >= 0 && int(a) < len(activations)
}

// Apply evaluates the activation function at x.
func (a Activation) Apply(x float64) float64 {
	return a.funcs().forward(x)
}

// Derivative evaluates the derivative at an activated output y.
func (a Activation) Derivative(y float64) float64 {
	return a.funcs().derivative(y)
}

// String returns the lowercase name used on the command line.
func (a Activation) String() string {
	switch a {
	case Sigmoid:
		return "sigmoid"
	case Tanh:
		return "tanh"
	default:
		return fmt.Sprintf("Activation(%d)", int(a))
	}
}

// ParseActivation is the inverse of Activation.String. Matching ignores case.
func ParseActivation(name string) (Activation, error) {
	switch strings.ToLower(name) {
	case "sigmoid":
		return Sigmoid, nil
	case "tanh":
		return Tanh, nil
	default:
		return 0, fmt.Errorf("unknown activation %q (want sigmoid or tanh)", name)
	}
}
