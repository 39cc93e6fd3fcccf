package mlp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ZeroHiddenLayers(t *testing.T) {
	net := New(2, 1, nil, Config{})

	assert.Equal(t, 2, net.InputSize())
	assert.Equal(t, 1, net.OutputSize())
	require.Len(t, net.Layers(), 1)
	assert.Equal(t, 2, net.Layers()[0].InputArity())

	out := net.Run([]float64{0.3, 0.9})
	require.Len(t, out, 1)
	assert.Greater(t, out[0], 0.0)
	assert.Less(t, out[0], 1.0)
}

func TestNew_LayerChain(t *testing.T) {
	net := New(3, 2, []int{4, 5}, Config{Activation: Tanh, Rand: seeded(3)})

	layers := net.Layers()
	require.Len(t, layers, 3)
	wantArity := []int{3, 4, 5}
	wantSize := []int{4, 5, 2}
	for i, l := range layers {
		assert.Equal(t, wantArity[i], l.InputArity(), "layer %d", i)
		assert.Equal(t, wantSize[i], l.Size(), "layer %d", i)
	}
	assert.Equal(t, Tanh, net.Activation())
}

func TestNew_InvalidSizes(t *testing.T) {
	assert.Panics(t, func() { New(0, 1, nil, Config{}) })
	assert.Panics(t, func() { New(2, 0, nil, Config{}) })
	assert.Panics(t, func() { New(2, 1, []int{3, 0}, Config{}) })
}

func TestNewFromLayers(t *testing.T) {
	hidden := NewLayer(3, 2, Sigmoid, seeded(4))
	output := NewLayer(1, 3, Sigmoid, seeded(5))

	net, err := NewFromLayers(2, []*Layer{hidden, output})
	require.NoError(t, err)
	assert.Equal(t, 1, net.OutputSize())

	_, err = NewFromLayers(3, []*Layer{hidden, output})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = NewFromLayers(2, []*Layer{hidden, NewLayer(1, 2, Sigmoid, nil)})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = NewFromLayers(2, nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	empty, err := NewLayerFromWeights(nil, 2, Sigmoid)
	require.NoError(t, err)
	_, err = NewFromLayers(2, []*Layer{empty})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestRun_Deterministic(t *testing.T) {
	net := New(3, 2, []int{4}, Config{Rand: seeded(6)})
	in := []float64{0.2, -0.4, 0.9}

	first := net.Run(in)
	second := net.Run(in)
	assert.Equal(t, first, second)

	// The returned slice is the caller's.
	first[0] = 42
	assert.Equal(t, second, net.Run(in))
}

func TestRun_DimensionMismatch(t *testing.T) {
	net := New(2, 1, []int{2}, Config{})
	requireDimensionPanic(t, func() { net.Run([]float64{1}) })
}

func TestTrainSingle_DimensionMismatch(t *testing.T) {
	net := New(2, 1, []int{2}, Config{})
	requireDimensionPanic(t, func() { net.TrainSingle([]float64{1, 2, 3}, []float64{1}, 0.1) })
	requireDimensionPanic(t, func() { net.TrainSingle([]float64{1, 2}, []float64{1, 0}, 0.1) })
}

// TestTrainSingle_OutputLayerStep checks one step on a single-unit network
// against the update rule written out by hand.
func TestTrainSingle_OutputLayerStep(t *testing.T) {
	out, err := NewLayerFromWeights([][]float64{{0.2, -0.3, 0.1}}, 2, Sigmoid)
	require.NoError(t, err)
	net, err := NewFromLayers(2, []*Layer{out})
	require.NoError(t, err)

	in, target, lr := []float64{1, 0.5}, []float64{1}, 0.5
	y := Sigmoid.Apply(0.2 - 0.15 + 0.1)
	delta := y * (1 - y) * (target[0] - y)

	mse := net.TrainSingle(in, target, lr)

	want := []float64{0.2 + lr*delta*1, -0.3 + lr*delta*0.5, 0.1 + lr*delta}
	got := out.Unit(0).Weights()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-15, "weight %d", i)
	}

	after := Sigmoid.Apply(want[0] + want[1]*0.5 + want[2])
	assert.InDelta(t, (1-after)*(1-after), mse, 1e-15)
}

// TestTrainSingle_UsesPreUpdateActivations checks that the output layer is
// updated with the hidden activations from before the hidden layer changed.
func TestTrainSingle_UsesPreUpdateActivations(t *testing.T) {
	net := New(2, 1, []int{3}, Config{Rand: seeded(7)})
	hidden, output := net.Layers()[0], net.Layers()[1]
	in, target := []float64{0.4, -0.6}, []float64{0.9}

	net.Run(in)
	hiddenBefore := hidden.Output()
	outWeights := output.Unit(0).Weights()

	net.TrainSingle(in, target, 0.3)

	d := output.Unit(0).Delta()
	got := output.Unit(0).Weights()
	for j, h := range hiddenBefore {
		assert.InDelta(t, outWeights[j]+0.3*d*h, got[j], 1e-15, "weight %d", j)
	}
}

func TestTrainSingle_ReportsPostUpdateError(t *testing.T) {
	net := New(3, 2, []int{4}, Config{Rand: seeded(8)})
	in, target := []float64{0.1, 0.5, -0.3}, []float64{0.2, 0.8}

	mse := net.TrainSingle(in, target, 0.1)

	assert.Equal(t, MeanSquaredError(target, net.Run(in)), mse)
}

func TestTrainSingle_ErrorDecreases(t *testing.T) {
	net := New(2, 1, []int{3}, Config{Rand: seeded(9)})
	in, target := []float64{0.3, 0.7}, []float64{0.9}

	prev := math.Inf(1)
	for i := 0; i < 100; i++ {
		mse := net.TrainSingle(in, target, 0.1)
		require.Less(t, mse, prev, "iteration %d", i)
		prev = mse
	}
}

func TestMeanSquaredError(t *testing.T) {
	assert.InDelta(t, (0.25+1)/2, MeanSquaredError([]float64{1, 0}, []float64{0.5, 1}), 1e-15)
	assert.Equal(t, 0.0, MeanSquaredError([]float64{0.3}, []float64{0.3}))
}

// TestXOR trains 2-2-1 sigmoid networks on XOR. A net with two hidden units
// can stall in a local minimum, so several seeds are tried and at least one
// has to converge.
func TestXOR(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping XOR training in short mode")
	}

	const tolerance = 0.2
	solved := func(net *Network) bool {
		for _, s := range xorSamples {
			if math.Abs(net.Run(s.input)[0]-s.target[0]) >= tolerance {
				return false
			}
		}
		return true
	}

	for seed := int64(1); seed <= 20; seed++ {
		net := New(2, 1, []int{2}, Config{Activation: Sigmoid, Rand: seeded(seed)})
		for epoch := 1; epoch <= 10000; epoch++ {
			for _, s := range xorSamples {
				net.TrainSingle(s.input, s.target, 0.5)
			}
			if epoch%500 == 0 && solved(net) {
				assert.InDelta(t, 0, net.Run([]float64{0, 0})[0], tolerance)
				assert.InDelta(t, 0, net.Run([]float64{1, 1})[0], tolerance)
				assert.InDelta(t, 1, net.Run([]float64{1, 0})[0], tolerance)
				assert.InDelta(t, 1, net.Run([]float64{0, 1})[0], tolerance)
				return
			}
		}
	}
	t.Fatal("no seed learned XOR")
}
