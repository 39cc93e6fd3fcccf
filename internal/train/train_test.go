package train

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/perceptron/internal/dataset"
	"github.com/born-ml/perceptron/internal/mlp"
	"github.com/born-ml/perceptron/internal/parallel"
)

func newNet(seed int64) *mlp.Network {
	return mlp.New(2, 1, []int{2}, mlp.Config{Rand: rand.New(rand.NewSource(seed))})
}

func TestFit_ReducesError(t *testing.T) {
	net := newNet(1)
	samples := []dataset.Sample{
		{Input: []float64{0, 0}, Target: []float64{0}},
		{Input: []float64{0, 1}, Target: []float64{1}},
		{Input: []float64{1, 0}, Target: []float64{1}},
		{Input: []float64{1, 1}, Target: []float64{1}},
	}
	before := Evaluate(net, samples)

	res, err := Fit(net, samples, Config{LearningRate: 0.5, Epochs: 200})
	require.NoError(t, err)

	assert.Equal(t, 200, res.Epochs)
	assert.False(t, res.Converged)
	assert.Less(t, Evaluate(net, samples), before)
}

func TestFit_Defaults(t *testing.T) {
	var epochs int
	_, err := Fit(newNet(2), dataset.XOR(), Config{
		Progress: func(epoch int, mse float64) {
			epochs = epoch
			assert.False(t, math.IsNaN(mse))
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1000, epochs)
}

func TestFit_StopsAtTarget(t *testing.T) {
	// A single example is learned quickly.
	samples := []dataset.Sample{{Input: []float64{1, 0}, Target: []float64{0.7}}}

	res, err := Fit(newNet(3), samples, Config{LearningRate: 0.5, Epochs: 100000, TargetMSE: 1e-4})
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Less(t, res.MSE, 1e-4)
	assert.Less(t, res.Epochs, 100000)
}

func TestFit_ShuffleIsSeeded(t *testing.T) {
	cfg := Config{Epochs: 50, Shuffle: true, Seed: 42}

	a, b := newNet(4), newNet(4)
	_, err := Fit(a, dataset.XOR(), cfg)
	require.NoError(t, err)
	_, err = Fit(b, dataset.XOR(), cfg)
	require.NoError(t, err)

	for _, s := range dataset.XOR() {
		assert.Equal(t, a.Run(s.Input), b.Run(s.Input))
	}
}

func TestFit_Validation(t *testing.T) {
	_, err := Fit(newNet(5), nil, Config{})
	assert.ErrorIs(t, err, ErrNoSamples)

	_, err = Fit(newNet(5), []dataset.Sample{{Input: []float64{1}, Target: []float64{1}}}, Config{})
	assert.ErrorIs(t, err, mlp.ErrDimensionMismatch)

	_, err = Fit(newNet(5), []dataset.Sample{{Input: []float64{1, 0}, Target: []float64{1, 0}}}, Config{})
	assert.ErrorIs(t, err, mlp.ErrDimensionMismatch)
}

func TestEvaluate(t *testing.T) {
	net := newNet(6)
	samples := dataset.XOR()

	var want float64
	for _, s := range samples {
		d := s.Target[0] - net.Run(s.Input)[0]
		want += d * d
	}
	assert.InDelta(t, want/4, Evaluate(net, samples), 1e-15)
	assert.Equal(t, 0.0, Evaluate(net, nil))
}

func TestFitBest_XOR(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping XOR training in short mode")
	}

	net, res, err := FitBest(newNet, dataset.XOR(), Config{
		LearningRate: 0.5,
		Epochs:       10000,
		TargetMSE:    0.005,
		Seed:         1,
	}, 12, parallel.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, res.Converged)

	for _, s := range dataset.XOR() {
		assert.InDelta(t, s.Target[0], net.Run(s.Input)[0], 0.2, "input %v", s.Input)
	}
}

func TestFitBest_PicksLowestError(t *testing.T) {
	cfg := Config{Epochs: 20, Seed: 10}
	best, _, err := FitBest(newNet, dataset.XOR(), cfg, 4, parallel.Config{Enabled: false})
	require.NoError(t, err)

	bestScore := Evaluate(best, dataset.XOR())
	for i := int64(0); i < 4; i++ {
		net := newNet(cfg.Seed + i)
		c := cfg
		c.Seed += i
		_, err := Fit(net, dataset.XOR(), c)
		require.NoError(t, err)
		assert.LessOrEqual(t, bestScore, Evaluate(net, dataset.XOR()))
	}
}

func TestFitBest_PropagatesErrors(t *testing.T) {
	_, _, err := FitBest(newNet, nil, Config{}, 2, parallel.DefaultConfig())
	assert.ErrorIs(t, err, ErrNoSamples)
}
