package mlp

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// requireDimensionPanic asserts that f panics with an error wrapping
// ErrDimensionMismatch.
func requireDimensionPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value should be an error, got %T", r)
		require.True(t, errors.Is(err, ErrDimensionMismatch), "unexpected panic: %v", err)
	}()
	f()
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

var xorSamples = []struct {
	input, target []float64
}{
	{[]float64{0, 0}, []float64{0}},
	{[]float64{0, 1}, []float64{1}},
	{[]float64{1, 0}, []float64{1}},
	{[]float64{1, 1}, []float64{0}},
}
