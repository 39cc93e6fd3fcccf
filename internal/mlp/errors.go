package mlp

import (
	"fmt"

	"github.com/born-ml/perceptron/internal/serialization"
)

// Error kinds. Callers match them with errors.Is.
var (
	ErrDimensionMismatch = serialization.ErrDimensionMismatch
	ErrMalformedRecord   = serialization.ErrMalformedRecord
	ErrIO                = serialization.ErrIO
)

// dimensionPanic aborts an operation whose caller broke a size contract.
func dimensionPanic(op string, want, got int) {
	panic(fmt.Errorf("%s: %w: expected %d, got %d", op, ErrDimensionMismatch, want, got))
}
