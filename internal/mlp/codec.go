package mlp

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/born-ml/perceptron/internal/serialization"
)

// WriteRecord writes the unit as a NEURON record: the weight count in decimal
// and the weights as raw little-endian float64 values.
func (u *Unit) WriteRecord(w *serialization.Writer) error {
	if err := w.Keyword(serialization.KeywordNeuron); err != nil {
		return err
	}
	if err := w.IntField(serialization.FieldSize, len(u.weights)); err != nil {
		return err
	}
	return w.Float64Blob(u.weights)
}

// ReadUnit reads a NEURON record for a unit with inputArity inputs.
//
// Returns an error wrapping ErrMalformedRecord if the record is missing a
// keyword, declares a weight count other than inputArity+1, or is truncated.
func ReadUnit(r *serialization.Reader, inputArity int, act Activation) (*Unit, error) {
	if err := r.Keyword(serialization.KeywordNeuron); err != nil {
		return nil, err
	}
	size, err := r.IntField(serialization.KeywordNeuron, serialization.FieldSize)
	if err != nil {
		return nil, err
	}
	if size != inputArity+1 {
		return nil, &serialization.RecordError{
			Record:  serialization.KeywordNeuron,
			Field:   serialization.FieldSize,
			Details: fmt.Sprintf("expected %d weights, got %d", inputArity+1, size),
		}
	}
	weights, err := r.Float64Blob(serialization.KeywordNeuron, size)
	if err != nil {
		return nil, err
	}
	return NewUnitFromWeights(weights, act), nil
}

// WriteRecord writes the layer as a LAYER record followed by one NEURON
// record per unit.
func (l *Layer) WriteRecord(w *serialization.Writer) error {
	if err := w.Keyword(serialization.KeywordLayer); err != nil {
		return err
	}
	if err := w.IntField(serialization.FieldInputs, l.inputArity); err != nil {
		return err
	}
	if err := w.IntField(serialization.FieldNeurons, len(l.units)); err != nil {
		return err
	}
	for i, u := range l.units {
		if err := u.WriteRecord(w); err != nil {
			return errors.Wrapf(err, "neuron %d", i)
		}
	}
	return nil
}

// ReadLayer reads a LAYER record whose units take inputArity inputs.
//
// The declared input count is checked against inputArity before any unit is
// read. On failure no layer is returned.
func ReadLayer(r *serialization.Reader, inputArity int, act Activation) (*Layer, error) {
	if err := r.Keyword(serialization.KeywordLayer); err != nil {
		return nil, err
	}
	inputs, err := r.IntField(serialization.KeywordLayer, serialization.FieldInputs)
	if err != nil {
		return nil, err
	}
	if inputs != inputArity {
		return nil, &serialization.RecordError{
			Record:  serialization.KeywordLayer,
			Field:   serialization.FieldInputs,
			Details: fmt.Sprintf("expected %d, got %d", inputArity, inputs),
		}
	}
	count, err := r.IntField(serialization.KeywordLayer, serialization.FieldNeurons)
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, &serialization.RecordError{
			Record:  serialization.KeywordLayer,
			Field:   serialization.FieldNeurons,
			Details: fmt.Sprintf("layer needs at least one neuron, got %d", count),
		}
	}

	units := make([]*Unit, 0, min(count, 1024))
	for i := 0; i < count; i++ {
		u, err := ReadUnit(r, inputArity, act)
		if err != nil {
			return nil, errors.Wrapf(err, "neuron %d", i)
		}
		units = append(units, u)
	}
	return newLayer(units, inputArity), nil
}

// Write serializes the network's weights to w.
//
// The activation is not part of the format; see Read. Write does not close w,
// so the document can be embedded in a larger stream.
func (n *Network) Write(w io.Writer) error {
	sw := serialization.NewWriter(w)
	if err := sw.Keyword(serialization.KeywordNetwork); err != nil {
		return err
	}
	if err := sw.IntField(serialization.FieldInputSize, len(n.input)); err != nil {
		return err
	}
	if err := sw.IntField(serialization.FieldLayers, len(n.layers)); err != nil {
		return err
	}
	for i, l := range n.layers {
		if err := l.WriteRecord(sw); err != nil {
			return errors.Wrapf(err, "layer %d", i)
		}
	}
	if err := sw.End(); err != nil {
		return err
	}
	return sw.Flush()
}

// Read deserializes a network written by Network.Write. act must be the
// activation the network was trained with.
//
// Read consumes the stream up to and including the document's final newline
// and nothing beyond it. On any failure it returns a nil network and an error
// wrapping ErrMalformedRecord or ErrIO.
func Read(r io.Reader, act Activation) (*Network, error) {
	if !act.Valid() {
		return nil, fmt.Errorf("mlp.Read: unknown activation %d", int(act))
	}

	sr := serialization.NewReader(r)
	if err := sr.Keyword(serialization.KeywordNetwork); err != nil {
		return nil, err
	}
	inputSize, err := sr.IntField(serialization.KeywordNetwork, serialization.FieldInputSize)
	if err != nil {
		return nil, err
	}
	if inputSize < 1 {
		return nil, &serialization.RecordError{
			Record:  serialization.KeywordNetwork,
			Field:   serialization.FieldInputSize,
			Details: fmt.Sprintf("must be positive, got %d", inputSize),
		}
	}
	count, err := sr.IntField(serialization.KeywordNetwork, serialization.FieldLayers)
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, &serialization.RecordError{
			Record:  serialization.KeywordNetwork,
			Field:   serialization.FieldLayers,
			Details: fmt.Sprintf("network needs an output layer, got %d layers", count),
		}
	}

	layers := make([]*Layer, 0, min(count, 1024))
	arity := inputSize
	for i := 0; i < count; i++ {
		l, err := ReadLayer(sr, arity, act)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d", i)
		}
		layers = append(layers, l)
		arity = l.Size()
	}
	if err := sr.End(); err != nil {
		return nil, err
	}

	net, err := NewFromLayers(inputSize, layers)
	if err != nil {
		return nil, err
	}
	net.activation = act
	return net, nil
}

// Save writes the network to a file, creating or truncating it.
func (n *Network) Save(path string) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(&serialization.IOError{Op: "create " + path, Err: err})
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.WithStack(&serialization.IOError{Op: "close " + path, Err: closeErr})
		}
	}()

	if err := n.Write(f); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}

// Load reads a network from a file written by Save.
func Load(path string, act Activation) (*Network, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(&serialization.IOError{Op: "open " + path, Err: err})
	}
	defer func() { _ = f.Close() }()

	net, err := Read(bufio.NewReader(f), act)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return net, nil
}
