package serialization

// Record keywords. Every keyword sits on its own line; fields are a name and
// a decimal value separated by a single space.
const (
	KeywordNetwork = "NETWORK"
	KeywordLayer   = "LAYER"
	KeywordNeuron  = "NEURON"
)

// Field names.
const (
	FieldInputSize = "input_size"
	FieldLayers    = "layers"
	FieldInputs    = "inputs"
	FieldNeurons   = "neurons"
	FieldSize      = "size"
	FieldData      = "data"
)

// Float64Size is the width of one encoded weight.
const Float64Size = 8

// maxFieldLine bounds a header line so a binary stream fed to the reader
// cannot grow the line buffer without limit.
const maxFieldLine = 64
