// Package serialization implements the record layer of the network file format.
//
// A network document is line-oriented text with embedded binary blobs:
//
//	NETWORK
//	input_size <int>
//	layers <int>
//	LAYER
//	inputs <int>
//	neurons <int>
//	NEURON
//	size <int>
//	data <size little-endian float64 values>
//
// NEURON records repeat once per neuron and LAYER records once per layer.
// A single newline terminates the document.
//
// Writer and Reader know nothing about networks. They provide the primitives
// (keyword lines, integer fields, weight blobs) that the mlp package composes
// into unit, layer and network records.
//
// Example usage:
//
//	w := serialization.NewWriter(out)
//	_ = w.Keyword(serialization.KeywordNetwork)
//	_ = w.IntField(serialization.FieldInputSize, 2)
//	if err := w.Flush(); err != nil {
//	    log.Fatal(err)
//	}
package serialization
