// Package mlp implements a feedforward multilayer perceptron trained one
// example at a time with backpropagation.
//
// A Network owns an ordered slice of Layers; the last one is the output layer.
// Each Layer owns its Units, and each Unit holds one weight per input plus a
// bias weight. Forward and weight-update passes walk the slice front to back,
// the backward pass walks it back to front.
//
// Example:
//
//	net := mlp.New(2, 1, []int{2}, mlp.Config{Activation: mlp.Sigmoid})
//	for epoch := 0; epoch < 2000; epoch++ {
//	    for _, s := range samples {
//	        net.TrainSingle(s.Input, s.Target, 0.5)
//	    }
//	}
//	out := net.Run([]float64{1, 0})
//
// Weights persist in a text-and-binary format (see package serialization)
// through Network.Write/Read and Network.Save/Load.
package mlp
