// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mlp provides a feedforward neural network (multilayer perceptron)
// trained with single-example backpropagation.
//
// # Overview
//
// This package contains:
//   - Network: hidden layers plus one output layer, with Run and TrainSingle
//   - Layer, Unit: the building blocks, exposed for inspection and import
//   - Activations: Sigmoid, Tanh
//   - Persistence: Save/Load for files, Write/Read for open streams
//
// # Basic Usage
//
//	import "github.com/born-ml/perceptron/mlp"
//
//	func main() {
//	    net := mlp.New(2, 1, []int{2}, mlp.Config{Activation: mlp.Sigmoid})
//
//	    mse := net.TrainSingle([]float64{1, 0}, []float64{1}, 0.5)
//	    out := net.Run([]float64{1, 0})
//
//	    if err := net.Save("xor.net"); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Persistence
//
// The file format stores weights only. Load and Read must be given the same
// Activation the network was trained with.
//
// # Concurrency
//
// A Network is not safe for concurrent use. Use one Network per goroutine.
package mlp
