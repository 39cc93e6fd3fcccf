// Package main provides the mlp command line tool.
//
// Usage:
//
//	mlp train [flags]                 train a network and save it
//	mlp run -model FILE [flags] X...  run a saved network on one input
//	mlp version                       show version
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/perceptron/internal/dataset"
	"github.com/born-ml/perceptron/internal/mlp"
	"github.com/born-ml/perceptron/internal/parallel"
	"github.com/born-ml/perceptron/internal/train"
)

const version = "v0.1.0"

func main() {
	log.SetFlags(0)
	log.SetPrefix("mlp: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "train":
		err = runTrain(os.Args[2:])
	case "run":
		err = runInfer(os.Args[2:])
	case "version":
		fmt.Printf("mlp %s\n", version)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "mlp - feedforward neural network trainer")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  train      Train a network and save its weights")
	fmt.Fprintln(os.Stderr, "  run        Run a saved network on one input vector")
	fmt.Fprintln(os.Stderr, "  version    Show version")
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	data := fs.String("data", "xor", `Training data: "xor" or a CSV file`)
	inputs := fs.Int("inputs", 2, "Number of input columns in the CSV file")
	hidden := fs.String("hidden", "2", "Comma-separated hidden layer sizes (empty for none)")
	lr := fs.Float64("lr", 0.5, "Learning rate")
	epochs := fs.Int("epochs", 5000, "Maximum number of epochs")
	target := fs.Float64("target", 0.001, "Stop when the epoch mean squared error drops below this")
	activation := fs.String("activation", "sigmoid", "Activation function: sigmoid or tanh")
	restarts := fs.Int("restarts", 1, "Number of independently seeded networks to train")
	shuffle := fs.Bool("shuffle", false, "Shuffle samples every epoch")
	seed := fs.Int64("seed", 1, "Seed for weights and sample order")
	out := fs.String("out", "model.net", "Output file for the trained weights")
	verbose := fs.Bool("v", false, "Log progress every 500 epochs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	act, err := mlp.ParseActivation(*activation)
	if err != nil {
		return err
	}
	sizes, err := parseSizes(*hidden)
	if err != nil {
		return err
	}

	var samples []dataset.Sample
	if *data == "xor" {
		samples = dataset.XOR()
	} else if samples, err = dataset.LoadCSV(*data, *inputs); err != nil {
		return err
	}
	nIn, nOut, err := dataset.Dims(samples)
	if err != nil {
		return err
	}

	cfg := train.Config{
		LearningRate: *lr,
		Epochs:       *epochs,
		TargetMSE:    *target,
		Shuffle:      *shuffle,
		Seed:         *seed,
	}
	if *verbose {
		cfg.Progress = func(epoch int, mse float64) {
			if epoch%500 == 0 {
				log.Printf("epoch %d: mse %.6f", epoch, mse)
			}
		}
	}
	factory := func(seed int64) *mlp.Network {
		return mlp.New(nIn, nOut, sizes, mlp.Config{Activation: act, Rand: newRand(seed)})
	}

	log.Printf("training %d-%s-%d %s network on %d samples", nIn, *hidden, nOut, act, len(samples))
	var (
		net *mlp.Network
		res train.Result
	)
	if *restarts > 1 {
		net, res, err = train.FitBest(factory, samples, cfg, *restarts, parallel.DefaultConfig())
	} else {
		net = factory(*seed)
		res, err = train.Fit(net, samples, cfg)
	}
	if err != nil {
		return err
	}
	log.Printf("stopped after %d epochs: mse %.6f (converged: %t)", res.Epochs, res.MSE, res.Converged)

	if err := net.Save(*out); err != nil {
		return err
	}
	log.Printf("saved weights to %s (load with -activation %s)", *out, act)
	return nil
}

func runInfer(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	model := fs.String("model", "model.net", "Weights file written by train")
	activation := fs.String("activation", "sigmoid", "Activation the network was trained with")
	if err := fs.Parse(args); err != nil {
		return err
	}

	act, err := mlp.ParseActivation(*activation)
	if err != nil {
		return err
	}
	net, err := mlp.Load(*model, act)
	if err != nil {
		return err
	}

	input := make([]float64, fs.NArg())
	for i, arg := range fs.Args() {
		if input[i], err = strconv.ParseFloat(arg, 64); err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
	}
	if len(input) != net.InputSize() {
		return fmt.Errorf("network takes %d inputs, got %d", net.InputSize(), len(input))
	}

	for i, v := range net.Run(input) {
		fmt.Printf("%d\t%.6f\n", i, v)
	}
	return nil
}

// parseSizes parses a comma-separated list of positive layer sizes.
func parseSizes(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	sizes := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid hidden layer size %q", p)
		}
		sizes[i] = n
	}
	return sizes, nil
}
