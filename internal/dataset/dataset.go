// Package dataset provides training samples for feedforward networks.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Sample is one training example.
type Sample struct {
	Input  []float64
	Target []float64
}

// XOR returns the four rows of the two-input exclusive-or truth table.
func XOR() []Sample {
	return []Sample{
		{Input: []float64{0, 0}, Target: []float64{0}},
		{Input: []float64{0, 1}, Target: []float64{1}},
		{Input: []float64{1, 0}, Target: []float64{1}},
		{Input: []float64{1, 1}, Target: []float64{0}},
	}
}

// Dims returns the input and target lengths of samples, or an error if the
// set is empty or not all samples agree.
func Dims(samples []Sample) (inputs, targets int, err error) {
	if len(samples) == 0 {
		return 0, 0, fmt.Errorf("empty sample set")
	}
	inputs, targets = len(samples[0].Input), len(samples[0].Target)
	for i, s := range samples[1:] {
		if len(s.Input) != inputs || len(s.Target) != targets {
			return 0, 0, fmt.Errorf("sample %d has %d inputs and %d targets, sample 0 has %d and %d",
				i+1, len(s.Input), len(s.Target), inputs, targets)
		}
	}
	return inputs, targets, nil
}

// ReadCSV parses samples from comma-separated rows. The first inputs columns
// of a row are the input vector, the remaining columns the target vector.
// Lines starting with '#' are skipped.
func ReadCSV(r io.Reader, inputs int) ([]Sample, error) {
	if inputs < 1 {
		return nil, fmt.Errorf("input count must be positive, got %d", inputs)
	}

	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	var samples []Sample
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(record) <= inputs {
			return nil, fmt.Errorf("line %d: need more than %d columns, got %d", line, inputs, len(record))
		}

		values := make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", line, i+1, err)
			}
			values[i] = v
		}
		samples = append(samples, Sample{Input: values[:inputs:inputs], Target: values[inputs:]})
	}

	if _, _, err := Dims(samples); err != nil {
		return nil, err
	}
	return samples, nil
}

// LoadCSV reads samples from a CSV file. See ReadCSV.
func LoadCSV(path string, inputs int) ([]Sample, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for dataset loading
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	samples, err := ReadCSV(f, inputs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}
