package optim

import (
	"slices"
	"strconv"
	"strings"
)

// Example is an immutable (inputs, targets) training pair.
//
// The constructor copies both slices. Inputs and Targets return the stored
// slices without copying; callers must not modify them.
type Example struct {
	inputs  []float64
	targets []float64
}

// NewExample creates a training example.
//
// Example:
//
//	and := []optim.Example{
//	    optim.NewExample([]float64{0, 0}, []float64{0}),
//	    optim.NewExample([]float64{1, 1}, []float64{1}),
//	}
func NewExample(inputs, targets []float64) Example {
	return Example{
		inputs:  slices.Clone(inputs),
		targets: slices.Clone(targets),
	}
}

// Inputs returns the input vector.
func (e Example) Inputs() []float64 {
	return e.inputs
}

// Targets returns the target vector.
func (e Example) Targets() []float64 {
	return e.targets
}

// String renders the example as "Inputs: [0,1], expected: [1]".
func (e Example) String() string {
	return "Inputs: [" + join(e.inputs) + "], expected: [" + join(e.targets) + "]"
}

func join(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
