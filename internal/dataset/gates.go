// Package dataset provides logic-gate truth tables as training examples.
package dataset

import (
	"slices"
	"strings"

	"github.com/born-ml/neuraltrainer/internal/optim"
	"github.com/pkg/errors"
)

// ErrUnknownGate is returned for gate names that have no truth table.
var ErrUnknownGate = errors.New("unknown gate")

type gate struct {
	arity  int
	linear bool // separable by a single neuron
	eval   func(in []bool) bool
}

var gates = map[string]gate{
	"and":  {2, true, func(in []bool) bool { return in[0] && in[1] }},
	"nand": {2, true, func(in []bool) bool { return !(in[0] && in[1]) }},
	"or":   {2, true, func(in []bool) bool { return in[0] || in[1] }},
	"nor":  {2, true, func(in []bool) bool { return !(in[0] || in[1]) }},
	"xor":  {2, false, func(in []bool) bool { return in[0] != in[1] }},
	"xnor": {2, false, func(in []bool) bool { return in[0] == in[1] }},
	"not":  {1, true, func(in []bool) bool { return !in[0] }},
}

// Names returns the supported gate names in sorted order.
func Names() []string {
	names := make([]string, 0, len(gates))
	for name := range gates {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Gate returns the full truth table of the named gate, one example per input
// combination in binary counting order. Inputs and targets are 0 or 1.
//
// Example:
//
//	examples, err := dataset.Gate("xor")
//	// [0,0]->[0], [0,1]->[1], [1,0]->[1], [1,1]->[0]
func Gate(name string) ([]optim.Example, error) {
	g, err := lookup(name)
	if err != nil {
		return nil, err
	}

	rows := 1 << g.arity
	examples := make([]optim.Example, 0, rows)
	for row := range rows {
		bits := make([]bool, g.arity)
		inputs := make([]float64, g.arity)
		for i := range bits {
			// Most significant input first.
			bits[i] = row&(1<<(g.arity-1-i)) != 0
			inputs[i] = boolValue(bits[i])
		}
		examples = append(examples, optim.NewExample(inputs, []float64{boolValue(g.eval(bits))}))
	}
	return examples, nil
}

// InputSize returns the number of inputs of the named gate.
func InputSize(name string) (int, error) {
	g, err := lookup(name)
	if err != nil {
		return 0, err
	}
	return g.arity, nil
}

// Linear reports whether the named gate is linearly separable, i.e.
// learnable by a network without hidden layers.
func Linear(name string) (bool, error) {
	g, err := lookup(name)
	if err != nil {
		return false, err
	}
	return g.linear, nil
}

func lookup(name string) (gate, error) {
	g, ok := gates[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return gate{}, errors.Wrapf(ErrUnknownGate, "%q (supported: %s)", name, strings.Join(Names(), ", "))
	}
	return g, nil
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
