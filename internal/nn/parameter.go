package nn

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Gradient holds the partial derivatives of the loss with respect to one
// neuron's parameters.
//
// Bias is also ∂L/∂z for the neuron's pre-activation z, which is what
// Layer.InputGradients propagates backwards.
type Gradient struct {
	Weights []float64 // ∂L/∂w_i, one per input
	Bias    float64   // ∂L/∂b
}

// Update is an additive change to one neuron's parameters.
//
// Example:
//
//	// Plain gradient descent step
//	update := grad.Scaled(-learningRate)
//	err := neuron.UpdateParameters(update)
type Update struct {
	Weights []float64 // Added elementwise to the weights
	Bias    float64   // Added to the bias
}

// Scaled returns the update factor * g.
func (g Gradient) Scaled(factor float64) Update {
	w := make([]float64, len(g.Weights))
	floats.ScaleTo(w, factor, g.Weights)
	return Update{Weights: w, Bias: factor * g.Bias}
}

// Clone returns a deep copy of u.
func (u Update) Clone() Update {
	return Update{Weights: slices.Clone(u.Weights), Bias: u.Bias}
}

// ScaleGradients converts per-layer, per-neuron gradients into updates
// multiplied by factor.
func ScaleGradients(gradients [][]Gradient, factor float64) [][]Update {
	updates := make([][]Update, len(gradients))
	for l, layer := range gradients {
		updates[l] = make([]Update, len(layer))
		for n, g := range layer {
			updates[l][n] = g.Scaled(factor)
		}
	}
	return updates
}
