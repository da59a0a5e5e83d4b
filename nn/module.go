// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import "github.com/born-ml/neuraltrainer/internal/nn"

// Layer is the interface implemented by every network layer.
//
// Every layer must implement:
//   - InputSize, OutputSize: Vector widths
//   - Forward: Compute the output and cache per-neuron state
//   - CalculateGradients: Per-neuron ∂L/∂θ for the last Forward
//   - InputGradients: ∂L/∂input for the previous layer
//   - UpdateParameters: Add one Update per neuron
//
// Layers are chained with NewNetwork:
//
//	model, err := nn.NewNetwork(
//	    hidden, // Dense 2 -> 4
//	    output, // Dense 4 -> 1
//	)
type Layer = nn.Layer

// Gradient holds ∂L/∂w and ∂L/∂b for one neuron.
type Gradient = nn.Gradient

// Update is an additive change to one neuron's parameters.
type Update = nn.Update

// ScaleGradients converts per-layer, per-neuron gradients into updates
// multiplied by factor.
//
// Example:
//
//	updates := nn.ScaleGradients(gradients, -learningRate)
func ScaleGradients(gradients [][]Gradient, factor float64) [][]Update {
	return nn.ScaleGradients(gradients, factor)
}
