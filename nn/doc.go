// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides dense feed-forward networks and their building blocks.
//
// # Overview
//
// This package contains:
//   - Activations: Sigmoid, Tanh, ReLU
//   - Initializers: Uniform, He, Xavier
//   - Loss functions: MSELoss
//   - Building blocks: Neuron, Dense, Network, Layer interface
//   - Gradients: Gradient, Update, ScaleGradients
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/neuraltrainer/nn"
//	)
//
//	func main() {
//	    init, _ := nn.NewXavierInitializer(nn.NewRand(42))
//
//	    // 2 inputs -> 4 hidden -> 1 output
//	    hidden, _ := nn.NewDense(2, 4, nn.Tanh{}, init)
//	    output, _ := nn.NewDense(4, 1, nn.Sigmoid{}, init)
//	    model, err := nn.NewNetwork(hidden, output)
//
//	    // Forward pass
//	    y, err := model.Forward([]float64{0, 1})
//	}
//
// # Layers
//
// Dense: Fully connected layer; neuron k produces output element k
//
//	layer, err := nn.NewDense(inputSize, outputSize, activation, init)
//
// Network: Chain of layers whose widths are checked at construction
//
//	model, err := nn.NewNetworkFromSizes([]int{2, 4, 1}, nn.Sigmoid{}, init)
//
// # Activations
//
// Derivatives take the activation output, not the input:
//
//	y := nn.Sigmoid{}.Activate(x)
//	dy := nn.Sigmoid{}.Derivative(y) // y * (1 - y)
//
// # Backpropagation
//
// Backpropagate returns ∂L/∂θ for every layer and neuron. A gradient
// descent step scales them by the negative learning rate:
//
//	grad, _ := nn.MSELoss{}.Derivative(y, target)
//	gradients, err := model.Backpropagate(x, grad)
//	err = model.UpdateAllLayers(nn.ScaleGradients(gradients, -0.1))
//
// # Initialization
//
// Every initializer draws from an explicit random source:
//
//	rng := nn.NewRand(seed)
//	he, _ := nn.NewHeInitializer(rng)           // ReLU layers
//	xavier, _ := nn.NewXavierInitializer(rng)   // Sigmoid/Tanh layers
//	uniform, _ := nn.NewUniformInitializer(-0.5, 0.5, rng)
package nn
