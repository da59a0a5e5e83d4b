// Package nn implements the dense feed-forward network engine.
//
// This package provides building blocks for constructing and training
// small fully connected networks:
//   - Activation: Sigmoid, Tanh, ReLU (plus ActivationFactory)
//   - Initializer: Uniform, He, Xavier (plus InitializerFactory)
//   - Loss: MSELoss (squared error)
//   - Neuron: weights, bias, activation, cached forward state
//   - Layer interface and the Dense implementation
//   - Network: layer chain with Forward, Backpropagate and UpdateAllLayers
//
// Computation is scalar and sequential; there is no batching.
package nn

// Layer is the interface implemented by every network layer.
//
// A layer maps an input vector of InputSize elements to an output vector of
// OutputSize elements and can report per-neuron parameter gradients.
//
// Layers can be chained into a Network:
//
//	hidden, _ := nn.NewDense(2, 4, nn.Tanh{}, init)
//	output, _ := nn.NewDense(4, 1, nn.Sigmoid{}, init)
//	net, err := nn.NewNetwork(hidden, output)
type Layer interface {
	// InputSize returns the number of inputs every neuron accepts.
	InputSize() int

	// OutputSize returns the number of neurons (output elements).
	OutputSize() int

	// Forward computes the layer output and caches per-neuron state needed
	// by CalculateGradients.
	Forward(inputs []float64) ([]float64, error)

	// CalculateGradients returns one Gradient per neuron, in neuron order.
	//
	// inputs must be the vector passed to the immediately preceding Forward
	// call; outputGradients holds ∂L/∂output for each neuron.
	CalculateGradients(inputs, outputGradients []float64) ([]Gradient, error)

	// InputGradients propagates per-neuron gradients to the layer inputs:
	// ∂L/∂input_j = Σ_k gradients[k].Bias * weight_{k,j}.
	InputGradients(gradients []Gradient) ([]float64, error)

	// UpdateParameters adds one Update per neuron, in neuron order.
	UpdateParameters(updates []Update) error
}
