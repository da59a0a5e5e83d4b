package nn

import (
	"github.com/pkg/errors"
)

// Network chains layers so that each layer's output becomes the next
// layer's input.
//
// Width compatibility is checked once, at construction.
//
// Example:
//
//	init, _ := nn.NewXavierInitializer(nn.NewRand(7))
//	net, err := nn.NewNetworkFromSizes([]int{2, 4, 1}, nn.Sigmoid{}, init)
//
//	output, err := net.Forward([]float64{1, 0})
//
//	grad, _ := nn.MSELoss{}.Derivative(output, []float64{1})
//	gradients, err := net.Backpropagate([]float64{1, 0}, grad)
//	err = net.UpdateAllLayers(nn.ScaleGradients(gradients, -0.1))
type Network struct {
	layers []Layer
}

// NewNetwork creates a network from an ordered list of layers.
//
// Fails on the first adjacent pair whose widths disagree, naming the layer
// index and the expected and actual sizes.
func NewNetwork(layers ...Layer) (*Network, error) {
	if len(layers) == 0 {
		return nil, NewArgumentError("layers", ErrInvalidArgument, "at least one layer is required")
	}

	for i, l := range layers {
		if l == nil {
			return nil, NewArgumentError("layers", ErrInvalidArgument, "layer %d is nil", i)
		}
		if i == 0 {
			continue
		}
		if prev := layers[i-1].OutputSize(); l.InputSize() != prev {
			return nil, NewArgumentError("layers", ErrSizeMismatch,
				"layer %d expects input size %d but layer %d produces %d", i, l.InputSize(), i-1, prev)
		}
	}

	return &Network{layers: append([]Layer(nil), layers...)}, nil
}

// NewNetworkFromSizes creates one Dense layer per adjacent pair of sizes.
//
// Parameters:
//   - sizes: [inputSize, hidden..., outputSize], at least two entries
//   - activation: Activation shared by every neuron
//   - init: Weight initializer shared by every layer
//
// Example:
//
//	// 2 inputs -> 3 hidden -> 1 output
//	net, err := nn.NewNetworkFromSizes([]int{2, 3, 1}, nn.Sigmoid{}, init)
func NewNetworkFromSizes(sizes []int, activation Activation, init Initializer) (*Network, error) {
	if len(sizes) < 2 {
		return nil, NewArgumentError("sizes", ErrInvalidArgument,
			"need at least input and output sizes, got %d entries", len(sizes))
	}

	layers := make([]Layer, 0, len(sizes)-1)
	for i := 0; i < len(sizes)-1; i++ {
		d, err := NewDense(sizes[i], sizes[i+1], activation, init)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d", i)
		}
		layers = append(layers, d)
	}

	return NewNetwork(layers...)
}

// Forward feeds inputs through every layer and returns the final output.
func (n *Network) Forward(inputs []float64) ([]float64, error) {
	current := inputs
	for i, l := range n.layers {
		out, err := l.Forward(current)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d", i)
		}
		current = out
	}
	return current, nil
}

// Backpropagate runs a forward pass on inputs and then walks the layers in
// reverse, applying the chain rule.
//
// outputGradients is ∂L/∂output of the final layer. The result holds, for
// every layer in order, one Gradient per neuron.
func (n *Network) Backpropagate(inputs, outputGradients []float64) ([][]Gradient, error) {
	if len(outputGradients) != n.OutputSize() {
		return nil, sizeMismatch("outputGradients", n.OutputSize(), len(outputGradients))
	}

	// layerInputs[i] is the vector fed into layer i.
	layerInputs := make([][]float64, len(n.layers))
	current := inputs
	for i, l := range n.layers {
		layerInputs[i] = current
		out, err := l.Forward(current)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d", i)
		}
		current = out
	}

	result := make([][]Gradient, len(n.layers))
	currentGradients := outputGradients
	for i := len(n.layers) - 1; i >= 0; i-- {
		l := n.layers[i]

		gradients, err := l.CalculateGradients(layerInputs[i], currentGradients)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d", i)
		}
		result[i] = gradients

		if i == 0 {
			break
		}
		currentGradients, err = l.InputGradients(gradients)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d", i)
		}
	}

	return result, nil
}

// UpdateAllLayers applies one list of per-neuron updates to each layer.
func (n *Network) UpdateAllLayers(updates [][]Update) error {
	if len(updates) != len(n.layers) {
		return sizeMismatch("layerUpdates", len(n.layers), len(updates))
	}

	for i, l := range n.layers {
		if err := l.UpdateParameters(updates[i]); err != nil {
			return errors.Wrapf(err, "layer %d", i)
		}
	}
	return nil
}

// InputSize returns the first layer's input size.
func (n *Network) InputSize() int {
	return n.layers[0].InputSize()
}

// OutputSize returns the last layer's output size.
func (n *Network) OutputSize() int {
	return n.layers[len(n.layers)-1].OutputSize()
}

// Len returns the number of layers.
func (n *Network) Len() int {
	return len(n.layers)
}

// Layers returns the layers in order.
func (n *Network) Layers() []Layer {
	return append([]Layer(nil), n.layers...)
}

// Layer returns the layer at the given index.
//
// Panics if index is out of bounds.
func (n *Network) Layer(index int) Layer {
	if index < 0 || index >= len(n.layers) {
		panic("Network.Layer: index out of bounds")
	}
	return n.layers[index]
}

// ParameterCount returns the number of trainable scalars (weights and
// biases) across all layers.
func (n *Network) ParameterCount() int {
	count := 0
	for _, l := range n.layers {
		count += l.OutputSize() * (l.InputSize() + 1)
	}
	return count
}
