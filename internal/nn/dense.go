package nn

import (
	"github.com/pkg/errors"
)

// Dense implements a fully connected layer of neurons.
//
// Every neuron sees the same input vector, and neuron k produces output
// element k:
//
//	y_k = activation(b_k + Σ_j w_{k,j} * x_j)
//
// Example:
//
//	init, _ := nn.NewXavierInitializer(nn.NewRand(42))
//	layer, err := nn.NewDense(2, 4, nn.Tanh{}, init)
//
//	output, err := layer.Forward([]float64{0, 1}) // len(output) == 4
type Dense struct {
	inputSize int
	neurons   []*Neuron
}

// NewDense creates a dense layer.
//
// Parameters:
//   - inputSize: Number of inputs per neuron (fan-in)
//   - outputSize: Number of neurons (fan-out)
//   - activation: Activation shared by all neurons
//   - init: Weight initializer, called with (inputSize, outputSize)
//
// Returns a new Dense layer.
func NewDense(inputSize, outputSize int, activation Activation, init Initializer) (*Dense, error) {
	if outputSize < 1 {
		return nil, NewArgumentError("outputSize", ErrOutOfRange, "must be positive, got %d", outputSize)
	}

	neurons := make([]*Neuron, outputSize)
	for k := range neurons {
		n, err := newNeuron(inputSize, outputSize, activation, init)
		if err != nil {
			return nil, err
		}
		neurons[k] = n
	}

	return &Dense{inputSize: inputSize, neurons: neurons}, nil
}

// NewDenseFromNeurons creates a dense layer from existing neurons.
// All neurons must have the same input size.
func NewDenseFromNeurons(neurons ...*Neuron) (*Dense, error) {
	if len(neurons) == 0 {
		return nil, NewArgumentError("neurons", ErrInvalidArgument, "at least one neuron is required")
	}

	for k, n := range neurons {
		if n == nil {
			return nil, NewArgumentError("neurons", ErrInvalidArgument, "neuron %d is nil", k)
		}
		if n.InputSize() != neurons[0].InputSize() {
			return nil, NewArgumentError("neurons", ErrSizeMismatch,
				"neuron %d has input size %d, expected %d", k, n.InputSize(), neurons[0].InputSize())
		}
	}

	return &Dense{
		inputSize: neurons[0].InputSize(),
		neurons:   append([]*Neuron(nil), neurons...),
	}, nil
}

// Forward applies every neuron to inputs and collects the outputs in
// neuron order.
func (d *Dense) Forward(inputs []float64) ([]float64, error) {
	if len(inputs) != d.inputSize {
		return nil, sizeMismatch("inputs", d.inputSize, len(inputs))
	}

	output := make([]float64, len(d.neurons))
	for k, n := range d.neurons {
		y, err := n.Forward(inputs)
		if err != nil {
			return nil, errors.Wrapf(err, "neuron %d", k)
		}
		output[k] = y
	}
	return output, nil
}

// CalculateGradients returns each neuron's gradients for the last Forward.
func (d *Dense) CalculateGradients(inputs, outputGradients []float64) ([]Gradient, error) {
	if len(outputGradients) != len(d.neurons) {
		return nil, sizeMismatch("outputGradients", len(d.neurons), len(outputGradients))
	}

	gradients := make([]Gradient, len(d.neurons))
	for k, n := range d.neurons {
		g, err := n.CalculateGradients(inputs, outputGradients[k])
		if err != nil {
			return nil, errors.Wrapf(err, "neuron %d", k)
		}
		gradients[k] = g
	}
	return gradients, nil
}

// InputGradients returns ∂L/∂input_j = Σ_k gradients[k].Bias * w_{k,j}.
//
// Must be called before the weights are updated for the same step.
func (d *Dense) InputGradients(gradients []Gradient) ([]float64, error) {
	if len(gradients) != len(d.neurons) {
		return nil, sizeMismatch("gradients", len(d.neurons), len(gradients))
	}

	upstream := make([]float64, d.inputSize)
	for k, n := range d.neurons {
		g := gradients[k].Bias
		for j := range upstream {
			upstream[j] += g * n.weights[j]
		}
	}
	return upstream, nil
}

// UpdateParameters applies one Update per neuron.
//
// All updates are validated first, so a bad update leaves the whole layer
// untouched.
func (d *Dense) UpdateParameters(updates []Update) error {
	if len(updates) != len(d.neurons) {
		return sizeMismatch("updates", len(d.neurons), len(updates))
	}

	for k, n := range d.neurons {
		if len(updates[k].Weights) != n.InputSize() {
			return errors.Wrapf(sizeMismatch("weightDeltas", n.InputSize(), len(updates[k].Weights)), "neuron %d", k)
		}
		if err := n.validateUpdate(updates[k]); err != nil {
			return errors.Wrapf(err, "neuron %d", k)
		}
	}

	for k, n := range d.neurons {
		if err := n.UpdateParameters(updates[k]); err != nil {
			return errors.Wrapf(err, "neuron %d", k)
		}
	}
	return nil
}

// InputSize returns the number of inputs.
func (d *Dense) InputSize() int {
	return d.inputSize
}

// OutputSize returns the number of neurons.
func (d *Dense) OutputSize() int {
	return len(d.neurons)
}

// Neurons returns the layer's neurons in order.
func (d *Dense) Neurons() []*Neuron {
	return append([]*Neuron(nil), d.neurons...)
}

// Neuron returns the neuron at index k.
//
// Panics if k is out of bounds.
func (d *Dense) Neuron(k int) *Neuron {
	if k < 0 || k >= len(d.neurons) {
		panic("Dense.Neuron: index out of bounds")
	}
	return d.neurons[k]
}
