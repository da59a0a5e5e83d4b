package nn

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Neuron is a single computational unit: a weight vector, a bias and an
// activation function.
//
// Forward caches the pre-activation and output. CalculateGradients reads
// that cache, so callers must run Forward on the same inputs immediately
// before computing gradients.
//
// Example:
//
//	n, _ := nn.NewNeuronWithParameters([]float64{2.0}, -1.0, nn.Sigmoid{})
//	y, _ := n.Forward([]float64{0.5}) // sigmoid(0.5*2 - 1) = 0.5
type Neuron struct {
	weights    []float64
	bias       float64
	activation Activation

	lastPreActivation float64
	lastOutput        float64
	forwarded         bool
}

// NewNeuron creates a neuron with inputSize weights drawn from init.
//
// The neuron is treated as a layer of one, so fan-out is 1.
func NewNeuron(inputSize int, activation Activation, init Initializer) (*Neuron, error) {
	return newNeuron(inputSize, 1, activation, init)
}

func newNeuron(inputSize, fanOut int, activation Activation, init Initializer) (*Neuron, error) {
	if inputSize < 1 {
		return nil, NewArgumentError("inputSize", ErrOutOfRange, "must be positive, got %d", inputSize)
	}
	if activation == nil {
		return nil, NewArgumentError("activation", ErrInvalidArgument, "activation function is required")
	}
	if init == nil {
		return nil, NewArgumentError("initializer", ErrInvalidArgument, "weight initializer is required")
	}

	weights := make([]float64, inputSize)
	for i := range weights {
		weights[i] = init.InitializeWeight(inputSize, fanOut)
	}

	return &Neuron{
		weights:    weights,
		bias:       init.InitializeBias(),
		activation: activation,
	}, nil
}

// NewNeuronWithParameters creates a neuron with explicit weights and bias.
// The weights are copied.
func NewNeuronWithParameters(weights []float64, bias float64, activation Activation) (*Neuron, error) {
	if len(weights) == 0 {
		return nil, NewArgumentError("weights", ErrOutOfRange, "at least one weight is required")
	}
	if activation == nil {
		return nil, NewArgumentError("activation", ErrInvalidArgument, "activation function is required")
	}
	if err := checkFinite("weights", weights...); err != nil {
		return nil, err
	}
	if err := checkFinite("bias", bias); err != nil {
		return nil, err
	}

	return &Neuron{
		weights:    slices.Clone(weights),
		bias:       bias,
		activation: activation,
	}, nil
}

// Forward computes activation(bias + Σ inputs[i]*weights[i]).
func (n *Neuron) Forward(inputs []float64) (float64, error) {
	if len(inputs) != len(n.weights) {
		return 0, sizeMismatch("inputs", len(n.weights), len(inputs))
	}

	n.lastPreActivation = n.bias + floats.Dot(inputs, n.weights)
	n.lastOutput = n.activation.Activate(n.lastPreActivation)
	n.forwarded = true
	return n.lastOutput, nil
}

// CalculateGradients returns the parameter gradients for the last Forward.
//
// outputGradient is ∂L/∂output. The neuron gradient is
// g = outputGradient * activation'(lastOutput), giving ∂L/∂w_i = g * inputs[i]
// and ∂L/∂b = g.
func (n *Neuron) CalculateGradients(inputs []float64, outputGradient float64) (Gradient, error) {
	if !n.forwarded {
		return Gradient{}, NewArgumentError("", ErrNotForwarded, "call Forward before CalculateGradients")
	}
	if err := checkFinite("outputGradient", outputGradient); err != nil {
		return Gradient{}, err
	}
	if len(inputs) != len(n.weights) {
		return Gradient{}, sizeMismatch("inputs", len(n.weights), len(inputs))
	}

	g := outputGradient * n.activation.Derivative(n.lastOutput)

	weightGradients := make([]float64, len(inputs))
	floats.ScaleTo(weightGradients, g, inputs)

	return Gradient{Weights: weightGradients, Bias: g}, nil
}

// UpdateParameters adds the deltas to the weights and bias.
//
// The update is rejected as a whole if it has the wrong size or carries
// NaN or infinite values; nothing is modified in that case.
func (n *Neuron) UpdateParameters(update Update) error {
	if len(update.Weights) != len(n.weights) {
		return sizeMismatch("weightDeltas", len(n.weights), len(update.Weights))
	}
	if err := n.validateUpdate(update); err != nil {
		return err
	}

	floats.Add(n.weights, update.Weights)
	n.bias += update.Bias
	return nil
}

func (n *Neuron) validateUpdate(update Update) error {
	if err := checkFinite("weightDeltas", update.Weights...); err != nil {
		return err
	}
	return checkFinite("biasDelta", update.Bias)
}

// InputSize returns the number of weights.
func (n *Neuron) InputSize() int {
	return len(n.weights)
}

// Weights returns a copy of the weights.
func (n *Neuron) Weights() []float64 {
	return slices.Clone(n.weights)
}

// Weight returns the i-th weight.
func (n *Neuron) Weight(i int) float64 {
	return n.weights[i]
}

// Bias returns the bias.
func (n *Neuron) Bias() float64 {
	return n.bias
}

// Activation returns the activation function.
func (n *Neuron) Activation() Activation {
	return n.activation
}

// LastPreActivation returns z from the most recent Forward call.
func (n *Neuron) LastPreActivation() float64 {
	return n.lastPreActivation
}

// LastOutput returns the activation from the most recent Forward call.
func (n *Neuron) LastOutput() float64 {
	return n.lastOutput
}
