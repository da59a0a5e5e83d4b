package nn

import (
	"math"
	"strings"
)

// Activation maps a neuron's pre-activation to its output.
//
// Derivative is expressed in terms of the activation output y = Activate(x),
// not the raw input x. Neurons cache their last output and hand it back to
// Derivative during gradient computation.
type Activation interface {
	// Activate computes f(x).
	Activate(x float64) float64

	// Derivative computes f'(x) given y = f(x).
	Derivative(y float64) float64
}

// Sigmoid is the logistic activation.
//
// Applies σ(x) = 1 / (1 + exp(-x)), squashing values to the range (0, 1).
// Its derivative in terms of the output is σ'(x) = y * (1 - y).
//
// Example:
//
//	act := nn.Sigmoid{}
//	y := act.Activate(0) // 0.5
type Sigmoid struct{}

// Activate applies σ(x) = 1 / (1 + exp(-x)).
func (Sigmoid) Activate(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Derivative returns y * (1 - y).
func (Sigmoid) Derivative(y float64) float64 {
	return y * (1 - y)
}

// Tanh is the hyperbolic tangent activation.
//
// Squashes values to the range (-1, 1). Zero-centered, which usually helps
// hidden layers. Derivative in terms of the output: 1 - y².
type Tanh struct{}

// Activate applies tanh(x).
func (Tanh) Activate(x float64) float64 {
	return math.Tanh(x)
}

// Derivative returns 1 - y².
func (Tanh) Derivative(y float64) float64 {
	return 1 - y*y
}

// ReLU is the Rectified Linear Unit activation: f(x) = max(0, x).
//
// Derivative works from the output, so it cannot tell an input of exactly
// zero from a negative one: both produce y == 0 and a derivative of 0.
type ReLU struct{}

// Activate applies max(0, x).
func (ReLU) Activate(x float64) float64 {
	return math.Max(0, x)
}

// Derivative returns 1 for y > 0, otherwise 0.
func (ReLU) Derivative(y float64) float64 {
	if y > 0 {
		return 1
	}
	return 0
}

// ActivationType selects an Activation variant.
type ActivationType int

// Supported activation types.
const (
	ActivationSigmoid ActivationType = iota
	ActivationTanh
	ActivationReLU
)

// String returns the lowercase name of the activation type.
func (t ActivationType) String() string {
	switch t {
	case ActivationSigmoid:
		return "sigmoid"
	case ActivationTanh:
		return "tanh"
	case ActivationReLU:
		return "relu"
	default:
		return "unknown"
	}
}

// ParseActivationType parses a case-insensitive activation name.
func ParseActivationType(s string) (ActivationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sigmoid", "logistic":
		return ActivationSigmoid, nil
	case "tanh":
		return ActivationTanh, nil
	case "relu":
		return ActivationReLU, nil
	default:
		return 0, NewArgumentError("activation", ErrInvalidArgument, "unknown activation %q", s)
	}
}

// ActivationFactory maps ActivationType values to Activation instances.
type ActivationFactory struct {
	defaultType ActivationType
}

// NewActivationFactory creates a factory whose Default returns defaultType.
func NewActivationFactory(defaultType ActivationType) *ActivationFactory {
	return &ActivationFactory{defaultType: defaultType}
}

// Default returns the factory's default activation.
func (f *ActivationFactory) Default() Activation {
	return f.Get(f.defaultType)
}

// Get returns the activation for t. Unknown types fall back to Sigmoid.
func (f *ActivationFactory) Get(t ActivationType) Activation {
	switch t {
	case ActivationReLU:
		return ReLU{}
	case ActivationTanh:
		return Tanh{}
	default:
		return Sigmoid{}
	}
}
