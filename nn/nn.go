// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand/v2"

	"github.com/born-ml/neuraltrainer/internal/nn"
)

// Errors

// Sentinel errors; match with errors.Is.
var (
	ErrInvalidArgument = nn.ErrInvalidArgument
	ErrOutOfRange      = nn.ErrOutOfRange
	ErrSizeMismatch    = nn.ErrSizeMismatch
	ErrNonFinite       = nn.ErrNonFinite
	ErrNotForwarded    = nn.ErrNotForwarded
)

// ArgumentError reports a rejected argument by parameter name.
type ArgumentError = nn.ArgumentError

// Activations

// Activation maps a pre-activation to an output.
type Activation = nn.Activation

// Sigmoid is the logistic activation.
type Sigmoid = nn.Sigmoid

// Tanh is the hyperbolic tangent activation.
type Tanh = nn.Tanh

// ReLU is the rectified linear activation.
type ReLU = nn.ReLU

// ActivationType selects an activation.
type ActivationType = nn.ActivationType

// Supported activation types.
const (
	ActivationSigmoid = nn.ActivationSigmoid
	ActivationTanh    = nn.ActivationTanh
	ActivationReLU    = nn.ActivationReLU
)

// ParseActivationType parses "sigmoid", "tanh" or "relu".
func ParseActivationType(s string) (ActivationType, error) {
	return nn.ParseActivationType(s)
}

// ActivationFactory maps activation types to activations.
type ActivationFactory = nn.ActivationFactory

// NewActivationFactory creates a factory with the given default.
func NewActivationFactory(defaultType ActivationType) *ActivationFactory {
	return nn.NewActivationFactory(defaultType)
}

// Initializers

// Initializer produces initial weights and biases.
type Initializer = nn.Initializer

// UniformInitializer samples [min, max).
type UniformInitializer = nn.UniformInitializer

// HeInitializer samples U(-sqrt(2/fanIn), sqrt(2/fanIn)).
type HeInitializer = nn.HeInitializer

// XavierInitializer samples U(-sqrt(2/(fanIn+fanOut)), sqrt(2/(fanIn+fanOut))).
type XavierInitializer = nn.XavierInitializer

// NewRand returns a seeded random source for initializers.
func NewRand(seed uint64) *rand.Rand {
	return nn.NewRand(seed)
}

// NewUniformInitializer creates a uniform initializer over [min, max).
//
// Example:
//
//	init, err := nn.NewUniformInitializer(-1, 1, nn.NewRand(42))
func NewUniformInitializer(minValue, maxValue float64, rng *rand.Rand) (*UniformInitializer, error) {
	return nn.NewUniformInitializer(minValue, maxValue, rng)
}

// NewDefaultUniformInitializer creates a uniform initializer over [-1, 1).
func NewDefaultUniformInitializer(rng *rand.Rand) (*UniformInitializer, error) {
	return nn.NewDefaultUniformInitializer(rng)
}

// NewHeInitializer creates a He initializer.
func NewHeInitializer(rng *rand.Rand) (*HeInitializer, error) {
	return nn.NewHeInitializer(rng)
}

// NewXavierInitializer creates a Xavier initializer.
func NewXavierInitializer(rng *rand.Rand) (*XavierInitializer, error) {
	return nn.NewXavierInitializer(rng)
}

// InitializerType selects an initializer.
type InitializerType = nn.InitializerType

// Supported initializer types.
const (
	InitUniform = nn.InitUniform
	InitHe      = nn.InitHe
	InitXavier  = nn.InitXavier
)

// ParseInitializerType parses "uniform", "he" or "xavier".
func ParseInitializerType(s string) (InitializerType, error) {
	return nn.ParseInitializerType(s)
}

// InitializerFactory maps initializer types to initializers sharing one source.
type InitializerFactory = nn.InitializerFactory

// NewInitializerFactory creates a factory drawing from rng.
func NewInitializerFactory(defaultType InitializerType, rng *rand.Rand) (*InitializerFactory, error) {
	return nn.NewInitializerFactory(defaultType, rng)
}

// Loss Functions

// Loss measures prediction error.
type Loss = nn.Loss

// MSELoss is the mean squared error with derivative predicted - target.
type MSELoss = nn.MSELoss

// Building Blocks

// Neuron is a weight vector, a bias and an activation.
type Neuron = nn.Neuron

// NewNeuron creates a neuron with weights drawn from init.
func NewNeuron(inputSize int, activation Activation, init Initializer) (*Neuron, error) {
	return nn.NewNeuron(inputSize, activation, init)
}

// NewNeuronWithParameters creates a neuron with explicit weights and bias.
//
// Example:
//
//	n, _ := nn.NewNeuronWithParameters([]float64{2.0}, -1.0, nn.Sigmoid{})
//	y, _ := n.Forward([]float64{0.5}) // 0.5
func NewNeuronWithParameters(weights []float64, bias float64, activation Activation) (*Neuron, error) {
	return nn.NewNeuronWithParameters(weights, bias, activation)
}

// Dense is a fully connected layer.
type Dense = nn.Dense

// NewDense creates a dense layer of outputSize neurons.
//
// Example:
//
//	init, _ := nn.NewXavierInitializer(nn.NewRand(1))
//	layer, err := nn.NewDense(2, 4, nn.Tanh{}, init)
func NewDense(inputSize, outputSize int, activation Activation, init Initializer) (*Dense, error) {
	return nn.NewDense(inputSize, outputSize, activation, init)
}

// NewDenseFromNeurons creates a dense layer from existing neurons.
func NewDenseFromNeurons(neurons ...*Neuron) (*Dense, error) {
	return nn.NewDenseFromNeurons(neurons...)
}

// Network chains layers.
type Network = nn.Network

// NewNetwork creates a network, checking that adjacent widths agree.
func NewNetwork(layers ...Layer) (*Network, error) {
	return nn.NewNetwork(layers...)
}

// NewNetworkFromSizes creates one Dense layer per adjacent pair of sizes.
//
// Example:
//
//	model, err := nn.NewNetworkFromSizes([]int{2, 3, 1}, nn.Sigmoid{}, init)
func NewNetworkFromSizes(sizes []int, activation Activation, init Initializer) (*Network, error) {
	return nn.NewNetworkFromSizes(sizes, activation, init)
}
