// Package optim implements training algorithms for nn networks.
//
// This package provides:
//   - Trainer interface: Base interface for all training algorithms
//   - SGD: Per-example stochastic gradient descent with optional momentum
//   - Example and Statistics: Training data and per-epoch records
//   - ProgressReporter: Null, statistics-collecting, slog-based and fan-out
//
// Example usage:
//
//	trainer, err := optim.NewSGD(optim.SGDConfig{LR: 0.5}, nn.MSELoss{}, reporter)
//	if err != nil {
//	    return err
//	}
//
//	// Forward, loss, backpropagation and update for every example,
//	// progress reported after every epoch.
//	err = trainer.Train(network, examples, 5000)
package optim

import (
	"github.com/born-ml/neuraltrainer/internal/nn"
	"github.com/pkg/errors"
)

// ErrTrainerBusy is returned when Train is called on a trainer that is
// already running.
var ErrTrainerBusy = errors.New("trainer is already running")

// Network is the part of *nn.Network a trainer drives.
type Network interface {
	// Forward computes the network output.
	Forward(inputs []float64) ([]float64, error)

	// Backpropagate returns ∂L/∂θ per layer and neuron, given ∂L/∂output.
	Backpropagate(inputs, outputGradients []float64) ([][]nn.Gradient, error)

	// UpdateAllLayers adds one update per layer and neuron.
	UpdateAllLayers(updates [][]nn.Update) error
}

// Trainer is the base interface for all training algorithms.
//
// A trainer moves from Idle to Running for the duration of Train and back
// to Idle when it returns. Any error aborts the whole run; parameters
// already updated in that run stay updated.
type Trainer interface {
	// Train runs epochs passes over examples, updating network in place.
	Train(network Network, examples []Example, epochs int) error
}

// Config is the base configuration for all trainers.
type Config struct {
	LR float64 // Learning rate, in (0, 1]
}

func validateLR(lr float64) error {
	switch {
	case !isFinite(lr):
		return nn.NewArgumentError("learningRate", nn.ErrOutOfRange, "learning rate must be a finite number")
	case lr <= 0:
		return nn.NewArgumentError("learningRate", nn.ErrOutOfRange, "learning rate must be positive")
	case lr > 1:
		return nn.NewArgumentError("learningRate", nn.ErrOutOfRange, "learning rate should not exceed 1 for stable training")
	}
	return nil
}

func validateEpochs(epochs int) error {
	if epochs <= 0 {
		return nn.NewArgumentError("epochs", nn.ErrOutOfRange, "number of epochs must be positive, got %d", epochs)
	}
	return nil
}
