package optim

import (
	"math"
	"reflect"
	"sync/atomic"

	"github.com/born-ml/neuraltrainer/internal/nn"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SGD implements per-example Stochastic Gradient Descent with optional momentum.
//
// Update rule without momentum:
//
//	delta = -lr * gradient
//	param = param + delta
//
// Update rule with momentum:
//
//	delta = -lr * gradient + momentum * previousDelta
//	param = param + delta
//
// Parameters are updated immediately after each example, never averaged
// over a batch.
//
// Example:
//
//	trainer, err := optim.NewSGD(optim.SGDConfig{
//	    LR:       0.1,
//	    Momentum: 0.9,
//	}, nn.MSELoss{}, optim.NullReporter{})
//
//	err = trainer.Train(network, examples, 2000)
type SGD struct {
	lr       float64
	momentum float64
	loss     nn.Loss
	reporter ProgressReporter

	// Deltas of the last step of the previous run, indexed [layer][neuron].
	// Carried into the next run only when it trains the same pointer.
	lastNetwork  Network
	lastVelocity [][]nn.Update
	running      atomic.Bool
}

// SGDConfig holds configuration for the SGD trainer.
type SGDConfig struct {
	LR       float64 // Learning rate (required, range: (0, 1])
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD trainer.
//
// Parameters:
//   - config: SGD configuration (LR, Momentum)
//   - loss: Loss function (nil means nn.MSELoss)
//   - reporter: Receives (epoch, average loss) after every epoch (nil means NullReporter)
//
// Returns an ErrOutOfRange argument error naming the violated bound if the
// configuration is invalid.
func NewSGD(config SGDConfig, loss nn.Loss, reporter ProgressReporter) (*SGD, error) {
	if err := validateLR(config.LR); err != nil {
		return nil, err
	}
	if err := validateMomentum(config.Momentum); err != nil {
		return nil, err
	}
	if loss == nil {
		loss = nn.MSELoss{}
	}
	if reporter == nil {
		reporter = NullReporter{}
	}

	return &SGD{
		lr:         config.LR,
		momentum:   config.Momentum,
		loss:       loss,
		reporter: reporter,
	}, nil
}

func validateMomentum(m float64) error {
	if !isFinite(m) || m < 0 || m >= 1 {
		return nn.NewArgumentError("momentum", nn.ErrOutOfRange, "momentum must be in [0, 1), got %v", m)
	}
	return nil
}

// Train runs epochs passes over examples in order.
//
// For every example: forward pass, loss, loss derivative, backpropagation,
// update. After every epoch the average loss is reported.
func (s *SGD) Train(network Network, examples []Example, epochs int) error {
	if err := validateEpochs(epochs); err != nil {
		return err
	}
	if network == nil {
		return nn.NewArgumentError("network", nn.ErrInvalidArgument, "network is required")
	}
	if len(examples) == 0 {
		return nn.NewArgumentError("examples", nn.ErrInvalidArgument, "at least one training example is required")
	}

	if !s.running.CompareAndSwap(false, true) {
		return errors.WithStack(ErrTrainerBusy)
	}
	defer s.running.Store(false)

	velocity := s.carriedVelocity(network)
	defer func() { s.keepVelocity(network, velocity) }()

	losses := make([]float64, len(examples))
	for epoch := range epochs {
		for i, ex := range examples {
			loss, applied, err := s.step(network, ex, velocity)
			if err != nil {
				return errors.Wrapf(err, "epoch %d, example %d", epoch, i)
			}
			if s.momentum != 0 {
				velocity = applied
			}
			losses[i] = loss
		}
		s.reporter.ReportProgress(epoch, stat.Mean(losses, nil))
	}
	return nil
}

// step trains on a single example and returns its loss and the applied
// updates. prev holds the previous step's updates, or nil.
func (s *SGD) step(network Network, ex Example, prev [][]nn.Update) (float64, [][]nn.Update, error) {
	output, err := network.Forward(ex.Inputs())
	if err != nil {
		return 0, nil, errors.Wrap(err, "forward")
	}

	loss, err := s.loss.Calculate(output, ex.Targets())
	if err != nil {
		return 0, nil, errors.Wrap(err, "loss")
	}

	errorGradient, err := s.loss.Derivative(output, ex.Targets())
	if err != nil {
		return 0, nil, errors.Wrap(err, "loss derivative")
	}

	gradients, err := network.Backpropagate(ex.Inputs(), errorGradient)
	if err != nil {
		return 0, nil, errors.Wrap(err, "backpropagate")
	}

	updates := nn.ScaleGradients(gradients, -s.lr)
	if s.momentum != 0 {
		s.addMomentum(updates, prev)
	}

	if err := network.UpdateAllLayers(updates); err != nil {
		return 0, nil, errors.Wrap(err, "update")
	}
	return loss, updates, nil
}

// addMomentum adds momentum * previousDelta to every update in place.
// Nothing is added when prev is nil or shaped differently.
func (s *SGD) addMomentum(updates, prev [][]nn.Update) {
	if prev == nil || !sameShape(prev, updates) {
		return
	}

	for l := range updates {
		for k := range updates[l] {
			floats.AddScaled(updates[l][k].Weights, s.momentum, prev[l][k].Weights)
			updates[l][k].Bias += s.momentum * prev[l][k].Bias
		}
	}
}

// carriedVelocity returns the previous run's last deltas if network is the
// pointer trained by that run, otherwise nil.
func (s *SGD) carriedVelocity(network Network) [][]nn.Update {
	if s.momentum == 0 || s.lastNetwork == nil || !isPointer(network) {
		return nil
	}
	if s.lastNetwork != network {
		return nil
	}
	return s.lastVelocity
}

// keepVelocity remembers the last deltas of a run. Non-pointer networks
// cannot be recognized again, so nothing is kept for them.
func (s *SGD) keepVelocity(network Network, velocity [][]nn.Update) {
	if velocity == nil || !isPointer(network) {
		s.lastNetwork, s.lastVelocity = nil, nil
		return
	}
	s.lastNetwork, s.lastVelocity = network, velocity
}

// isPointer reports whether network can be compared by identity without
// panicking.
func isPointer(network Network) bool {
	return reflect.TypeOf(network).Kind() == reflect.Pointer
}

func sameShape(a, b [][]nn.Update) bool {
	if len(a) != len(b) {
		return false
	}
	for l := range a {
		if len(a[l]) != len(b[l]) {
			return false
		}
		for k := range a[l] {
			if len(a[l][k].Weights) != len(b[l][k].Weights) {
				return false
			}
		}
	}
	return true
}

// Reset discards all momentum state.
func (s *SGD) Reset() {
	s.lastNetwork, s.lastVelocity = nil, nil
}

// Running reports whether Train is in progress.
func (s *SGD) Running() bool {
	return s.running.Load()
}

// LR returns the current learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

// SetLR updates the learning rate, applying the same bounds as NewSGD.
func (s *SGD) SetLR(lr float64) error {
	if err := validateLR(lr); err != nil {
		return err
	}
	s.lr = lr
	return nil
}

// Momentum returns the momentum factor.
func (s *SGD) Momentum() float64 {
	return s.momentum
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
