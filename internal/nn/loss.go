package nn

import (
	"gonum.org/v1/gonum/floats"
)

// Loss measures the error between predictions and targets.
type Loss interface {
	// Calculate returns the scalar loss over all output elements.
	Calculate(predicted, target []float64) (float64, error)

	// Derivative returns ∂loss/∂predicted for each output element.
	Derivative(predicted, target []float64) ([]float64, error)
}

// MSELoss computes the squared error between predictions and targets.
//
// Loss = mean((target - predicted)²)
//
// The derivative is reported per element as -(target - predicted). The
// factor of 2 and the 1/n of the mean are left out; both are absorbed by
// the learning rate.
//
// Example:
//
//	mse := nn.MSELoss{}
//	loss, err := mse.Calculate(output, targets)
//	grad, err := mse.Derivative(output, targets)
type MSELoss struct{}

// SquaredError returns (target - predicted)² for a single value.
func SquaredError(predicted, target float64) float64 {
	d := target - predicted
	return d * d
}

// Calculate returns the mean of the squared errors.
func (MSELoss) Calculate(predicted, target []float64) (float64, error) {
	if err := checkLossArgs(predicted, target); err != nil {
		return 0, err
	}

	diff := make([]float64, len(target))
	floats.SubTo(diff, target, predicted)
	return floats.Dot(diff, diff) / float64(len(diff)), nil
}

// Derivative returns predicted - target for each element.
func (MSELoss) Derivative(predicted, target []float64) ([]float64, error) {
	if err := checkLossArgs(predicted, target); err != nil {
		return nil, err
	}

	grad := make([]float64, len(predicted))
	floats.SubTo(grad, predicted, target)
	return grad, nil
}

func checkLossArgs(predicted, target []float64) error {
	if len(predicted) != len(target) {
		return NewArgumentError("predicted", ErrSizeMismatch,
			"predicted and target must have the same number of elements (%d != %d)", len(predicted), len(target))
	}
	if len(predicted) == 0 {
		return NewArgumentError("predicted", ErrInvalidArgument, "predicted and target must not be empty")
	}
	return nil
}
