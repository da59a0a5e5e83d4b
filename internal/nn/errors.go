package nn

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOutOfRange      = errors.New("value out of range")
	ErrSizeMismatch    = errors.New("size mismatch")
	ErrNonFinite       = errors.New("non-finite value")
	ErrNotForwarded    = errors.New("forward pass required before gradient computation")
)

// ArgumentError reports a rejected argument.
//
// Kind is one of the sentinel errors above, so callers can match with
// errors.Is(err, nn.ErrSizeMismatch) through any amount of wrapping.
type ArgumentError struct {
	Param   string // Offending parameter name (e.g., "learningRate", "inputs")
	Kind    error  // Sentinel error classifying the failure
	Details string // Human-readable explanation
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Details)
	}
	return fmt.Sprintf("%s: %v: %s", e.Param, e.Kind, e.Details)
}

// Unwrap returns the sentinel kind.
func (e *ArgumentError) Unwrap() error {
	return e.Kind
}

// NewArgumentError returns an ArgumentError with a stack trace attached.
func NewArgumentError(param string, kind error, format string, args ...any) error {
	return errors.WithStack(&ArgumentError{
		Param:   param,
		Kind:    kind,
		Details: fmt.Sprintf(format, args...),
	})
}

func sizeMismatch(param string, expected, actual int) error {
	return NewArgumentError(param, ErrSizeMismatch, "expected %d elements, got %d", expected, actual)
}

func checkFinite(param string, values ...float64) error {
	for i, v := range values {
		if !isFinite(v) {
			return NewArgumentError(param, ErrNonFinite, "element %d is %v", i, v)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
