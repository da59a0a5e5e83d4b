package optim_test

import (
	"math"
	"testing"

	"github.com/born-ml/neuraltrainer/internal/nn"
	"github.com/born-ml/neuraltrainer/internal/optim"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identity is a linear activation used to check update arithmetic by hand.
type identity struct{}

func (identity) Activate(x float64) float64 { return x }
func (identity) Derivative(float64) float64 { return 1 }

func gateExamples(targets ...float64) []optim.Example {
	inputs := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	examples := make([]optim.Example, len(inputs))
	for i, in := range inputs {
		examples[i] = optim.NewExample(in, []float64{targets[i]})
	}
	return examples
}

func singleNeuronNetwork(t *testing.T, weights []float64, bias float64, act nn.Activation) (*nn.Network, *nn.Neuron) {
	t.Helper()

	n, err := nn.NewNeuronWithParameters(weights, bias, act)
	require.NoError(t, err)
	layer, err := nn.NewDenseFromNeurons(n)
	require.NoError(t, err)
	net, err := nn.NewNetwork(layer)
	require.NoError(t, err)
	return net, n
}

// xorNetwork builds a 2-6-1 network (Tanh hidden, Sigmoid output) with
// fixed starting parameters.
func xorNetwork(t *testing.T) *nn.Network {
	t.Helper()

	hidden := [][]float64{
		{0.5, -0.3, 0.1},
		{-0.7, 0.8, -0.2},
		{0.9, 0.4, 0.3},
		{-0.2, -0.6, 0.05},
		{0.3, 0.7, -0.4},
		{-0.8, -0.1, 0.2},
	}
	neurons := make([]*nn.Neuron, len(hidden))
	for k, p := range hidden {
		n, err := nn.NewNeuronWithParameters(p[:2], p[2], nn.Tanh{})
		require.NoError(t, err)
		neurons[k] = n
	}
	h, err := nn.NewDenseFromNeurons(neurons...)
	require.NoError(t, err)

	o, err := nn.NewNeuronWithParameters([]float64{0.4, -0.5, 0.3, -0.2, 0.6, -0.1}, 0, nn.Sigmoid{})
	require.NoError(t, err)
	out, err := nn.NewDenseFromNeurons(o)
	require.NoError(t, err)

	net, err := nn.NewNetwork(h, out)
	require.NoError(t, err)
	return net
}

func predict(t *testing.T, net *nn.Network, inputs ...float64) float64 {
	t.Helper()
	out, err := net.Forward(inputs)
	require.NoError(t, err)
	return out[0]
}

// TestNewSGD_Validation tests learning rate, momentum and epoch bounds.
func TestNewSGD_Validation(t *testing.T) {
	tests := []struct {
		name   string
		config optim.SGDConfig
		param  string
		msg    string
	}{
		{"zero lr", optim.SGDConfig{LR: 0}, "learningRate", "learning rate must be positive"},
		{"negative lr", optim.SGDConfig{LR: -0.1}, "learningRate", "learning rate must be positive"},
		{"large lr", optim.SGDConfig{LR: 1.5}, "learningRate", "learning rate should not exceed 1 for stable training"},
		{"nan lr", optim.SGDConfig{LR: math.NaN()}, "learningRate", "learning rate must be a finite number"},
		{"momentum one", optim.SGDConfig{LR: 0.1, Momentum: 1}, "momentum", "momentum must be in [0, 1)"},
		{"negative momentum", optim.SGDConfig{LR: 0.1, Momentum: -0.1}, "momentum", "momentum must be in [0, 1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := optim.NewSGD(tt.config, nil, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, nn.ErrOutOfRange))
			assert.Contains(t, err.Error(), tt.msg)

			var argErr *nn.ArgumentError
			require.True(t, errors.As(err, &argErr))
			assert.Equal(t, tt.param, argErr.Param)
		})
	}

	trainer, err := optim.NewSGD(optim.SGDConfig{LR: 1}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, trainer.LR())
}

// TestSGD_TrainValidation tests argument checks on Train.
func TestSGD_TrainValidation(t *testing.T) {
	trainer, err := optim.NewSGD(optim.SGDConfig{LR: 0.1}, nil, nil)
	require.NoError(t, err)
	net, _ := singleNeuronNetwork(t, []float64{0, 0}, 0, nn.Sigmoid{})

	err = trainer.Train(net, gateExamples(0, 0, 0, 1), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "number of epochs must be positive, got 0")

	var argErr *nn.ArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "epochs", argErr.Param)

	err = trainer.Train(nil, gateExamples(0, 0, 0, 1), 1)
	assert.True(t, errors.Is(err, nn.ErrInvalidArgument))

	err = trainer.Train(net, nil, 1)
	assert.True(t, errors.Is(err, nn.ErrInvalidArgument))

	// Example width does not match the network
	err = trainer.Train(net, []optim.Example{optim.NewExample([]float64{1}, []float64{1})}, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, nn.ErrSizeMismatch))
	assert.Contains(t, err.Error(), "epoch 0, example 0")
	assert.False(t, trainer.Running())
}

// TestSGD_NOTGate tests that a single sigmoid neuron learns NOT.
func TestSGD_NOTGate(t *testing.T) {
	net, _ := singleNeuronNetwork(t, []float64{0.5}, 0, nn.Sigmoid{})
	examples := []optim.Example{
		optim.NewExample([]float64{0}, []float64{1}),
		optim.NewExample([]float64{1}, []float64{0}),
	}

	trainer, err := optim.NewSGD(optim.SGDConfig{LR: 0.5}, nn.MSELoss{}, optim.NullReporter{})
	require.NoError(t, err)
	require.NoError(t, trainer.Train(net, examples, 5000))

	assert.Greater(t, predict(t, net, 0), 0.9)
	assert.Less(t, predict(t, net, 1), 0.1)
}

// TestSGD_ANDGateLossDecreases tests the loss trend on AND.
func TestSGD_ANDGateLossDecreases(t *testing.T) {
	net, _ := singleNeuronNetwork(t, []float64{0.1, -0.2}, 0.05, nn.Sigmoid{})
	stats := optim.NewStatisticsReporter()

	trainer, err := optim.NewSGD(optim.SGDConfig{LR: 0.5}, nil, stats)
	require.NoError(t, err)
	require.NoError(t, trainer.Train(net, gateExamples(0, 0, 0, 1), 2000))

	require.Equal(t, 2000, stats.Len())
	assert.Less(t, stats.LossSlope(), 0.0)
	assert.Greater(t, stats.MeanLoss(0, 10), stats.MeanLoss(1990, 2000))

	last, ok := stats.Last()
	require.True(t, ok)
	assert.Equal(t, 1999, last.Epoch)
	assert.Less(t, last.AverageLoss, 0.01)

	assert.Greater(t, predict(t, net, 1, 1), 0.5)
	assert.Less(t, predict(t, net, 0, 1), 0.5)
}

// TestSGD_XORGate tests that a hidden layer makes XOR learnable.
func TestSGD_XORGate(t *testing.T) {
	net := xorNetwork(t)

	trainer, err := optim.NewSGD(optim.SGDConfig{LR: 0.5}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, trainer.Train(net, gateExamples(0, 1, 1, 0), 10000))

	for _, ex := range gateExamples(0, 1, 1, 0) {
		got := predict(t, net, ex.Inputs()...)
		want := ex.Targets()[0]
		assert.Equal(t, want == 1, got > 0.5, "%s -> %.4f", ex, got)
	}
}

// TestSGD_XORGateWithMomentum tests training with momentum enabled.
func TestSGD_XORGateWithMomentum(t *testing.T) {
	net := xorNetwork(t)

	trainer, err := optim.NewSGD(optim.SGDConfig{LR: 0.3, Momentum: 0.9}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, trainer.Train(net, gateExamples(0, 1, 1, 0), 3000))

	for _, ex := range gateExamples(0, 1, 1, 0) {
		got := predict(t, net, ex.Inputs()...)
		assert.Equal(t, ex.Targets()[0] == 1, got > 0.5, "%s -> %.4f", ex, got)
	}
}

// TestSGD_SimpleUpdate tests one plain gradient step by hand.
func TestSGD_SimpleUpdate(t *testing.T) {
	net, n := singleNeuronNetwork(t, []float64{2.0}, 0, identity{})
	examples := []optim.Example{optim.NewExample([]float64{1}, []float64{0})}

	trainer, err := optim.NewSGD(optim.SGDConfig{LR: 0.1}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, trainer.Train(net, examples, 1))

	// output 2, gradient 2, delta -0.2
	assert.InDelta(t, 1.8, n.Weight(0), 1e-12)
	assert.InDelta(t, -0.2, n.Bias(), 1e-12)
}

// TestSGD_Momentum tests delta = -lr*grad + momentum*previousDelta.
func TestSGD_Momentum(t *testing.T) {
	net, n := singleNeuronNetwork(t, []float64{1.0}, 0, identity{})
	examples := []optim.Example{optim.NewExample([]float64{1}, []float64{0})}

	trainer, err := optim.NewSGD(optim.SGDConfig{LR: 0.1, Momentum: 0.9}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.9, trainer.Momentum())

	// Epoch 0: output 1, delta -0.1
	require.NoError(t, trainer.Train(net, examples, 1))
	assert.InDelta(t, 0.9, n.Weight(0), 1e-12)
	assert.InDelta(t, -0.1, n.Bias(), 1e-12)

	// Epoch 1: output 0.8, delta -0.08 + 0.9*(-0.1) = -0.17
	require.NoError(t, trainer.Train(net, examples, 1))
	assert.InDelta(t, 0.73, n.Weight(0), 1e-12)
	assert.InDelta(t, -0.27, n.Bias(), 1e-12)

	// After Reset the next step has no momentum term.
	trainer.Reset()
	require.NoError(t, trainer.Train(net, examples, 1))
	// output 0.46, delta -0.046
	assert.InDelta(t, 0.684, n.Weight(0), 1e-12)
	assert.InDelta(t, -0.316, n.Bias(), 1e-12)
}

// TestSGD_SetLR tests learning rate changes between runs.
func TestSGD_SetLR(t *testing.T) {
	trainer, err := optim.NewSGD(optim.SGDConfig{LR: 0.1}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, trainer.SetLR(0.01))
	assert.Equal(t, 0.01, trainer.LR())

	err = trainer.SetLR(2)
	assert.True(t, errors.Is(err, nn.ErrOutOfRange))
	assert.Equal(t, 0.01, trainer.LR())
}

// reentrantNetwork calls Train on the same trainer from inside Forward.
type reentrantNetwork struct {
	*nn.Network
	trainer *optim.SGD
	nested  error
	calls   int
}

func (r *reentrantNetwork) Forward(inputs []float64) ([]float64, error) {
	if r.calls == 0 {
		r.calls++
		r.nested = r.trainer.Train(r, []optim.Example{optim.NewExample(inputs, []float64{0})}, 1)
	}
	return r.Network.Forward(inputs)
}

// TestSGD_Busy tests that a running trainer rejects a second Train call.
func TestSGD_Busy(t *testing.T) {
	trainer, err := optim.NewSGD(optim.SGDConfig{LR: 0.1}, nil, nil)
	require.NoError(t, err)

	inner, _ := singleNeuronNetwork(t, []float64{0.5}, 0, nn.Sigmoid{})
	net := &reentrantNetwork{Network: inner, trainer: trainer}

	require.NoError(t, trainer.Train(net, []optim.Example{optim.NewExample([]float64{1}, []float64{1})}, 1))
	require.Error(t, net.nested)
	assert.True(t, errors.Is(net.nested, optim.ErrTrainerBusy))
	assert.False(t, trainer.Running())
}

// taggedNetwork is a value-type network with a slice field, so it cannot be
// compared or hashed.
type taggedNetwork struct {
	net  *nn.Network
	tags []string
}

func (v taggedNetwork) Forward(inputs []float64) ([]float64, error) {
	return v.net.Forward(inputs)
}

func (v taggedNetwork) Backpropagate(inputs, outputGradients []float64) ([][]nn.Gradient, error) {
	return v.net.Backpropagate(inputs, outputGradients)
}

func (v taggedNetwork) UpdateAllLayers(updates [][]nn.Update) error {
	return v.net.UpdateAllLayers(updates)
}

// TestSGD_MomentumValueNetwork tests momentum on a non-comparable network value.
func TestSGD_MomentumValueNetwork(t *testing.T) {
	inner, n := singleNeuronNetwork(t, []float64{1.0}, 0, identity{})
	network := taggedNetwork{net: inner, tags: []string{"a"}}
	examples := []optim.Example{optim.NewExample([]float64{1}, []float64{0})}

	trainer, err := optim.NewSGD(optim.SGDConfig{LR: 0.1, Momentum: 0.9}, nil, nil)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		err = trainer.Train(network, examples, 2)
	})
	require.NoError(t, err)

	// Momentum applies between steps of one run.
	assert.InDelta(t, 0.73, n.Weight(0), 1e-12)
	assert.InDelta(t, -0.27, n.Bias(), 1e-12)

	// A value network is not recognized across runs, so the next run
	// starts without a momentum term: output 0.46, delta -0.046.
	require.NoError(t, trainer.Train(network, examples, 1))
	assert.InDelta(t, 0.684, n.Weight(0), 1e-12)
	assert.InDelta(t, -0.316, n.Bias(), 1e-12)
}

// TestSGD_MomentumFollowsLastNetwork tests that training another network
// drops the carried momentum.
func TestSGD_MomentumFollowsLastNetwork(t *testing.T) {
	netA, a := singleNeuronNetwork(t, []float64{1.0}, 0, identity{})
	netB, _ := singleNeuronNetwork(t, []float64{1.0}, 0, identity{})
	examples := []optim.Example{optim.NewExample([]float64{1}, []float64{0})}

	trainer, err := optim.NewSGD(optim.SGDConfig{LR: 0.1, Momentum: 0.9}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, trainer.Train(netA, examples, 1))
	require.NoError(t, trainer.Train(netB, examples, 1))
	require.NoError(t, trainer.Train(netA, examples, 1))

	// Second step on A has no momentum: output 0.8, delta -0.08.
	assert.InDelta(t, 0.82, a.Weight(0), 1e-12)
	assert.InDelta(t, -0.18, a.Bias(), 1e-12)
}
