package main

import (
	"log/slog"

	"github.com/born-ml/neuraltrainer/internal/config"
	"github.com/born-ml/neuraltrainer/internal/dataset"
	"github.com/born-ml/neuraltrainer/internal/nn"
	"github.com/born-ml/neuraltrainer/internal/optim"
	"github.com/born-ml/neuraltrainer/internal/parallel"
	"github.com/pkg/errors"
)

// trainAll trains every configured gate on its own network. Gates run
// concurrently; each job owns its network, trainer and random source.
func trainAll(s config.Settings, logger *slog.Logger) error {
	cfg := parallel.DefaultConfig()
	if s.Workers > 0 {
		cfg.NumWorkers = s.Workers
		cfg.Enabled = s.Workers > 1
	}

	return parallel.Run(len(s.Gates), cfg, func(i int) error {
		gate := s.Gates[i]
		if err := trainGate(s, gate, s.Seed+uint64(i), logger.With("gate", gate)); err != nil {
			return errors.Wrapf(err, "gate %s", gate)
		}
		return nil
	})
}

func trainGate(s config.Settings, gate string, seed uint64, logger *slog.Logger) error {
	examples, err := dataset.Gate(gate)
	if err != nil {
		return err
	}
	network, err := buildNetwork(s, len(examples[0].Inputs()), seed)
	if err != nil {
		return err
	}

	if linear, _ := dataset.Linear(gate); !linear && len(s.Hidden) == 0 {
		logger.Warn("gate is not linearly separable; a hidden layer is needed to learn it")
	}

	progress, err := optim.NewLogReporter(logger, s.ReportInterval)
	if err != nil {
		return err
	}
	stats := optim.NewStatisticsReporter()

	trainer, err := optim.NewSGD(optim.SGDConfig{
		LR:       s.LearningRate,
		Momentum: s.Momentum,
	}, nn.MSELoss{}, optim.MultiReporter{stats, progress})
	if err != nil {
		return err
	}

	logger.Debug("network built", "parameters", network.ParameterCount(), "layers", network.Len())
	if err := trainer.Train(network, examples, s.Epochs); err != nil {
		return err
	}

	last, _ := stats.Last()
	logger.Info("gate trained", "loss", last.AverageLoss, "trend", stats.LossSlope())

	correct := 0
	for _, ex := range examples {
		output, err := network.Forward(ex.Inputs())
		if err != nil {
			return err
		}
		hit := (output[0] > 0.5) == (ex.Targets()[0] > 0.5)
		if hit {
			correct++
		}
		logger.Info("prediction", "example", ex.String(), "output", output[0], "correct", hit)
	}
	logger.Info("accuracy", "correct", correct, "total", len(examples))
	return nil
}

// buildNetwork creates [inputSize, hidden..., 1] with the hidden activation
// on hidden layers and the output activation on the last layer.
func buildNetwork(s config.Settings, inputSize int, seed uint64) (*nn.Network, error) {
	hiddenType, err := s.ActivationType()
	if err != nil {
		return nil, err
	}
	outputType, err := s.OutputActivationType()
	if err != nil {
		return nil, err
	}
	initType, err := s.InitializerType()
	if err != nil {
		return nil, err
	}

	initializers, err := nn.NewInitializerFactory(initType, nn.NewRand(seed))
	if err != nil {
		return nil, err
	}
	init := initializers.Default()
	activations := nn.NewActivationFactory(hiddenType)

	layers := make([]nn.Layer, 0, len(s.Hidden)+1)
	in := inputSize
	for _, size := range s.Hidden {
		layer, err := nn.NewDense(in, size, activations.Default(), init)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
		in = size
	}

	output, err := nn.NewDense(in, 1, activations.Get(outputType), init)
	if err != nil {
		return nil, err
	}
	layers = append(layers, output)

	return nn.NewNetwork(layers...)
}
