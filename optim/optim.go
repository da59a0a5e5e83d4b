// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"log/slog"
	"time"

	"github.com/born-ml/neuraltrainer/internal/nn"
	"github.com/born-ml/neuraltrainer/internal/optim"
)

// ErrTrainerBusy is returned when Train is called on a running trainer.
var ErrTrainerBusy = optim.ErrTrainerBusy

// Trainer interface defines the common interface for all trainers.
type Trainer = optim.Trainer

// Network is the part of a network a trainer drives.
type Network = optim.Network

// Config represents the base configuration for trainers.
type Config = optim.Config

// SGD (Stochastic Gradient Descent)

// SGD represents the per-example SGD trainer with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for the SGD trainer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD trainer.
//
// A nil loss means nn.MSELoss; a nil reporter discards progress.
//
// Example:
//
//	trainer, err := optim.NewSGD(
//	    optim.SGDConfig{
//	        LR:       0.5,
//	        Momentum: 0.9,
//	    },
//	    nn.MSELoss{},
//	    optim.NullReporter{},
//	)
//	err = trainer.Train(model, examples, 5000)
func NewSGD(config SGDConfig, loss nn.Loss, reporter ProgressReporter) (*SGD, error) {
	return optim.NewSGD(config, loss, reporter)
}

// Training data

// Example is an immutable (inputs, targets) pair.
type Example = optim.Example

// NewExample creates a training example, copying both slices.
func NewExample(inputs, targets []float64) Example {
	return optim.NewExample(inputs, targets)
}

// Statistics is the record of one finished epoch.
type Statistics = optim.Statistics

// Progress reporting

// ProgressReporter receives the average loss after every epoch.
type ProgressReporter = optim.ProgressReporter

// NullReporter discards all progress.
type NullReporter = optim.NullReporter

// StatisticsReporter collects one Statistics record per epoch.
type StatisticsReporter = optim.StatisticsReporter

// NewStatisticsReporter creates an empty statistics reporter.
func NewStatisticsReporter() *StatisticsReporter {
	return optim.NewStatisticsReporter()
}

// NewStatisticsReporterWithClock creates a statistics reporter using now
// for timestamps.
func NewStatisticsReporterWithClock(now func() time.Time) *StatisticsReporter {
	return optim.NewStatisticsReporterWithClock(now)
}

// LogReporter logs progress with log/slog.
type LogReporter = optim.LogReporter

// NewLogReporter creates a reporter that logs at Info every interval epochs.
//
// Example:
//
//	reporter, err := optim.NewLogReporter(slog.Default(), 1000)
func NewLogReporter(logger *slog.Logger, interval int) (*LogReporter, error) {
	return optim.NewLogReporter(logger, interval)
}

// MultiReporter forwards progress to several reporters.
type MultiReporter = optim.MultiReporter
