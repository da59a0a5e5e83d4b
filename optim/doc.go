// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides training algorithms for nn networks.
//
// # Overview
//
// This package contains:
//   - SGD: Per-example Stochastic Gradient Descent with optional momentum
//   - Trainer interface for custom training algorithms
//   - Example and Statistics: training data and per-epoch records
//   - Progress reporters: Null, Statistics, Log (slog) and Multi
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/neuraltrainer/nn"
//	    "github.com/born-ml/neuraltrainer/optim"
//	)
//
//	func main() {
//	    init, _ := nn.NewXavierInitializer(nn.NewRand(42))
//	    model, _ := nn.NewNetworkFromSizes([]int{2, 1}, nn.Sigmoid{}, init)
//
//	    examples := []optim.Example{
//	        optim.NewExample([]float64{0, 0}, []float64{0}),
//	        optim.NewExample([]float64{0, 1}, []float64{1}),
//	        optim.NewExample([]float64{1, 0}, []float64{1}),
//	        optim.NewExample([]float64{1, 1}, []float64{1}),
//	    }
//
//	    stats := optim.NewStatisticsReporter()
//	    trainer, err := optim.NewSGD(optim.SGDConfig{LR: 0.5}, nn.MSELoss{}, stats)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Forward, loss, backpropagation and update for every example
//	    if err := trainer.Train(model, examples, 2000); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    last, _ := stats.Last()
//	    fmt.Printf("final loss: %.4f\n", last.AverageLoss)
//	}
//
// # SGD
//
// Parameters are updated after every example:
//
//	delta = -lr * gradient + momentum * previousDelta
//	param = param + delta
//
// The learning rate must be in (0, 1] and momentum in [0, 1). Momentum
// carries over to the next Train call only for the same *nn.Network; Reset
// or training another network starts fresh.
//
// # Progress
//
// Reporters receive (epoch, average loss) after every epoch. Combine them
// with MultiReporter:
//
//	logReporter, _ := optim.NewLogReporter(logger, 1000)
//	reporter := optim.MultiReporter{stats, logReporter}
package optim
