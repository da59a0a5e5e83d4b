// Package main provides the neuraltrainer CLI.
//
// It trains one small network per logic gate and logs the predictions:
//
//	neuraltrainer -gates xor,and -hidden 4 -lr 0.5 -epochs 10000
//	neuraltrainer -config train.yaml -debug
//	neuraltrainer version
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/neuraltrainer/internal/config"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const version = "v0.1.0-dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "neuraltrainer: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 && args[0] == "version" {
		fmt.Fprintf(stdout, "neuraltrainer %s\n", version)
		return nil
	}

	defaults := config.Default()

	fs := flag.NewFlagSet("neuraltrainer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML settings file (missing file means defaults)")
	debug := fs.Bool("debug", defaults.Debug, "Log every epoch")
	activation := fs.String("activation", defaults.Activation, "Hidden layer activation: sigmoid, tanh, relu")
	outputActivation := fs.String("output-activation", defaults.OutputActivation, "Output layer activation: sigmoid, tanh, relu")
	initializer := fs.String("initializer", defaults.Initializer, "Weight initializer: uniform, he, xavier")
	lr := fs.Float64("lr", defaults.LearningRate, "Learning rate in (0, 1]")
	momentum := fs.Float64("momentum", defaults.Momentum, "Momentum in [0, 1)")
	epochs := fs.Int("epochs", defaults.Epochs, "Number of training epochs")
	hidden := fs.String("hidden", joinInts(defaults.Hidden), "Comma-separated hidden layer sizes (empty for none)")
	seed := fs.Uint64("seed", defaults.Seed, "Random seed for weight initialization")
	gates := fs.String("gates", strings.Join(defaults.Gates, ","), "Comma-separated gates to train")
	workers := fs.Int("workers", defaults.Workers, "Parallel training jobs (0 = one per CPU)")
	report := fs.Int("report", defaults.ReportInterval, "Log progress every N epochs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings := defaults
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		settings = loaded
	}

	// Flags override the file only when given explicitly.
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			settings.Debug = *debug
		case "activation":
			settings.Activation = *activation
		case "output-activation":
			settings.OutputActivation = *outputActivation
		case "initializer":
			settings.Initializer = *initializer
		case "lr":
			settings.LearningRate = *lr
		case "momentum":
			settings.Momentum = *momentum
		case "epochs":
			settings.Epochs = *epochs
		case "hidden":
			sizes, err := parseInts(*hidden)
			if err != nil {
				flagErr = errors.Wrap(err, "-hidden")
			}
			settings.Hidden = sizes
		case "seed":
			settings.Seed = *seed
		case "gates":
			settings.Gates = splitList(*gates)
		case "workers":
			settings.Workers = *workers
		case "report":
			settings.ReportInterval = *report
		}
	})
	if flagErr != nil {
		return flagErr
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stdout, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())

	logger.Info("training started",
		"version", version,
		"gates", strings.Join(settings.Gates, ","),
		"hidden", joinInts(settings.Hidden),
		"activation", settings.Activation,
		"initializer", settings.Initializer,
		"lr", settings.LearningRate,
		"momentum", settings.Momentum,
		"epochs", settings.Epochs,
	)

	if err := trainAll(settings, logger); err != nil {
		logger.Error("training failed", "err", err)
		return err
	}
	logger.Info("training finished")
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseInts(s string) ([]int, error) {
	parts := splitList(s)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %q", p)
		}
		out = append(out, v)
	}
	return out, nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
