// Package config loads training settings from YAML.
//
// Settings start from Default; a file only needs the keys it changes:
//
//	activation: relu
//	learning_rate: 0.1
//	momentum: 0.9
//	hidden: [8, 4]
//	gates: [xor, xnor]
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/born-ml/neuraltrainer/internal/dataset"
	"github.com/born-ml/neuraltrainer/internal/nn"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings is returned when settings fail validation.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds everything the CLI needs to build and train networks.
type Settings struct {
	Debug            bool     `yaml:"debug"`
	Activation       string   `yaml:"activation"`        // Hidden layer activation
	OutputActivation string   `yaml:"output_activation"` // Output layer activation
	Initializer      string   `yaml:"initializer"`
	LearningRate     float64  `yaml:"learning_rate"`
	Momentum         float64  `yaml:"momentum"`
	Epochs           int      `yaml:"epochs"`
	Hidden           []int    `yaml:"hidden"` // Hidden layer sizes; empty means no hidden layer
	ReportInterval   int      `yaml:"report_interval"`
	Seed             uint64   `yaml:"seed"`
	Gates            []string `yaml:"gates"`
	Workers          int      `yaml:"workers"` // 0 means one per CPU
}

// Default returns settings that learn every gate, XOR included.
func Default() Settings {
	return Settings{
		Activation:       nn.ActivationTanh.String(),
		OutputActivation: nn.ActivationSigmoid.String(),
		Initializer:      nn.InitXavier.String(),
		LearningRate:     0.5,
		Momentum:         0,
		Epochs:           10000,
		Hidden:           []int{4},
		ReportInterval:   1000,
		Seed:             42,
		Gates:            dataset.Names(),
	}
}

// Load reads settings from path. A missing file yields Default.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, errors.Wrapf(err, "read settings %s", path)
	}

	s, err := Parse(data)
	if err != nil {
		return Settings{}, errors.Wrapf(err, "settings %s", path)
	}
	return s, nil
}

// Parse decodes YAML on top of Default and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Settings, error) {
	s := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, errors.Wrap(err, "decode settings")
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks every field and returns the first problem found.
func (s Settings) Validate() error {
	if _, err := s.ActivationType(); err != nil {
		return invalid(err)
	}
	if _, err := s.OutputActivationType(); err != nil {
		return invalid(err)
	}
	if _, err := s.InitializerType(); err != nil {
		return invalid(err)
	}

	switch {
	case !(s.LearningRate > 0 && s.LearningRate <= 1):
		return errors.Wrapf(ErrInvalidSettings, "learning_rate must be in (0, 1], got %v", s.LearningRate)
	case !(s.Momentum >= 0 && s.Momentum < 1):
		return errors.Wrapf(ErrInvalidSettings, "momentum must be in [0, 1), got %v", s.Momentum)
	case s.Epochs <= 0:
		return errors.Wrapf(ErrInvalidSettings, "epochs must be positive, got %d", s.Epochs)
	case s.ReportInterval <= 0:
		return errors.Wrapf(ErrInvalidSettings, "report_interval must be positive, got %d", s.ReportInterval)
	case s.Workers < 0:
		return errors.Wrapf(ErrInvalidSettings, "workers must not be negative, got %d", s.Workers)
	case len(s.Gates) == 0:
		return errors.Wrap(ErrInvalidSettings, "at least one gate is required")
	}

	for i, size := range s.Hidden {
		if size <= 0 {
			return errors.Wrapf(ErrInvalidSettings, "hidden[%d] must be positive, got %d", i, size)
		}
	}
	for _, g := range s.Gates {
		if _, err := dataset.InputSize(g); err != nil {
			return invalid(err)
		}
	}
	return nil
}

// ActivationType parses Activation.
func (s Settings) ActivationType() (nn.ActivationType, error) {
	return nn.ParseActivationType(s.Activation)
}

// OutputActivationType parses OutputActivation.
func (s Settings) OutputActivationType() (nn.ActivationType, error) {
	return nn.ParseActivationType(s.OutputActivation)
}

// InitializerType parses Initializer.
func (s Settings) InitializerType() (nn.InitializerType, error) {
	return nn.ParseInitializerType(s.Initializer)
}

// invalid marks err as a settings error while keeping its own chain.
func invalid(err error) error {
	return &settingsError{err: err}
}

type settingsError struct {
	err error
}

func (e *settingsError) Error() string {
	return ErrInvalidSettings.Error() + ": " + e.err.Error()
}

func (e *settingsError) Is(target error) bool {
	return target == ErrInvalidSettings
}

func (e *settingsError) Unwrap() error {
	return e.err
}
