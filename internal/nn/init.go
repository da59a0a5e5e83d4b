package nn

import (
	"math"
	"math/rand/v2"
	"strings"
)

// Initializer produces initial weight and bias values.
//
// Implementations draw from an explicitly injected random source so that
// initialization is reproducible when the source is seeded.
type Initializer interface {
	// InitializeWeight returns one weight for a unit with the given fan-in
	// (number of inputs) and fan-out (number of outputs of its layer).
	InitializeWeight(fanIn, fanOut int) float64

	// InitializeBias returns one bias value.
	InitializeBias() float64
}

// NewRand returns a seeded PCG-backed random source.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// UniformInitializer draws weights and biases uniformly from [min, max).
//
// The upper bound is excluded because samples are scaled from rand.Float64,
// which returns values in [0, 1).
type UniformInitializer struct {
	min, max float64
	rng      *rand.Rand
}

// NewUniformInitializer creates a uniform initializer over [min, max).
//
// Parameters:
//   - min, max: Range bounds; min must not exceed max
//   - rng: Random source (required)
//
// Example:
//
//	init, err := nn.NewUniformInitializer(-0.5, 0.5, nn.NewRand(42))
func NewUniformInitializer(minValue, maxValue float64, rng *rand.Rand) (*UniformInitializer, error) {
	if rng == nil {
		return nil, NewArgumentError("rng", ErrInvalidArgument, "random source is required")
	}
	if !isFinite(minValue) || !isFinite(maxValue) {
		return nil, NewArgumentError("min", ErrOutOfRange, "bounds must be finite, got [%v, %v]", minValue, maxValue)
	}
	if minValue > maxValue {
		return nil, NewArgumentError("min", ErrOutOfRange, "min %v exceeds max %v", minValue, maxValue)
	}
	return &UniformInitializer{min: minValue, max: maxValue, rng: rng}, nil
}

// NewDefaultUniformInitializer creates a uniform initializer over [-1, 1).
func NewDefaultUniformInitializer(rng *rand.Rand) (*UniformInitializer, error) {
	return NewUniformInitializer(-1, 1, rng)
}

// InitializeWeight ignores fan-in/fan-out and samples [min, max).
func (u *UniformInitializer) InitializeWeight(_, _ int) float64 {
	return u.sample()
}

// InitializeBias samples [min, max).
func (u *UniformInitializer) InitializeBias() float64 {
	return u.sample()
}

func (u *UniformInitializer) sample() float64 {
	return u.rng.Float64()*(u.max-u.min) + u.min
}

// HeInitializer implements He (Kaiming) uniform initialization.
//
// Weights are drawn from U(-s, s) with s = sqrt(2 / fan_in), which keeps
// activation variance stable through rectified units. Biases start at zero.
type HeInitializer struct {
	rng *rand.Rand
}

// NewHeInitializer creates a He initializer.
func NewHeInitializer(rng *rand.Rand) (*HeInitializer, error) {
	if rng == nil {
		return nil, NewArgumentError("rng", ErrInvalidArgument, "random source is required")
	}
	return &HeInitializer{rng: rng}, nil
}

// InitializeWeight samples U(-sqrt(2/fanIn), sqrt(2/fanIn)).
// A fan-in below 1 is treated as 1.
func (h *HeInitializer) InitializeWeight(fanIn, _ int) float64 {
	fanIn = max(fanIn, 1)
	scale := math.Sqrt(2.0 / float64(fanIn))
	return symmetric(h.rng, scale)
}

// InitializeBias returns 0.
func (h *HeInitializer) InitializeBias() float64 {
	return 0
}

// XavierInitializer implements Xavier (Glorot) uniform initialization.
//
// Weights are drawn from U(-s, s) with s = sqrt(2 / (fan_in + fan_out)),
// suited to saturating units such as Sigmoid and Tanh. Biases start at zero.
type XavierInitializer struct {
	rng *rand.Rand
}

// NewXavierInitializer creates a Xavier initializer.
func NewXavierInitializer(rng *rand.Rand) (*XavierInitializer, error) {
	if rng == nil {
		return nil, NewArgumentError("rng", ErrInvalidArgument, "random source is required")
	}
	return &XavierInitializer{rng: rng}, nil
}

// InitializeWeight samples U(-sqrt(2/(fanIn+fanOut)), sqrt(2/(fanIn+fanOut))).
// A non-positive fan sum is treated as 1.
func (x *XavierInitializer) InitializeWeight(fanIn, fanOut int) float64 {
	fans := max(fanIn+fanOut, 1)
	scale := math.Sqrt(2.0 / float64(fans))
	return symmetric(x.rng, scale)
}

// InitializeBias returns 0.
func (x *XavierInitializer) InitializeBias() float64 {
	return 0
}

// symmetric draws from U(-scale, scale).
func symmetric(rng *rand.Rand, scale float64) float64 {
	return (rng.Float64()*2.0 - 1.0) * scale
}

// InitializerType selects an Initializer variant.
type InitializerType int

// Supported initializer types.
const (
	InitUniform InitializerType = iota
	InitHe
	InitXavier
)

// String returns the lowercase name of the initializer type.
func (t InitializerType) String() string {
	switch t {
	case InitUniform:
		return "uniform"
	case InitHe:
		return "he"
	case InitXavier:
		return "xavier"
	default:
		return "unknown"
	}
}

// ParseInitializerType parses a case-insensitive initializer name.
func ParseInitializerType(s string) (InitializerType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uniform", "random":
		return InitUniform, nil
	case "he", "kaiming":
		return InitHe, nil
	case "xavier", "glorot":
		return InitXavier, nil
	default:
		return 0, NewArgumentError("initializer", ErrInvalidArgument, "unknown initializer %q", s)
	}
}

// InitializerFactory maps InitializerType values to Initializer instances
// that all share one random source.
type InitializerFactory struct {
	defaultType InitializerType
	rng         *rand.Rand
}

// NewInitializerFactory creates a factory drawing from rng.
func NewInitializerFactory(defaultType InitializerType, rng *rand.Rand) (*InitializerFactory, error) {
	if rng == nil {
		return nil, NewArgumentError("rng", ErrInvalidArgument, "random source is required")
	}
	return &InitializerFactory{defaultType: defaultType, rng: rng}, nil
}

// Default returns the factory's default initializer.
func (f *InitializerFactory) Default() Initializer {
	return f.Get(f.defaultType)
}

// Get returns the initializer for t. Unknown types fall back to uniform [-1, 1).
func (f *InitializerFactory) Get(t InitializerType) Initializer {
	switch t {
	case InitHe:
		return &HeInitializer{rng: f.rng}
	case InitXavier:
		return &XavierInitializer{rng: f.rng}
	default:
		return &UniformInitializer{min: -1, max: 1, rng: f.rng}
	}
}
