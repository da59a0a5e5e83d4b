package nn

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUniformInitializer_Range tests that samples stay in [min, max).
func TestUniformInitializer_Range(t *testing.T) {
	init, err := NewUniformInitializer(-0.5, 0.25, NewRand(1))
	require.NoError(t, err)

	for range 1000 {
		w := init.InitializeWeight(3, 2)
		assert.GreaterOrEqual(t, w, -0.5)
		assert.Less(t, w, 0.25)

		b := init.InitializeBias()
		assert.GreaterOrEqual(t, b, -0.5)
		assert.Less(t, b, 0.25)
	}
}

// TestUniformInitializer_Degenerate tests that min == max yields a constant.
func TestUniformInitializer_Degenerate(t *testing.T) {
	init, err := NewUniformInitializer(0.3, 0.3, NewRand(1))
	require.NoError(t, err)

	assert.Equal(t, 0.3, init.InitializeWeight(1, 1))
	assert.Equal(t, 0.3, init.InitializeBias())
}

// TestUniformInitializer_Invalid tests constructor validation.
func TestUniformInitializer_Invalid(t *testing.T) {
	_, err := NewUniformInitializer(1, -1, NewRand(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = NewUniformInitializer(math.NaN(), 1, NewRand(1))
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = NewUniformInitializer(-1, 1, nil)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = NewHeInitializer(nil)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = NewXavierInitializer(nil)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

// TestUniformInitializer_Deterministic tests that equal seeds give equal draws.
func TestUniformInitializer_Deterministic(t *testing.T) {
	a, err := NewDefaultUniformInitializer(NewRand(42))
	require.NoError(t, err)
	b, err := NewDefaultUniformInitializer(NewRand(42))
	require.NoError(t, err)

	for range 50 {
		assert.Equal(t, a.InitializeWeight(2, 1), b.InitializeWeight(2, 1))
	}
}

// TestHeInitializer tests the sqrt(2/fanIn) bound and zero bias.
func TestHeInitializer(t *testing.T) {
	init, err := NewHeInitializer(NewRand(3))
	require.NoError(t, err)

	limit := math.Sqrt(2.0 / 8.0)
	for range 1000 {
		w := init.InitializeWeight(8, 4)
		assert.LessOrEqual(t, math.Abs(w), limit)
	}
	assert.Equal(t, 0.0, init.InitializeBias())

	// fanIn 0 is treated as 1
	for range 100 {
		assert.LessOrEqual(t, math.Abs(init.InitializeWeight(0, 1)), math.Sqrt(2))
	}
}

// TestXavierInitializer tests the sqrt(2/(fanIn+fanOut)) bound and zero bias.
func TestXavierInitializer(t *testing.T) {
	init, err := NewXavierInitializer(NewRand(5))
	require.NoError(t, err)

	limit := math.Sqrt(2.0 / 10.0)
	maxSeen := 0.0
	for range 1000 {
		w := init.InitializeWeight(6, 4)
		assert.LessOrEqual(t, math.Abs(w), limit)
		maxSeen = math.Max(maxSeen, math.Abs(w))
	}
	// Draws should spread over most of the interval
	assert.Greater(t, maxSeen, 0.9*limit)
	assert.Equal(t, 0.0, init.InitializeBias())
}

// TestParseInitializerType tests name parsing and aliases.
func TestParseInitializerType(t *testing.T) {
	for in, want := range map[string]InitializerType{
		"uniform": InitUniform,
		"random":  InitUniform,
		"He":      InitHe,
		"kaiming": InitHe,
		"xavier":  InitXavier,
		"GLOROT":  InitXavier,
	} {
		got, err := ParseInitializerType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseInitializerType("orthogonal")
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	assert.Equal(t, "xavier", InitXavier.String())
	assert.Equal(t, "unknown", InitializerType(-1).String())
}

// TestInitializerFactory tests lookups and the uniform fallback.
func TestInitializerFactory(t *testing.T) {
	_, err := NewInitializerFactory(InitHe, nil)
	require.Error(t, err)

	f, err := NewInitializerFactory(InitHe, NewRand(9))
	require.NoError(t, err)

	assert.IsType(t, &HeInitializer{}, f.Default())
	assert.IsType(t, &XavierInitializer{}, f.Get(InitXavier))
	assert.IsType(t, &UniformInitializer{}, f.Get(InitUniform))
	assert.IsType(t, &UniformInitializer{}, f.Get(InitializerType(7)))

	u := f.Get(InitUniform)
	for range 100 {
		w := u.InitializeWeight(1, 1)
		assert.GreaterOrEqual(t, w, -1.0)
		assert.Less(t, w, 1.0)
	}
}
