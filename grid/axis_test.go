package grid_test

import (
	"testing"

	"github.com/katalvlaran/saltmag/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAxisRejectsBadInput(t *testing.T) {
	for _, tc := range []struct {
		name      string
		min, step float64
		n         int
	}{
		{"zero bins", 0, 1, 0},
		{"zero step", 0, 0, 3},
		{"negative step", 0, -1, 3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.NewAxis(tc.min, tc.step, tc.n)
			require.ErrorIs(t, err, grid.ErrBadAxis)
		})
	}
}

func TestAxisIndex(t *testing.T) {
	a, err := grid.NewAxis(-10, 2, 6) // -10 .. 0
	require.NoError(t, err)
	assert.Equal(t, 0.0, a.Max())

	i, f := a.Index(-7)
	assert.Equal(t, 1, i)
	assert.InDelta(t, 0.5, f, 1e-12)

	// upper boundary lands on the last pair with frac 1
	i, f = a.Index(0)
	assert.Equal(t, 4, i)
	assert.InDelta(t, 1.0, f, 1e-12)

	// outside: index clamps, frac extrapolates unless clamped
	i, f = a.Index(1)
	assert.Equal(t, 4, i)
	assert.InDelta(t, 1.5, f, 1e-12)
	_, f = a.ClampedIndex(1)
	assert.Equal(t, 1.0, f)

	i, f = a.ClampedIndex(-20)
	assert.Equal(t, 0, i)
	assert.Equal(t, 0.0, f)
}

func TestCheckUniform(t *testing.T) {
	require.NoError(t, grid.CheckUniform([]float64{1, 2, 3, 4}))
	require.ErrorIs(t, grid.CheckUniform([]float64{1, 2, 4}), grid.ErrNonUniform)
	require.ErrorIs(t, grid.CheckUniform([]float64{2, 1}), grid.ErrNonUniform)
	require.ErrorIs(t, grid.CheckUniform(nil), grid.ErrTooFewPoints)

	// spacing compared with a relative tolerance of 1e-4
	require.NoError(t, grid.CheckUniform([]float64{0, 1, 2.00005}))
	require.ErrorIs(t, grid.CheckUniform([]float64{0, 1, 2.001}), grid.ErrNonUniform)

	a, err := grid.AxisFromValues([]float64{2000, 2010, 2020.0000001, 2030})
	require.NoError(t, err)
	assert.Equal(t, 4, a.N)
	assert.InDelta(t, 10, a.Step, 1e-9)
	assert.True(t, a.Equal(grid.Axis{Min: 2000, Step: 10, N: 4}, 1e-6))
	assert.Equal(t, []float64{2000, 2010, 2020, 2030}, a.Values())
}
