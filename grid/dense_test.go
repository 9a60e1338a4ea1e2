// Package grid_test contains unit tests for the grid containers.
package grid_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/saltmag/grid"
	"github.com/stretchr/testify/require"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := grid.NewDense(0, 5)
	require.ErrorIs(t, err, grid.ErrInvalidDimensions)

	_, err = grid.NewDense(5, -1)
	require.ErrorIs(t, err, grid.ErrInvalidDimensions)
}

// TestDenseShape verifies Rows and Cols.
func TestDenseShape(t *testing.T) {
	m, err := grid.NewDense(3, 4)
	require.NoError(t, err)

	require.Equal(t, 3, m.Rows())
	require.Equal(t, 4, m.Cols())
}

// TestDenseAtSetOutOfRange ensures accessors return ErrOutOfRange instead of panicking.
func TestDenseAtSetOutOfRange(t *testing.T) {
	m, err := grid.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, grid.ErrOutOfRange)
	_, err = m.At(0, 2)
	require.ErrorIs(t, err, grid.ErrOutOfRange)
	require.ErrorIs(t, m.Set(2, 0, 1), grid.ErrOutOfRange)
	_, err = m.Row(5)
	require.ErrorIs(t, err, grid.ErrOutOfRange)
}

// TestDenseNaNPolicy checks the finite-value guard and its opt-out.
func TestDenseNaNPolicy(t *testing.T) {
	m, err := grid.NewDense(1, 1)
	require.NoError(t, err)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), grid.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(-1)), grid.ErrNaNInf)

	loose, err := grid.NewDense(1, 1, grid.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, loose.Set(0, 0, math.Inf(1)))

	_, err = grid.NewDenseFrom(1, 2, []float64{1, math.NaN()})
	require.ErrorIs(t, err, grid.ErrNaNInf)
}

// TestDenseRowMajor validates the row-major layout through NewDenseFrom and Row.
func TestDenseRowMajor(t *testing.T) {
	m, err := grid.NewDenseFrom(2, 3, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	v, err := m.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 4.0, v)

	row, err := m.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 5, 6}, row)

	_, err = grid.NewDenseFrom(2, 3, []float64{1, 2})
	require.ErrorIs(t, err, grid.ErrDimensionMismatch)
}

// TestDenseRawRowMajorCopies ensures RawRowMajor does not share storage.
func TestDenseRawRowMajorCopies(t *testing.T) {
	m, err := grid.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 1))

	raw := m.RawRowMajor()
	require.Equal(t, []float64{1, 0, 0, 0}, raw)
	raw[0] = 3

	v, _ := m.At(0, 0)
	require.Equal(t, 1.0, v)
}
