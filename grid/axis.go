// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// uniformRelTol is the relative tolerance on step equality used by CheckUniform.
const uniformRelTol = 1e-4

// Axis is a uniform binning: node k sits at Min + k*Step, k in [0, N).
// Both Min and Max() are inclusive.
type Axis struct {
	Min  float64
	Step float64
	N    int
}

// NewAxis validates and returns an Axis.
// A single-node axis is allowed and must carry Step > 0 all the same.
func NewAxis(min, step float64, n int) (Axis, error) {
	if n < 1 || !(step > 0) || math.IsNaN(min) || math.IsInf(min, 0) || math.IsInf(step, 0) {
		return Axis{}, fmt.Errorf("NewAxis(min=%g, step=%g, n=%d): %w", min, step, n, ErrBadAxis)
	}

	return Axis{Min: min, Step: step, N: n}, nil
}

// Value returns the coordinate of node k (no bounds check).
func (a Axis) Value(k int) float64 { return a.Min + float64(k)*a.Step }

// Max returns the coordinate of the last node.
func (a Axis) Max() float64 { return a.Value(a.N - 1) }

// Contains reports whether x lies in [Min, Max].
func (a Axis) Contains(x float64) bool { return x >= a.Min && x <= a.Max() }

// Index locates x for linear interpolation between node i and i+1.
// MAIN DESCRIPTION:
//   - Return the lower node index and the fractional offset toward the next node.
//
// Implementation:
//   - Stage 1: i = floor((x-Min)/Step).
//   - Stage 2: clamp i to [0, N-2] so the pair (i, i+1) is always addressable.
//   - Stage 3: frac = (x - Value(i)) / Step; frac is NOT clamped, so a query
//     outside the axis extrapolates linearly from the edge pair.
//
// Returns:
//   - (0, 0) for a single-node axis.
//
// Complexity:
//   - Time O(1), Space O(1).
func (a Axis) Index(x float64) (i int, frac float64) {
	if a.N < 2 {
		return 0, 0
	}
	i = int(math.Floor((x - a.Min) / a.Step))
	i = Clamp(i, 0, a.N-2)
	frac = (x - a.Value(i)) / a.Step

	return i, frac
}

// ClampedIndex is Index with frac clamped to [0, 1] (no extrapolation).
func (a Axis) ClampedIndex(x float64) (i int, frac float64) {
	i, frac = a.Index(x)

	return i, Clamp(frac, 0, 1)
}

// Values materializes all node coordinates.
func (a Axis) Values() []float64 {
	out := make([]float64, a.N)
	for k := range out {
		out[k] = a.Value(k)
	}

	return out
}

// Equal reports identical binning within tol on Min and Step.
func (a Axis) Equal(b Axis, tol float64) bool {
	return a.N == b.N && math.Abs(a.Min-b.Min) <= tol && math.Abs(a.Step-b.Step) <= tol
}

// String implements fmt.Stringer.
func (a Axis) String() string {
	return fmt.Sprintf("%d bins [%g, %g] step %g", a.N, a.Min, a.Max(), a.Step)
}

// CheckUniform verifies that vals is strictly increasing with constant spacing.
// MAIN DESCRIPTION:
//   - Validate a list of distinct node coordinates read from a model file.
//
// Implementation:
//   - Stage 1: require at least one value.
//   - Stage 2: every consecutive difference must match the first one within
//     uniformRelTol relative to that step.
//
// Errors:
//   - ErrTooFewPoints for an empty list; ErrNonUniform on the first bad gap
//     (wrapped with its index).
//
// Complexity:
//   - Time O(n), Space O(1).
func CheckUniform(vals []float64) error {
	if len(vals) == 0 {
		return ErrTooFewPoints
	}
	if len(vals) == 1 {
		return nil
	}
	step := vals[1] - vals[0]
	if !(step > 0) {
		return fmt.Errorf("CheckUniform: index 1 step %g: %w", step, ErrNonUniform)
	}
	for k := 2; k < len(vals); k++ {
		d := vals[k] - vals[k-1]
		if !scalar.EqualWithinRel(d, step, uniformRelTol) {
			return fmt.Errorf("CheckUniform: index %d step %g != %g: %w", k, d, step, ErrNonUniform)
		}
	}

	return nil
}

// AxisFromValues builds an Axis from a uniform coordinate list.
// The step is the mean spacing, which absorbs round-off in ASCII tables.
func AxisFromValues(vals []float64) (Axis, error) {
	if err := CheckUniform(vals); err != nil {
		return Axis{}, err
	}
	if len(vals) == 1 {
		return Axis{Min: vals[0], Step: 1, N: 1}, nil
	}
	n := len(vals)
	step := (vals[n-1] - vals[0]) / float64(n-1)

	return NewAxis(vals[0], step, n)
}
