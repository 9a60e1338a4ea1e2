// SPDX-License-Identifier: MIT

// Package grid - small interpolation kernels.
//
// Purpose:
//   - Quad3: 3-point Lagrange quadratic used by the template refinement.
//   - Bilinear: four-corner blend used by every (phase, wavelength) lookup.
//   - Clamp: generic bound helper shared by index arithmetic.
//
// All kernels are pure and allocation-free. 1-D tables with non-uniform
// nodes go through gonum's interp package; CheckIncreasing guards its Fit.

package grid

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Clamp bounds v into [lo, hi]. lo must not exceed hi.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

// Quad3 evaluates the quadratic through (x[0],y[0]), (x[1],y[1]), (x[2],y[2]) at xx.
// MAIN DESCRIPTION:
//   - Lagrange form; the three abscissas must be distinct.
//
// Complexity:
//   - Time O(1), Space O(1).
func Quad3(xx float64, x, y [3]float64) float64 {
	d01 := x[0] - x[1]
	d02 := x[0] - x[2]
	d12 := x[1] - x[2]

	l0 := (xx - x[1]) * (xx - x[2]) / (d01 * d02)
	l1 := (xx - x[0]) * (xx - x[2]) / (-d01 * d12)
	l2 := (xx - x[0]) * (xx - x[1]) / (d02 * d12)

	return y[0]*l0 + y[1]*l1 + y[2]*l2
}

// CheckIncreasing verifies that xs holds at least two strictly increasing
// nodes, the precondition of gonum interp fits.
//
// Errors: ErrTooFewPoints, or ErrNotIncreasing wrapped with the first bad index.
func CheckIncreasing(xs []float64) error {
	if len(xs) < 2 {
		return fmt.Errorf("CheckIncreasing: %d nodes: %w", len(xs), ErrTooFewPoints)
	}
	for k := 1; k < len(xs); k++ {
		if !(xs[k] > xs[k-1]) {
			return fmt.Errorf("CheckIncreasing: index %d (%g after %g): %w", k, xs[k], xs[k-1], ErrNotIncreasing)
		}
	}

	return nil
}

// Bilinear blends four corners: v00 at (0,0), v01 at (0,1), v10 at (1,0), v11 at (1,1),
// with fr along the first index and fc along the second.
func Bilinear(v00, v01, v10, v11, fr, fc float64) float64 {
	a := v00 + fc*(v01-v00)
	b := v10 + fc*(v11-v10)

	return a + fr*(b-a)
}
