// SPDX-License-Identifier: MIT
// Package: grid
//
// Purpose:
//   - Provide a single source of truth for structural checks on tables.
//   - Return wrapped sentinels so call sites can match with errors.Is.
//
// Determinism & Performance:
//   - All checks are pure, deterministic and allocate nothing.
//   - Symmetry check runs O(n²) on the upper triangle only.

package grid

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateSameBinning ensures two surfaces share identical phase and
// wavelength axes and table shape.
// Complexity: O(1).
func ValidateSameBinning(a, b *Surface, tol float64) error {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameBinning: Shape", ErrDimensionMismatch)
	}
	if !a.Phase.Equal(b.Phase, tol) {
		return validatorErrorf("ValidateSameBinning: Phase", ErrDimensionMismatch)
	}
	if !a.Lam.Equal(b.Lam, tol) {
		return validatorErrorf("ValidateSameBinning: Lam", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSymmetric checks that a flat row-major n×n buffer is symmetric
// within eps (absolute).
//
// Errors: ErrDimensionMismatch if len(data) != n*n; ErrAsymmetry on the
// first offending pair.
// Complexity: O(n²).
func ValidateSymmetric(data []float64, n int, eps float64) error {
	if len(data) != n*n {
		return validatorErrorf("ValidateSymmetric", ErrDimensionMismatch)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(data[i*n+j]-data[j*n+i]) > eps {
				return fmt.Errorf("ValidateSymmetric(%d,%d): %w", i, j, ErrAsymmetry)
			}
		}
	}

	return nil
}
