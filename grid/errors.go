// SPDX-License-Identifier: MIT
// Package grid: sentinel error set.
// All constructors and accessors return these sentinels (optionally wrapped
// with coordinates via fmt.Errorf("...: %w")). Callers match with errors.Is.

package grid

import "errors"

var (
	// ErrInvalidDimensions indicates that requested dimensions are non-positive.
	ErrInvalidDimensions = errors.New("grid: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("grid: index out of range")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("grid: NaN or Inf encountered")

	// ErrDimensionMismatch indicates incompatible shapes between operands.
	ErrDimensionMismatch = errors.New("grid: dimension mismatch")

	// ErrAsymmetry signals that a matrix expected to be symmetric is not.
	ErrAsymmetry = errors.New("grid: matrix is not symmetric within eps")

	// ErrBadAxis indicates an axis with n<1, non-positive step, or NaN bounds.
	ErrBadAxis = errors.New("grid: invalid axis")

	// ErrNonUniform indicates a coordinate list whose spacing is not constant.
	ErrNonUniform = errors.New("grid: non-uniform binning")

	// ErrNotIncreasing indicates interpolation nodes that are not strictly increasing.
	ErrNotIncreasing = errors.New("grid: nodes not strictly increasing")

	// ErrTooFewPoints indicates an interpolation table with too few nodes.
	ErrTooFewPoints = errors.New("grid: too few interpolation points")
)
