// Package grid offers the bounds-checked numeric containers shared by the
// model tables.
//
// The grid package provides:
//
//   - Dense: a row-major float64 buffer with safe At/Set accessors and an
//     optional finite-value policy.
//   - Axis: a uniform binning (min, step, n) with inclusive min/max and
//     index+fraction lookup.
//   - Surface: a Dense indexed by a phase Axis (rows) and a wavelength Axis
//     (columns), the shape of every flux, color-law and error map table.
//   - Small interpolation kernels (3-point quadratic, piecewise linear,
//     bilinear) used by the table builders and the integrator.
//
// Tables are built once and read concurrently afterwards; nothing in this
// package mutates shared state on read.
package grid
