// Package template builds the flux surface of the two SED components.
//
// Build takes the two raw grids read from <prefix>_template_0.dat and
// <prefix>_template_1.dat and produces a FluxSurface:
//
//   - Direct mode copies the nodes.
//   - Refined mode (default) subdivides the phase step by RebinDay and the
//     wavelength step by RebinLam. Every output node is a 3x3 quadratic
//     interpolation: first across wavelength at three phase rows, then across
//     phase.
//
// After building, each original node is compared with the refined table at
// the same coordinate; a mismatch beyond tolerance is returned as a
// *ValidationError holding the offending indices and the 3x3 original
// neighbourhood.
//
// The FluxSurface is immutable and read concurrently by the integrator.
package template
