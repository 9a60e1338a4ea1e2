// Package colorlaw evaluates the model color law and tabulates it on a
// (color x rest-wavelength) grid.
//
// A Law maps rest wavelength to a polynomial P(lambda) in magnitude space,
// with P(B)=0 and P(V)=1 by construction of the reduced wavelength
// r = (lambda-B)/(V-B). The multiplicative flux correction for color c is
//
//	10^(0.4 * (c - colorOffset) * P(lambda))
//
// Two versions exist:
//
//   - version 0: cubic in r with the linear coefficient fixed by P(V)=1,
//     frozen (constant) outside [2000, 12000] A.
//   - version 1: polynomial of up to 4 extra terms inside a declared
//     wavelength window, continued linearly with the boundary derivative
//     outside it.
//
// BuildTable precomputes the correction over 401 color bins in [-2, +2] and
// the flux-surface wavelength axis; Table.Correction reads it bilinearly.
package colorlaw
