// SPDX-License-Identifier: MIT

package salt2

import "math"

// X0Scale is the flux scale of x0 at zero distance modulus.
const X0Scale = 1e-12

// MBOffset is the zero point of MBCalc.
const MBOffset = 10.635

// X0Calc converts a distance modulus and standardization parameters into x0:
//
//	x0 = 1 / (X0Scale * 10^(0.4*(dlmag - alpha*x1 + beta*c)))
func X0Calc(alpha, beta, x1, c, dlmag float64) float64 {
	return 1 / (X0Scale * math.Pow(10, 0.4*(dlmag-alpha*x1+beta*c)))
}

// DistanceModulus inverts X0Calc for alpha = beta = 0.
func DistanceModulus(x0 float64) float64 {
	return -2.5 * math.Log10(X0Scale*x0)
}

// MBCalc returns the rest-frame B magnitude of amplitude x0.
func MBCalc(x0 float64) float64 {
	return MBOffset - 2.5*math.Log10(x0)
}
