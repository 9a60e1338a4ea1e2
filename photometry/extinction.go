// SPDX-License-Identifier: MIT

package photometry

import "math"

// Extinction returns the fraction of flux transmitted at wavelength lam (A)
// for total-to-selective ratio rv and visual extinction av.
type Extinction interface {
	Transmission(lam, rv, av float64) float64
}

// ExtinctionFunc adapts a plain function to Extinction.
type ExtinctionFunc func(lam, rv, av float64) float64

// Transmission calls f.
func (f ExtinctionFunc) Transmission(lam, rv, av float64) float64 { return f(lam, rv, av) }

// NoExtinction transmits everything.
var NoExtinction Extinction = ExtinctionFunc(func(_, _, _ float64) float64 { return 1 })

// CCM89 is the Cardelli, Clayton & Mathis (1989) curve, valid for inverse
// wavelengths 0.3 to 10 per micron; outside that range x is clamped.
type CCM89 struct{}

// Transmission returns 10^(-0.4 A(lam)), with A(lam) = av * (a(x) + b(x)/rv).
func (c CCM89) Transmission(lam, rv, av float64) float64 {
	if av == 0 {
		return 1
	}

	return math.Pow(10, -0.4*av*c.Ratio(lam, rv))
}

// Ratio returns A(lam)/A(V).
func (CCM89) Ratio(lam, rv float64) float64 {
	x := 1e4 / lam
	switch {
	case x < 0.3:
		x = 0.3
	case x > 10:
		x = 10
	}

	var a, b float64
	switch {
	case x < 1.1:
		p := math.Pow(x, 1.61)
		a, b = 0.574*p, -0.527*p
	case x < 3.3:
		y := x - 1.82
		a = 1 + y*(0.17699+y*(-0.50447+y*(-0.02427+y*(0.72085+y*(0.01979+y*(-0.77530+y*0.32999))))))
		b = y * (1.41338 + y*(2.28305+y*(1.07233+y*(-5.38434+y*(-0.62251+y*(5.30260+y*-2.09002))))))
	case x < 8:
		var fa, fb float64
		if x >= 5.9 {
			d := x - 5.9
			fa = -0.04473*d*d - 0.009779*d*d*d
			fb = 0.2130*d*d + 0.1207*d*d*d
		}
		a = 1.752 - 0.316*x - 0.104/((x-4.67)*(x-4.67)+0.341) + fa
		b = -3.090 + 1.825*x + 1.206/((x-4.62)*(x-4.62)+0.263) + fb
	default:
		d := x - 8
		a = -1.073 - 0.628*d + 0.137*d*d - 0.070*d*d*d
		b = 13.670 + 4.257*d - 0.420*d*d + 0.374*d*d*d
	}

	return a + b/rv
}
