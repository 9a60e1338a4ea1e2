// Package errmodel turns error-map lookups into magnitude uncertainties.
//
// Per epoch, with maps looked up at the phase clamped into the VAR0 range:
//
//	relx1  = x1 * S1/S0            (0 for retrained models)
//	var    = VAR0 + x1^2*VAR1 + 2*x1*COVAR01      (floored at VarFloor if < 0)
//	snake  = ERRSCALE * sqrt(var) / |1 + relx1|
//	frac   = hypot(snake, colorDispersion(lamRest))
//	magerr = 2.5/ln10 * frac, or SaturatedMagErr when frac > MaxFracErr
//
// followed by the fudges of the model info: a floor, then optional
// observer- and rest-frame wavelength windows whose extra error is added in
// quadrature to the unfloored model error.
//
// Covariance builds the multi-epoch model covariance: magerr^2 on the
// diagonal and CovFactor*colorDispersion^2 between epochs of the same
// filter.
package errmodel
