// Package latetime extrapolates magnitudes past the end of the trusted SED
// model with a per-wavelength two-exponential flux decline:
//
//	F(t) ~ exp(-t/tau1) + ratio*exp(-t/tau2),  t = day - DayMin
//
// normalized to the magnitude the SED model gives at DayMin. Parameters are
// interpolated linearly in rest wavelength and held constant beyond the
// first and last rows.
package latetime
