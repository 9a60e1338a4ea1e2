// Package errmap loads and queries the model error surfaces.
//
// A Store holds four 2-D maps over their own (phase, wavelength) binning:
//
//	VAR0      <prefix>_lc_relative_variance_0.dat
//	VAR1      <prefix>_lc_relative_variance_1.dat
//	COVAR01   <prefix>_lc_relative_covariance_01.dat
//	ERRSCALE  <prefix>_lc_dispersion_scaling.dat
//
// plus the 1-D color-dispersion curve <prefix>_color_dispersion.dat. An
// empty color-dispersion file selects a two-segment polynomial fallback
// evaluated on the flux-surface wavelength grid.
//
// Lookup answers [VAR0, VAR1, COVAR01, ERRSCALE] at (phase, lambda) by
// bilinear interpolation (InterpLinear) or by a tensor-product natural cubic
// spline of log10(v^2) over every other node (InterpSpline), re-signed with
// the bilinear estimate. InterpOff answers zeros.
//
// Every map's extent is checked against the flux surface; gaps are logged
// with the prefix "ERRMAP:" and counted. With WithStrictCoverage, Load fails
// once, after all maps are checked, if any gap was found.
package errmap
