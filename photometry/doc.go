// Package photometry integrates the two-component SED model through a
// filter or a spectrograph.
//
// For one epoch the Integrator evaluates, on every filter bin j with
// observer wavelength lam_j and transmission T_j,
//
//	lam'  = lam_j / (1+z)                         rest wavelength
//	F_k   = bilinear(flux_k, phase, lam')         k = 0, 1
//	S_k  += F_k * CL(c, lam') * host(lam') * mw(lam_j) * lam' * T_j
//
// and returns flux = x0 * (S_0 + x1*S_1) * LamStep * FluxScale / HC together
// with the stretch-component ratio used by the error model, computed without
// the Milky-Way factor.
//
// Bins with negligible transmission are skipped, as are rest wavelengths at
// or beyond the template wavelength limits. Optional intrinsic scatter enters
// through a Smearer returning magnitude offsets per bin.
//
// Spectrum and BandSpectrum return per-bin flux densities instead of the
// band integral: Spectrum sub-steps each spectrograph bin with the template
// wavelength step, BandSpectrum samples each filter bin once.
//
// Extinction curves, filter responses and spectrograph binning are inputs;
// CCM89 is provided as a ready Extinction.
package photometry
