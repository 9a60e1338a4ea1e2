// Package salt2 is the call-level interface of the SED model.
//
// Initialize resolves a model version to a directory, reads every table once
// and returns an immutable *Model. All compute methods are safe for
// concurrent use:
//
//	m, err := salt2.Initialize("SALT2.JLA-B14", "", 0)
//	mags, errs, err := m.ComputeMagnitude(0, filter, params, tobs)
//	cov, err := m.ComputeCovariance(filters, tobs, params)
//	flux, mags, err := m.ComputeSpectrum(params, tobs, bins)
//
// Magnitudes follow the rest-frame phase through three regimes:
//
//	inside the template      band integral at the phase
//	beyond a template edge   linear flux extrapolation from a 3-day slope
//	past the late-time start magnitude extrapolation (package latetime)
//
// Re-initializing with a version already loaded returns a Model sharing
// the cached tables; see Loader.
package salt2
