// Package saltmag is the photometric core of a SALT2-style supernova
// spectral energy distribution (SED) model.
//
// Given a model directory (two SED templates, four error maps, a color
// dispersion curve and a SALT2.INFO file) it computes observer-frame
// magnitudes, their uncertainties, multi-epoch model covariances and
// spectra for a supernova described by redshift, amplitude x0, stretch x1
// and color c.
//
// Packages, bottom-up:
//
//	grid/        uniform axes, flat row-major surfaces, 1-D/2-D interpolation
//	sedfile/     readers of the model's whitespace text formats
//	modelinfo/   SALT2.INFO keys and defaults
//	template/    refined two-component flux table with fidelity check
//	colorlaw/    closed-form color laws and their (color x wavelength) table
//	errmap/      error maps, coverage checks, color dispersion
//	photometry/  filters, extinction, band integral, spectra
//	errmodel/    per-epoch magnitude error and model covariance
//	latetime/    two-exponential late-time magnitude extrapolation
//	salt2/       Initialize and the Compute* call-level interface
//	cmd/saltmag  command-line front end
//
// Tables are built once, never mutated afterwards and shared by pointer, so
// every compute call is safe for concurrent use.
package saltmag
