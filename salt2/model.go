// SPDX-License-Identifier: MIT

package salt2

import (
	"fmt"
	"math"

	"github.com/katalvlaran/saltmag/errmodel"
	"github.com/katalvlaran/saltmag/grid"
	"github.com/katalvlaran/saltmag/latetime"
	"github.com/katalvlaran/saltmag/modelinfo"
	"github.com/katalvlaran/saltmag/photometry"
	"github.com/katalvlaran/saltmag/template"
	"github.com/sirupsen/logrus"
)

// Edge handling of the rest phase.
const (
	// edgeEps keeps the band integral strictly inside the template phases.
	edgeEps = 1e-5
	// slopeDays is the look-back used for the flux slope at a template edge.
	slopeDays = 3.0
	// fluxMin is the smallest flux converted to a magnitude.
	fluxMin = 1e-30
	// specEdge trims the phase range of spectra.
	specEdge = 0.1
)

// Params are the light-curve parameters of one supernova.
// ZForErr and X1ForErr feed the error model only.
type Params struct {
	Z, ZForErr     float64
	X0, X1, C      float64
	X1ForErr       float64
	MWEBV          float64
	RVHost, AVHost float64
}

// request builds the integrator request of one epoch.
func (p Params) request(f *photometry.Filter, tobs float64) photometry.Request {
	return photometry.Request{
		Filter: f, Z: p.Z, Tobs: tobs,
		X0: p.X0, X1: p.X1, C: p.C,
		MWEBV: p.MWEBV, RVHost: p.RVHost, AVHost: p.AVHost,
	}
}

// Model is an initialized SED model. Immutable; safe for concurrent use.
type Model struct {
	dir     string
	variant Variant
	info    *modelinfo.Info
	integ   *photometry.Integrator
	errs    *errmodel.Model
	late    *latetime.Model
	log     logrus.FieldLogger
}

// Dir returns the model directory.
func (m *Model) Dir() string { return m.dir }

// Variant returns the naming flags of the model.
func (m *Model) Variant() Variant { return m.variant }

// Info returns the model configuration. Callers must not modify it.
func (m *Model) Info() *modelinfo.Info { return m.info }

// Surface returns the SED flux table.
func (m *Model) Surface() *template.FluxSurface { return m.integ.Surface() }

// Integrator returns the band integrator.
func (m *Model) Integrator() *photometry.Integrator { return m.integ }

// ErrorModel returns the error model.
func (m *Model) ErrorModel() *errmodel.Model { return m.errs }

// LateTime returns the late-time model, or nil.
func (m *Model) LateTime() *latetime.Model { return m.late }

// checkLamRange rejects filters whose mean rest wavelength is outside the
// model's RESTLAMBDA_RANGE.
func (m *Model) checkLamRange(f *photometry.Filter, z float64) error {
	lam, r := f.MeanRest(z), m.info.RestLamRange
	if lam < r[0] || lam > r[1] {
		return fmt.Errorf("filter %s at z=%.4f: mean rest wavelength %.1f outside %.0f to %.0f A: %w",
			f.Name, z, lam, r[0], r[1], ErrLamRange)
	}

	return nil
}

// ComputeMagnitude returns the model magnitude and its error for every
// observer-frame phase in tobs.
// MAIN DESCRIPTION:
//   - Band-integrate the model, extrapolate past the template edges and
//     convert to magnitudes; errors come from the error model.
//
// Inputs:
//   - optMask: OptFlux, OptWarnBadFlux, OptNoErrors, OptDebug.
//
// Implementation:
//   - Stage 1: a rest phase within edgeEps of a template edge is integrated
//     at the edge; the flux is extrapolated linearly with the slope over the
//     last slopeDays days.
//   - Stage 2: past the late-time start the integral is taken there and
//     the magnitude extrapolated with the late-time model.
//   - Stage 3: a filter inside the force-zero window has zero flux; a flux
//     at or below fluxMin (or NaN) gives MagZeroFlux.
//   - Stage 4: mag = ZP - 2.5 log10(flux) + MAG_OFFSET.
//   - Stage 5: errors use ZForErr and X1ForErr with the S1/S0 ratio of the
//     edge integral.
//
// Errors:
//   - photometry.ErrBadRequest, ErrLamRange, and errors of the error and
//     late-time models.
//
// Complexity:
//   - Time O(len(tobs) * filter bins), at most two integrals per epoch.
func (m *Model) ComputeMagnitude(optMask int, f *photometry.Filter, p Params, tobs []float64) (mags, errs []float64, err error) {
	if f == nil {
		return nil, nil, fmt.Errorf("ComputeMagnitude: nil filter: %w", photometry.ErrBadRequest)
	}
	if err = m.checkLamRange(f, p.Z); err != nil {
		return nil, nil, fmt.Errorf("ComputeMagnitude: %w", err)
	}

	mags = make([]float64, len(tobs))
	errs = make([]float64, len(tobs))
	for i, t := range tobs {
		mag, ratio, err := m.epochMagnitude(optMask, f, p, t)
		if err != nil {
			return nil, nil, fmt.Errorf("ComputeMagnitude(%s, Tobs=%g): %w", f.Name, t, err)
		}
		mags[i] = mag

		if optMask&OptNoErrors != 0 {
			continue
		}
		z1 := 1 + p.ZForErr
		trest, lamRest := t/z1, f.MeanLam/z1
		if optMask&OptDebug != 0 {
			errs[i], err = m.errs.MagnitudeErrorDebug(trest, lamRest, p.ZForErr, p.X1ForErr, ratio)
		} else {
			errs[i], err = m.errs.MagnitudeError(trest, lamRest, p.ZForErr, p.X1ForErr, ratio)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("ComputeMagnitude(%s, Tobs=%g): %w", f.Name, t, err)
		}
	}

	return mags, errs, nil
}

// epochMagnitude returns the magnitude (or flux with OptFlux) of one epoch
// and the S1/S0 ratio for the error model.
func (m *Model) epochMagnitude(optMask int, f *photometry.Filter, p Params, tobs float64) (float64, float64, error) {
	fs := m.integ.Surface()
	z1 := 1 + p.Z
	trest := tobs / z1
	lamRest := f.MeanRest(p.Z)

	edge, flag := trest, 0.0
	switch {
	case trest <= fs.DayMin()+edgeEps:
		edge, flag = fs.DayMin()+edgeEps, -1
	case trest >= fs.DayMax()-edgeEps:
		edge, flag = fs.DayMax()-edgeEps, 1
	}
	lateMag := false
	if m.late != nil && trest > m.late.DayMin {
		edge, flag, lateMag = m.late.DayMin, 0, true
	}

	res, err := m.integ.Integrate(p.request(f, edge*z1))
	if err != nil {
		return 0, 0, err
	}
	flux := res.Flux
	if flag != 0 {
		back := slopeDays * flag
		prev, err := m.integ.Integrate(p.request(f, (edge-back)*z1))
		if err != nil {
			return 0, 0, err
		}
		slope := -(prev.Flux - res.Flux) / back
		flux = res.Flux + slope*(trest-edge)
	}
	if m.info.ForceZero(lamRest) {
		flux = 0
	}

	var mag float64
	if flux <= fluxMin || math.IsNaN(flux) {
		if optMask&OptWarnBadFlux != 0 {
			m.log.WithFields(logrus.Fields{"filter": f.Name, "trest": trest, "flux": flux}).
				Warn("no usable flux; returning zero-flux magnitude")
		}
		mag = MagZeroFlux
	} else {
		mag = f.ZP - 2.5*math.Log10(flux) + m.info.MagOffset
		if lateMag {
			if mag, err = m.late.Extrapolate(mag, trest, lamRest); err != nil {
				return 0, 0, err
			}
		}
	}

	if optMask&OptDebug != 0 {
		m.log.WithFields(logrus.Fields{
			"filter": f.Name, "trest": trest, "lamRest": lamRest, "z": p.Z,
			"flux": flux, "mag": mag, "x1": p.X1, "c": p.C, "integral": res.Flux,
			"zp": f.ZP, "mwebv": p.MWEBV, "colorCor": m.integ.Colors().Law().Correction(lamRest, p.C),
		}).Debug("magnitude dump")
	}
	if optMask&OptFlux != 0 {
		mag = math.Pow(10, -0.4*mag)
	}

	// res is the edge-day integral; under late-time extrapolation the error
	// ratio still comes from it rather than from the extrapolated epoch.
	return mag, res.Ratio, nil
}

// ComputeCovariance returns the row-major model covariance (mag^2) of the
// epochs (filters[i], tobs[i]).
// Errors: ErrArgs for length mismatch, otherwise see errmodel.Covariance.
func (m *Model) ComputeCovariance(filters []*photometry.Filter, tobs []float64, p Params) ([]float64, error) {
	if len(filters) != len(tobs) {
		return nil, fmt.Errorf("ComputeCovariance: %d filters, %d phases: %w", len(filters), len(tobs), ErrArgs)
	}
	epochs := make([]errmodel.Epoch, len(tobs))
	for i := range tobs {
		epochs[i] = errmodel.Epoch{Filter: filters[i], Tobs: tobs[i]}
	}
	cov, err := m.errs.Covariance(epochs, p.request(nil, 0), m.integ)
	if err != nil {
		return nil, fmt.Errorf("ComputeCovariance: %w", err)
	}
	out := errmodel.Flatten(cov)
	if err = grid.ValidateSymmetric(out, len(tobs), 0); err != nil {
		return nil, fmt.Errorf("ComputeCovariance: %w", err)
	}

	return out, nil
}

// ComputeSpectrum returns the flux and magnitude of each spectrograph bin.
// MAIN DESCRIPTION:
//   - Outside [DayMin+0.1, DayMax-0.1] every flux is 0; spectra are never
//     extrapolated in phase.
//   - Fluxes include MAG_OFFSET. A bin has a magnitude only when its ZP is
//     positive and its photon flux lamMid/(hc*(1+z))*flux is positive;
//     otherwise the magnitude is MagUndefined.
func (m *Model) ComputeSpectrum(p Params, tobs float64, bins []photometry.SpecBin) (flux, mags []float64, err error) {
	fs := m.integ.Surface()
	z1 := 1 + p.Z
	flux = make([]float64, len(bins))
	mags = make([]float64, len(bins))
	trest := tobs / z1

	if trest >= fs.DayMin()+specEdge && trest <= fs.DayMax()-specEdge {
		if flux, err = m.integ.Spectrum(p.request(nil, tobs), bins); err != nil {
			return nil, nil, fmt.Errorf("ComputeSpectrum: %w", err)
		}
	}

	scale := math.Pow(10, -0.4*m.info.MagOffset)
	for i, b := range bins {
		flux[i] *= scale
		mags[i] = MagUndefined
		photons := b.Mid() / (photometry.HC * z1) * flux[i]
		if b.ZP > 0 && photons > 0 {
			mags[i] = -2.5*math.Log10(photons) + b.ZP
		}
	}

	return flux, mags, nil
}

// BandSpectrum returns the observer wavelengths of f and the model flux
// density at each, without host extinction. Both are nil when the rest
// phase is at or beyond a template edge.
func (m *Model) BandSpectrum(f *photometry.Filter, p Params, tobs float64) (lam, flux []float64, err error) {
	if f == nil {
		return nil, nil, fmt.Errorf("BandSpectrum: nil filter: %w", photometry.ErrBadRequest)
	}
	fs := m.integ.Surface()
	trest := tobs / (1 + p.Z)
	if trest <= fs.DayMin() || trest >= fs.DayMax() {
		return nil, nil, nil
	}
	req := p.request(f, tobs)
	req.RVHost, req.AVHost = 0, 0
	if flux, err = m.integ.BandSpectrum(req); err != nil {
		return nil, nil, err
	}

	return append([]float64(nil), f.Lam...), flux, nil
}
