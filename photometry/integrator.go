// SPDX-License-Identifier: MIT

// Package photometry - band integral and spectra of the SED model.
//
// Purpose:
//   - Evaluate the two SED components, the color law, extinction and
//     smearing on the rest-frame image of each observer bin.
//   - Share one per-call setup (phase index, smearing) between the band
//     integral and the two spectrum forms.
//
// Complexity quicksheet:
//   - Integrate, BandSpectrum: O(filter bins).
//   - Spectrum: O(sum over bins of binWidth/(1+z)/templateStep).

package photometry

import (
	"fmt"
	"math"

	"github.com/katalvlaran/saltmag/colorlaw"
	"github.com/katalvlaran/saltmag/template"
)

// lamTol is the absolute tolerance when comparing wavelength axes.
const lamTol = 1e-6

// Request is one epoch of one filter.
type Request struct {
	Filter *Filter // ignored by Spectrum
	Z      float64
	// Tobs is the observer-frame phase relative to peak.
	Tobs           float64
	X0, X1, C      float64
	MWEBV          float64
	RVHost, AVHost float64
}

// Result is the band integral of one epoch.
type Result struct {
	// Flux is the model flux in photon units.
	Flux float64
	// Ratio is S1/S0 without the Milky-Way factor; 0 when S0 == 0.
	Ratio float64
}

// Integrator evaluates the model through filters and spectrograph bins.
// It holds no per-call state and is safe for concurrent use.
type Integrator struct {
	fs   *template.FluxSurface
	ct   *colorlaw.Table
	opts Options
}

// NewIntegrator binds a flux surface and a color table sharing its
// wavelength axis.
func NewIntegrator(fs *template.FluxSurface, ct *colorlaw.Table, opts ...Option) (*Integrator, error) {
	if fs == nil || ct == nil {
		return nil, fmt.Errorf("NewIntegrator: nil table: %w", ErrBinning)
	}
	if !ct.Lam.Equal(fs.Lam, lamTol) {
		return nil, fmt.Errorf("NewIntegrator: color %v vs flux %v: %w", ct.Lam, fs.Lam, ErrBinning)
	}

	return &Integrator{fs: fs, ct: ct, opts: gatherOptions(opts...)}, nil
}

// Surface returns the flux surface.
func (in *Integrator) Surface() *template.FluxSurface { return in.fs }

// Colors returns the color table.
func (in *Integrator) Colors() *colorlaw.Table { return in.ct }

// epoch is the per-call setup shared by every bin.
type epoch struct {
	z1, trest float64
	iday      int
	fday      float64
	smear     []float64 // flux factors by bin; nil without smearing
}

// begin validates req and prepares the phase index and smearing factors
// for bins at observer wavelengths lamObs.
func (in *Integrator) begin(req Request, lamObs []float64) (epoch, error) {
	z1 := 1 + req.Z
	if !(z1 > 0) || math.IsNaN(req.Tobs) {
		return epoch{}, fmt.Errorf("z=%g Tobs=%g: %w", req.Z, req.Tobs, ErrBadRequest)
	}
	e := epoch{z1: z1, trest: req.Tobs / z1}
	e.iday, e.fday = in.fs.PhaseIndex(e.trest)

	if in.opts.Smear != nil {
		lamMax := in.fs.LamMax()
		rest := make([]float64, 0, len(lamObs))
		for _, l := range lamObs {
			if l/z1 >= lamMax {
				continue
			}
			rest = append(rest, l/z1)
		}
		mags := in.opts.Smear.MagSmear(e.trest, rest)
		e.smear = make([]float64, len(lamObs))
		for j := range e.smear {
			e.smear[j] = 1
			if j < len(mags) {
				e.smear[j] = math.Pow(10, -0.4*mags[j])
			}
		}
	}

	return e, nil
}

// smearAt returns the smearing flux factor of bin j.
func (e *epoch) smearAt(j int) float64 {
	if e.smear == nil {
		return 1
	}

	return e.smear[j]
}

// inside reports whether rest wavelength lam is strictly inside the
// template wavelength limits.
func (in *Integrator) inside(lam float64) bool {
	return lam > in.fs.LamMin() && lam < in.fs.LamMax()
}

// sed returns both components and the color correction at rest wavelength lam.
// lam must satisfy inside(lam).
func (in *Integrator) sed(e *epoch, c, lam float64) (f [template.NComponents]float64, ccor float64) {
	il, fl := in.fs.LamIndex(lam)
	ccor = in.ct.Correction(c, il, fl)
	for k := range f {
		r0 := in.fs.Row(k, e.iday)
		r1 := in.fs.Row(k, e.iday+1)
		v0 := r0[il] + (r0[il+1]-r0[il])*fl
		v1 := r1[il] + (r1[il+1]-r1[il])*fl
		f[k] = v0 + (v1-v0)*e.fday
	}

	return f, ccor
}

// mw returns the Galactic transmission at observer wavelength lam.
func (in *Integrator) mw(lam, ebv float64) float64 {
	rv := in.opts.MWRV

	return in.opts.MW.Transmission(lam, rv, rv*ebv)
}

// host returns the host transmission at rest wavelength lam.
func (in *Integrator) host(lam float64, req Request) float64 {
	if req.RVHost > HostMin && req.AVHost > HostMin {
		return in.opts.Host.Transmission(lam, req.RVHost, req.AVHost)
	}

	return 1
}

// Integrate returns the band flux of req.Filter.
// MAIN DESCRIPTION:
//   - Sum both components over the filter bins in the rest frame.
//
// Implementation:
//   - Stage 1: phase index clamped to [0, nPhase-2]; the fraction is not
//     clamped, so callers keep the phase inside the table.
//   - Stage 2: bins with T < TransMin or rest wavelength at/beyond the
//     template limits are skipped.
//   - Stage 3: flux = x0*(S0 + x1*S1) * LamStep * FluxScale / HC.
//
// Errors:
//   - ErrBadRequest for a nil filter or 1+z <= 0.
//
// Complexity:
//   - Time O(filter bins), Space O(filter bins) with smearing, else O(1).
func (in *Integrator) Integrate(req Request) (Result, error) {
	f := req.Filter
	if f == nil {
		return Result{}, fmt.Errorf("Integrate: nil filter: %w", ErrBadRequest)
	}
	e, err := in.begin(req, f.Lam)
	if err != nil {
		return Result{}, fmt.Errorf("Integrate(%s): %w", f.Name, err)
	}

	var sum, sumNoMW [template.NComponents]float64
	for j, lamObs := range f.Lam {
		tr := f.Trans[j]
		if tr < TransMin {
			continue
		}
		lam := lamObs / e.z1
		if !in.inside(lam) {
			continue
		}
		mw := in.mw(lamObs, req.MWEBV)
		w := e.smearAt(j) * in.host(lam, req) * lam * tr
		fl, ccor := in.sed(&e, req.C, lam)
		for k, v := range fl {
			b := v * ccor * w
			sumNoMW[k] += b
			sum[k] += b * mw
		}
	}

	var res Result
	res.Flux = req.X0 * (sum[0] + req.X1*sum[1]) * f.LamStep * FluxScale / HC
	if sum[0] != 0 {
		res.Ratio = sumNoMW[1] / sumNoMW[0]
	}

	return res, nil
}

// BandSpectrum returns the flux density at each bin of req.Filter, sampled
// once per bin and without the transmission skip. Bins whose rest
// wavelength falls outside the template are zero.
// Sum(flux[j] * T[j] * lam[j]/(1+z)) / HC reproduces Integrate's flux.
func (in *Integrator) BandSpectrum(req Request) ([]float64, error) {
	f := req.Filter
	if f == nil {
		return nil, fmt.Errorf("BandSpectrum: nil filter: %w", ErrBadRequest)
	}
	e, err := in.begin(req, f.Lam)
	if err != nil {
		return nil, fmt.Errorf("BandSpectrum(%s): %w", f.Name, err)
	}

	out := make([]float64, f.Len())
	for j, lamObs := range f.Lam {
		lam := lamObs / e.z1
		if !in.inside(lam) {
			continue
		}
		w := e.smearAt(j) * in.host(lam, req) * in.mw(lamObs, req.MWEBV)
		fl, ccor := in.sed(&e, req.C, lam)
		out[j] = req.X0 * (fl[0] + req.X1*fl[1]) * ccor * w * f.LamStep * FluxScale
	}

	return out, nil
}

// Spectrum returns the flux in each spectrograph bin.
// MAIN DESCRIPTION:
//   - Integrate the SED over each bin's rest-frame image.
//
// Implementation:
//   - Stage 1: extinction and smearing are evaluated once per bin at its
//     center.
//   - Stage 2: the rest-frame bin is walked from its lower edge in steps of
//     the template wavelength step; the last sub-step is truncated at the
//     upper edge. Sub-steps outside the template contribute nothing.
//   - Stage 3: flux = x0*(S0 + x1*S1) * FluxScale, with S summed over
//     sub-step widths.
//
// Errors:
//   - ErrBadRequest for 1+z <= 0.
func (in *Integrator) Spectrum(req Request, bins []SpecBin) ([]float64, error) {
	mids := make([]float64, len(bins))
	for i, b := range bins {
		mids[i] = b.Mid()
	}
	e, err := in.begin(req, mids)
	if err != nil {
		return nil, fmt.Errorf("Spectrum: %w", err)
	}

	step := in.fs.Lam.Step
	out := make([]float64, len(bins))
	for i, b := range bins {
		lo, hi := b.LamMin/e.z1, b.LamMax/e.z1
		w := e.smearAt(i) * in.host(mids[i]/e.z1, req) * in.mw(mids[i], req.MWEBV)

		var s [template.NComponents]float64
		for k := 0; ; k++ {
			lam := lo + float64(k)*step
			if lam > hi {
				break
			}
			if !in.inside(lam) {
				continue
			}
			width := step
			if lam+step >= hi {
				width = hi - lam
			}
			fl, ccor := in.sed(&e, req.C, lam)
			for c, v := range fl {
				s[c] += v * ccor * width
			}
		}
		out[i] = req.X0 * (s[0] + req.X1*s[1]) * w * FluxScale
	}

	return out, nil
}
