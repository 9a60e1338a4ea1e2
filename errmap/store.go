// SPDX-License-Identifier: MIT

// Package errmap - loading, coverage checks and lookups.
//
// Purpose:
//   - Read the four 2-D maps and the color-dispersion curve of a model.
//   - Batch all coverage problems and report them together.
//   - Answer lookups from immutable state so a Store can be shared.
//
// Complexity quicksheet:
//   - Load: O(total map bins) plus spline preparation.
//   - Lookup: O(1) linear; O(nDay/2 * log n) per map in spline mode, no
//     allocation.
//   - ColorDispersion: O(log nLam).

package errmap

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"

	"github.com/katalvlaran/saltmag/grid"
	"github.com/katalvlaran/saltmag/internal/fault"
	"github.com/katalvlaran/saltmag/sedfile"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/interp"
)

// Map indices in Lookup results.
const (
	Var0 = iota
	Var1
	Covar01
	ErrScale
	NMaps
)

// mapNames are the log names of the 2-D maps.
var mapNames = [NMaps]string{"VAR0", "VAR1", "COVAR", "ERRSCALE"}

// mapSuffixes complete "<prefix>" into the file names of the 2-D maps.
var mapSuffixes = [NMaps]string{
	"_lc_relative_variance_0.dat",
	"_lc_relative_variance_1.dat",
	"_lc_relative_covariance_01.dat",
	"_lc_dispersion_scaling.dat",
}

// ColorDispSuffix completes "<prefix>" into the color-dispersion file name.
const ColorDispSuffix = "_color_dispersion.dat"

// Guy07 color-dispersion fallback: cubic polynomials in lambda by segment.
var (
	g07UB = [4]float64{6.2736, -0.43743e-02, 0.10167e-05, -0.78765e-10}
	g07RI = [4]float64{0.53882, -0.19852e-03, 0.18285e-07, -0.81849e-16}
)

// Segment bounds (A) of the fallback.
const (
	g07LamUB = 4400.0
	g07LamRI = 5500.0
)

// Coverage is the flux-surface extent the maps must span.
type Coverage struct {
	DayMin, DayMax float64
	LamMin, LamMax float64
	// Lam is the flux-surface wavelength axis, used by the fallback curve.
	Lam grid.Axis
}

// Map is one 2-D error surface.
type Map struct {
	Name string
	Path string
	*grid.Surface
}

// Store holds the error maps of one model. Immutable after Load/WithInterp.
type Store struct {
	maps     [NMaps]*Map
	splines  [NMaps]*spline2D
	disp     sedfile.Curve
	dispFit  *interp.PiecewiseLinear
	fallback bool
	interp   int
	warnings []string
}

// Load reads the error maps of a model directory.
// MAIN DESCRIPTION:
//   - Read the four 2-D maps and the color-dispersion curve, check every
//     extent against ref, and prepare splines when requested.
//
// Implementation:
//   - Stage 1: each 2-D map is read with sedfile.ReadGrid; nPhase*nLam must
//     stay below MaxBins.
//   - Stage 2: coverage gaps (LamTol, PhaseTol) are logged and counted.
//   - Stage 3: color dispersion is read unless disabled; an empty file
//     selects the fallback on ref.Lam.
//   - Stage 4: in strict mode any gap fails the load with ErrCoverage.
//   - Stage 5: spline mode prepares one spline2D per map.
//
// Errors:
//   - *fault.Error wrapping sedfile, grid, ErrCoverage or ErrTooFewBins.
func Load(dir, prefix string, ref Coverage, opts ...Option) (*Store, error) {
	const op = "errmap.Load"
	o := gatherOptions(opts...)
	st := &Store{interp: o.Interp}

	for k := 0; k < NMaps; k++ {
		path := filepath.Join(dir, prefix+mapSuffixes[k])
		g, err := sedfile.ReadGrid(path, sedfile.WithMaxBins(o.MaxBins-1))
		if err != nil {
			return nil, err
		}
		s, err := g.Surface(grid.WithNoValidateNaNInf())
		if err != nil {
			return nil, err
		}
		st.maps[k] = &Map{Name: mapNames[k], Path: path, Surface: s}
		o.Log.WithFields(logrus.Fields{"map": mapNames[k], "phase": s.Phase.String(), "lam": s.Lam.String()}).
			Debug("read error map")

		phaseOK, lamOK := s.Covers(ref.DayMin, ref.DayMax, ref.LamMin, ref.LamMax, PhaseTol, LamTol)
		if !lamOK {
			st.warnLam(o.Log, path, s.Lam.Min, s.Lam.Max(), ref)
		}
		if !phaseOK {
			st.warnDay(o.Log, path, s.Phase.Min, s.Phase.Max(), ref)
		}
	}

	if o.ColorDisp {
		path := filepath.Join(dir, prefix+ColorDispSuffix)
		c, err := sedfile.ReadCurve(path, o.MaxBins-1)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		if c.Len() == 0 {
			c = fallbackCurve(ref.Lam)
			st.fallback = true
			o.Log.Info("Model is pre-G10 => hard-wire G07 color disp.")
		}
		if c.Len() < 2 {
			return nil, fault.Newf(op, ErrTooFewBins, fmt.Sprintf("cannot do color-dispersion lookup with %d bin", c.Len()),
				"check '%s'", path)
		}
		if err := grid.CheckIncreasing(c.X); err != nil {
			return nil, fault.Newf(op, err, "color-dispersion wavelengths must increase", "check '%s'", path)
		}
		st.disp = c
		st.dispFit = &interp.PiecewiseLinear{}
		if err := st.dispFit.Fit(c.X, c.Y); err != nil {
			return nil, fault.Newf(op, err, "cannot fit color dispersion", "check '%s'", path)
		}
		lo, hi := c.X[0], c.X[c.Len()-1]
		if lo-LamTol > ref.LamMin || hi+LamTol < ref.LamMax {
			st.warnLam(o.Log, path, lo, hi, ref)
		}
	} else {
		o.Log.Info("Ignore color-dispersion (KCOR) errors.")
	}

	if o.Strict && len(st.warnings) > 0 {
		return nil, fault.Newf(op, ErrCoverage, fmt.Sprintf("%d ERRMAPs have invalid range", len(st.warnings)),
			"grep log for 'ERRMAP:' to see all errors")
	}

	if err := st.prepare(); err != nil {
		return nil, fault.Newf(op, err, "spline init failed for error map", "dir '%s'", dir)
	}

	return st, nil
}

// WithInterp returns a shallow copy of st using a different interpolation
// mode; spline state is prepared again. The receiver is not modified.
func (st *Store) WithInterp(mode int) (*Store, error) {
	if mode < InterpOff || mode > InterpSpline {
		return nil, fmt.Errorf("WithInterp(%d): %w", mode, ErrBadOption)
	}
	cp := *st
	cp.interp = mode
	cp.splines = [NMaps]*spline2D{}
	if err := cp.prepare(); err != nil {
		return nil, err
	}

	return &cp, nil
}

// prepare builds the spline state for spline mode.
func (st *Store) prepare() error {
	if st.interp != InterpSpline {
		return nil
	}
	for k, m := range st.maps {
		sp, err := newSpline2D(m.Surface)
		if err != nil {
			return fmt.Errorf("%s: %w", m.Name, err)
		}
		st.splines[k] = sp
	}

	return nil
}

// warnLam records a wavelength coverage gap.
func (st *Store) warnLam(log logrus.FieldLogger, path string, lo, hi float64, ref Coverage) {
	msg := fmt.Sprintf("ERRMAP: %s: ERRMAP_LAMRANGE %.1f to %.1f A does not cover SED_LAMRANGE %.1f to %.1f A",
		filepath.Base(path), lo, hi, ref.LamMin, ref.LamMax)
	st.warnings = append(st.warnings, msg)
	log.Warn(msg)
}

// warnDay records a phase coverage gap.
func (st *Store) warnDay(log logrus.FieldLogger, path string, lo, hi float64, ref Coverage) {
	msg := fmt.Sprintf("ERRMAP: %s: ERRMAP_DAYRANGE %.1f to %.1f days does not cover SED_DAYRANGE %.1f to %.1f days",
		filepath.Base(path), lo, hi, ref.DayMin, ref.DayMax)
	st.warnings = append(st.warnings, msg)
	log.Warn(msg)
}

// fallbackCurve evaluates the Guy07 polynomials on lam.
func fallbackCurve(lam grid.Axis) sedfile.Curve {
	c := sedfile.Curve{X: lam.Values(), Y: make([]float64, lam.N)}
	for j, l := range c.X {
		c.Y[j] = G07ColorDispersion(l)
	}

	return c
}

// G07ColorDispersion is the pre-G10 color dispersion at rest wavelength lam.
func G07ColorDispersion(lam float64) float64 {
	var p [4]float64
	switch {
	case lam < g07LamUB:
		p = g07UB
	case lam < g07LamRI:
		return 0
	default:
		p = g07RI
	}

	return p[0] + lam*(p[1]+lam*(p[2]+lam*p[3]))
}

// Map returns the 2-D map k (Var0..ErrScale).
func (st *Store) Map(k int) *Map { return st.maps[k] }

// Interp returns the interpolation mode in effect.
func (st *Store) Interp() int { return st.interp }

// BadCount returns the number of coverage gaps found at load.
func (st *Store) BadCount() int { return len(st.warnings) }

// Warnings returns the coverage messages (copy).
func (st *Store) Warnings() []string { return append([]string(nil), st.warnings...) }

// ColorDispersionFallback reports whether the Guy07 fallback is in use.
func (st *Store) ColorDispersionFallback() bool { return st.fallback }

// PhaseRange is the phase range of the VAR0 map; the error model clamps
// phases into it before calling Lookup.
func (st *Store) PhaseRange() (float64, float64) {
	s := st.maps[Var0].Surface

	return s.Phase.Min, s.Phase.Max()
}

// Lookup returns [VAR0, VAR1, COVAR01, ERRSCALE] at (phase, lam).
// Queries outside a map use its edge node pair without extrapolation.
func (st *Store) Lookup(phase, lam float64) ([NMaps]float64, error) {
	var out [NMaps]float64
	if st.interp == InterpOff {
		return out, nil
	}
	for k, m := range st.maps {
		lin := m.Interp(phase, lam)
		if st.interp != InterpSpline {
			out[k] = lin
			continue
		}
		v := math.Sqrt(math.Pow(10, st.splines[k].eval(phase, lam)))
		if lin < 0 {
			v = -v
		}
		out[k] = v
	}

	return out, nil
}

// ColorDispersion returns the color dispersion at rest wavelength lam.
// It is 0 when the term is disabled; outside the curve it is ErrOutOfDomain.
func (st *Store) ColorDispersion(lam float64) (float64, error) {
	n := st.disp.Len()
	if n == 0 {
		return 0, nil
	}
	lo, hi := st.disp.X[0], st.disp.X[n-1]
	if lam < lo || lam > hi {
		return 0, fmt.Errorf("ColorDispersion(%.1f): valid range is %.1f to %.1f A: %w", lam, lo, hi, ErrOutOfDomain)
	}

	return st.dispFit.Predict(lam), nil
}

// ColorDispersionRange returns the curve domain; ok is false when disabled.
func (st *Store) ColorDispersionRange() (lo, hi float64, ok bool) {
	n := st.disp.Len()
	if n == 0 {
		return 0, 0, false
	}

	return st.disp.X[0], st.disp.X[n-1], true
}
