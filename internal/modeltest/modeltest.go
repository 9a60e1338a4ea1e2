// SPDX-License-Identifier: MIT

// Package modeltest writes a small synthetic model directory for tests.
//
// The model is analytic and smooth so every stage of the loaders (refinement
// checks, coverage checks, spline preparation) succeeds by default:
//
//	template:  days -20..50 step 2,  lam 2000..9200 step 40
//	error map: days -20..50 step 5,  lam 2000..9200 step 400
//	color dispersion: lam 2000..9200 step 100
//
// Options perturb single files to reach error paths.
package modeltest

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Template binning.
const (
	DayMin  = -20.0
	DayMax  = 50.0
	DayStep = 2.0
	LamMin  = 2000.0
	LamMax  = 9200.0
	LamStep = 40.0
)

// Error-map binning.
const (
	ErrDayStep = 5.0
	ErrLamStep = 400.0
)

// LateDayMin is EXTRAP_DAYMIN of the late-time file.
const LateDayMin = 40.0

// LateTimeFile is the late-time file name referenced from the info file.
const LateTimeFile = "latetime.dat"

// ColorDisp selects how the color-dispersion file is written.
type ColorDisp int

const (
	// DispPresent writes the full curve.
	DispPresent ColorDisp = iota
	// DispEmpty writes an existing file with no rows.
	DispEmpty
	// DispMissing writes no file.
	DispMissing
	// DispSingle writes a single row.
	DispSingle
)

// F0 is the component-0 flux at (day, lam).
func F0(d, l float64) float64 {
	return 0.5 * (0.1 + math.Exp(-0.5*(d/12)*(d/12))) * (1 + 0.5*math.Sin(l/800))
}

// F1 is the component-1 flux at (day, lam).
func F1(d, l float64) float64 { return 0.1 * F0(d, l) * (1 + d/100) }

// Var0 is the VAR0 map value at (day, lam).
func Var0(d, l float64) float64 {
	return 1e-3 * (1 + 0.1*math.Sin(l/1000)) * (1 + (d/50)*(d/50))
}

// Dispersion is the color-dispersion curve at lam.
func Dispersion(l float64) float64 { return 0.02 + 0.1*math.Exp(-(l-LamMin)/1500) }

// Option perturbs the fixture.
type Option func(*config)

type config struct {
	name      string
	prefix    string
	disp      ColorDisp
	lateTime  bool
	info      []string
	errDayMax float64
	errLamMin float64
	covar     float64
}

// WithName sets the directory base name (the model version). Default "SALT2.Test".
func WithName(name string) Option { return func(c *config) { c.name = name } }

// WithPrefix sets the file prefix. Default "salt2".
func WithPrefix(p string) Option { return func(c *config) { c.prefix = p } }

// WithColorDisp selects the color-dispersion file variant.
func WithColorDisp(d ColorDisp) Option { return func(c *config) { c.disp = d } }

// WithLateTime writes LateTimeFile and references it from the info file.
func WithLateTime() Option { return func(c *config) { c.lateTime = true } }

// WithInfo appends raw lines to the info file; later keys override earlier ones.
func WithInfo(lines ...string) Option {
	return func(c *config) { c.info = append(c.info, lines...) }
}

// WithErrMapDayMax truncates the error maps in phase.
func WithErrMapDayMax(d float64) Option { return func(c *config) { c.errDayMax = d } }

// WithErrMapLamMin starts the error maps at a larger wavelength.
func WithErrMapLamMin(l float64) Option { return func(c *config) { c.errLamMin = l } }

// WithCovariance replaces the COVAR01 map by a constant.
func WithCovariance(v float64) Option { return func(c *config) { c.covar = v } }

// Write creates the model directory under t.TempDir and returns its path.
func Write(t testing.TB, opts ...Option) string {
	t.Helper()
	c := config{name: "SALT2.Test", prefix: "salt2", errDayMax: DayMax, errLamMin: LamMin, covar: math.NaN()}
	for _, o := range opts {
		o(&c)
	}
	dir := filepath.Join(t.TempDir(), c.name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("modeltest: %v", err)
	}

	put := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("modeltest: %v", err)
		}
	}

	put(c.prefix+"_template_0.dat", surface(DayMin, DayMax, DayStep, LamMin, LamMax, LamStep, F0))
	put(c.prefix+"_template_1.dat", surface(DayMin, DayMax, DayStep, LamMin, LamMax, LamStep, F1))

	maps := map[string]func(d, l float64) float64{
		"_lc_relative_variance_0.dat":    Var0,
		"_lc_relative_variance_1.dat":    func(d, l float64) float64 { return 0.1 * Var0(d, l) },
		"_lc_relative_covariance_01.dat": func(d, l float64) float64 { return 1e-5 * (1 + d/100) },
		"_lc_dispersion_scaling.dat":     func(d, _ float64) float64 { return 1 + 0.05*math.Cos(d/20) },
	}
	if !math.IsNaN(c.covar) {
		maps["_lc_relative_covariance_01.dat"] = func(float64, float64) float64 { return c.covar }
	}
	for suffix, f := range maps {
		put(c.prefix+suffix, surface(DayMin, c.errDayMax, ErrDayStep, c.errLamMin, LamMax, ErrLamStep, f))
	}

	switch c.disp {
	case DispPresent:
		var b strings.Builder
		for l := LamMin; l <= LamMax; l += 100 {
			fmt.Fprintf(&b, "%.1f %.8g\n", l, Dispersion(l))
		}
		put(c.prefix+"_color_dispersion.dat", b.String())
	case DispEmpty:
		put(c.prefix+"_color_dispersion.dat", "# no rows\n")
	case DispSingle:
		put(c.prefix+"_color_dispersion.dat", "4000 0.05\n")
	}

	info := []string{
		"RESTLAMBDA_RANGE: 2000 9200",
		"COLORLAW_VERSION: 1",
		"COLORCOR_PARAMS: 2800 7000 4 -0.504294 0.787691 -0.461715 0.0815619",
		"COLOR_OFFSET: 0.0",
		"MAG_OFFSET: 0.27",
		"SEDFLUX_INTERP_OPT: 2",
		"ERRMAP_INTERP_OPT: 1",
		"ERRMAP_KCOR_OPT: 1",
		"MAGERR_FLOOR: 0.005",
		"MAGERR_LAMOBS: 0.02 9000 12000",
		"MAGERR_LAMREST: 0.1 100 200",
	}
	if c.lateTime {
		info = append(info, "GENMODEL_EXTRAP_LATETIME: "+LateTimeFile)
		put(LateTimeFile, fmt.Sprintf(`# late-time model
EXTRAP_DAYMIN: %g
EXTRAP_PARLIST: 3000 20 80  0.1
EXTRAP_PARLIST: 6000 30 100 0.05
EXTRAP_PARLIST: 9000 40 120 0.02
`, LateDayMin))
	}
	info = append(info, c.info...)
	put("SALT2.INFO", strings.Join(info, "\n")+"\n")

	return dir
}

// surface renders a three-column (phase, lam, value) table.
func surface(d0, d1, dStep, l0, l1, lStep float64, f func(d, l float64) float64) string {
	var b strings.Builder
	nd := int(math.Round((d1-d0)/dStep)) + 1
	nl := int(math.Round((l1-l0)/lStep)) + 1
	for i := 0; i < nd; i++ {
		d := d0 + float64(i)*dStep
		for j := 0; j < nl; j++ {
			l := l0 + float64(j)*lStep
			fmt.Fprintf(&b, "%g %g %.10g\n", d, l, f(d, l))
		}
	}

	return b.String()
}

// BoxFilter returns an observer-frame transmission on [lo, hi] with step,
// zero at both ends and flat in between.
func BoxFilter(lo, hi, step float64) (lam, trans []float64) {
	n := int(math.Round((hi-lo)/step)) + 1
	for k := 0; k < n; k++ {
		lam = append(lam, lo+float64(k)*step)
		tr := 1.0
		if k == 0 || k == n-1 {
			tr = 0
		}
		trans = append(trans, tr)
	}

	return lam, trans
}
