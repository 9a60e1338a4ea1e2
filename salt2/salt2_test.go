package salt2_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/saltmag/errmap"
	"github.com/katalvlaran/saltmag/errmodel"
	"github.com/katalvlaran/saltmag/grid"
	"github.com/katalvlaran/saltmag/internal/modeltest"
	"github.com/katalvlaran/saltmag/photometry"
	"github.com/katalvlaran/saltmag/salt2"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const zp = 25.0

func load(t *testing.T, fixture ...modeltest.Option) (*salt2.Model, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	m, err := salt2.NewLoader().Load(modeltest.Write(t, fixture...), "", 0, salt2.WithLogger(logger))
	require.NoError(t, err)

	return m, hook
}

func filter(t *testing.T, name string, lo, hi float64) *photometry.Filter {
	t.Helper()
	lam, trans := modeltest.BoxFilter(lo, hi, 10)
	f, err := photometry.NewFilter(name, lam, trans, zp)
	require.NoError(t, err)

	return f
}

// magOf converts an integrated flux the way ComputeMagnitude does.
func magOf(m *salt2.Model, flux float64) float64 {
	return zp - 2.5*math.Log10(flux) + m.Info().MagOffset
}

func TestResolveModelPath(t *testing.T) {
	t.Setenv(salt2.EnvModelPath, "/models")
	t.Setenv(salt2.EnvSNDataRoot, "/sndata")
	dir, err := salt2.ResolveModelPath("SALT2.JLA-B14")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/models", "SALT2.JLA-B14"), dir)

	t.Setenv(salt2.EnvModelPath, "")
	dir, err = salt2.ResolveModelPath("SALT2.JLA-B14")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/sndata", "models", "SALT2", "SALT2.JLA-B14"), dir)

	dir, err = salt2.ResolveModelPath("my/models/SALT3.K21/")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("my", "models", "SALT3.K21"), dir)

	t.Setenv(salt2.EnvSNDataRoot, "")
	_, err = salt2.ResolveModelPath("SALT2.JLA-B14")
	require.ErrorIs(t, err, salt2.ErrModelPath)
	_, err = salt2.ResolveModelPath("  ")
	require.ErrorIs(t, err, salt2.ErrModelPath)
}

func TestVariantOf(t *testing.T) {
	cases := []struct {
		version   string
		prefix    string
		retrained bool
		relaxed   bool
	}{
		{"SALT2.JLA-B14", "salt2", false, false},
		{"/data/SALT3.K21", "salt3", true, false},
		{"SALT2.P18_UV2IR", "salt2", false, true},
	}
	for _, tc := range cases {
		v := salt2.VariantOf(tc.version)
		assert.Equal(t, tc.prefix, v.Prefix, tc.version)
		assert.Equal(t, tc.retrained, v.Retrained, tc.version)
		assert.Equal(t, tc.relaxed, v.Relaxed, tc.version)
	}
}

// TestScenarioPeak: z=0.1, x0=1e-5, x1=c=0 at phase 0 gives a finite
// magnitude with a nonzero error.
func TestScenarioPeak(t *testing.T) {
	m, _ := load(t)
	g := filter(t, "g", 4400, 5280)
	p := salt2.Params{Z: 0.1, ZForErr: 0.1, X0: 1e-5}

	mags, errs, err := m.ComputeMagnitude(0, g, p, []float64{0})
	require.NoError(t, err)
	require.Len(t, mags, 1)
	assert.False(t, math.IsNaN(mags[0]) || math.IsInf(mags[0], 0))
	assert.Less(t, mags[0], salt2.MagZeroFlux)
	assert.Greater(t, errs[0], 0.0)

	res, err := m.Integrator().Integrate(photometry.Request{Filter: g, Z: 0.1, X0: 1e-5})
	require.NoError(t, err)
	assert.InDelta(t, magOf(m, res.Flux), mags[0], 1e-12)

	want, err := m.ErrorModel().MagnitudeError(0, g.MeanLam/1.1, 0.1, 0, res.Ratio)
	require.NoError(t, err)
	assert.InDelta(t, want, errs[0], 1e-15)

	flux, none, err := m.ComputeMagnitude(salt2.OptFlux|salt2.OptNoErrors, g, p, []float64{0})
	require.NoError(t, err)
	assert.InEpsilon(t, math.Pow(10, -0.4*mags[0]), flux[0], 1e-12)
	assert.Equal(t, []float64{0}, none)
}

func TestComputeMagnitudeTemplateEdges(t *testing.T) {
	m, _ := load(t)
	g := filter(t, "g", 4400, 5280)
	p := salt2.Params{X0: 1e-5}
	flux := func(trest float64) float64 {
		res, err := m.Integrator().Integrate(photometry.Request{Filter: g, Tobs: trest, X0: 1e-5})
		require.NoError(t, err)
		return res.Flux
	}

	// exactly DAYMAX: integrated just inside the edge
	mags, _, err := m.ComputeMagnitude(salt2.OptNoErrors, g, p, []float64{modeltest.DayMax})
	require.NoError(t, err)
	edge := modeltest.DayMax - 1e-5
	f0 := flux(edge)
	assert.InDelta(t, magOf(m, f0+(f0-flux(edge-3))/3*1e-5), mags[0], 1e-9)

	// past DAYMAX and before DAYMIN: linear flux extrapolation
	mags, _, err = m.ComputeMagnitude(salt2.OptNoErrors, g, p, []float64{53, -25})
	require.NoError(t, err)
	want := f0 + (f0-flux(edge-3))/3*(53-edge)
	require.Greater(t, want, 0.0)
	assert.InDelta(t, magOf(m, want), mags[0], 1e-9)

	lo := modeltest.DayMin + 1e-5
	f1 := flux(lo)
	want = f1 + (flux(lo+3)-f1)/3*(-25-lo)
	require.Greater(t, want, 0.0)
	assert.InDelta(t, magOf(m, want), mags[1], 1e-9)
}

func TestComputeMagnitudeForceZero(t *testing.T) {
	m, hook := load(t, modeltest.WithInfo("RESTLAM_FORCEZEROFLUX: 4000 6000"))
	g := filter(t, "g", 4400, 5280)
	p := salt2.Params{X0: 1e-5}

	hook.Reset()
	mags, errs, err := m.ComputeMagnitude(salt2.OptWarnBadFlux, g, p, []float64{-5, 0, 5})
	require.NoError(t, err)
	for i := range mags {
		assert.Equal(t, salt2.MagZeroFlux, mags[i])
		assert.Greater(t, errs[i], 0.0)
	}
	warns := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warns++
		}
	}
	assert.Equal(t, 3, warns)

	flux, _, err := m.ComputeMagnitude(salt2.OptFlux|salt2.OptNoErrors, g, p, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, math.Pow(10, -0.4*salt2.MagZeroFlux), flux[0])

	// a filter outside the window is unaffected
	r := filter(t, "r", 6400, 7400)
	mags, _, err = m.ComputeMagnitude(salt2.OptNoErrors, r, p, []float64{0})
	require.NoError(t, err)
	assert.Less(t, mags[0], salt2.MagZeroFlux)
}

func TestComputeMagnitudeLateTime(t *testing.T) {
	m, _ := load(t, modeltest.WithLateTime())
	require.NotNil(t, m.LateTime())
	g := filter(t, "g", 4400, 5280)
	p := salt2.Params{X0: 1e-3}

	res, err := m.Integrator().Integrate(photometry.Request{Filter: g, Tobs: modeltest.LateDayMin, X0: 1e-3})
	require.NoError(t, err)
	mag0 := magOf(m, res.Flux)

	mags, _, err := m.ComputeMagnitude(salt2.OptNoErrors, g, p, []float64{modeltest.LateDayMin, 45})
	require.NoError(t, err)
	assert.InDelta(t, mag0, mags[0], 1e-12)

	want, err := m.LateTime().Extrapolate(mag0, 45, g.MeanLam)
	require.NoError(t, err)
	assert.InDelta(t, want, mags[1], 1e-12)
	assert.Greater(t, mags[1], mag0)

	// continuity at the start of the late-time model
	same, err := m.LateTime().Extrapolate(20, m.LateTime().DayMin, g.MeanLam)
	require.NoError(t, err)
	assert.InDelta(t, 20, same, 1e-9)
}

func TestComputeMagnitudeLamRange(t *testing.T) {
	m, _ := load(t)
	g := filter(t, "g", 4400, 5280)

	_, _, err := m.ComputeMagnitude(0, g, salt2.Params{Z: 1.5, ZForErr: 1.5, X0: 1e-5}, []float64{0})
	require.ErrorIs(t, err, salt2.ErrLamRange)

	_, _, err = m.ComputeMagnitude(0, nil, salt2.Params{}, []float64{0})
	require.ErrorIs(t, err, photometry.ErrBadRequest)
}

func TestComputeCovariance(t *testing.T) {
	m, _ := load(t)
	g, r := filter(t, "g", 4400, 5280), filter(t, "r", 5600, 6600)
	p := salt2.Params{Z: 0.1, X0: 1e-5, X1: 0.3, C: 0.05}

	cov, err := m.ComputeCovariance([]*photometry.Filter{g, g, r}, []float64{0, 5, 0}, p)
	require.NoError(t, err)
	require.Len(t, cov, 9)
	require.NoError(t, grid.ValidateSymmetric(cov, 3, 0))

	k, err := m.ErrorModel().Maps().ColorDispersion(g.MeanLam / 1.1)
	require.NoError(t, err)
	assert.InDelta(t, errmodel.CovFactor*k*k, cov[1], 1e-15)
	assert.Equal(t, 0.0, cov[2])
	for i := 0; i < 3; i++ {
		assert.Greater(t, cov[i*3+i], 0.0)
	}

	_, err = m.ComputeCovariance([]*photometry.Filter{g}, []float64{0, 1}, p)
	require.ErrorIs(t, err, salt2.ErrArgs)
}

func TestComputeSpectrum(t *testing.T) {
	m, _ := load(t)
	bins := []photometry.SpecBin{
		{LamMin: 4000, LamMax: 4100, ZP: 20},
		{LamMin: 5000, LamMax: 5100},
	}
	p := salt2.Params{X0: 1e-5}

	flux, mags, err := m.ComputeSpectrum(p, 0, bins)
	require.NoError(t, err)
	raw, err := m.Integrator().Spectrum(photometry.Request{X0: 1e-5}, bins)
	require.NoError(t, err)
	scale := math.Pow(10, -0.4*m.Info().MagOffset)
	for i := range bins {
		assert.InEpsilon(t, raw[i]*scale, flux[i], 1e-12)
	}
	assert.InDelta(t, -2.5*math.Log10(4050/photometry.HC*flux[0])+20, mags[0], 1e-9)
	assert.Equal(t, salt2.MagUndefined, mags[1])

	for _, tobs := range []float64{modeltest.DayMin + 0.05, modeltest.DayMax - 0.05} {
		flux, mags, err = m.ComputeSpectrum(p, tobs, bins)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0}, flux)
		assert.Equal(t, []float64{salt2.MagUndefined, salt2.MagUndefined}, mags)
	}
}

func TestBandSpectrum(t *testing.T) {
	m, _ := load(t)
	g := filter(t, "g", 4400, 5280)

	lam, flux, err := m.BandSpectrum(g, salt2.Params{X0: 1e-5}, 0)
	require.NoError(t, err)
	assert.Equal(t, g.Lam, lam)
	require.Len(t, flux, g.Len())

	// host extinction is not applied
	_, hosted, err := m.BandSpectrum(g, salt2.Params{X0: 1e-5, RVHost: 3.1, AVHost: 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, flux, hosted)

	lam, flux, err = m.BandSpectrum(g, salt2.Params{X0: 1e-5}, modeltest.DayMax)
	require.NoError(t, err)
	assert.Nil(t, lam)
	assert.Nil(t, flux)
}

func TestX0CalcRoundTrip(t *testing.T) {
	for _, mu := range []float64{30, 35.5, 42} {
		x0 := salt2.X0Calc(0, 0, 0, 0, mu)
		assert.InDelta(t, mu, salt2.DistanceModulus(x0), 1e-12)
		assert.InDelta(t, salt2.MBOffset-30+mu, salt2.MBCalc(x0), 1e-12)
	}
	assert.InEpsilon(t, salt2.X0Calc(0, 0, 0, 0, 35-0.14+0.31), salt2.X0Calc(0.14, 3.1, 1, 0.1, 35), 1e-12)
}

func TestLoaderReusesTables(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	dir := modeltest.Write(t)
	l := salt2.NewLoader()

	m1, err := l.Load(dir, "", 0, salt2.WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())

	// a cache hit reads no file
	require.NoError(t, os.RemoveAll(dir))
	m2, err := l.Load(dir, "", 0, salt2.WithLogger(logger))
	require.NoError(t, err)
	assert.Same(t, m1.Surface(), m2.Surface())
	assert.NotSame(t, m1.ErrorModel().Maps(), m2.ErrorModel().Maps())
	assert.Equal(t, 1, l.Len())

	// another coverage mode is another entry
	_, err = l.Load(dir, "", salt2.InitStrictCoverage, salt2.WithLogger(logger))
	require.ErrorIs(t, err, os.ErrNotExist)

	l.Flush()
	assert.Equal(t, 0, l.Len())
}

func TestInitializeVariants(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	dir := modeltest.Write(t, modeltest.WithName("SALT3.Test"), modeltest.WithPrefix("salt3"))

	m, err := salt2.Initialize(dir, "", salt2.InitLegacyColor, salt2.WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, "salt3", m.Variant().Prefix)
	assert.True(t, m.ErrorModel().Retrained())
	assert.Equal(t, dir, m.Dir())
	assert.Equal(t, 0.27, m.Info().MagOffset)
}

func TestInitializeStrictCoverage(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	dir := modeltest.Write(t, modeltest.WithErrMapDayMax(30))

	_, err := salt2.NewLoader().Load(dir, "", salt2.InitStrictCoverage, salt2.WithLogger(logger))
	require.ErrorIs(t, err, errmap.ErrCoverage)

	m, err := salt2.NewLoader().Load(dir, "", 0, salt2.WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, 4, m.ErrorModel().Maps().BadCount())
}

func TestSummary(t *testing.T) {
	m, hook := load(t)
	assert.NotEmpty(t, hook.AllEntries())

	rows, err := m.Summary([]float64{4400, 9940})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.InEpsilon(t, 1.05*math.Sqrt(modeltest.Var0(0, 4400)), rows[0].S0FracErr, 1e-6)
	assert.InDelta(t, modeltest.Dispersion(4400), rows[0].ColorDisp, 1e-8)
	assert.Equal(t, 0.0, rows[1].ColorDisp)
	assert.Contains(t, rows[0].String(), "LAMINFO:")
	assert.Contains(t, rows[0].String(), "4400")

	rows, err = m.Summary(salt2.DefaultSummaryLams())
	require.NoError(t, err)
	assert.Len(t, rows, 16)
}
