package photometry_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/saltmag/colorlaw"
	"github.com/katalvlaran/saltmag/internal/modeltest"
	"github.com/katalvlaran/saltmag/photometry"
	"github.com/katalvlaran/saltmag/sedfile"
	"github.com/katalvlaran/saltmag/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// gridOf samples f on days -10..10 step 5 and lam 3000..8000 step 20.
func gridOf(f func(d, l float64) float64) *sedfile.Grid {
	g := &sedfile.Grid{Path: "mem"}
	for d := -10.0; d <= 10; d += 5 {
		g.Phases = append(g.Phases, d)
	}
	for j := 0; j <= 250; j++ {
		g.Lams = append(g.Lams, 3000+20*float64(j))
	}
	for _, d := range g.Phases {
		for _, l := range g.Lams {
			g.Values = append(g.Values, f(d, l))
		}
	}

	return g
}

func constant(v float64) func(d, l float64) float64 {
	return func(float64, float64) float64 { return v }
}

func newIntegrator(t *testing.T, f0, f1 func(d, l float64) float64, opts ...photometry.Option) *photometry.Integrator {
	t.Helper()
	fs, err := template.Build([2]*sedfile.Grid{gridOf(f0), gridOf(f1)}, template.WithDirect())
	require.NoError(t, err)
	law, err := colorlaw.New(colorlaw.DefaultParams(), 0)
	require.NoError(t, err)
	ct, err := colorlaw.BuildTable(colorlaw.DefaultColorMin, colorlaw.DefaultColorMax, colorlaw.DefaultColorStep, fs.Lam, law)
	require.NoError(t, err)
	in, err := photometry.NewIntegrator(fs, ct, opts...)
	require.NoError(t, err)

	return in
}

func boxFilter(t *testing.T) *photometry.Filter {
	t.Helper()
	lam, trans := modeltest.BoxFilter(4000, 6000, 10)
	f, err := photometry.NewFilter("box", lam, trans, 25)
	require.NoError(t, err)

	return f
}

// constFlux is the band flux of a constant surface through boxFilter at z=0, c=0.
func constFlux(x0, x1, f0, f1 float64) float64 {
	var s float64
	for l := 4010.0; l <= 5990; l += 10 {
		s += l
	}

	return x0 * (f0 + x1*f1) * s * 10 * photometry.FluxScale / photometry.HC
}

func TestNewFilter(t *testing.T) {
	f := boxFilter(t)
	assert.InDelta(t, 5000, f.MeanLam, 1e-9)
	assert.InDelta(t, 10, f.LamStep, 1e-12)
	assert.InDelta(t, 4000, f.MeanRest(0.25), 1e-9)
	assert.Equal(t, 201, f.Len())

	_, err := photometry.NewFilter("x", []float64{1, 2}, []float64{1}, 0)
	require.ErrorIs(t, err, photometry.ErrFilter)
	_, err = photometry.NewFilter("x", []float64{1, 2, 4}, []float64{1, 1, 1}, 0)
	require.ErrorIs(t, err, photometry.ErrFilter)
	_, err = photometry.NewFilter("x", []float64{1, 2}, []float64{0, 0}, 0)
	require.ErrorIs(t, err, photometry.ErrFilter)
}

func TestIntegrateConstantSurface(t *testing.T) {
	in := newIntegrator(t, constant(1), constant(0.5))
	req := photometry.Request{Filter: boxFilter(t), X0: 1e-5, X1: 0.4}

	res, err := in.Integrate(req)
	require.NoError(t, err)
	assert.InEpsilon(t, constFlux(1e-5, 0.4, 1, 0.5), res.Flux, 1e-9)
	assert.InDelta(t, 0.5, res.Ratio, 1e-12)

	// exactly at the last phase node
	req.Tobs = 10
	res2, err := in.Integrate(req)
	require.NoError(t, err)
	assert.InEpsilon(t, res.Flux, res2.Flux, 1e-9)
}

func TestIntegrateExtinction(t *testing.T) {
	half := photometry.ExtinctionFunc(func(_, _, av float64) float64 {
		if av > 0 {
			return 0.5
		}
		return 1
	})
	quarter := photometry.ExtinctionFunc(func(_, _, _ float64) float64 { return 0.25 })
	in := newIntegrator(t, constant(1), constant(0.5),
		photometry.WithMilkyWay(half, 3.1), photometry.WithHost(quarter))
	base := constFlux(1e-5, 0, 1, 0.5)

	res, err := in.Integrate(photometry.Request{Filter: boxFilter(t), X0: 1e-5, MWEBV: 0.1})
	require.NoError(t, err)
	assert.InEpsilon(t, 0.5*base, res.Flux, 1e-9)
	assert.InDelta(t, 0.5, res.Ratio, 1e-12, "ratio excludes the Milky-Way factor")

	// host needs both RV and AV above threshold
	res, err = in.Integrate(photometry.Request{Filter: boxFilter(t), X0: 1e-5, RVHost: 3.1})
	require.NoError(t, err)
	assert.InEpsilon(t, base, res.Flux, 1e-9)

	res, err = in.Integrate(photometry.Request{Filter: boxFilter(t), X0: 1e-5, RVHost: 3.1, AVHost: 0.2})
	require.NoError(t, err)
	assert.InEpsilon(t, 0.25*base, res.Flux, 1e-9)
}

func TestIntegrateSmearing(t *testing.T) {
	var seen int
	smear := photometry.SmearFunc(func(_ float64, lam []float64) []float64 {
		seen = len(lam)
		out := make([]float64, len(lam))
		for i := range out {
			out[i] = 2.5 * math.Log10(2)
		}
		return out
	})
	in := newIntegrator(t, constant(1), constant(0.5), photometry.WithSmearer(smear))

	res, err := in.Integrate(photometry.Request{Filter: boxFilter(t), X0: 1e-5})
	require.NoError(t, err)
	assert.Equal(t, 201, seen)
	assert.InEpsilon(t, 0.5*constFlux(1e-5, 0, 1, 0.5), res.Flux, 1e-9)
}

func TestIntegrateOutsideTemplate(t *testing.T) {
	in := newIntegrator(t, constant(1), constant(0.5))

	// rest frame 2000..3000 A lies at or below the template minimum
	res, err := in.Integrate(photometry.Request{Filter: boxFilter(t), Z: 1, X0: 1e-5})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Flux)
	assert.Equal(t, 0.0, res.Ratio)

	_, err = in.Integrate(photometry.Request{Filter: boxFilter(t), Z: -1})
	require.ErrorIs(t, err, photometry.ErrBadRequest)
	_, err = in.Integrate(photometry.Request{})
	require.ErrorIs(t, err, photometry.ErrBadRequest)
}

func TestIntegrateColor(t *testing.T) {
	in := newIntegrator(t, constant(1), constant(0.5))
	f := boxFilter(t)
	blue, err := in.Integrate(photometry.Request{Filter: f, X0: 1e-5, C: -0.1})
	require.NoError(t, err)
	red, err := in.Integrate(photometry.Request{Filter: f, X0: 1e-5, C: 0.1})
	require.NoError(t, err)

	// the v0 default law is P(lam) = r(lam), positive redward of B
	assert.Greater(t, red.Flux, blue.Flux)
}

func TestBandSpectrumMatchesIntegral(t *testing.T) {
	f0 := func(d, l float64) float64 { return modeltest.F0(d, l) }
	f1 := func(d, l float64) float64 { return modeltest.F1(d, l) }
	in := newIntegrator(t, f0, f1)
	f := boxFilter(t)
	req := photometry.Request{Filter: f, Z: 0.1, Tobs: 3.3, X0: 2e-5, X1: -0.7, C: 0.05, MWEBV: 0.02}

	res, err := in.Integrate(req)
	require.NoError(t, err)
	spec, err := in.BandSpectrum(req)
	require.NoError(t, err)
	require.Len(t, spec, f.Len())

	w := make([]float64, f.Len())
	for j := range w {
		w[j] = f.Trans[j] * f.Lam[j] / 1.1 / photometry.HC
	}
	assert.InEpsilon(t, res.Flux, floats.Dot(spec, w), 1e-9)
}

func TestSpectrumSubSteps(t *testing.T) {
	in := newIntegrator(t, constant(1), constant(0.5))
	bins := []photometry.SpecBin{
		{LamMin: 4000, LamMax: 4100, ZP: 20},
		{LamMin: 4100, LamMax: 4300, ZP: 20},
		{LamMin: 9000, LamMax: 9100, ZP: 20},
	}
	norm := 1e-5 * (1 + 0.4*0.5) * photometry.FluxScale

	flux, err := in.Spectrum(photometry.Request{X0: 1e-5, X1: 0.4}, bins)
	require.NoError(t, err)
	require.Len(t, flux, 3)
	assert.InEpsilon(t, 100*norm, flux[0], 1e-9)
	assert.InEpsilon(t, 200*norm, flux[1], 1e-9)
	assert.Equal(t, 0.0, flux[2])

	// at z=1 the first sub-step sits on the template edge and is dropped
	flux, err = in.Spectrum(photometry.Request{Z: 1, X0: 1e-5, X1: 0.4}, []photometry.SpecBin{{LamMin: 6000, LamMax: 6200}})
	require.NoError(t, err)
	assert.InEpsilon(t, 80*norm, flux[0], 1e-9)
}

func TestNewIntegratorBinning(t *testing.T) {
	fs, err := template.Build([2]*sedfile.Grid{gridOf(constant(1)), gridOf(constant(1))}, template.WithDirect())
	require.NoError(t, err)
	law, err := colorlaw.New(colorlaw.DefaultParams(), 0)
	require.NoError(t, err)
	other := fs.Lam
	other.Step *= 2
	ct, err := colorlaw.BuildTable(colorlaw.DefaultColorMin, colorlaw.DefaultColorMax, colorlaw.DefaultColorStep, other, law)
	require.NoError(t, err)

	_, err = photometry.NewIntegrator(fs, ct)
	require.ErrorIs(t, err, photometry.ErrBinning)
	_, err = photometry.NewIntegrator(nil, ct)
	require.ErrorIs(t, err, photometry.ErrBinning)

	assert.Panics(t, func() { photometry.WithMilkyWay(nil, 3.1) })
}

func TestCCM89(t *testing.T) {
	var ccm photometry.CCM89
	lamV := 1e4 / 1.82
	assert.InDelta(t, 1.0, ccm.Ratio(lamV, 3.1), 1e-12)
	assert.InDelta(t, math.Pow(10, -0.4), ccm.Transmission(lamV, 3.1, 1), 1e-12)
	assert.Equal(t, 1.0, ccm.Transmission(4000, 3.1, 0))

	// bluer light is extinguished more
	assert.Greater(t, ccm.Ratio(3000, 3.1), ccm.Ratio(8000, 3.1))
	assert.Greater(t, ccm.Ratio(1500, 3.1), ccm.Ratio(3000, 3.1))

	assert.Equal(t, 1.0, photometry.NoExtinction.Transmission(5000, 3.1, 2))
}
