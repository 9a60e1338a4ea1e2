package colorlaw_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/saltmag/colorlaw"
	"github.com/katalvlaran/saltmag/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// guy10Params are the Guy10 reference coefficients.
func guy10Params() colorlaw.Params {
	return colorlaw.Params{Version: 1, Coeffs: []float64{
		colorlaw.BWavelength, colorlaw.VWavelength, 3700, 8000, 4,
		-1.77139, 2.38305, -1.16417, 0.178494,
	}}
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := colorlaw.New(colorlaw.Params{Version: 2}, 0)
	require.ErrorIs(t, err, colorlaw.ErrBadVersion)

	_, err = colorlaw.New(colorlaw.Params{Version: 0, Coeffs: []float64{1, 2}}, 0)
	require.ErrorIs(t, err, colorlaw.ErrBadParams)

	p := guy10Params()
	p.Coeffs[4] = 7
	_, err = colorlaw.New(p, 0)
	require.ErrorIs(t, err, colorlaw.ErrBadParams)

	p = guy10Params()
	p.Coeffs[2], p.Coeffs[3] = 8000, 3700
	_, err = colorlaw.New(p, 0)
	require.ErrorIs(t, err, colorlaw.ErrBadParams)

	n, err := colorlaw.NParams(1)
	require.NoError(t, err)
	assert.Equal(t, 9, n)
}

// TestReferencePoints checks P(B)=0 and P(V)=1 for both versions.
func TestReferencePoints(t *testing.T) {
	v0, err := colorlaw.New(colorlaw.Params{Version: 0, Coeffs: []float64{
		colorlaw.BWavelength, colorlaw.VWavelength, -0.336646, 0.0484495}}, 0)
	require.NoError(t, err)
	v1, err := colorlaw.New(guy10Params(), 0)
	require.NoError(t, err)

	for _, l := range []colorlaw.Law{v0, v1} {
		assert.InDelta(t, 0, l.Poly(colorlaw.BWavelength), 1e-12)
		assert.InDelta(t, 1, l.Poly(colorlaw.VWavelength), 1e-12)
		// zero color means no correction
		assert.InDelta(t, 1, l.Correction(3000, 0), 1e-15)
		// c > 0 dims the blue side
		assert.Less(t, l.Correction(3500, 0.3), 1.0)
	}
	assert.Equal(t, 0, v0.Version())
	assert.Equal(t, 1, v1.Version())
}

func TestV0FrozenOutsideWindow(t *testing.T) {
	l, err := colorlaw.New(colorlaw.Params{Version: 0, Coeffs: []float64{
		colorlaw.BWavelength, colorlaw.VWavelength, -0.3, 0.05}}, 0)
	require.NoError(t, err)
	assert.Equal(t, l.Poly(colorlaw.V0LamMin), l.Poly(1000))
	assert.Equal(t, l.Poly(colorlaw.V0LamMax), l.Poly(20000))
}

func TestV1LinearContinuation(t *testing.T) {
	l, err := colorlaw.New(guy10Params(), 0)
	require.NoError(t, err)
	// second differences vanish outside the window
	d1 := l.Poly(2500) - l.Poly(2600)
	d2 := l.Poly(2600) - l.Poly(2700)
	assert.InDelta(t, d1, d2, 1e-9)
	d1 = l.Poly(9000) - l.Poly(9100)
	d2 = l.Poly(9100) - l.Poly(9200)
	assert.InDelta(t, d1, d2, 1e-9)
	// continuity at the window edge
	assert.InDelta(t, l.Poly(3700-1e-6), l.Poly(3700+1e-6), 1e-6)
}

func TestColorOffset(t *testing.T) {
	l, err := colorlaw.New(guy10Params(), 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 1, l.Correction(3000, 0.1), 1e-15)
}

func TestBuildTableEndpoints(t *testing.T) {
	lam, err := grid.NewAxis(2000, 20, 300)
	require.NoError(t, err)
	law, err := colorlaw.New(guy10Params(), 0)
	require.NoError(t, err)

	tab, err := colorlaw.BuildTable(colorlaw.DefaultColorMin, colorlaw.DefaultColorMax,
		colorlaw.DefaultColorStep, lam, law)
	require.NoError(t, err)
	assert.Equal(t, 401, tab.Color.N)
	assert.Equal(t, colorlaw.DefaultColorMin, tab.Color.Value(0))
	assert.Equal(t, colorlaw.DefaultColorMax, tab.Color.Max())

	// node values match the law; off-node values are interpolated
	v, err := tab.Value(250, 40)
	require.NoError(t, err)
	assert.InDelta(t, law.Correction(lam.Value(40), 0.5), v, 1e-12)
	assert.InDelta(t, law.Correction(2800, 0.5), tab.At(0.5, 2800), 1e-9)
	mid := tab.Correction(0.505, 40, 0)
	assert.InDelta(t, 0.5*(law.Correction(2800, 0.5)+law.Correction(2800, 0.51)), mid, 1e-12)
	assert.Equal(t, 1, tab.Law().Version())
	assert.False(t, math.IsNaN(tab.At(3, 1e5)))
}

func TestBuildTableRejectsBadAxis(t *testing.T) {
	lam, _ := grid.NewAxis(2000, 20, 3)
	law, _ := colorlaw.New(colorlaw.DefaultParams(), 0)
	_, err := colorlaw.BuildTable(1, -1, 0.01, lam, law)
	require.ErrorIs(t, err, grid.ErrBadAxis)
	_, err = colorlaw.BuildTable(-1, 1, 0.01, lam, nil)
	require.ErrorIs(t, err, colorlaw.ErrBadParams)
}
