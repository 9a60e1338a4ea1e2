package modelinfo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/saltmag/colorlaw"
	"github.com/katalvlaran/saltmag/modelinfo"
	"github.com/katalvlaran/saltmag/sedfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInfo(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, modelinfo.FileName), []byte(body), 0o644))

	return dir
}

func TestReadDefaults(t *testing.T) {
	info, err := modelinfo.Read(writeInfo(t, "# empty model info\n"))
	require.NoError(t, err)
	assert.Equal(t, modelinfo.Default(), *info)
	day, lam := info.SEDRebin()
	assert.Equal(t, [2]int{5, 2}, [2]int{day, lam})
	assert.False(t, info.ForceZero(5000))
}

func TestReadAllKeys(t *testing.T) {
	dir := writeInfo(t, `
RESTLAMBDA_RANGE: 3000. 7500.
COLORLAW_VERSION: 1
COLORCOR_PARAMS: 2800 7000 4 -0.5 0.4 -0.1 0.01
COLOR_OFFSET: 0.01
MAG_OFFSET: 0.27
MAGERR_FLOOR: 0.01
MAGERR_LAMOBS: 0.02 2000 4000
MAGERR_LAMREST: 0.03 100 200
ERRMAP_INTERP_OPT: 1
SEDFLUX_INTERP_OPT: 1
SEDFLUX_INTERP_REBIN: 4 3
ERRMAP_KCOR_OPT: 0
RESTLAM_FORCEZEROFLUX: 1000 2500
GENMODEL_EXTRAP_LATETIME: latetime.dat
SOMETHING_NEW: ignored
`)
	info, err := modelinfo.Read(dir)
	require.NoError(t, err)

	assert.Equal(t, [2]float64{3000, 7500}, info.RestLamRange)
	assert.Equal(t, 1, info.ColorLaw.Version)
	assert.Equal(t, []float64{colorlaw.BWavelength, colorlaw.VWavelength,
		2800, 7000, 4, -0.5, 0.4, -0.1, 0.01}, info.ColorLaw.Coeffs)
	assert.Equal(t, 0.01, info.ColorOffset)
	assert.Equal(t, 0.27, info.MagOffset)
	assert.Equal(t, 0.01, info.MagErrFloor)
	assert.Equal(t, [3]float64{0.02, 2000, 4000}, info.MagErrLamObs)
	assert.Equal(t, [3]float64{0.03, 100, 200}, info.MagErrLamRest)
	assert.Equal(t, modelinfo.ErrMapLinear, info.ErrMapInterpOpt)
	assert.Equal(t, modelinfo.SEDDirect, info.SEDInterpOpt)
	assert.Equal(t, 4, info.RebinDay)
	assert.Equal(t, 3, info.RebinLam)
	assert.Equal(t, 0, info.ErrMapKcorOpt)
	assert.Equal(t, "latetime.dat", info.ExtrapLateTime)

	day, lam := info.SEDRebin()
	assert.Equal(t, [2]int{1, 1}, [2]int{day, lam})

	assert.True(t, info.ForceZero(2000))
	assert.False(t, info.ForceZero(2500))
	assert.False(t, info.ForceZero(1000))
}

func TestReadErrors(t *testing.T) {
	_, err := modelinfo.Read(writeInfo(t, "COLORLAW_VERSION: 3\n"))
	require.ErrorIs(t, err, colorlaw.ErrBadVersion)

	_, err = modelinfo.Read(writeInfo(t, "SEDFLUX_INTERP_OPT: 0\n"))
	require.ErrorIs(t, err, modelinfo.ErrBadOption)

	_, err = modelinfo.Read(writeInfo(t, "ERRMAP_INTERP_OPT: 3\n"))
	require.ErrorIs(t, err, modelinfo.ErrBadOption)

	_, err = modelinfo.Read(writeInfo(t, "MAGERR_LAMOBS: 0.1 2000\n"))
	require.ErrorIs(t, err, sedfile.ErrEndOfTokens)

	_, err = modelinfo.Read(writeInfo(t, "MAG_OFFSET: abc\n"))
	require.ErrorIs(t, err, sedfile.ErrSyntax)

	_, err = modelinfo.Read(t.TempDir())
	require.Error(t, err)
}

func TestYAMLSummary(t *testing.T) {
	info := modelinfo.Default()
	info.MagOffset = 0.27
	s, err := info.YAML()
	require.NoError(t, err)
	assert.Contains(t, s, "mag_offset: 0.27")
	assert.Contains(t, s, "sedflux_interp_opt: 2")
	assert.NotContains(t, s, "extrap_latetime")
}
