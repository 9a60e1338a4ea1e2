// SPDX-License-Identifier: MIT

package modelinfo

import (
	"path/filepath"

	"github.com/katalvlaran/saltmag/colorlaw"
	"github.com/katalvlaran/saltmag/internal/fault"
	"github.com/katalvlaran/saltmag/sedfile"
	"gopkg.in/yaml.v3"
)

// FileName is the model-info file inside a model directory.
const FileName = "SALT2.INFO"

// SED flux interpolation modes (SEDFLUX_INTERP_OPT).
const (
	SEDDirect  = 1 // use template nodes as read
	SEDRefined = 2 // refine by RebinDay x RebinLam with quadratic interpolation
)

// Error-map interpolation modes (ERRMAP_INTERP_OPT).
const (
	ErrMapOff    = 0
	ErrMapLinear = 1
	ErrMapSpline = 2
)

// Info is the effective model configuration.
type Info struct {
	// RestLamRange bounds the mean rest wavelength of usable filters.
	RestLamRange [2]float64 `yaml:"restlambda_range"`

	MagErrFloor float64 `yaml:"magerr_floor"`
	// MagErrLamObs and MagErrLamRest are {err, lamMin, lamMax}; err is added
	// in quadrature inside the window (inclusive).
	MagErrLamObs  [3]float64 `yaml:"magerr_lamobs"`
	MagErrLamRest [3]float64 `yaml:"magerr_lamrest"`

	SEDInterpOpt    int `yaml:"sedflux_interp_opt"`
	RebinDay        int `yaml:"sedflux_rebin_day"`
	RebinLam        int `yaml:"sedflux_rebin_lam"`
	ErrMapInterpOpt int `yaml:"errmap_interp_opt"`
	// ErrMapKcorOpt enables the color-dispersion term (1) or disables it (0).
	ErrMapKcorOpt int `yaml:"errmap_kcor_opt"`

	ColorLaw    colorlaw.Params `yaml:"colorlaw"`
	ColorOffset float64         `yaml:"color_offset"`
	MagOffset   float64         `yaml:"mag_offset"`

	// ForceZeroFlux is an open rest-wavelength window with zero flux;
	// inactive while ForceZeroFlux[1] <= 0.
	ForceZeroFlux [2]float64 `yaml:"restlam_forcezeroflux"`

	// ExtrapLateTime names an optional late-time model file, relative to the
	// model directory unless absolute.
	ExtrapLateTime string `yaml:"extrap_latetime,omitempty"`
}

// Default returns the configuration used for keys absent from the file.
func Default() Info {
	return Info{
		RestLamRange:    [2]float64{2900, 7000},
		MagErrFloor:     0.005,
		SEDInterpOpt:    SEDRefined,
		RebinDay:        5,
		RebinLam:        2,
		ErrMapInterpOpt: ErrMapSpline,
		ErrMapKcorOpt:   1,
		ColorLaw:        colorlaw.DefaultParams(),
	}
}

// Read parses dir/SALT2.INFO.
func Read(dir string) (*Info, error) {
	tk, err := sedfile.ReadTokens(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}

	return Parse(tk)
}

// Parse consumes a token stream.
// MAIN DESCRIPTION:
//   - Start from Default() and apply every recognised key in stream order.
//
// Implementation:
//   - COLORLAW_VERSION resizes the color-law vector (4 or 9 values) and
//     keeps the B, V reference wavelengths in front.
//   - COLORLAW_PARAMS (or the older COLORCOR_PARAMS) reads the vector
//     length for the version in effect at that point, minus the two
//     reference wavelengths.
//   - Unknown tokens are skipped.
//
// Errors:
//   - sedfile.ErrEndOfTokens / ErrSyntax for truncated or bad values.
//   - colorlaw.ErrBadVersion for an unknown color-law version.
//   - ErrBadOption via Validate.
func Parse(tk *sedfile.Tokens) (*Info, error) {
	const op = "modelinfo.Parse"
	info := Default()

	for {
		key, ok := tk.Next()
		if !ok {
			break
		}
		var err error
		switch key {
		case "RESTLAMBDA_RANGE:":
			err = readInto(tk, key, info.RestLamRange[:])
		case "COLORLAW_VERSION:":
			var v, n int
			if v, err = tk.Int(key); err != nil {
				break
			}
			if n, err = colorlaw.NParams(v); err != nil {
				return nil, fault.Newf(op, err, "invalid COLORLAW_VERSION", "'%s': %d (valid: 0, 1)", tk.Path(), v)
			}
			coeffs := make([]float64, n)
			coeffs[0], coeffs[1] = colorlaw.BWavelength, colorlaw.VWavelength
			info.ColorLaw = colorlaw.Params{Version: v, Coeffs: coeffs}
		case "COLORLAW_PARAMS:", "COLORCOR_PARAMS:":
			err = readInto(tk, key, info.ColorLaw.Coeffs[2:])
		case "COLOR_OFFSET:":
			info.ColorOffset, err = tk.Float(key)
		case "MAG_OFFSET:":
			info.MagOffset, err = tk.Float(key)
		case "MAGERR_FLOOR:":
			info.MagErrFloor, err = tk.Float(key)
		case "MAGERR_LAMOBS:":
			err = readInto(tk, key, info.MagErrLamObs[:])
		case "MAGERR_LAMREST:":
			err = readInto(tk, key, info.MagErrLamRest[:])
		case "ERRMAP_INTERP_OPT:":
			info.ErrMapInterpOpt, err = tk.Int(key)
		case "SEDFLUX_INTERP_OPT:":
			info.SEDInterpOpt, err = tk.Int(key)
		case "SEDFLUX_INTERP_REBIN:":
			if info.RebinDay, err = tk.Int(key); err == nil {
				info.RebinLam, err = tk.Int(key)
			}
		case "ERRMAP_KCOR_OPT:":
			info.ErrMapKcorOpt, err = tk.Int(key)
		case "RESTLAM_FORCEZEROFLUX:":
			err = readInto(tk, key, info.ForceZeroFlux[:])
		case "GENMODEL_EXTRAP_LATETIME:":
			info.ExtrapLateTime, err = tk.String(key)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := info.Validate(); err != nil {
		return nil, fault.Newf(op, err, "invalid model info", "check '%s'", tk.Path())
	}

	return &info, nil
}

// readInto fills dst with consecutive floats.
func readInto(tk *sedfile.Tokens, key string, dst []float64) error {
	v, err := tk.Floats(key, len(dst))
	if err != nil {
		return err
	}
	copy(dst, v)

	return nil
}

// Validate checks enumerated options and rebin factors.
func (i *Info) Validate() error {
	const op = "modelinfo.Validate"
	if i.SEDInterpOpt != SEDDirect && i.SEDInterpOpt != SEDRefined {
		return fault.Newf(op, ErrBadOption, "invalid SEDFLUX_INTERP_OPT", "got %d (valid: 1, 2)", i.SEDInterpOpt)
	}
	if i.ErrMapInterpOpt < ErrMapOff || i.ErrMapInterpOpt > ErrMapSpline {
		return fault.Newf(op, ErrBadOption, "invalid ERRMAP_INTERP_OPT", "got %d (valid: 0, 1, 2)", i.ErrMapInterpOpt)
	}
	if i.ErrMapKcorOpt != 0 && i.ErrMapKcorOpt != 1 {
		return fault.Newf(op, ErrBadOption, "invalid ERRMAP_KCOR_OPT", "got %d (valid: 0, 1)", i.ErrMapKcorOpt)
	}
	if i.RebinDay < 1 || i.RebinLam < 1 {
		return fault.Newf(op, ErrBadOption, "invalid SEDFLUX_INTERP_REBIN", "got day=%d lam=%d (must be >= 1)", i.RebinDay, i.RebinLam)
	}
	if !(i.RestLamRange[1] > i.RestLamRange[0]) {
		return fault.Newf(op, ErrBadOption, "invalid RESTLAMBDA_RANGE", "got [%g, %g]", i.RestLamRange[0], i.RestLamRange[1])
	}
	if _, err := colorlaw.New(i.ColorLaw, i.ColorOffset); err != nil {
		return fault.Newf(op, err, "invalid color law", "version %d params %v", i.ColorLaw.Version, i.ColorLaw.Coeffs)
	}

	return nil
}

// ForceZero reports whether lamRest lies strictly inside the force-zero window.
func (i *Info) ForceZero(lamRest float64) bool {
	w := i.ForceZeroFlux
	if w[1] <= 0 {
		return false
	}

	return lamRest > w[0] && lamRest < w[1]
}

// SEDRebin returns the (day, lam) refinement factors in effect; 1,1 in
// direct mode.
func (i *Info) SEDRebin() (day, lam int) {
	if i.SEDInterpOpt == SEDDirect {
		return 1, 1
	}

	return i.RebinDay, i.RebinLam
}

// YAML renders the configuration.
func (i *Info) YAML() (string, error) {
	b, err := yaml.Marshal(i)
	if err != nil {
		return "", err
	}

	return string(b), nil
}
