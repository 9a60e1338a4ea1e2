// SPDX-License-Identifier: MIT

package latetime

import (
	"fmt"
	"math"

	"github.com/katalvlaran/saltmag/grid"
	"github.com/katalvlaran/saltmag/internal/fault"
	"github.com/katalvlaran/saltmag/internal/logging"
	"github.com/katalvlaran/saltmag/sedfile"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/interp"
)

// Model limits and conventions.
const (
	// MagZeroFlux is returned for extrapolations fainter than MagCeiling.
	MagZeroFlux = 99.0
	// MagCeiling is the faintest magnitude reported as is.
	MagCeiling = 40.0
	// MinDayMin is the smallest accepted EXTRAP_DAYMIN.
	MinDayMin = 10.0
	// MaxLamBins bounds the number of EXTRAP_PARLIST rows; a file must
	// hold fewer.
	MaxLamBins = 100
	// noPivot is DayPivot when the second exponential never dominates.
	noPivot = 1e4
	// magPerEfold is 2.5/ln(10) rounded as in the published slopes.
	magPerEfold = 1.086
)

// Row is one EXTRAP_PARLIST entry plus derived quantities.
type Row struct {
	Lam, Tau1, Tau2, Ratio float64

	// MagSlope1 and MagSlope2 are the asymptotic declines in mag/day.
	MagSlope1, MagSlope2 float64
	// DayPivot is the day after DayMin when both exponentials are equal.
	DayPivot float64
}

// Model is an immutable late-time table.
type Model struct {
	Path   string
	DayMin float64
	Rows   []Row

	// parameter curves in rest wavelength
	tau1, tau2, ratio interp.Predictor
}

// flat answers a single-row table.
type flat float64

func (f flat) Predict(float64) float64 { return float64(f) }

// Option configures Load and Parse.
type Option func(*options)

type options struct {
	log logrus.FieldLogger
}

// WithLogger injects the logger used for the parameter table.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

// Load reads a late-time file.
func Load(path string, opts ...Option) (*Model, error) {
	tk, err := sedfile.ReadTokens(path)
	if err != nil {
		return nil, err
	}

	return Parse(tk, opts...)
}

// Parse consumes "EXTRAP_DAYMIN: d" and repeated
// "EXTRAP_PARLIST: lam tau1 tau2 ratio" tokens; other tokens are skipped.
// MAIN DESCRIPTION:
//   - Read the rows, check them, derive slopes and pivot days, log the table.
//
// Errors:
//   - *fault.Error wrapping ErrNoData, ErrTooManyBins, ErrDayMin or ErrTau;
//     sedfile errors for truncated or malformed values.
func Parse(tk *sedfile.Tokens, opts ...Option) (*Model, error) {
	const op = "latetime.Parse"
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	log := logging.Or(o.log)

	m := &Model{Path: tk.Path()}
	for {
		key, ok := tk.Next()
		if !ok {
			break
		}
		switch key {
		case "EXTRAP_DAYMIN:":
			v, err := tk.Float(key)
			if err != nil {
				return nil, err
			}
			m.DayMin = v
		case "EXTRAP_PARLIST:":
			v, err := tk.Floats(key, 4)
			if err != nil {
				return nil, err
			}
			m.Rows = append(m.Rows, Row{Lam: v[0], Tau1: v[1], Tau2: v[2], Ratio: v[3]})
		}
	}

	switch {
	case len(m.Rows) == 0:
		return nil, fault.Newf(op, ErrNoData, "no EXTRAP_PARLIST rows", "check '%s'", m.Path)
	case len(m.Rows) >= MaxLamBins:
		return nil, fault.Newf(op, ErrTooManyBins, fmt.Sprintf("NLAMBIN=%d exceeds bound of %d", len(m.Rows), MaxLamBins),
			"check '%s'", m.Path)
	case m.DayMin < MinDayMin:
		return nil, fault.Newf(op, ErrDayMin, fmt.Sprintf("invalid DAYMIN=%.2f (too small)", m.DayMin),
			"check EXTRAP_DAYMIN key in '%s'", m.Path)
	}

	lam := make([]float64, len(m.Rows))
	var tau1, tau2, ratio []float64
	for i := range m.Rows {
		r := &m.Rows[i]
		lam[i] = r.Lam
		if r.Tau2 < r.Tau1 {
			return nil, fault.Newf(op, ErrTau, fmt.Sprintf("invalid TAU2(%.2f) < TAU1(%.2f)", r.Tau2, r.Tau1),
				"check EXTRAP_PARLIST with lam=%.1f", r.Lam)
		}
		r.MagSlope1 = magPerEfold / r.Tau1
		r.MagSlope2 = magPerEfold / r.Tau2
		r.DayPivot = noPivot
		if r.Ratio > 1e-9 && r.Tau1 > 0 && r.Tau2 > 0 {
			r.DayPivot = math.Log(1/r.Ratio) / (1/r.Tau1 - 1/r.Tau2)
		}

		tau1 = append(tau1, r.Tau1)
		tau2 = append(tau2, r.Tau2)
		ratio = append(ratio, r.Ratio)

		log.WithFields(logrus.Fields{
			"lam": r.Lam, "tau1": r.Tau1, "tau2": r.Tau2, "ratio": r.Ratio,
			"slope1": r.MagSlope1, "slope2": r.MagSlope2, "pivot": r.DayPivot,
		}).Debug("late-time row")
	}
	if err := m.fit(lam, tau1, tau2, ratio); err != nil {
		return nil, fault.Newf(op, err, "EXTRAP_PARLIST wavelengths must increase", "check '%s'", m.Path)
	}
	log.WithFields(logrus.Fields{"file": m.Path, "daymin": m.DayMin, "nlam": len(m.Rows)}).
		Info("read late-time extrapolation")

	return m, nil
}

// decline is the unnormalized late-time flux t days after DayMin.
func decline(t, tau1, tau2, ratio float64) float64 {
	return math.Exp(-t/tau1) + ratio*math.Exp(-t/tau2)
}

// fit prepares the parameter curves: linear in rest wavelength, held
// constant beyond the first and last rows.
func (m *Model) fit(lam, tau1, tau2, ratio []float64) error {
	if len(lam) == 1 {
		m.tau1, m.tau2, m.ratio = flat(tau1[0]), flat(tau2[0]), flat(ratio[0])
		return nil
	}
	if err := grid.CheckIncreasing(lam); err != nil {
		return err
	}
	var fits [3]interp.PiecewiseLinear
	for k, col := range [3][]float64{tau1, tau2, ratio} {
		if err := fits[k].Fit(lam, col); err != nil {
			return err
		}
	}
	m.tau1, m.tau2, m.ratio = &fits[0], &fits[1], &fits[2]

	return nil
}

// Extrapolate returns the magnitude at rest day from mag, the model
// magnitude at DayMin, for rest wavelength lam.
// MAIN DESCRIPTION:
//   - Shift mag by the magnitude of the decline ratio F(day-DayMin)/F(0);
//     the flux zero point cancels in the ratio.
//
// Errors:
//   - ErrDay if day < DayMin.
//   - ErrInconsistent if the result is NaN or outside [0, 99]; magnitudes
//     fainter than MagCeiling are first mapped to MagZeroFlux.
func (m *Model) Extrapolate(mag, day, lam float64) (float64, error) {
	if day < m.DayMin {
		return 0, fmt.Errorf("Extrapolate: day=%.2f < DAYMIN=%.2f: %w", day, m.DayMin, ErrDay)
	}
	tau1, tau2, ratio := m.tau1.Predict(lam), m.tau2.Predict(lam), m.ratio.Predict(lam)

	// the decline ratio is exactly 1 at DayMin, so mag comes back unchanged
	out := mag - 2.5*math.Log10(decline(day-m.DayMin, tau1, tau2, ratio)/decline(0, tau1, tau2, ratio))
	if out > MagCeiling {
		out = MagZeroFlux
	}
	if math.IsNaN(out) || out < 0 || out > MagZeroFlux {
		return out, fmt.Errorf("Extrapolate(mag=%.3f, day=%.3f, lam=%.1f): tau1=%.3f tau2=%.3f ratio=%.5f -> %g: %w",
			mag, day, lam, tau1, tau2, ratio, out, ErrInconsistent)
	}

	return out, nil
}
