// SPDX-License-Identifier: MIT

package errmodel

import (
	"fmt"
	"math"

	"github.com/katalvlaran/saltmag/errmap"
	"github.com/katalvlaran/saltmag/grid"
	"github.com/katalvlaran/saltmag/internal/logging"
	"github.com/katalvlaran/saltmag/modelinfo"
	"github.com/sirupsen/logrus"
)

// Error-model constants.
const (
	// VarFloor replaces a negative total variance.
	VarFloor = 0.01 * 0.01
	// MaxFracErr is the fractional error above which the magnitude error saturates.
	MaxFracErr = 0.999
	// SaturatedMagErr is the saturated magnitude error.
	SaturatedMagErr = 5.0
	// CovFactor is (2.5/ln10)^2, converting squared fractional flux error to mag^2.
	CovFactor = 1.17882
)

// magPerFrac converts a fractional flux error into a magnitude error.
var magPerFrac = 2.5 / math.Ln10

// Fudge holds the magnitude-error fudges of a model.
// LamObs and LamRest are {extraErr, lamMin, lamMax}, inclusive.
type Fudge struct {
	Floor   float64
	LamObs  [3]float64
	LamRest [3]float64
}

// FudgeFrom extracts the fudges from a model info.
func FudgeFrom(info *modelinfo.Info) Fudge {
	return Fudge{Floor: info.MagErrFloor, LamObs: info.MagErrLamObs, LamRest: info.MagErrLamRest}
}

// Apply returns the fudged error for the model error magerr.
// The floor applies first; a matching window then replaces the result by
// hypot(magerr, extra), so window terms combine with the unfloored error.
func (f Fudge) Apply(magerr, lamObs, lamRest float64) float64 {
	out := math.Max(magerr, f.Floor)
	if lamObs >= f.LamObs[1] && lamObs <= f.LamObs[2] {
		out = math.Hypot(magerr, f.LamObs[0])
	}
	if lamRest >= f.LamRest[1] && lamRest <= f.LamRest[2] {
		out = math.Hypot(magerr, f.LamRest[0])
	}

	return out
}

// Option configures New.
type Option func(*Model)

// WithFudge sets the error fudges (default: none).
func WithFudge(f Fudge) Option { return func(m *Model) { m.fudge = f } }

// WithRetrained drops the stretch-ratio term from the denominator.
func WithRetrained(on bool) Option { return func(m *Model) { m.retrained = on } }

// WithLogger injects the logger used for debug dumps.
func WithLogger(l logrus.FieldLogger) Option { return func(m *Model) { m.log = l } }

// Model is the per-epoch and multi-epoch error model. Immutable; safe for
// concurrent use.
type Model struct {
	maps      *errmap.Store
	fudge     Fudge
	retrained bool
	log       logrus.FieldLogger
}

// New binds an error-map store.
func New(maps *errmap.Store, opts ...Option) (*Model, error) {
	if maps == nil {
		return nil, ErrNilMaps
	}
	m := &Model{maps: maps}
	for _, fn := range opts {
		if fn != nil {
			fn(m)
		}
	}
	m.log = logging.Or(m.log)

	return m, nil
}

// Maps returns the error-map store.
func (m *Model) Maps() *errmap.Store { return m.maps }

// Fudge returns the fudges in effect.
func (m *Model) Fudge() Fudge { return m.fudge }

// Retrained reports whether the stretch-ratio term is dropped.
func (m *Model) Retrained() bool { return m.retrained }

// ClampPhase clamps a rest phase into the error-map phase range.
func (m *Model) ClampPhase(phase float64) float64 {
	lo, hi := m.maps.PhaseRange()

	return grid.Clamp(phase, lo, hi)
}

// MagnitudeError returns the model magnitude error of one epoch.
// MAIN DESCRIPTION:
//   - Combine the surface variances at (phase, lamRest) with the color
//     dispersion, convert to magnitudes and apply the fudges.
//
// Inputs:
//   - phase, lamRest: rest-frame phase and mean filter wavelength.
//   - z: redshift, used for the observer-frame fudge window.
//   - x1: stretch; fluxRatio: S1/S0 from the band integral.
//
// Errors:
//   - errmap.ErrOutOfDomain when lamRest is outside the color-dispersion curve.
func (m *Model) MagnitudeError(phase, lamRest, z, x1, fluxRatio float64) (float64, error) {
	return m.magnitudeError(phase, lamRest, z, x1, fluxRatio, false)
}

func (m *Model) magnitudeError(phase, lamRest, z, x1, fluxRatio float64, debug bool) (float64, error) {
	v, err := m.maps.Lookup(m.ClampPhase(phase), lamRest)
	if err != nil {
		return 0, err
	}
	relx1 := x1 * fluxRatio
	if m.retrained {
		relx1 = 0
	}

	vartot := v[errmap.Var0] + v[errmap.Var1]*x1*x1 + 2*x1*v[errmap.Covar01]
	if vartot < 0 {
		vartot = VarFloor
	}
	snake := v[errmap.ErrScale] * math.Sqrt(vartot) / math.Abs(1+relx1)
	kcor, err := m.maps.ColorDispersion(lamRest)
	if err != nil {
		return 0, fmt.Errorf("MagnitudeError: %w", err)
	}
	frac := math.Hypot(snake, kcor)

	model := SaturatedMagErr
	if !(frac > MaxFracErr) {
		model = magPerFrac * frac
	}
	out := m.fudge.Apply(model, lamRest*(1+z), lamRest)

	if debug {
		m.log.WithFields(logrus.Fields{
			"phase": phase, "lamRest": lamRest, "z": z,
			"var0": v[errmap.Var0], "var1": v[errmap.Var1], "covar01": v[errmap.Covar01],
			"errscale": v[errmap.ErrScale], "vartot": vartot, "relx1": relx1,
			"snake": snake, "kcor": kcor, "magerrModel": model, "magerr": out,
		}).Debug("magnitude error dump")
	}

	return out, nil
}

// MagnitudeErrorDebug is MagnitudeError with a debug-level dump of every
// intermediate term.
func (m *Model) MagnitudeErrorDebug(phase, lamRest, z, x1, fluxRatio float64) (float64, error) {
	return m.magnitudeError(phase, lamRest, z, x1, fluxRatio, true)
}
