// SPDX-License-Identifier: MIT

package errmap

import (
	"fmt"
	"math"

	"github.com/katalvlaran/saltmag/grid"
	"gonum.org/v1/gonum/interp"
)

// zeroErr replaces exact zeros before taking log10(v^2).
const zeroErr = 1e-9

// constPredictor answers a single-node table.
type constPredictor float64

func (c constPredictor) Predict(float64) float64 { return float64(c) }

// fit1D returns a natural cubic spline through (xs, ys), degrading to
// piecewise linear for two nodes and a constant for one.
func fit1D(xs, ys []float64) (interp.Predictor, error) {
	switch len(xs) {
	case 0:
		return nil, grid.ErrTooFewPoints
	case 1:
		return constPredictor(ys[0]), nil
	case 2:
		var pl interp.PiecewiseLinear
		if err := pl.Fit(xs, ys); err != nil {
			return nil, err
		}
		return &pl, nil
	default:
		var nc interp.NaturalCubic
		if err := nc.Fit(xs, ys); err != nil {
			return nil, err
		}
		return &nc, nil
	}
}

// spline2D is a tensor-product spline of log10(v^2) over every other node
// of a map.
//
// Each retained phase row carries its wavelength spline. The phase direction
// is held as cardinal splines: basis[k] is the spline through the unit
// vector e_k on the retained days. A spline is linear in its node values, so
//
//	s(day, lam) = sum_k basis[k](day) * rows[k](lam)
//
// equals fitting the column rows[.](lam) across phase at query time, with
// every fit done once in newSpline2D.
type spline2D struct {
	rows           []interp.Predictor
	basis          []interp.Predictor
	dayMin, dayMax float64
	lamMin, lamMax float64
}

// newSpline2D prepares the row and phase-basis splines of s.
// MAIN DESCRIPTION:
//   - Decimate s to indices 0, 2, 4, ... on both axes and fit log10(v^2).
//
// Implementation:
//   - Stage 1: one wavelength spline per retained phase row.
//   - Stage 2: one cardinal phase spline per retained phase row.
//
// Complexity:
//   - Time O(nDay*nLam + nDay^2), Space O(nDay*nLam/4 + nDay^2/4).
func newSpline2D(s *grid.Surface) (*spline2D, error) {
	var lams, days []float64
	for j := 0; j < s.Lam.N; j += 2 {
		lams = append(lams, s.Lam.Value(j))
	}
	for i := 0; i < s.Phase.N; i += 2 {
		days = append(days, s.Phase.Value(i))
	}

	sp := &spline2D{
		dayMin: days[0], dayMax: days[len(days)-1],
		lamMin: lams[0], lamMax: lams[len(lams)-1],
	}
	for k := range days {
		ys := make([]float64, len(lams))
		for j := range lams {
			v := s.Cell(2*k, 2*j)
			if v == 0 {
				v = zeroErr
			}
			ys[j] = math.Log10(v * v)
		}
		p, err := fit1D(lams, ys)
		if err != nil {
			return nil, fmt.Errorf("newSpline2D: phase row %d: %w", 2*k, err)
		}
		sp.rows = append(sp.rows, p)
	}

	unit := make([]float64, len(days))
	for k := range days {
		unit[k] = 1
		b, err := fit1D(days, unit)
		if err != nil {
			return nil, fmt.Errorf("newSpline2D: phase basis %d: %w", k, err)
		}
		unit[k] = 0
		sp.basis = append(sp.basis, b)
	}

	return sp, nil
}

// eval returns the spline value s(day, lam) in log10(v^2) units; the query
// is clamped to the decimated node range. It does not allocate.
// Complexity: O(nDay/2 * log n).
func (sp *spline2D) eval(day, lam float64) float64 {
	day = grid.Clamp(day, sp.dayMin, sp.dayMax)
	lam = grid.Clamp(lam, sp.lamMin, sp.lamMax)

	var s float64
	for k, r := range sp.rows {
		s += sp.basis[k].Predict(day) * r.Predict(lam)
	}

	return s
}
