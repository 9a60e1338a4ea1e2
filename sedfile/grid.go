// SPDX-License-Identifier: MIT

package sedfile

import (
	"math"

	"github.com/katalvlaran/saltmag/grid"
	"github.com/katalvlaran/saltmag/internal/fault"
)

// lamMatchRelTol is the relative tolerance when matching the wavelength
// column of each phase block against the first block.
const lamMatchRelTol = 1e-7

// Grid is a phase x wavelength table exactly as read from disk.
// Values is phase-major: Values[i*len(Lams)+j] is at (Phases[i], Lams[j]).
type Grid struct {
	Path   string
	Phases []float64
	Lams   []float64
	Values []float64
}

// ReadGrid reads a three-column (phase, wavelength, value) file.
// MAIN DESCRIPTION:
//   - Parse rows, keep those inside the phase and wavelength read windows,
//     and assemble a rectangular phase-major table.
//
// Implementation:
//   - Stage 1: a new phase block starts whenever the phase column changes.
//   - Stage 2: the first block defines the wavelength column; every later
//     block must repeat it (ErrRagged otherwise).
//   - Stage 3: reject empty results (ErrNoData) and oversize tables
//     (ErrTooManyBins).
//
// Errors:
//   - *fault.Error wrapping ErrSyntax, ErrRagged, ErrNoData, ErrTooManyBins
//     or the os error for a missing file.
//
// Complexity:
//   - Time O(rows), Space O(rows).
func ReadGrid(path string, opts ...Option) (*Grid, error) {
	const op = "sedfile.ReadGrid"
	o := gatherOptions(opts...)

	g := &Grid{Path: path}
	nInBlock := 0
	err := scanFields(op, path, func(lineNo int, fields []string) error {
		v, err := parseFloats(op, path, lineNo, fields, 3)
		if err != nil {
			return err
		}
		phase, lam, val := v[0], v[1], v[2]
		if phase < o.PhaseMin || phase > o.PhaseMax || lam < o.LamMin || lam > o.LamMax {
			return nil
		}

		np := len(g.Phases)
		if np == 0 || phase != g.Phases[np-1] {
			if np > 0 && nInBlock != len(g.Lams) {
				return fault.Newf(op, ErrRagged, "phase block has wrong wavelength count",
					"'%s' phase %g: %d bins, expected %d", path, g.Phases[np-1], nInBlock, len(g.Lams))
			}
			g.Phases = append(g.Phases, phase)
			nInBlock = 0
		}

		if len(g.Phases) == 1 {
			g.Lams = append(g.Lams, lam)
		} else {
			if nInBlock >= len(g.Lams) {
				return fault.Newf(op, ErrRagged, "phase block has extra wavelength bins",
					"'%s' line %d phase %g lam %g", path, lineNo, phase, lam)
			}
			ref := g.Lams[nInBlock]
			if math.Abs(lam-ref) > lamMatchRelTol*math.Abs(ref) {
				return fault.Newf(op, ErrRagged, "wavelength column differs between phase blocks",
					"'%s' line %d: lam %g, expected %g", path, lineNo, lam, ref)
			}
		}
		nInBlock++
		g.Values = append(g.Values, val)

		if len(g.Values) > o.MaxBins {
			return fault.Newf(op, ErrTooManyBins, "grid exceeds bin bound",
				"'%s': more than %d bins", path, o.MaxBins)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(g.Values) == 0 {
		return nil, fault.Newf(op, ErrNoData, "no rows inside read window",
			"'%s': phase [%g,%g] lam [%g,%g]", path, o.PhaseMin, o.PhaseMax, o.LamMin, o.LamMax)
	}
	if nInBlock != len(g.Lams) {
		return nil, fault.Newf(op, ErrRagged, "last phase block is incomplete",
			"'%s': %d bins, expected %d", path, nInBlock, len(g.Lams))
	}

	return g, nil
}

// NPhase returns the number of phase rows.
func (g *Grid) NPhase() int { return len(g.Phases) }

// NLam returns the number of wavelength columns.
func (g *Grid) NLam() int { return len(g.Lams) }

// Surface converts the grid into a uniformly binned grid.Surface.
// Errors wrap grid.ErrNonUniform when either coordinate column is not uniform.
func (g *Grid) Surface(opts ...grid.Option) (*grid.Surface, error) {
	const op = "sedfile.Grid.Surface"
	phase, err := grid.AxisFromValues(g.Phases)
	if err != nil {
		return nil, fault.Newf(op, err, "phase binning is not uniform", "check '%s'", g.Path)
	}
	lam, err := grid.AxisFromValues(g.Lams)
	if err != nil {
		return nil, fault.Newf(op, err, "wavelength binning is not uniform", "check '%s'", g.Path)
	}

	return grid.NewSurfaceFrom(phase, lam, g.Values, opts...)
}
