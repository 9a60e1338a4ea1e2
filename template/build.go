// SPDX-License-Identifier: MIT

// Package template - refinement and validation of the SED flux table.
//
// Purpose:
//   - Turn two raw phase x wavelength grids into one shared-binning,
//     optionally finer, FluxSurface.
//   - Prove the refinement is faithful by re-reading every original node.
//
// Complexity quicksheet:
//   - Build: O(nDay*nLam*RebinDay*RebinLam) per component, 12 flops per node.
//   - validate: O(nDay*nLam) per component.

package template

import (
	"math"

	"github.com/katalvlaran/saltmag/grid"
	"github.com/katalvlaran/saltmag/internal/fault"
	"github.com/katalvlaran/saltmag/sedfile"
)

// NComponents is the number of SED components (M0 and M1).
const NComponents = 2

// windowSize is the number of nodes in a quadratic interpolation window.
const windowSize = 3

// windowEps nudges the window search past round-off below a node.
const windowEps = 1e-4

// axisTol is the absolute tolerance when comparing component binning.
const axisTol = 1e-6

// FluxSurface is the shared-binning flux table of both SED components.
type FluxSurface struct {
	comp [NComponents]*grid.Surface

	// Phase and Lam are the table axes (refined when RebinDay/RebinLam > 1).
	Phase, Lam grid.Axis
	// OrigPhase and OrigLam are the raw-file axes.
	OrigPhase, OrigLam grid.Axis
	RebinDay, RebinLam int
}

// Build constructs the FluxSurface from the raw component grids.
// MAIN DESCRIPTION:
//   - Check binning, build the table, validate it against the raw nodes.
//
// Implementation:
//   - Stage 1: each raw grid must be uniform on both axes; component 1 must
//     have the same (n, min, step) as component 0 (ErrBinning otherwise).
//   - Stage 2: Direct copies nodes; Refined uses nOut = nOrig*factor,
//     stepOut = stepOrig/factor, minOut = minOrig and fills each node with
//     two passes of 3-point quadratic interpolation.
//   - Stage 3: every original node with both indices >= 1 is compared with
//     the refined value; see ValidationError.
//
// Errors:
//   - *fault.Error wrapping ErrBinning or grid errors.
//   - *ValidationError (errors.Is ErrValidation).
func Build(raw [NComponents]*sedfile.Grid, opts ...Option) (*FluxSurface, error) {
	const op = "template.Build"
	o := gatherOptions(opts...)

	var src [NComponents]*grid.Surface
	for k, g := range raw {
		if g == nil {
			return nil, fault.Newf(op, ErrBinning, "missing SED component", "component %d is nil", k)
		}
		s, err := g.Surface()
		if err != nil {
			return nil, fault.Newf(op, ErrBinning, "SED component has non-uniform binning",
				"component %d: %v", k, err)
		}
		if k > 0 {
			if err = grid.ValidateSameBinning(s, src[0], axisTol); err != nil {
				return nil, fault.Newf(op, ErrBinning, "binning differs between SED components",
					"SED-%d: DAY %v LAM %v, SED-0: DAY %v LAM %v (%s): %v",
					k, s.Phase, s.Lam, src[0].Phase, src[0].Lam, g.Path, err)
			}
		}
		src[k] = s
	}

	origPhase, origLam := src[0].Phase, src[0].Lam
	if o.Mode == Refined && (origPhase.N < windowSize || origLam.N < windowSize) {
		return nil, fault.Newf(op, ErrBinning, "refined mode needs at least 3 nodes per axis",
			"got %d phase x %d wavelength nodes", origPhase.N, origLam.N)
	}
	phase, err := grid.NewAxis(origPhase.Min, origPhase.Step/float64(o.RebinDay), origPhase.N*o.RebinDay)
	if err != nil {
		return nil, fault.Newf(op, err, "bad refined phase axis", "%v / %d", origPhase, o.RebinDay)
	}
	lam, err := grid.NewAxis(origLam.Min, origLam.Step/float64(o.RebinLam), origLam.N*o.RebinLam)
	if err != nil {
		return nil, fault.Newf(op, err, "bad refined wavelength axis", "%v / %d", origLam, o.RebinLam)
	}

	fs := &FluxSurface{
		Phase: phase, Lam: lam,
		OrigPhase: origPhase, OrigLam: origLam,
		RebinDay: o.RebinDay, RebinLam: o.RebinLam,
	}
	for k := range src {
		if fs.comp[k], err = refine(src[k], phase, lam, o.Mode); err != nil {
			return nil, fault.Newf(op, err, "cannot fill SED table", "component %d", k)
		}
		if err = validate(k, src[k], fs.comp[k], o); err != nil {
			return nil, err
		}
		o.Log.WithField("component", k).Infof(
			"Store SED-%d  LAM(MIN,MAX,STEP)=%.0f,%.0f,%g  DAY(MIN,MAX,STEP)=%.0f,%.0f,%.1f",
			k, origLam.Min, origLam.Max(), lam.Step, origPhase.Min, origPhase.Max(), phase.Step)
	}

	return fs, nil
}

// window returns the first node of the 3-point window around x.
// The window is centred on the nearest node and never runs past the grid.
func window(x float64, a grid.Axis) int {
	start := int((x - a.Min + windowEps) / a.Step)
	start = grid.Clamp(start, 0, a.N-1)
	frac := (x - a.Value(start)) / a.Step
	if frac < 0.5 && start > 0 {
		start--
	}
	if start > a.N-windowSize {
		start = a.N - windowSize
	}

	return start
}

// refine fills a table on (phase, lam) from src.
func refine(src *grid.Surface, phase, lam grid.Axis, mode Mode) (*grid.Surface, error) {
	if mode == Direct {
		return grid.NewSurfaceFrom(phase, lam, src.RawRowMajor())
	}
	dst, err := grid.NewSurface(phase, lam)
	if err != nil {
		return nil, err
	}

	// wavelength windows are the same for every phase row
	lamStart := make([]int, lam.N)
	for j := range lamStart {
		lamStart[j] = window(lam.Value(j), src.Lam)
	}

	var xd, xl, fday, y [windowSize]float64
	for i := 0; i < phase.N; i++ {
		day := phase.Value(i)
		d0 := window(day, src.Phase)
		for a := 0; a < windowSize; a++ {
			xd[a] = src.Phase.Value(d0 + a)
		}
		for j := 0; j < lam.N; j++ {
			l := lam.Value(j)
			l0 := lamStart[j]
			for b := 0; b < windowSize; b++ {
				xl[b] = src.Lam.Value(l0 + b)
			}
			for a := 0; a < windowSize; a++ {
				for b := 0; b < windowSize; b++ {
					y[b] = src.Cell(d0+a, l0+b)
				}
				fday[a] = grid.Quad3(l, xl, y)
			}
			if err = dst.Set(i, j, grid.Quad3(day, xd, fday)); err != nil {
				return nil, err
			}
		}
	}

	return dst, nil
}

// validate compares every original node (both indices >= 1) with dst.
func validate(k int, src, dst *grid.Surface, o Options) error {
	nd, nl := src.Phase.N, src.Lam.N
	for id := 1; id < nd; id++ {
		for il := 1; il < nl; il++ {
			tol := TolInterior
			if o.Relaxed || id == nd-1 || il == nl-1 {
				tol = TolEdge
			}
			fo := src.Cell(id, il)
			if o.Relaxed && fo < NegligibleFlux {
				continue
			}
			fi := dst.Cell(id*o.RebinDay, il*o.RebinLam)
			ratio := 0.0
			if sum := fi + fo; sum > 0 {
				ratio = (fi - fo) / sum
			}
			if math.Abs(ratio) <= tol {
				continue
			}

			e := &ValidationError{
				Component: k, IDay: id, ILam: il,
				Day: src.Phase.Value(id), Lam: src.Lam.Value(il),
				Orig: fo, Interp: fi, Ratio: ratio, Tol: tol,
			}
			for a := 0; a < windowSize; a++ {
				for b := 0; b < windowSize; b++ {
					r, c := id-1+a, il-1+b
					if r >= nd || c >= nl {
						e.Neighbourhood[a][b] = math.NaN()
						continue
					}
					e.Neighbourhood[a][b] = src.Cell(r, c)
				}
			}
			o.Log.WithField("component", k).Error(e.Error())

			return e
		}
	}

	return nil
}
