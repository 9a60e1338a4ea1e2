// SPDX-License-Identifier: MIT

package template

import "github.com/katalvlaran/saltmag/grid"

// Surface returns the table of component k (0 or 1).
func (f *FluxSurface) Surface(k int) *grid.Surface { return f.comp[k] }

// DayMin is the first original phase node.
func (f *FluxSurface) DayMin() float64 { return f.OrigPhase.Min }

// DayMax is the last original phase node; refined rows beyond it are
// quadratic extrapolations and are not used for interpolation.
func (f *FluxSurface) DayMax() float64 { return f.OrigPhase.Max() }

// LamMin is the first original wavelength node.
func (f *FluxSurface) LamMin() float64 { return f.OrigLam.Min }

// LamMax is the last original wavelength node.
func (f *FluxSurface) LamMax() float64 { return f.OrigLam.Max() }

// PhaseIndex locates phase t on the table axis: i is clamped to
// [0, nPhase-2], frac is the unclamped offset toward i+1.
func (f *FluxSurface) PhaseIndex(t float64) (int, float64) { return f.Phase.Index(t) }

// LamIndex locates rest wavelength lam on the table axis.
func (f *FluxSurface) LamIndex(lam float64) (int, float64) { return f.Lam.Index(lam) }

// Flux returns component k at table node (iday, ilam); indices must be valid.
func (f *FluxSurface) Flux(k, iday, ilam int) float64 { return f.comp[k].Cell(iday, ilam) }

// Row returns the read-only wavelength row iday of component k.
func (f *FluxSurface) Row(k, iday int) []float64 {
	r, _ := f.comp[k].Row(iday)

	return r
}

// Interp evaluates component k bilinearly at (t, lam), clamped to the table.
func (f *FluxSurface) Interp(k int, t, lam float64) float64 { return f.comp[k].Interp(t, lam) }
