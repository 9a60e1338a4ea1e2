// SPDX-License-Identifier: MIT

package grid

import "fmt"

// Surface is a Dense indexed by a phase Axis (rows) and a wavelength Axis (columns).
// Row i holds phase Phase.Value(i); column j holds wavelength Lam.Value(j).
type Surface struct {
	*Dense
	Phase Axis
	Lam   Axis
}

// NewSurface allocates a zero Surface over the given axes.
func NewSurface(phase, lam Axis, opts ...Option) (*Surface, error) {
	d, err := NewDense(phase.N, lam.N, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewSurface(%v x %v): %w", phase, lam, err)
	}

	return &Surface{Dense: d, Phase: phase, Lam: lam}, nil
}

// NewSurfaceFrom wraps a copy of a day-major buffer (len phase.N*lam.N).
func NewSurfaceFrom(phase, lam Axis, data []float64, opts ...Option) (*Surface, error) {
	d, err := NewDenseFrom(phase.N, lam.N, data, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewSurfaceFrom(%v x %v): %w", phase, lam, err)
	}

	return &Surface{Dense: d, Phase: phase, Lam: lam}, nil
}

// Cell returns the value at node (i, j) without error reporting.
// Indices MUST already be valid; used by hot loops after clamping.
func (s *Surface) Cell(i, j int) float64 { return s.data[i*s.c+j] }

// Interp evaluates the surface at (phase, lam) bilinearly.
// Queries outside the axes use the nearest node pair with the fraction
// clamped to [0, 1], so no value is ever extrapolated.
// Complexity: O(1).
func (s *Surface) Interp(phase, lam float64) float64 {
	i, fi := s.Phase.ClampedIndex(phase)
	j, fj := s.Lam.ClampedIndex(lam)
	i1 := Clamp(i+1, 0, s.r-1)
	j1 := Clamp(j+1, 0, s.c-1)

	return Bilinear(s.Cell(i, j), s.Cell(i, j1), s.Cell(i1, j), s.Cell(i1, j1), fi, fj)
}

// Covers reports whether s spans [phaseMin, phaseMax] x [lamMin, lamMax]
// within the given tolerances.
func (s *Surface) Covers(phaseMin, phaseMax, lamMin, lamMax, phaseTol, lamTol float64) (phaseOK, lamOK bool) {
	phaseOK = s.Phase.Min <= phaseMin+phaseTol && s.Phase.Max() >= phaseMax-phaseTol
	lamOK = s.Lam.Min <= lamMin+lamTol && s.Lam.Max() >= lamMax-lamTol

	return phaseOK, lamOK
}
