// SPDX-License-Identifier: MIT

package photometry

import (
	"fmt"

	"github.com/katalvlaran/saltmag/grid"
	"gonum.org/v1/gonum/floats"
)

// Filter is an observer-frame passband on a uniform wavelength grid.
// Immutable after NewFilter.
type Filter struct {
	Name  string
	Lam   []float64 // A, uniform
	Trans []float64
	// LamStep is the uniform spacing of Lam.
	LamStep float64
	// MeanLam is the transmission-weighted mean wavelength.
	MeanLam float64
	// ZP is the zero point added to -2.5 log10(flux).
	ZP float64
}

// NewFilter validates a passband and derives LamStep and MeanLam.
// Errors wrap ErrFilter and, for non-uniform grids, grid.ErrNonUniform.
func NewFilter(name string, lam, trans []float64, zp float64) (*Filter, error) {
	if len(lam) != len(trans) {
		return nil, fmt.Errorf("NewFilter(%s): %d wavelengths, %d transmissions: %w",
			name, len(lam), len(trans), ErrFilter)
	}
	if len(lam) < 2 {
		return nil, fmt.Errorf("NewFilter(%s): need at least 2 bins: %w", name, ErrFilter)
	}
	if err := grid.CheckUniform(lam); err != nil {
		return nil, fmt.Errorf("NewFilter(%s): %w: %w", name, ErrFilter, err)
	}
	sum := floats.Sum(trans)
	if !(sum > 0) {
		return nil, fmt.Errorf("NewFilter(%s): zero transmission: %w", name, ErrFilter)
	}

	f := &Filter{
		Name:    name,
		Lam:     append([]float64(nil), lam...),
		Trans:   append([]float64(nil), trans...),
		LamStep: (lam[len(lam)-1] - lam[0]) / float64(len(lam)-1),
		MeanLam: floats.Dot(lam, trans) / sum,
		ZP:      zp,
	}

	return f, nil
}

// MeanRest is the mean wavelength in the rest frame of redshift z.
func (f *Filter) MeanRest(z float64) float64 { return f.MeanLam / (1 + z) }

// Len returns the number of bins.
func (f *Filter) Len() int { return len(f.Lam) }

// SpecBin is one spectrograph bin in the observer frame.
type SpecBin struct {
	LamMin, LamMax float64
	// ZP converts the bin flux into a magnitude; <= 0 marks the bin as
	// having no magnitude.
	ZP float64
}

// Mid returns the bin center.
func (b SpecBin) Mid() float64 { return 0.5 * (b.LamMin + b.LamMax) }
