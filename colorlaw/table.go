// SPDX-License-Identifier: MIT

package colorlaw

import (
	"fmt"
	"math"

	"github.com/katalvlaran/saltmag/grid"
)

// Default color binning of the correction table.
const (
	DefaultColorMin  = -2.0
	DefaultColorMax  = 2.0
	DefaultColorStep = 0.01
)

// Table is the precomputed color-law correction over (color, wavelength).
// Immutable after BuildTable; safe for concurrent reads.
type Table struct {
	Color grid.Axis
	Lam   grid.Axis
	law   Law
	val   *grid.Dense
}

// BuildTable tabulates law.Correction over the color axis [cmin, cmax] with
// step cstep and the given wavelength axis.
// MAIN DESCRIPTION:
//   - Fill a (nColor x nLam) table row by row.
//
// Implementation:
//   - Stage 1: nColor = round((cmax-cmin)/cstep) + 1; color node k = cmin + k*cstep.
//   - Stage 2: evaluate the law at every (color, lam) node.
//   - Stage 3: the first and last color nodes must equal cmin and cmax exactly
//     (ErrEndpoint otherwise).
//
// Complexity:
//   - Time O(nColor*nLam), Space O(nColor*nLam).
func BuildTable(cmin, cmax, cstep float64, lam grid.Axis, law Law) (*Table, error) {
	if law == nil {
		return nil, fmt.Errorf("BuildTable: nil law: %w", ErrBadParams)
	}
	if !(cstep > 0) || !(cmax > cmin) {
		return nil, fmt.Errorf("BuildTable(%g, %g, %g): %w", cmin, cmax, cstep, grid.ErrBadAxis)
	}
	n := int(math.Round((cmax-cmin)/cstep)) + 1
	color, err := grid.NewAxis(cmin, cstep, n)
	if err != nil {
		return nil, err
	}
	if first := color.Value(0); first != cmin {
		return nil, fmt.Errorf("BuildTable: color[0] = %v, want %v: %w", first, cmin, ErrEndpoint)
	}
	if last := color.Max(); last != cmax {
		return nil, fmt.Errorf("BuildTable: color[%d] = %v, want %v: %w", n-1, last, cmax, ErrEndpoint)
	}

	val, err := grid.NewDense(n, lam.N)
	if err != nil {
		return nil, err
	}
	for ic := 0; ic < n; ic++ {
		c := color.Value(ic)
		for il := 0; il < lam.N; il++ {
			if err = val.Set(ic, il, law.Correction(lam.Value(il), c)); err != nil {
				return nil, fmt.Errorf("BuildTable: color %g lam %g: %w", c, lam.Value(il), err)
			}
		}
	}

	return &Table{Color: color, Lam: lam, law: law, val: val}, nil
}

// Law returns the law the table was built from.
func (t *Table) Law() Law { return t.law }

// Value returns the tabulated correction at node (ic, ilam).
func (t *Table) Value(ic, ilam int) (float64, error) { return t.val.At(ic, ilam) }

// Correction reads the table bilinearly at color c and wavelength node
// ilam + fracLam.
// The color index is clamped to [0, nColor-2] while its fraction is not, so
// colors beyond the table are extrapolated from the edge pair. ilam must be
// a valid wavelength index.
// Complexity: O(1).
func (t *Table) Correction(c float64, ilam int, fracLam float64) float64 {
	ic, fc := t.Color.Index(c)
	ic1 := grid.Clamp(ic+1, 0, t.Color.N-1)
	il1 := grid.Clamp(ilam+1, 0, t.Lam.N-1)

	r0, _ := t.val.Row(ic)
	r1, _ := t.val.Row(ic1)

	return grid.Bilinear(r0[ilam], r0[il1], r1[ilam], r1[il1], fc, fracLam)
}

// At evaluates the table at an arbitrary rest wavelength.
func (t *Table) At(c, lam float64) float64 {
	il, fl := t.Lam.ClampedIndex(lam)

	return t.Correction(c, il, fl)
}
