// SPDX-License-Identifier: MIT

package template

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBinning indicates non-uniform binning or components that do not
	// share identical phase and wavelength axes.
	ErrBinning = errors.New("template: inconsistent binning")

	// ErrValidation indicates a refined value that does not reproduce the
	// original node. The concrete error is *ValidationError.
	ErrValidation = errors.New("template: refined table does not match original node")
)

// ValidationError reports the first original node the refined table fails
// to reproduce.
type ValidationError struct {
	Component  int
	IDay, ILam int     // indices on the original grid
	Day, Lam   float64 // coordinates of that node
	Orig       float64
	Interp     float64
	Ratio      float64 // (Interp-Orig)/(Interp+Orig)
	Tol        float64

	// Neighbourhood[a][b] is the original value at (IDay-1+a, ILam-1+b);
	// cells beyond the grid hold NaN.
	Neighbourhood [3][3]float64
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "template: bad SED-%d interp at DAY[%d]=%.1f LAM[%d]=%.1f\n",
		e.Component, e.IDay, e.Day, e.ILam, e.Lam)
	fmt.Fprintf(&sb, "\tF[interp/orig] = %e / %e, ratio %g exceeds %g\n", e.Interp, e.Orig, e.Ratio, e.Tol)
	for a := 0; a < 3; a++ {
		sb.WriteString("\t")
		for b := 0; b < 3; b++ {
			fmt.Fprintf(&sb, " %14.6e", e.Neighbourhood[a][b])
		}
		if a < 2 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// Unwrap exposes ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }
