// SPDX-License-Identifier: MIT

package salt2

import (
	"fmt"
	"math"

	"github.com/katalvlaran/saltmag/colorlaw"
	"github.com/katalvlaran/saltmag/errmap"
)

// Reference wavelengths (A) of the U and R bands.
const (
	UWavelength = 3650.88
	RWavelength = 6418.01
)

// SummaryRow is one line of the error summary, at phase 0 and color 1.
type SummaryRow struct {
	Lam float64
	// ColorCor is the color-law flux correction (not an error).
	ColorCor float64
	// S0FracErr is ERRSCALE*sqrt(VAR0), the fractional error for x1 = 0.
	S0FracErr float64
	// ColorDisp is the color dispersion, 0 outside its curve.
	ColorDisp float64
}

// DefaultSummaryLams returns the wavelengths of the init summary.
func DefaultSummaryLams() []float64 {
	return []float64{
		2000, 2500, 3000, UWavelength, 3560, 3900, colorlaw.BWavelength, 4720,
		colorlaw.VWavelength, 6185, RWavelength, 7500, 8030, 8500, 9210, 9940,
	}
}

// Summary evaluates the color law and the error maps at each wavelength.
func (m *Model) Summary(lams []float64) ([]SummaryRow, error) {
	const trest, color = 0.0, 1.0
	maps := m.errs.Maps()
	lo, hi, hasDisp := maps.ColorDispersionRange()

	rows := make([]SummaryRow, 0, len(lams))
	for _, lam := range lams {
		r := SummaryRow{Lam: lam, ColorCor: m.integ.Colors().Law().Correction(lam, color)}
		v, err := maps.Lookup(trest, lam)
		if err != nil {
			return nil, fmt.Errorf("Summary(%g): %w", lam, err)
		}
		r.S0FracErr = v[errmap.ErrScale] * math.Sqrt(v[errmap.Var0])
		if hasDisp && lam >= lo && lam <= hi {
			if r.ColorDisp, err = maps.ColorDispersion(lam); err != nil {
				return nil, fmt.Errorf("Summary(%g): %w", lam, err)
			}
		}
		rows = append(rows, r)
	}

	return rows, nil
}

// String renders the row in the fixed-width summary layout.
func (r SummaryRow) String() string {
	cc := fmt.Sprintf("%7.3f", r.ColorCor)
	if math.Abs(r.ColorCor) >= 100 {
		cc = fmt.Sprintf("%9.3e", r.ColorCor)
	}

	return fmt.Sprintf("LAMINFO:  %6d  %8s   %6.4f   %5.3f", int(r.Lam), cc, r.S0FracErr, r.ColorDisp)
}

// logSummary logs Summary(lams); failures are logged, not returned.
func (m *Model) logSummary(lams []float64) {
	if len(lams) == 0 {
		return
	}
	rows, err := m.Summary(lams)
	if err != nil {
		m.log.WithError(err).Warn("cannot build error summary")
		return
	}
	m.log.Info("            LAMBDA(A)  e^CL    dS0/S0   disp")
	for _, r := range rows {
		m.log.Info(r.String())
	}
}
