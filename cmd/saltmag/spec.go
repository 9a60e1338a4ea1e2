// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/katalvlaran/saltmag/photometry"
	"github.com/spf13/cobra"
)

func newSpecCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spec",
		Short: "Print the model spectrum on uniform spectrograph bins, or through one band",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fl := cmd.Flags()
			tobs, _ := fl.GetFloat64("tobs")
			band, _ := fl.GetString("band")

			m, err := a.model()
			if err != nil {
				return err
			}
			p := paramsFrom(cmd)
			out := cmd.OutOrStdout()

			if band != "" {
				set, err := a.filters()
				if err != nil {
					return err
				}
				f, err := set.get([]string{band})
				if err != nil {
					return err
				}
				lam, flux, err := m.BandSpectrum(f[0], p, tobs)
				if err != nil {
					return err
				}
				for i := range lam {
					fmt.Fprintf(out, "%9.1f %12.5e\n", lam[i], flux[i])
				}
				return nil
			}

			lo, _ := fl.GetFloat64("lam-min")
			hi, _ := fl.GetFloat64("lam-max")
			step, _ := fl.GetFloat64("lam-step")
			zp, _ := fl.GetFloat64("zp")
			bins, err := specBins(lo, hi, step, zp)
			if err != nil {
				return err
			}
			flux, mags, err := m.ComputeSpectrum(p, tobs, bins)
			if err != nil {
				return err
			}
			for i, b := range bins {
				fmt.Fprintf(out, "%9.1f %9.1f %12.5e %9.4f\n", b.LamMin, b.LamMax, flux[i], mags[i])
			}

			return nil
		},
	}
	fs := cmd.Flags()
	fs.Float64("tobs", 0, "observer-frame phase (days)")
	fs.String("band", "", "print the spectrum through this band instead of spectrograph bins")
	fs.Float64("lam-min", 3000, "first bin edge (A)")
	fs.Float64("lam-max", 9000, "last bin edge (A)")
	fs.Float64("lam-step", 100, "bin width (A)")
	fs.Float64("zp", 0, "zero point of every bin; <= 0 prints no magnitudes")
	addParamFlags(cmd)

	return cmd
}

// specBins splits [lo, hi] into bins of width step.
func specBins(lo, hi, step, zp float64) ([]photometry.SpecBin, error) {
	if !(step > 0) || !(hi > lo) {
		return nil, fmt.Errorf("saltmag: bad spectrograph binning %g..%g step %g", lo, hi, step)
	}
	var bins []photometry.SpecBin
	for k := 0; ; k++ {
		a := lo + float64(k)*step
		if a+step > hi+1e-9 {
			break
		}
		bins = append(bins, photometry.SpecBin{LamMin: a, LamMax: a + step, ZP: zp})
	}

	return bins, nil
}
