// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/katalvlaran/saltmag/salt2"
	"github.com/spf13/cobra"
)

func newMagCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mag",
		Short: "Print model magnitudes and errors per band and phase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bands, _ := cmd.Flags().GetStringSlice("band")
			tobs, _ := cmd.Flags().GetFloat64Slice("tobs")
			opt, _ := cmd.Flags().GetInt("opt")

			m, err := a.model()
			if err != nil {
				return err
			}
			set, err := a.filters()
			if err != nil {
				return err
			}
			if len(bands) == 0 {
				bands = set.order
			}
			filters, err := set.get(bands)
			if err != nil {
				return err
			}

			p := paramsFrom(cmd)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# x0=%.6g  mB=%.4f  z=%g  x1=%g  c=%g\n", p.X0, salt2.MBCalc(p.X0), p.Z, p.X1, p.C)
			fmt.Fprintf(out, "# %-6s %9s %10s %9s\n", "band", "Tobs", "mag", "magerr")
			for _, f := range filters {
				mags, errs, err := m.ComputeMagnitude(opt, f, p, tobs)
				if err != nil {
					return err
				}
				for i := range tobs {
					fmt.Fprintf(out, "  %-6s %9.3f %10.4f %9.4f\n", f.Name, tobs[i], mags[i], errs[i])
				}
			}

			return nil
		},
	}
	cmd.Flags().StringSlice("band", nil, "bands to evaluate (default: every filter in the file)")
	cmd.Flags().Float64Slice("tobs", []float64{-10, 0, 10, 20, 40}, "observer-frame phases (days)")
	cmd.Flags().Int("opt", 0, "option bits: 1 flux, 2 warn on bad flux, 4 no errors, 8 debug dump")
	addParamFlags(cmd)

	return cmd
}
