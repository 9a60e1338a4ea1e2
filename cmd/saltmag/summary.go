// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/katalvlaran/saltmag/salt2"
	"github.com/spf13/cobra"
)

func newSummaryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the effective model configuration and the error summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lams, _ := cmd.Flags().GetFloat64Slice("lam")
			if len(lams) == 0 {
				lams = salt2.DefaultSummaryLams()
			}
			m, err := a.model()
			if err != nil {
				return err
			}
			y, err := m.Info().YAML()
			if err != nil {
				return err
			}
			rows, err := m.Summary(lams)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# model: %s (prefix %s)\n%s\n", m.Dir(), m.Variant().Prefix, y)
			fmt.Fprintln(out, "                               peak     color")
			fmt.Fprintln(out, "            LAMBDA(A)  e^CL    dS0/S0   disp")
			for _, r := range rows {
				fmt.Fprintln(out, "  "+r.String())
			}
			if lt := m.LateTime(); lt != nil {
				fmt.Fprintf(out, "# late-time model %s from day %g, %d wavelength rows\n", lt.Path, lt.DayMin, len(lt.Rows))
			}

			return nil
		},
	}
	cmd.Flags().Float64Slice("lam", nil, "wavelengths (A); default is the standard list")

	return cmd
}
