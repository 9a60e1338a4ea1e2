// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCovarCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "covar",
		Short: "Print the model covariance (mag^2) of paired --band/--tobs epochs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bands, _ := cmd.Flags().GetStringSlice("band")
			tobs, _ := cmd.Flags().GetFloat64Slice("tobs")

			m, err := a.model()
			if err != nil {
				return err
			}
			set, err := a.filters()
			if err != nil {
				return err
			}
			filters, err := set.get(bands)
			if err != nil {
				return err
			}
			cov, err := m.ComputeCovariance(filters, tobs, paramsFrom(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			n := len(tobs)
			for i := 0; i < n; i++ {
				row := make([]string, n)
				for j := range row {
					row[j] = fmt.Sprintf("%11.4e", cov[i*n+j])
				}
				fmt.Fprintf(out, "%-6s %8.2f  %s\n", bands[i], tobs[i], strings.Join(row, " "))
			}

			return nil
		},
	}
	cmd.Flags().StringSlice("band", nil, "band of each epoch")
	cmd.Flags().Float64Slice("tobs", nil, "observer-frame phase of each epoch (days)")
	addParamFlags(cmd)

	return cmd
}
