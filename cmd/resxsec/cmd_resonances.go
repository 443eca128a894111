package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sawpanic/resxsec/internal/algo"
	"github.com/sawpanic/resxsec/internal/baryonres"
	"github.com/sawpanic/resxsec/internal/breitwigner"
	"github.com/sawpanic/resxsec/internal/catalog"
)

func newResonancesCmd(opts *rootOptions) *cobra.Command {
	var dataSet, dataSetParams string

	cmd := &cobra.Command{
		Use:   "resonances",
		Short: "List the resonances of a data set with their Breit-Wigner norms",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, cleanup, err := opts.environment(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			ds, err := algo.Get[baryonres.DataSet](env, algo.ID{Name: dataSet, ParamSet: dataSetParams})
			if err != nil {
				return err
			}
			fixed, err := breitwigner.NewFixed(ds)
			if err != nil {
				return err
			}
			ldep, err := breitwigner.NewLDependent(ds)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "resonance\tmass\twidth\tL\t2I\tindex\tnorm(fixed)\tnorm(L-dep)")
			for _, res := range baryonres.All() {
				rec, err := ds.Lookup(res)
				if err != nil {
					fmt.Fprintf(tw, "%s\t-\t-\t%d\t%d\t-\t-\t-\n", res, res.OrbitalAngularMom(), res.Isospin())
					continue
				}
				nf, _ := fixed.Norm(res)
				nl, _ := ldep.Norm(res)
				fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%d\t%d\t%d\t%.5f\t%.5f\n",
					res, rec.Mass, rec.Width, res.OrbitalAngularMom(), res.Isospin(), rec.Index, nf, nl)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&dataSet, "dataset", catalog.DataSetPDG, "Data set sub-model ("+
		catalog.DataSetPDG+"|"+catalog.DataSetFile+"|"+catalog.DataSetSQL+")")
	cmd.Flags().StringVar(&dataSetParams, "dataset-params", algo.DefaultParamSet, "Data set parameter set")
	return cmd
}
