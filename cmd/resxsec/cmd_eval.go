package main

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/sawpanic/resxsec/internal/interaction"
	"github.com/sawpanic/resxsec/internal/kinematics"
	"github.com/sawpanic/resxsec/internal/pdg"
)

func newEvalCmd(opts *rootOptions) *cobra.Command {
	var (
		req     interaction.Request
		kpsName string
		explain bool
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate the differential cross section at one point",
		Long: `Evaluate d2sigma/dWdQ2 at one (E, W, Q2) point. --kps selects the phase space
whose Jacobian is reported by --explain; the printed cross section stays in
(W, Q2). --explain prints every intermediate value as JSON.`,
		Example: `  resxsec eval --E 1.5 --W 1.23 --q2 0.4
  resxsec eval --probe -14 --Z 6 --N 6 --nucleon 2112 --res D13_1520 --explain`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kps, err := kinematics.ParsePhaseSpace(kpsName)
			if err != nil {
				return err
			}
			in, err := req.Build()
			if err != nil {
				return err
			}
			x, cleanup, err := opts.evaluator(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if explain {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(x.Explain(in, kps)); err != nil {
					return fmt.Errorf("trace is not representable as JSON (rerun without --skip-kine?): %w", err)
				}
				return nil
			}

			v := x.XSec(in, kps)
			fmt.Fprintf(out, "interaction : %s\n", in)
			fmt.Fprintf(out, "parameters  : %s\n", x.Parameters().ParamSet)
			fmt.Fprintf(out, "phase space : %s\n", kps)
			fmt.Fprintf(out, "xsec        : %.6e (natural units)\n", v)
			fmt.Fprintf(out, "xsec        : %.6e cm2/GeV^2\n", pdg.ToCm2(v))
			if math.IsNaN(v) {
				return fmt.Errorf("cross section is NaN: the point is outside the physical region")
			}
			return nil
		},
	}

	fs := cmd.Flags()
	addInteractionFlags(fs, &req)
	fs.Float64Var(&req.W, "W", req.W, "Hadronic invariant mass in GeV")
	fs.Float64Var(&req.Q2, "q2", req.Q2, "Momentum transfer Q2 = -q2 in GeV^2")
	fs.StringVar(&kpsName, "kps", kinematics.WQ2fE.String(), "Phase space (WQ2fE|xyfE|WlogQ2fE)")
	fs.BoolVar(&explain, "explain", false, "Print the evaluation trace as JSON")
	return cmd
}
