package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sawpanic/resxsec/internal/baryonres"
	"github.com/sawpanic/resxsec/internal/cache"
	"github.com/sawpanic/resxsec/internal/integrate"
	"github.com/sawpanic/resxsec/internal/interaction"
	"github.com/sawpanic/resxsec/internal/metrics"
	"github.com/sawpanic/resxsec/internal/pdg"
)

func newScanCmd(opts *rootOptions) *cobra.Command {
	var (
		req      interaction.Request
		emin     float64
		emax     float64
		steps    int
		all      bool
		workers  int
		cacheTTL time.Duration
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Integrate total cross sections over an energy grid",
		Long: `Integrate d2sigma/dWdQ2 over the physical W and Q2 region at every energy of
a linear grid. Points are computed concurrently and memoised in Redis when
REDIS_ADDR is set, in memory otherwise.`,
		Example: `  resxsec scan --emin 0.5 --emax 5 --steps 10
  resxsec scan --all --Z 8 --N 8 --nucleon 2112 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			energies, err := energyGrid(emin, emax, steps)
			if err != nil {
				return err
			}
			template, err := req.Build()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			m := metrics.NewRegistry()
			x, cleanup, err := opts.evaluator(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			params := x.Parameters()
			ns := opts.namespace(params)
			scanner := integrate.NewScanner(
				integrate.NewIntegrator(x, integrate.WithWcut(params.Wcut)),
				integrate.WithWorkers(workers),
				integrate.WithCache(cache.NewAuto(), cacheTTL, ns),
				integrate.WithCacheObserver(m),
			)

			resonances := []baryonres.Resonance{template.Exclusive.Resonance}
			if all {
				resonances = baryonres.All()
			}

			start := time.Now()
			byRes, err := scanner.ScanResonances(ctx, template, resonances, energies)
			if err != nil {
				return err
			}
			hits, misses := m.CacheCounts()
			log.Info().
				Int("points", len(energies)*len(resonances)).
				Float64("cache_hits", hits).
				Float64("cache_misses", misses).
				Dur("took", time.Since(start)).
				Msg("Scan complete")

			if asJSON {
				rows := make([][]integrate.Point, 0, len(resonances))
				for _, res := range resonances {
					rows = append(rows, byRes[res])
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			return printScan(cmd, resonances, energies, byRes)
		},
	}

	fs := cmd.Flags()
	addInteractionFlags(fs, &req)
	fs.Float64Var(&emin, "emin", 0.5, "Lowest probe energy in GeV")
	fs.Float64Var(&emax, "emax", 5.0, "Highest probe energy in GeV")
	fs.IntVar(&steps, "steps", 10, "Number of energies")
	fs.BoolVar(&all, "all", false, "Scan every resonance and print the sum")
	fs.IntVar(&workers, "workers", 4, "Concurrent integrations")
	fs.DurationVar(&cacheTTL, "cache-ttl", time.Hour, "Result cache lifetime")
	fs.BoolVar(&asJSON, "json", false, "Print points as JSON")
	return cmd
}

func printScan(cmd *cobra.Command, resonances []baryonres.Resonance, energies []float64, byRes map[baryonres.Resonance][]integrate.Point) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "E [GeV]\t")
	for _, res := range resonances {
		fmt.Fprintf(tw, "%s\t", res)
	}
	if len(resonances) > 1 {
		fmt.Fprint(tw, "sum\t")
	}
	fmt.Fprintln(tw)

	sum := integrate.SumResonances(byRes, resonances)
	for i, E := range energies {
		fmt.Fprintf(tw, "%.3f\t", E)
		for _, res := range resonances {
			fmt.Fprintf(tw, "%.4e\t", pdg.ToCm2(byRes[res][i].Sigma))
		}
		if len(resonances) > 1 {
			fmt.Fprintf(tw, "%.4e\t", pdg.ToCm2(sum[i]))
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprintln(tw, "(sigma in cm2)")
	return tw.Flush()
}

// energyGrid returns steps energies evenly spaced on [emin, emax]
func energyGrid(emin, emax float64, steps int) ([]float64, error) {
	switch {
	case steps < 1:
		return nil, fmt.Errorf("--steps must be at least 1, got %d", steps)
	case emin <= 0 || emax < emin:
		return nil, fmt.Errorf("invalid energy range [%g, %g]", emin, emax)
	case steps == 1:
		return []float64{emin}, nil
	}
	out := make([]float64, steps)
	step := (emax - emin) / float64(steps-1)
	for i := range out {
		out[i] = emin + float64(i)*step
	}
	out[steps-1] = emax
	return out, nil
}
