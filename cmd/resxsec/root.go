package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sawpanic/resxsec/internal/algo"
	"github.com/sawpanic/resxsec/internal/baryonres"
	"github.com/sawpanic/resxsec/internal/catalog"
	"github.com/sawpanic/resxsec/internal/config"
	"github.com/sawpanic/resxsec/internal/interaction"
	"github.com/sawpanic/resxsec/internal/xsec"
)

// rootOptions are the persistent flags shared by every command
type rootOptions struct {
	configPath string
	overrides  map[string]string
	logLevel   string
	dsn        string
	dataFile   string
	paramSet   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Rein-Sehgal baryon resonance cross sections",
		Version: version,
		Long: `resxsec evaluates the Rein-Sehgal differential cross section d2sigma/dWdQ2
for (anti)neutrino production of baryon resonances on nucleons and nuclei.

Parameters come from the built-in defaults or --config, with --set overriding
entries of the global parameter list.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", opts.logLevel, err)
			}
			zerolog.SetGlobalLevel(level)
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Parameter pool YAML (default: built-in)")
	pf.StringToStringVar(&opts.overrides, "set", nil, "Override global parameters, e.g. --set RES-Ma=1.1")
	pf.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	pf.StringVar(&opts.dsn, "dataset-dsn", "", "PostgreSQL DSN backing the BaryonResDataSQL data set")
	pf.StringVar(&opts.dataFile, "dataset-file", "", "YAML table backing the BaryonResDataFile data set")
	pf.StringVar(&opts.paramSet, "param-set", algo.DefaultParamSet, "Parameter set of "+xsec.AlgName)

	rootCmd.AddCommand(newEvalCmd(opts))
	rootCmd.AddCommand(newScanCmd(opts))
	rootCmd.AddCommand(newResonancesCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))
	return rootCmd
}

// pool loads and validates the parameter pool with overrides applied
func (o *rootOptions) pool() (*config.Pool, error) {
	var (
		pool *config.Pool
		err  error
	)
	if o.configPath != "" {
		pool, err = config.LoadPool(o.configPath)
	} else {
		pool, err = config.DefaultPool()
	}
	if err != nil {
		return nil, err
	}
	pool.Override(o.overrides)
	if err := pool.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	return pool, nil
}

// environment builds the sub-model factory. The returned cleanup closes the
// database connection, if one was opened.
func (o *rootOptions) environment(ctx context.Context) (*algo.Factory, func(), error) {
	pool, err := o.pool()
	if err != nil {
		return nil, nil, err
	}

	var db *sqlx.DB
	cleanup := func() {}
	if o.dsn != "" {
		cfg := baryonres.DefaultDBConfig()
		cfg.DSN = o.dsn
		if db, err = baryonres.OpenDB(ctx, cfg); err != nil {
			return nil, nil, err
		}
		cleanup = func() { db.Close() }
	}

	env := catalog.NewFactory(pool, catalog.Options{DB: db, DataFile: o.dataFile})
	log.Debug().Strs("sub_models", env.Registered()).Msg("Sub-model catalog ready")
	return env, cleanup, nil
}

// evaluator returns a configured evaluator for the selected parameter set
func (o *rootOptions) evaluator(ctx context.Context, xopts ...xsec.Option) (*xsec.RESPXSec, func(), error) {
	env, cleanup, err := o.environment(ctx)
	if err != nil {
		return nil, nil, err
	}
	x := xsec.New(xopts...)
	if err := x.ConfigureNamed(o.paramSet, env); err != nil {
		cleanup()
		return nil, nil, err
	}
	log.Debug().Str("param_set", x.Parameters().ParamSet).Msg("Evaluator ready")
	return x, cleanup, nil
}

// addInteractionFlags binds the interaction description to fs
func addInteractionFlags(fs *pflag.FlagSet, r *interaction.Request) {
	*r = interaction.DefaultRequest()
	fs.IntVar(&r.Probe, "probe", r.Probe, "Probe PDG code (12, 14, 16 or negative for antineutrinos)")
	fs.IntVar(&r.Z, "Z", r.Z, "Target protons (0 with --N 0 means a free nucleon)")
	fs.IntVar(&r.N, "N", r.N, "Target neutrons")
	fs.IntVar(&r.Nucleon, "nucleon", r.Nucleon, "Struck nucleon PDG code (2212 or 2112)")
	fs.BoolVar(&r.NeutralCurrent, "nc", r.NeutralCurrent, "Neutral current instead of charged current")
	fs.StringVar(&r.Resonance, "res", r.Resonance, "Resonance, e.g. P33(1232) or s11_1535")
	fs.Float64Var(&r.E, "E", r.E, "Probe energy in GeV")
	fs.BoolVar(&r.FreeNucleon, "free-nucleon", r.FreeNucleon, "Return the per-nucleon cross section")
	fs.BoolVar(&r.SkipProcess, "skip-process", r.SkipProcess, "Skip the process validity check")
	fs.BoolVar(&r.SkipKinematics, "skip-kine", r.SkipKinematics, "Skip the kinematic limits check")
}

// namespace identifies everything besides the interaction that changes an
// integrated cross section, for cache keys. The config file contributes its
// contents, so an edited file at the same path gets fresh keys.
func (o *rootOptions) namespace(p xsec.Parameters) string {
	overrides := make([]string, 0, len(o.overrides))
	for k, v := range o.overrides {
		overrides = append(overrides, k+"="+v)
	}
	sort.Strings(overrides)

	source := "builtin"
	if o.configPath != "" {
		source = o.configPath
		if raw, err := os.ReadFile(o.configPath); err == nil {
			source += "\x00" + string(raw)
		}
	}
	return strings.Join([]string{
		p.ParamSet,
		fmt.Sprintf("%g/%g/%g/%g/%g", p.FKR.Zeta, p.FKR.Omega, p.FKR.Ma, p.FKR.Mv, p.FKR.WeinbergAngle),
		fmt.Sprintf("bw=%t/join=%t/wcut=%g", p.WeightBW, p.JoinDIS, p.Wcut),
		"dataset=" + p.DataSetID.String(),
		"breit-wigner=" + p.BreitWigner.String(),
		"config=" + source,
		"set=" + strings.Join(overrides, ","),
		"file=" + o.dataFile,
		"dsn=" + o.dsn,
	}, "|")
}
