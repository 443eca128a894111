// Package catalog registers every sub-model constructor of the resonance
// cross-section code on an algo.Factory.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sawpanic/resxsec/internal/algo"
	"github.com/sawpanic/resxsec/internal/baryonres"
	"github.com/sawpanic/resxsec/internal/breitwigner"
	"github.com/sawpanic/resxsec/internal/config"
	"github.com/sawpanic/resxsec/internal/helicity"
)

// Resonance data set sub-model names
const (
	DataSetPDG  = "BaryonResDataPDG"
	DataSetFile = "BaryonResDataFile"
	DataSetSQL  = "BaryonResDataSQL"
)

// Keys a Breit-Wigner set uses to name its data set
const (
	KeyDataSetAlg = "baryonres-dataset-alg-name"
	KeyDataSetSet = "baryonres-dataset-param-set"
)

const defaultQueryTimeout = 5 * time.Second

// Options carries the external resources some constructors need
type Options struct {
	// DB backs BaryonResDataSQL; nil leaves that data set unavailable
	DB *sqlx.DB
	// DataFile overrides the path of BaryonResDataFile sets
	DataFile string
}

// NewFactory returns a factory over pool with every constructor registered
func NewFactory(pool *config.Pool, opts Options) *algo.Factory {
	f := algo.NewFactory(pool)
	Register(f, opts)
	return f
}

// Register binds all constructors to f
func Register(f *algo.Factory, opts Options) {
	f.Register(DataSetPDG, func(algo.Environment, *config.Registry) (any, error) {
		return baryonres.PDGTable(), nil
	})

	f.Register(DataSetFile, func(_ algo.Environment, cfg *config.Registry) (any, error) {
		path := opts.DataFile
		if path == "" {
			var err error
			if path, err = cfg.GetStringDef("path", ""); err != nil {
				return nil, err
			}
		}
		if path == "" {
			return nil, fmt.Errorf("%s needs a path", DataSetFile)
		}
		return baryonres.LoadTableFile(path)
	})

	f.Register(DataSetSQL, func(_ algo.Environment, cfg *config.Registry) (any, error) {
		if opts.DB == nil {
			return nil, fmt.Errorf("%s needs a database connection", DataSetSQL)
		}
		secs, err := cfg.GetDoubleDef("query-timeout-seconds", defaultQueryTimeout.Seconds())
		if err != nil {
			return nil, err
		}
		return baryonres.LoadSQLTable(context.Background(), opts.DB, time.Duration(secs*float64(time.Second)))
	})

	f.Register(breitwigner.AlgFixed, func(env algo.Environment, cfg *config.Registry) (any, error) {
		ds, err := algo.SubAlg[baryonres.DataSet](env, cfg, KeyDataSetAlg, KeyDataSetSet)
		if err != nil {
			return nil, err
		}
		return breitwigner.NewFixed(ds)
	})

	f.Register(breitwigner.AlgLDependent, func(env algo.Environment, cfg *config.Registry) (any, error) {
		ds, err := algo.SubAlg[baryonres.DataSet](env, cfg, KeyDataSetAlg, KeyDataSetSet)
		if err != nil {
			return nil, err
		}
		return breitwigner.NewLDependent(ds)
	})

	for _, v := range helicity.Variants {
		v := v
		f.Register(v.AlgName(), func(algo.Environment, *config.Registry) (any, error) {
			return helicity.New(v)
		})
	}
}
