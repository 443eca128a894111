// Package xsec implements the Rein-Sehgal differential cross section
// d2sigma/dWdQ2 for neutrino and antineutrino production of a single baryon
// resonance on a nucleon, optionally weighted by a Breit-Wigner line shape.
//
// A RESPXSec is configured once from a parameter registry and a sub-model
// environment, then evaluated any number of times, concurrently if needed.
// Reconfiguration swaps in a complete new settings snapshot; an evaluation
// sees either the old or the new one, never a mix.
package xsec

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sawpanic/resxsec/internal/algo"
	"github.com/sawpanic/resxsec/internal/baryonres"
	"github.com/sawpanic/resxsec/internal/breitwigner"
	"github.com/sawpanic/resxsec/internal/config"
	"github.com/sawpanic/resxsec/internal/fkr"
	"github.com/sawpanic/resxsec/internal/helicity"
	"github.com/sawpanic/resxsec/internal/kinematics"
)

// AlgName is the name the evaluator's parameter sets are stored under
const AlgName = "ReinSehgalRESPXSec"

// Configuration keys; the first of each pair is read from the evaluator's own
// set and the second from the global parameter list
const (
	KeyZeta          = "Zeta"
	GlobalZeta       = "RS-Zeta"
	KeyOmega         = "Omega"
	GlobalOmega      = "RS-Omega"
	KeyMa            = "Ma"
	GlobalMa         = "RES-Ma"
	KeyMv            = "Mv"
	GlobalMv         = "RES-Mv"
	KeyWeinbergAngle = "weinberg-angle"
	GlobalWeinberg   = "WeinbergAngle"
	KeyWcut          = "Wcut"

	KeyWeightBW = "weight-with-breit-wigner"
	KeyJoinDIS  = "use-dis-res-joining-scheme"

	KeyDataSetAlg = "baryonres-dataset-alg-name"
	KeyDataSetSet = "baryonres-dataset-param-set"
	KeyBWAlg      = "breit-wigner-alg-name"
	KeyBWSet      = "breit-wigner-param-set"
)

// NoJoinWcut is the cut in force when the DIS/RES joining scheme is off
const NoJoinWcut = 999999.

// FormFactorCalculator computes the FKR bundle at one kinematic point
type FormFactorCalculator interface {
	Calculate(q2, W, mN float64, nresidx int) fkr.Params
}

// Gate names the check that zeroed an evaluation
type Gate string

const (
	GateNone          Gate = ""
	GateProcess       Gate = "process"
	GateJoin          Gate = "dis-res-join"
	GateThreshold     Gate = "energy-threshold"
	GateKinematics    Gate = "kinematic-limits"
	GateResonanceData Gate = "resonance-data"
)

// Observer is told about every evaluation outcome
type Observer interface {
	Rejected(gate Gate)
	Evaluated(channel string, took time.Duration)
}

// Parameters is the resolved configuration of an evaluator
type Parameters struct {
	ParamSet string            `json:"param_set"`
	FKR      fkr.Config        `json:"fkr"`
	WeightBW bool              `json:"weight_with_breit_wigner"`
	JoinDIS  bool              `json:"use_dis_res_joining_scheme"`
	Wcut     float64           `json:"wcut"`
	DataSet  baryonres.DataSet `json:"-"`
	// Resolved sub-model ids; BreitWigner is zero when weighting is off
	DataSetID   algo.ID `json:"dataset"`
	BreitWigner algo.ID `json:"breit_wigner"`
}

// settings is the immutable snapshot an evaluation reads
type settings struct {
	params   Parameters
	ff       FormFactorCalculator
	provider baryonres.Provider
	models   [len(helicity.Variants)]helicity.Model
	bw       breitwigner.Weighter
}

// Option customises a RESPXSec
type Option func(*RESPXSec)

// WithLimits replaces the kinematic limits used by the kinematics gate
func WithLimits(l kinematics.Limits) Option {
	return func(x *RESPXSec) { x.limits = l }
}

// WithJacobian replaces the phase-space Jacobian
func WithJacobian(j kinematics.JacobianFunc) Option {
	return func(x *RESPXSec) { x.jacobian = j }
}

// WithFormFactorCalculator replaces how the FKR calculator is built from the
// configured constants
func WithFormFactorCalculator(build func(fkr.Config) FormFactorCalculator) Option {
	return func(x *RESPXSec) { x.newFF = build }
}

// WithObserver attaches an observer, typically the metrics collector
func WithObserver(o Observer) Option {
	return func(x *RESPXSec) { x.observer = o }
}

// RESPXSec is the Rein-Sehgal resonance cross-section evaluator
type RESPXSec struct {
	limits   kinematics.Limits
	jacobian kinematics.JacobianFunc
	newFF    func(fkr.Config) FormFactorCalculator
	observer Observer

	cur atomic.Pointer[settings]
}

// New returns an unconfigured evaluator
func New(opts ...Option) *RESPXSec {
	x := &RESPXSec{
		limits:   kinematics.Standard{},
		jacobian: kinematics.Jacobian,
		newFF:    func(c fkr.Config) FormFactorCalculator { return fkr.New(c) },
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Configure loads the settings from reg, falling back to env's global list,
// and resolves the sub-models through env. On error the evaluator keeps its
// previous settings.
func (x *RESPXSec) Configure(reg *config.Registry, env algo.Environment) error {
	s, err := x.load(reg, env)
	if err != nil {
		return fmt.Errorf("configure %s: %w", AlgName, err)
	}
	x.cur.Store(s)
	log.Debug().
		Str("param_set", s.params.ParamSet).
		Bool("breit_wigner", s.params.WeightBW).
		Bool("dis_res_join", s.params.JoinDIS).
		Float64("wcut", s.params.Wcut).
		Msg("Resonance cross section configured")
	return nil
}

// ConfigureNamed configures from the named parameter set of AlgName
func (x *RESPXSec) ConfigureNamed(paramSet string, env algo.Environment) error {
	reg, err := env.ConfigSet(algo.ID{Name: AlgName, ParamSet: paramSet})
	if err != nil {
		return fmt.Errorf("configure %s: %w", AlgName, err)
	}
	return x.Configure(reg, env)
}

// MustConfigure is Configure that panics on error
func (x *RESPXSec) MustConfigure(reg *config.Registry, env algo.Environment) {
	if err := x.Configure(reg, env); err != nil {
		panic(err)
	}
}

// Configured reports whether a configuration has been loaded
func (x *RESPXSec) Configured() bool { return x.cur.Load() != nil }

// Parameters returns the loaded configuration
func (x *RESPXSec) Parameters() Parameters {
	return x.mustSettings().params
}

func (x *RESPXSec) mustSettings() *settings {
	s := x.cur.Load()
	if s == nil {
		panic(AlgName + " used before Configure")
	}
	return s
}

func (x *RESPXSec) load(reg *config.Registry, env algo.Environment) (*settings, error) {
	if reg == nil {
		reg = config.NewRegistry(AlgName)
	}
	l := config.Lookup{Local: reg, Global: env.GlobalConfig()}

	var c fkr.Config
	var err error
	for _, k := range []struct {
		dst           *float64
		local, global string
	}{
		{&c.Zeta, KeyZeta, GlobalZeta},
		{&c.Omega, KeyOmega, GlobalOmega},
		{&c.Ma, KeyMa, GlobalMa},
		{&c.Mv, KeyMv, GlobalMv},
		{&c.WeinbergAngle, KeyWeinbergAngle, GlobalWeinberg},
	} {
		if *k.dst, err = l.Double(k.local, k.global); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	s := &settings{params: Parameters{ParamSet: reg.Name(), FKR: c, Wcut: NoJoinWcut}}
	s.ff = x.newFF(c)

	if s.params.WeightBW, err = l.Bool(KeyWeightBW, true); err != nil {
		return nil, err
	}
	if s.params.JoinDIS, err = l.Bool(KeyJoinDIS, false); err != nil {
		return nil, err
	}
	if s.params.JoinDIS {
		if s.params.Wcut, err = l.Double(KeyWcut, KeyWcut); err != nil {
			return nil, err
		}
	}

	dsID, ds, err := algo.SubAlgID[baryonres.DataSet](env, reg, KeyDataSetAlg, KeyDataSetSet)
	if err != nil {
		return nil, fmt.Errorf("resonance data set: %w", err)
	}
	s.params.DataSet, s.params.DataSetID = ds, dsID
	s.provider = baryonres.NewProvider(ds)

	for _, v := range helicity.Variants {
		m, err := algo.Get[helicity.Model](env, algo.ID{Name: v.AlgName(), ParamSet: algo.DefaultParamSet})
		if err != nil {
			return nil, fmt.Errorf("helicity amplitude model %s: %w", v, err)
		}
		s.models[v] = m
	}

	if s.params.WeightBW {
		s.params.BreitWigner, s.bw, err = algo.SubAlgID[breitwigner.Weighter](env, reg, KeyBWAlg, KeyBWSet)
		if err != nil {
			return nil, fmt.Errorf("breit-wigner: %w", err)
		}
	}
	return s, nil
}
