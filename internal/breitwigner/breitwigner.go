// Package breitwigner weights resonance cross sections with a Breit-Wigner
// line shape in the hadronic invariant mass W.
//
// Both weighters return a density in W normalised by the data set's
// Breit-Wigner norm. A data set that carries no norm (zero) gets one computed
// numerically over NormRange when the weighter is built, so each weighter is
// immutable after construction and safe for concurrent use.
package breitwigner

import (
	"fmt"
	"math"

	"github.com/sawpanic/resxsec/internal/baryonres"
	"github.com/sawpanic/resxsec/internal/pdg"
	"github.com/sawpanic/resxsec/internal/quad"
)

// Registered sub-model names
const (
	AlgFixed      = "BreitWignerRes"
	AlgLDependent = "BreitWignerLRes"
)

// NormRange is the W window, in GeV, over which missing norms are computed
var NormRange = [2]float64{pdg.NucleonMass + pdg.PionMass, 5.0}

const (
	normPanels = 240
	normOrder  = 12
)

// Weighter evaluates the Breit-Wigner weight of a resonance at W
type Weighter interface {
	Eval(res baryonres.Resonance, W float64) float64
}

type line struct {
	mass  float64
	width float64
	norm  float64
	l     int
}

type shape func(ln line, W float64) float64

type weighter struct {
	lines map[baryonres.Resonance]line
	shape shape
}

// Fixed is the relativistic Breit-Wigner with a constant width
type Fixed struct{ weighter }

// LDependent is the Breit-Wigner whose width runs with the pion momentum in
// the resonance rest frame as (q*(W)/q*(M))^(2L+1). It vanishes below the
// pion production threshold.
type LDependent struct{ weighter }

// NewFixed builds a fixed-width weighter over every resonance in ds
func NewFixed(ds baryonres.DataSet) (*Fixed, error) {
	w, err := build(AlgFixed, ds, fixedShape)
	if err != nil {
		return nil, err
	}
	return &Fixed{w}, nil
}

// NewLDependent builds an L-dependent-width weighter over every resonance in ds
func NewLDependent(ds baryonres.DataSet) (*LDependent, error) {
	w, err := build(AlgLDependent, ds, lDependentShape)
	if err != nil {
		return nil, err
	}
	return &LDependent{w}, nil
}

func build(name string, ds baryonres.DataSet, f shape) (weighter, error) {
	if ds == nil {
		return weighter{}, fmt.Errorf("%s: no resonance data set", name)
	}
	provider := baryonres.NewProvider(ds)
	w := weighter{lines: make(map[baryonres.Resonance]line), shape: f}
	for _, res := range baryonres.All() {
		p, err := provider.Retrieve(res)
		if err != nil {
			// data sets may carry a subset of the resonances
			continue
		}
		ln := line{mass: p.Mass, width: p.Width, norm: p.Norm, l: p.L}
		if ln.norm == 0 {
			ln.norm = integrate(f, ln)
		}
		if !(ln.norm > 0) {
			return weighter{}, fmt.Errorf("%s: resonance %s has non-positive norm %g", name, res, ln.norm)
		}
		w.lines[res] = ln
	}
	if len(w.lines) == 0 {
		return weighter{}, fmt.Errorf("%s: data set holds no resonances", name)
	}
	return w, nil
}

// Eval implements Weighter. Resonances missing from the data set weigh 0.
func (w weighter) Eval(res baryonres.Resonance, W float64) float64 {
	ln, ok := w.lines[res]
	if !ok {
		return 0
	}
	return w.shape(ln, W) / ln.norm
}

// Norm returns the norm applied to res and whether res is known
func (w weighter) Norm(res baryonres.Resonance) (float64, bool) {
	ln, ok := w.lines[res]
	return ln.norm, ok
}

func fixedShape(ln line, W float64) float64 {
	m2 := ln.mass * ln.mass
	mg := ln.mass * ln.width
	d := W*W - m2
	return (2 * W / math.Pi) * mg / (d*d + mg*mg)
}

func lDependentShape(ln line, W float64) float64 {
	qW := pionMomentum(W)
	if qW <= 0 {
		return 0
	}
	qM := pionMomentum(ln.mass)
	if qM <= 0 {
		return 0
	}
	g := ln.width * math.Pow(qW/qM, float64(2*ln.l+1))
	d := W - ln.mass
	return (0.5 * g / math.Pi) / (d*d + 0.25*g*g)
}

// pionMomentum is the pion momentum in the rest frame of an N-pi system of mass W
func pionMomentum(W float64) float64 {
	mN, mPi := pdg.NucleonMass, pdg.PionMass
	W2 := W * W
	q2 := (W2 - (mN+mPi)*(mN+mPi)) * (W2 - (mN-mPi)*(mN-mPi)) / (4 * W2)
	if q2 <= 0 {
		return 0
	}
	return math.Sqrt(q2)
}

func integrate(f shape, ln line) float64 {
	return quad.Legendre(normOrder, normPanels).
		Integrate(func(W float64) float64 { return f(ln, W) }, NormRange[0], NormRange[1])
}
