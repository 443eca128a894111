// Package helicity holds the Rein-Sehgal helicity amplitude models.
//
// Each model maps a resonance and an FKR bundle onto the six real helicity
// amplitudes. There are exactly three variants: charged current, and neutral
// current on a proton or on a neutron. Choose implements the decision table
// that picks one of them.
package helicity

import (
	"fmt"

	"github.com/sawpanic/resxsec/internal/baryonres"
	"github.com/sawpanic/resxsec/internal/fkr"
)

// Amplitudes is the six-component helicity amplitude bundle
type Amplitudes struct {
	Minus1    float64
	Plus1     float64
	Minus3    float64
	Plus3     float64
	ZeroMinus float64
	ZeroPlus  float64
}

// Scale multiplies every component by f
func (a Amplitudes) Scale(f float64) Amplitudes {
	return Amplitudes{
		Minus1:    f * a.Minus1,
		Plus1:     f * a.Plus1,
		Minus3:    f * a.Minus3,
		Plus3:     f * a.Plus3,
		ZeroMinus: f * a.ZeroMinus,
		ZeroPlus:  f * a.ZeroPlus,
	}
}

// String renders the bundle for debug logging
func (a Amplitudes) String() string {
	return fmt.Sprintf("A(-1)=%.5g A(+1)=%.5g A(-3)=%.5g A(+3)=%.5g A(0-)=%.5g A(0+)=%.5g",
		a.Minus1, a.Plus1, a.Minus3, a.Plus3, a.ZeroMinus, a.ZeroPlus)
}

// Model computes helicity amplitudes for one interaction channel
type Model interface {
	Compute(res baryonres.Resonance, p fkr.Params) Amplitudes
}

// Variant names one of the three amplitude models
type Variant int

const (
	VariantCC Variant = iota
	VariantNCp
	VariantNCn
)

// Variants lists every variant in decision-table order
var Variants = [...]Variant{VariantCC, VariantNCp, VariantNCn}

// Choose is the static decision table: charged current uses CC, neutral
// current uses NCp on protons and NCn on neutrons.
func Choose(chargedCurrent, proton bool) Variant {
	switch {
	case chargedCurrent:
		return VariantCC
	case proton:
		return VariantNCp
	default:
		return VariantNCn
	}
}

// AlgName is the name the variant is registered under
func (v Variant) AlgName() string {
	switch v {
	case VariantCC:
		return "RSHelicityAmplModelCC"
	case VariantNCp:
		return "RSHelicityAmplModelNCp"
	case VariantNCn:
		return "RSHelicityAmplModelNCn"
	}
	return fmt.Sprintf("RSHelicityAmplModel(%d)", int(v))
}

func (v Variant) String() string {
	switch v {
	case VariantCC:
		return "CC"
	case VariantNCp:
		return "NCp"
	case VariantNCn:
		return "NCn"
	}
	return "unknown"
}

// New returns the model implementing variant v
func New(v Variant) (Model, error) {
	switch v {
	case VariantCC:
		return CC{}, nil
	case VariantNCp:
		return NC{Proton: true}, nil
	case VariantNCn:
		return NC{Proton: false}, nil
	}
	return nil, fmt.Errorf("helicity: no model for variant %d", int(v))
}
