// Package kinematics supplies the kinematic limits and phase-space Jacobians
// of resonance production, nu + N -> l + R.
package kinematics

import (
	"fmt"
	"math"

	"github.com/sawpanic/resxsec/internal/interaction"
	"github.com/sawpanic/resxsec/internal/pdg"
)

// Range is a closed interval
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains is inclusive at both ends
func (r Range) Contains(x float64) bool { return x >= r.Min && x <= r.Max }

// Valid reports a non-empty interval
func (r Range) Valid() bool { return r.Max >= r.Min }

func (r Range) String() string { return fmt.Sprintf("[%.5g, %.5g]", r.Min, r.Max) }

// Limits answers the kinematic questions the evaluator asks
type Limits interface {
	EnergyThreshold(in *interaction.Interaction) float64
	WRange(in *interaction.Interaction) Range
	Q2Range(in *interaction.Interaction) Range
}

// Standard computes the limits from two-body kinematics on a nucleon at rest
type Standard struct{}

// finalLeptonMass is the charged-lepton mass for charged current and zero
// for neutral current
func finalLeptonMass(in *interaction.Interaction) float64 {
	if !in.Process.ChargedCurrent {
		return 0
	}
	m, err := pdg.Mass(pdg.ChargedLepton(in.Initial.Probe))
	if err != nil {
		return 0
	}
	return m
}

// EnergyThreshold is the probe energy at which W = M + m_pi becomes reachable
func (Standard) EnergyThreshold(in *interaction.Interaction) float64 {
	M := in.Initial.Target.HitNucleonMass()
	ml := finalLeptonMass(in)
	mtot := M + pdg.PionMass + ml
	return (mtot*mtot - M*M) / (2 * M)
}

// WRange is [M + m_pi, sqrt(s) - m_l]
func (Standard) WRange(in *interaction.Interaction) Range {
	M := in.Initial.Target.HitNucleonMass()
	E := in.Initial.ProbeEnergy(interaction.StruckNucleonAtRest)
	s := M*M + 2*M*E
	return Range{Min: M + pdg.PionMass, Max: math.Sqrt(s) - finalLeptonMass(in)}
}

// Q2Range is the Q2 = -q2 interval at the interaction's W, from the lepton
// energy and momentum in the centre-of-mass frame
func (Standard) Q2Range(in *interaction.Interaction) Range {
	M := in.Initial.Target.HitNucleonMass()
	E := in.Initial.ProbeEnergy(interaction.StruckNucleonAtRest)
	W := in.Kine.W
	ml := finalLeptonMass(in)
	ml2 := ml * ml

	s := M*M + 2*M*E
	sqs := math.Sqrt(s)
	auxC := 0.5 * (s - M*M) / sqs
	aux1 := s + ml2 - W*W
	aux2 := aux1*aux1 - 4*s*ml2
	if aux2 < 0 {
		return Range{Min: 0, Max: -1}
	}
	sq := math.Sqrt(aux2)
	elMinusPl := 0.5 * (aux1 - sq) / sqs
	elPlusPl := 0.5 * (aux1 + sq) / sqs

	r := Range{
		Min: 2*auxC*elMinusPl - ml2,
		Max: 2*auxC*elPlusPl - ml2,
	}
	if r.Min < 0 {
		r.Min = 0
	}
	return r
}
