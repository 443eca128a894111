// Package interaction describes a single neutrino-nucleon resonance
// interaction: the initial state, the process, the kinematic point and the
// exclusive resonance tag. The cross-section code only reads it.
package interaction

import (
	"fmt"
	"math"
	"strings"

	"github.com/sawpanic/resxsec/internal/baryonres"
	"github.com/sawpanic/resxsec/internal/pdg"
)

// Flags alter how an interaction is evaluated
type Flags uint8

const (
	// SkipProcessCheck bypasses the process validity gate
	SkipProcessCheck Flags = 1 << iota
	// SkipKinematicsCheck bypasses the kinematic limits gate
	SkipKinematicsCheck
	// AssumeFreeNucleon returns the per-nucleon cross section without
	// scaling by the number of target protons or neutrons
	AssumeFreeNucleon
)

// Has reports whether every bit of f is set
func (fl Flags) Has(f Flags) bool { return fl&f == f }

func (fl Flags) String() string {
	var parts []string
	if fl.Has(SkipProcessCheck) {
		parts = append(parts, "skip-process")
	}
	if fl.Has(SkipKinematicsCheck) {
		parts = append(parts, "skip-kine")
	}
	if fl.Has(AssumeFreeNucleon) {
		parts = append(parts, "free-nucleon")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// Frame selects the frame a probe energy is quoted in
type Frame int

const (
	Lab Frame = iota
	StruckNucleonAtRest
)

// Target is the nucleus and the nucleon struck inside it
type Target struct {
	Z                 int
	N                 int
	StruckNucleon     int        // pdg code, 2212 or 2112
	StruckNucleonMass float64    // GeV; 0 means the free mass
	NucleonMomentum   [3]float64 // GeV, lab frame; z is the probe axis
}

// A is the mass number
func (t Target) A() int { return t.Z + t.N }

// Code is the nuclear pdg code of the target
func (t Target) Code() int { return pdg.IonCode(t.Z, t.A()) }

// HitNucleonMass returns the struck nucleon mass, falling back to the free mass
func (t Target) HitNucleonMass() float64 {
	if t.StruckNucleonMass > 0 {
		return t.StruckNucleonMass
	}
	m, err := pdg.Mass(t.StruckNucleon)
	if err != nil {
		return pdg.NucleonMass
	}
	return m
}

// StruckProton reports whether the struck nucleon is a proton
func (t Target) StruckProton() bool { return pdg.IsProton(t.StruckNucleon) }

// InitialState is the probe and the target
type InitialState struct {
	Probe  int     // pdg code of the (anti)neutrino
	ProbeE float64 // lab-frame energy, GeV
	Target Target
}

// ProbeEnergy returns the probe energy in the requested frame. In the struck
// nucleon rest frame it is p_probe.p_nucleon / M, which equals the lab energy
// for a nucleon at rest.
func (s InitialState) ProbeEnergy(f Frame) float64 {
	if f == Lab {
		return s.ProbeE
	}
	p := s.Target.NucleonMomentum
	if p == [3]float64{} {
		return s.ProbeE
	}
	m := s.Target.HitNucleonMass()
	e := math.Sqrt(m*m + p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
	return s.ProbeE * (e - p[2]) / m
}

// ProcessInfo classifies the interaction
type ProcessInfo struct {
	Weak           bool
	Resonant       bool
	ChargedCurrent bool
}

// IsWeakCC reports a weak charged-current process
func (p ProcessInfo) IsWeakCC() bool { return p.Weak && p.ChargedCurrent }

// IsWeakNC reports a weak neutral-current process
func (p ProcessInfo) IsWeakNC() bool { return p.Weak && !p.ChargedCurrent }

func (p ProcessInfo) String() string {
	kind := "EM"
	switch {
	case p.IsWeakCC():
		kind = "Weak[CC]"
	case p.IsWeakNC():
		kind = "Weak[NC]"
	}
	if p.Resonant {
		return kind + ",RES"
	}
	return kind + ",nonRES"
}

// Kinematics is the point in (W, Q2) phase space. Q2 is the positive
// Q^2 = -q^2.
type Kinematics struct {
	W  float64
	Q2 float64
}

// Smallq2 returns the four-momentum transfer squared q^2, negative for
// physical scattering
func (k Kinematics) Smallq2() float64 { return -k.Q2 }

// ExclusiveTag carries the resonance produced
type ExclusiveTag struct {
	Resonance baryonres.Resonance
}

// KnownResonance reports whether the tag names a resonance of the model
func (x ExclusiveTag) KnownResonance() bool { return x.Resonance.Known() }

// Interaction bundles everything the cross-section evaluator reads
type Interaction struct {
	Initial   InitialState
	Process   ProcessInfo
	Kine      Kinematics
	Exclusive ExclusiveTag
	Flags     Flags
}

// NewRES builds a resonant weak interaction of probe on target producing res
func NewRES(probe int, E float64, tgt Target, chargedCurrent bool, res baryonres.Resonance) *Interaction {
	return &Interaction{
		Initial:   InitialState{Probe: probe, ProbeE: E, Target: tgt},
		Process:   ProcessInfo{Weak: true, Resonant: true, ChargedCurrent: chargedCurrent},
		Exclusive: ExclusiveTag{Resonance: res},
	}
}

// FreeNucleon returns a target that is a single free nucleon
func FreeNucleon(code int) Target {
	t := Target{StruckNucleon: code}
	if pdg.IsProton(code) {
		t.Z = 1
	} else {
		t.N = 1
	}
	return t
}

// Nucleus returns a target nucleus with the given struck nucleon
func Nucleus(z, n, struck int) Target {
	return Target{Z: z, N: n, StruckNucleon: struck}
}

// Clone returns a copy that can be modified without touching in
func (in *Interaction) Clone() *Interaction {
	c := *in
	return &c
}

// String renders a compact one-line summary
func (in *Interaction) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "nu:%d;tgt:%d;N:%d;proc:%s", in.Initial.Probe, in.Initial.Target.Code(),
		in.Initial.Target.StruckNucleon, in.Process)
	if in.Exclusive.KnownResonance() {
		fmt.Fprintf(&b, ";res:%s", in.Exclusive.Resonance)
	}
	return b.String()
}
