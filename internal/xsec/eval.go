package xsec

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sawpanic/resxsec/internal/helicity"
	"github.com/sawpanic/resxsec/internal/interaction"
	"github.com/sawpanic/resxsec/internal/kinematics"
	"github.com/sawpanic/resxsec/internal/pdg"
)

// XSec returns d2sigma/dWdQ2 in natural units (GeV^-4 per GeV of W) for the
// interaction in. For kps other than WQ2fE the Jacobian is evaluated and
// recorded by Explain, but the returned value is the native one.
// Interactions that fail a validity gate give exactly 0. in is not modified.
//
// XSec panics if the evaluator was never configured.
func (x *RESPXSec) XSec(in *interaction.Interaction, kps kinematics.PhaseSpace) float64 {
	return x.eval(x.mustSettings(), in, kps, nil)
}

// ValidProcess reports whether in is a weak resonant (anti)neutrino process on
// a proton or neutron producing a known resonance
func (x *RESPXSec) ValidProcess(in *interaction.Interaction) bool {
	if in.Flags.Has(interaction.SkipProcessCheck) {
		return true
	}
	return validProcess(in)
}

func validProcess(in *interaction.Interaction) bool {
	if !in.Process.Resonant || !in.Process.Weak {
		return false
	}
	if !pdg.IsNucleon(in.Initial.Target.StruckNucleon) {
		return false
	}
	nu := in.Initial.Probe
	if !pdg.IsNeutrino(nu) && !pdg.IsAntiNeutrino(nu) {
		return false
	}
	return in.Exclusive.KnownResonance()
}

// ValidKinematics reports whether the probe energy is above threshold and W
// and Q2 are inside their physical ranges
func (x *RESPXSec) ValidKinematics(in *interaction.Interaction) bool {
	if in.Flags.Has(interaction.SkipKinematicsCheck) {
		return true
	}
	return x.kinematicsGate(in, nil) == GateNone
}

func (x *RESPXSec) kinematicsGate(in *interaction.Interaction, tr *Trace) Gate {
	E := in.Initial.ProbeEnergy(interaction.StruckNucleonAtRest)
	thr := x.limits.EnergyThreshold(in)
	if tr != nil {
		tr.Threshold = thr
	}
	if E <= thr {
		log.Info().
			Float64("E", E).
			Float64("threshold", thr).
			Msg("Probe energy below resonance production threshold")
		return GateThreshold
	}

	rW := x.limits.WRange(in)
	rQ2 := x.limits.Q2Range(in)
	if tr != nil {
		tr.WRange, tr.Q2Range = rW, rQ2
	}
	if !rW.Contains(in.Kine.W) || !rQ2.Contains(in.Kine.Q2) {
		return GateKinematics
	}
	return GateNone
}

func (x *RESPXSec) reject(g Gate, tr *Trace) float64 {
	if tr != nil {
		tr.Rejected = g
	}
	if x.observer != nil {
		x.observer.Rejected(g)
	}
	return 0
}

// eval is the whole pipeline; tr, when non-nil, records the intermediates
func (x *RESPXSec) eval(s *settings, in *interaction.Interaction, kps kinematics.PhaseSpace, tr *Trace) float64 {
	var start time.Time
	if x.observer != nil {
		start = time.Now()
	}

	if !x.ValidProcess(in) {
		return x.reject(GateProcess, tr)
	}

	W := in.Kine.W
	q2 := in.Kine.Smallq2()

	if s.params.JoinDIS && W >= s.params.Wcut {
		log.Debug().
			Float64("W", W).
			Float64("wcut", s.params.Wcut).
			Msg("DIS/RES join scheme: resonance cross section is 0 above Wcut")
		return x.reject(GateJoin, tr)
	}

	if !in.Flags.Has(interaction.SkipKinematicsCheck) {
		if g := x.kinematicsGate(in, tr); g != GateNone {
			return x.reject(g, tr)
		}
	}

	tgt := in.Initial.Target
	E := in.Initial.ProbeEnergy(interaction.StruckNucleonAtRest)
	M := tgt.HitNucleonMass()
	res := in.Exclusive.Resonance

	rp, err := s.provider.Retrieve(res)
	if err != nil {
		log.Warn().
			Err(err).
			Str("resonance", res.String()).
			Msg("Resonance missing from the configured data set")
		return x.reject(GateResonanceData, tr)
	}
	Mres := rp.Mass

	W2 := W * W
	M2 := M * M
	k := 0.5 * (W2 - M2) / M
	v := k - 0.5*q2/M
	Q2 := v*v - q2
	Q := math.Sqrt(Q2)
	Gf := pdg.FermiConstant * pdg.FermiConstant / (4 * math.Pi * math.Pi)
	Wf := (-q2 / Q2) * (W / M) * k
	Eprime := E - v
	U := 0.5 * (E + Eprime + Q) / E
	V := 0.5 * (E + Eprime - Q) / E
	U2, V2, UV := U*U, V*V, U*V

	ff := s.ff.Calculate(q2, W, M, rp.Index)
	log.Debug().Str("resonance", res.String()).Stringer("fkr", ff).Msg("FKR parameters")

	variant := helicity.Choose(in.Process.IsWeakCC(), tgt.StruckProton())
	amp := s.models[variant].Compute(res, ff)
	log.Debug().Str("resonance", res.String()).Stringer("amplitudes", amp).Msg("Helicity amplitudes")

	left := amp.Plus3*amp.Plus3 + amp.Plus1*amp.Plus1
	right := amp.Minus3*amp.Minus3 + amp.Minus1*amp.Minus1
	scalar := amp.ZeroPlus*amp.ZeroPlus + amp.ZeroMinus*amp.ZeroMinus

	scaleLR := 0.5 * (math.Pi / k) * (Mres / M)
	scaleSC := 0.5 * (math.Pi / k) * (M / Mres)
	left *= scaleLR
	right *= scaleLR
	scalar *= scaleSC * (-Q2 / q2)

	log.Debug().
		Float64("left", left).
		Float64("right", right).
		Float64("scalar", scalar).
		Msg("Helicity cross sections")

	neutrino := pdg.IsNeutrino(in.Initial.Probe)
	var xsec float64
	if neutrino {
		xsec = Gf * Wf * (U2*left + V2*right + 2*UV*scalar)
	} else {
		xsec = Gf * Wf * (V2*left + U2*right + 2*UV*scalar)
	}

	bw := 1.0
	if s.params.WeightBW {
		bw = s.bw.Eval(res, W)
		log.Debug().Str("resonance", res.String()).Float64("W", W).Float64("bw", bw).Msg("Breit-Wigner weight")
	} else {
		log.Debug().Msg("Breit-Wigner weight is turned off")
	}
	wxsec := bw * xsec

	// The Jacobian lands on the unweighted value only; the returned
	// weighted cross section stays in the native (W, Q2) variables.
	J := 1.0
	if kps != kinematics.WQ2fE {
		J = x.jacobian(in, kinematics.WQ2fE, kps)
		xsec *= J
	}

	free := in.Flags.Has(interaction.AssumeFreeNucleon)
	scatterers := 1
	if !free {
		scatterers = tgt.N
		if tgt.StruckProton() {
			scatterers = tgt.Z
		}
		wxsec *= float64(scatterers)
	}

	if tr != nil {
		tr.Mres, tr.Width, tr.Index = Mres, rp.Width, rp.Index
		tr.K, tr.V, tr.BigQ2, tr.Gf, tr.Wf, tr.Eprime, tr.U, tr.VMix = k, v, Q2, Gf, Wf, Eprime, U, V
		tr.FKR = ff
		tr.Variant = variant.String()
		tr.Amplitudes = amp
		tr.Left, tr.Right, tr.Scalar = left, right, scalar
		tr.Neutrino = neutrino
		tr.Jacobian = J
		tr.XSec = xsec
		tr.Weight = bw
		tr.FreeNucleon = free
		tr.Scatterers = scatterers
		tr.Result = wxsec
	}
	if x.observer != nil {
		x.observer.Evaluated(variant.String(), time.Since(start))
	}
	return wxsec
}
