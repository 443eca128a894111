package interaction

import (
	"fmt"

	"github.com/sawpanic/resxsec/internal/baryonres"
	"github.com/sawpanic/resxsec/internal/pdg"
)

// Request is the flat description of an interaction used by the command
// line and the HTTP API. A zero Z and N means a free struck nucleon.
type Request struct {
	Probe          int     `json:"probe"`
	Z              int     `json:"Z"`
	N              int     `json:"N"`
	Nucleon        int     `json:"nucleon"`
	NeutralCurrent bool    `json:"nc"`
	Resonance      string  `json:"res"`
	E              float64 `json:"E"`
	W              float64 `json:"W"`
	Q2             float64 `json:"Q2"`
	FreeNucleon    bool    `json:"free_nucleon"`
	SkipProcess    bool    `json:"skip_process"`
	SkipKinematics bool    `json:"skip_kine"`
}

// DefaultRequest is muon-neutrino CC P33(1232) production on a free proton
func DefaultRequest() Request {
	return Request{
		Probe:     pdg.NuMu,
		Nucleon:   pdg.Proton,
		Resonance: baryonres.P33_1232.String(),
		E:         1.0,
		W:         1.2,
		Q2:        0.3,
	}
}

// Build validates r and returns the interaction it describes
func (r Request) Build() (*Interaction, error) {
	res, err := baryonres.ParseResonance(r.Resonance)
	if err != nil {
		return nil, err
	}
	if r.Z < 0 || r.N < 0 {
		return nil, fmt.Errorf("negative nucleon count (Z=%d, N=%d)", r.Z, r.N)
	}
	if r.E <= 0 {
		return nil, fmt.Errorf("probe energy must be positive, got %g", r.E)
	}

	tgt := Nucleus(r.Z, r.N, r.Nucleon)
	if r.Z == 0 && r.N == 0 {
		tgt = FreeNucleon(r.Nucleon)
	}

	in := NewRES(r.Probe, r.E, tgt, !r.NeutralCurrent, res)
	in.Kine = Kinematics{W: r.W, Q2: r.Q2}
	if r.FreeNucleon {
		in.Flags |= AssumeFreeNucleon
	}
	if r.SkipProcess {
		in.Flags |= SkipProcessCheck
	}
	if r.SkipKinematics {
		in.Flags |= SkipKinematicsCheck
	}
	return in, nil
}
