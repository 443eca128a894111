package xsec

import (
	"github.com/sawpanic/resxsec/internal/fkr"
	"github.com/sawpanic/resxsec/internal/helicity"
	"github.com/sawpanic/resxsec/internal/interaction"
	"github.com/sawpanic/resxsec/internal/kinematics"
)

// Trace records one evaluation step by step. Fields after the rejecting gate
// are left zero.
type Trace struct {
	Interaction string  `json:"interaction"`
	PhaseSpace  string  `json:"phase_space"`
	Rejected    Gate    `json:"rejected,omitempty"`
	E           float64 `json:"E"`
	W           float64 `json:"W"`
	Q2          float64 `json:"Q2"`

	Threshold float64          `json:"threshold"`
	WRange    kinematics.Range `json:"w_range"`
	Q2Range   kinematics.Range `json:"q2_range"`

	Mres  float64 `json:"mres"`
	Width float64 `json:"width"`
	Index int     `json:"res_index"`

	K      float64 `json:"k"`
	V      float64 `json:"v"`
	BigQ2  float64 `json:"Q2_vec"` // v^2 - q^2
	Gf     float64 `json:"Gf"`
	Wf     float64 `json:"Wf"`
	Eprime float64 `json:"E_prime"`
	U      float64 `json:"U"`
	VMix   float64 `json:"V_mix"`

	FKR        fkr.Params          `json:"fkr"`
	Variant    string              `json:"variant"`
	Amplitudes helicity.Amplitudes `json:"amplitudes"`
	Left       float64             `json:"left"`
	Right      float64             `json:"right"`
	Scalar     float64             `json:"scalar"`
	Neutrino   bool                `json:"neutrino"`

	Jacobian    float64 `json:"jacobian"`
	XSec        float64 `json:"xsec"` // Jacobian applied, before weighting and target scaling
	Weight      float64 `json:"bw_weight"`
	FreeNucleon bool    `json:"free_nucleon"`
	Scatterers  int     `json:"scatterers"`
	Result      float64 `json:"result"`
}

// Explain runs the same pipeline as XSec and records every intermediate
// value along with the gate that rejected the point, if any
func (x *RESPXSec) Explain(in *interaction.Interaction, kps kinematics.PhaseSpace) Trace {
	tr := Trace{
		Interaction: in.String(),
		PhaseSpace:  kps.String(),
		E:           in.Initial.ProbeEnergy(interaction.StruckNucleonAtRest),
		W:           in.Kine.W,
		Q2:          in.Kine.Q2,
	}
	x.eval(x.mustSettings(), in, kps, &tr)
	return tr
}
