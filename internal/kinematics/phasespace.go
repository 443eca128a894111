package kinematics

import (
	"fmt"
	"math"

	"github.com/sawpanic/resxsec/internal/interaction"
)

// PhaseSpace identifies the variables a differential cross section is quoted in
type PhaseSpace int

const (
	// WQ2fE is d2sigma/dWdQ2 at fixed E, the native variables
	WQ2fE PhaseSpace = iota
	// XYfE is d2sigma/dxdy at fixed E
	XYfE
	// WLogQ2fE is d2sigma/dWdlnQ2 at fixed E
	WLogQ2fE
)

func (ps PhaseSpace) String() string {
	switch ps {
	case WQ2fE:
		return "WQ2fE"
	case XYfE:
		return "xyfE"
	case WLogQ2fE:
		return "WlogQ2fE"
	}
	return fmt.Sprintf("PhaseSpace(%d)", int(ps))
}

// ParsePhaseSpace accepts the names produced by String
func ParsePhaseSpace(s string) (PhaseSpace, error) {
	for _, ps := range []PhaseSpace{WQ2fE, XYfE, WLogQ2fE} {
		if ps.String() == s {
			return ps, nil
		}
	}
	return 0, fmt.Errorf("unknown phase space %q", s)
}

// JacobianFunc converts a density between phase-space variable sets
type JacobianFunc func(in *interaction.Interaction, from, to PhaseSpace) float64

// Jacobian returns |d(from)/d(to)| at the interaction's kinematic point, so
// that d(sigma)/d(to) = J * d(sigma)/d(from). Only conversions out of WQ2fE
// and the identity are defined; anything else yields 0.
func Jacobian(in *interaction.Interaction, from, to PhaseSpace) float64 {
	if from == to {
		return 1
	}
	if from != WQ2fE {
		return 0
	}
	switch to {
	case XYfE:
		M := in.Initial.Target.HitNucleonMass()
		E := in.Initial.ProbeEnergy(interaction.StruckNucleonAtRest)
		_, y := XY(in)
		return math.Abs(2 * M * M * E * E * y / in.Kine.W)
	case WLogQ2fE:
		return in.Kine.Q2
	}
	return 0
}

// XY converts (W, Q2) into Bjorken x and inelasticity y
func XY(in *interaction.Interaction) (x, y float64) {
	M := in.Initial.Target.HitNucleonMass()
	E := in.Initial.ProbeEnergy(interaction.StruckNucleonAtRest)
	W, Q2 := in.Kine.W, in.Kine.Q2
	y = (W*W - M*M + Q2) / (2 * M * E)
	x = Q2 / (2 * M * E * y)
	return x, y
}
