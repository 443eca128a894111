package helicity

import (
	"math"

	"github.com/sawpanic/resxsec/internal/baryonres"
	"github.com/sawpanic/resxsec/internal/fkr"
)

// NC is the neutral-current amplitude model on a proton (Proton true) or a
// neutron. The neutral current reuses the charged-current structure with the
// vector and axial pieces reweighted by the weak couplings of the resonance
// isospin channel.
type NC struct {
	Proton bool
}

// Compute implements Model
func (m NC) Compute(res baryonres.Resonance, p fkr.Params) Amplitudes {
	if !res.Known() {
		return Amplitudes{}
	}
	vec, ax, iso := ncCouplings(res, m.Proton, p.Sin2W)
	return ccAmplitudes(res, p.Scaled(vec, ax)).Scale(iso)
}

// ncCouplings returns the vector and axial weights and the isospin factor.
// I=3/2 states do not depend on the nucleon; I=1/2 states flip the isovector
// part between proton and neutron.
func ncCouplings(res baryonres.Resonance, proton bool, sin2w float64) (vec, ax, iso float64) {
	if res.IsDelta() {
		return 1 - 2*sin2w, 1, math.Sqrt(2. / 3.)
	}
	tau := 1.0
	if !proton {
		tau = -1
	}
	return tau*0.5*(1-2*sin2w) - sin2w/3, tau * 0.5, 1
}
