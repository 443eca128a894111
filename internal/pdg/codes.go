package pdg

import "fmt"

// PDG Monte Carlo particle codes used by the resonance model
const (
	Electron    = 11
	NuE         = 12
	Muon        = 13
	NuMu        = 14
	Tau         = 15
	NuTau       = 16
	AntiNuE     = -12
	AntiNuMu    = -14
	AntiNuTau   = -16
	PiPlus      = 211
	Pi0         = 111
	Proton      = 2212
	Neutron     = 2112
	ionCodeBase = 1000000000
)

// Masses in GeV
const (
	ElectronMass = 0.00051099895
	MuonMass     = 0.1056583745
	TauMass      = 1.77686
	PionMass     = 0.13957039
	Pi0Mass      = 0.1349768
	ProtonMass   = 0.93827208816
	NeutronMass  = 0.93956542052
	NucleonMass  = 0.5 * (ProtonMass + NeutronMass)
)

// IsProton reports whether code is a proton
func IsProton(code int) bool { return code == Proton }

// IsNeutron reports whether code is a neutron
func IsNeutron(code int) bool { return code == Neutron }

// IsNucleon reports whether code is a proton or a neutron
func IsNucleon(code int) bool { return IsProton(code) || IsNeutron(code) }

// IsNeutrino reports whether code is one of the three neutrino flavours
func IsNeutrino(code int) bool {
	return code == NuE || code == NuMu || code == NuTau
}

// IsAntiNeutrino reports whether code is one of the three antineutrino flavours
func IsAntiNeutrino(code int) bool {
	return code == AntiNuE || code == AntiNuMu || code == AntiNuTau
}

// ChargedLepton returns the charged lepton produced by a charged-current
// interaction of the given (anti)neutrino, or 0 if code is not a neutrino.
func ChargedLepton(nu int) int {
	switch nu {
	case NuE:
		return Electron
	case NuMu:
		return Muon
	case NuTau:
		return Tau
	case AntiNuE:
		return -Electron
	case AntiNuMu:
		return -Muon
	case AntiNuTau:
		return -Tau
	}
	return 0
}

// Mass returns the mass of a known particle in GeV. Neutrinos are massless.
func Mass(code int) (float64, error) {
	switch abs(code) {
	case Electron:
		return ElectronMass, nil
	case Muon:
		return MuonMass, nil
	case Tau:
		return TauMass, nil
	case NuE, NuMu, NuTau:
		return 0, nil
	case PiPlus:
		return PionMass, nil
	case Pi0:
		return Pi0Mass, nil
	case Proton:
		return ProtonMass, nil
	case Neutron:
		return NeutronMass, nil
	}
	return 0, fmt.Errorf("no mass for pdg code %d", code)
}

// IonCode builds the 10LZZZAAAI nuclear code for a nucleus with z protons and
// a nucleons. A free proton maps to 2212.
func IonCode(z, a int) int {
	if z == 1 && a == 1 {
		return Proton
	}
	return ionCodeBase + z*10000 + a*10
}

// Name returns a short printable name for the particles this module knows
func Name(code int) string {
	names := map[int]string{
		NuE: "nu_e", NuMu: "nu_mu", NuTau: "nu_tau",
		AntiNuE: "nu_e_bar", AntiNuMu: "nu_mu_bar", AntiNuTau: "nu_tau_bar",
		Electron: "e-", Muon: "mu-", Tau: "tau-",
		-Electron: "e+", -Muon: "mu+", -Tau: "tau+",
		Proton: "p", Neutron: "n",
	}
	if n, ok := names[code]; ok {
		return n
	}
	return fmt.Sprintf("pdg(%d)", code)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
