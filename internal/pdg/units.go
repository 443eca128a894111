package pdg

// Physical constants in natural units (GeV, hbar = c = 1)
const (
	FermiConstant = 1.1663787e-5 // GeV^-2
	GeV2ToCm2     = 0.389379366e-27
)

// ToCm2 converts an area (or a differential cross section per GeV^n) from
// GeV^-2 to cm^2.
func ToCm2(xsec float64) float64 {
	return xsec * GeV2ToCm2
}
