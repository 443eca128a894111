package baryonres

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownResonance is returned when a resonance id is not in a data set
var ErrUnknownResonance = errors.New("unknown baryon resonance")

// Resonance identifies a baryon resonance of the Rein-Sehgal model
type Resonance int

// NoResonance marks an interaction without a resonance tag
const NoResonance Resonance = -1

const (
	P33_1232 Resonance = iota
	S11_1535
	D13_1520
	S11_1650
	D13_1700
	D15_1675
	S31_1620
	D33_1700
	P11_1440
	P33_1600
	P13_1720
	F15_1680
	P31_1910
	P33_1920
	F35_1905
	F37_1950
	P11_1710
	F17_1970
	numResonances
)

var resonanceNames = [numResonances]string{
	"P33(1232)", "S11(1535)", "D13(1520)", "S11(1650)", "D13(1700)", "D15(1675)",
	"S31(1620)", "D33(1700)", "P11(1440)", "P33(1600)", "P13(1720)", "F15(1680)",
	"P31(1910)", "P33(1920)", "F35(1905)", "F37(1950)", "P11(1710)", "F17(1970)",
}

// All returns every resonance of the model in table order
func All() []Resonance {
	out := make([]Resonance, 0, numResonances)
	for r := P33_1232; r < numResonances; r++ {
		out = append(out, r)
	}
	return out
}

// Known reports whether r is one of the model's resonances
func (r Resonance) Known() bool {
	return r >= P33_1232 && r < numResonances
}

// String returns the spectroscopic name, e.g. "P33(1232)"
func (r Resonance) String() string {
	if !r.Known() {
		return "-"
	}
	return resonanceNames[r]
}

// ParseResonance accepts "P33(1232)", "P33_1232" or "p33_1232"
func ParseResonance(s string) (Resonance, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "(", " ", "").Replace(norm)
	if !strings.HasSuffix(norm, ")") {
		norm += ")"
	}
	for r := P33_1232; r < numResonances; r++ {
		if resonanceNames[r] == norm {
			return r, nil
		}
	}
	return NoResonance, fmt.Errorf("%w: %q", ErrUnknownResonance, s)
}

// OrbitalAngularMom returns the pion-nucleon orbital angular momentum L
// encoded by the spectroscopic letter.
func (r Resonance) OrbitalAngularMom() int {
	if !r.Known() {
		return -1
	}
	switch resonanceNames[r][0] {
	case 'S':
		return 0
	case 'P':
		return 1
	case 'D':
		return 2
	case 'F':
		return 3
	}
	return -1
}

// Isospin returns twice the isospin of the resonance (1 for N*, 3 for Delta)
func (r Resonance) Isospin() int {
	if !r.Known() {
		return 0
	}
	return int(resonanceNames[r][1] - '0')
}

// IsDelta reports whether r is an isospin-3/2 state
func (r Resonance) IsDelta() bool { return r.Isospin() == 3 }

// IsN reports whether r is an isospin-1/2 state
func (r Resonance) IsN() bool { return r.Isospin() == 1 }

// OscillatorQuanta returns the number of harmonic-oscillator quanta N of the
// state in the relativistic quark model (0 for P33(1232), 1 or 2 otherwise).
func (r Resonance) OscillatorQuanta() int {
	switch {
	case r == P33_1232:
		return 0
	case r >= S11_1535 && r <= D33_1700:
		return 1
	case r.Known():
		return 2
	}
	return -1
}
