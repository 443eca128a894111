package helicity

import (
	"math"

	"github.com/sawpanic/resxsec/internal/baryonres"
	"github.com/sawpanic/resxsec/internal/fkr"
)

var (
	sqrt2     = math.Sqrt2
	sqrt3     = math.Sqrt(3)
	sqrt5     = math.Sqrt(5)
	sqrt6     = math.Sqrt(6)
	sqrt10    = math.Sqrt(10)
	sqrt15    = math.Sqrt(15)
	sqrt30    = math.Sqrt(30)
	sqrt35    = math.Sqrt(35)
	sqrt2_3   = math.Sqrt(2. / 3.)
	sqrt3_2   = math.Sqrt(3. / 2.)
	sqrt1_6   = math.Sqrt(1. / 6.)
	sqrt3_5   = math.Sqrt(3. / 5.)
	sqrt6_5   = math.Sqrt(6. / 5.)
	sqrt2_5   = math.Sqrt(2. / 5.)
	sqrt18_35 = math.Sqrt(18. / 35.)
)

// CC is the charged-current amplitude model
type CC struct{}

// Compute implements Model
func (CC) Compute(res baryonres.Resonance, p fkr.Params) Amplitudes {
	return ccAmplitudes(res, p)
}

func ccAmplitudes(res baryonres.Resonance, p fkr.Params) Amplitudes {
	var a Amplitudes
	L := p.Lamda
	L2 := L * L

	switch res {
	case baryonres.P33_1232:
		a.Minus1 = sqrt2 * p.Rminus
		a.Plus1 = -sqrt2 * p.Rplus
		a.Minus3 = sqrt6 * p.Rminus
		a.Plus3 = -sqrt6 * p.Rplus
		a.ZeroMinus = -2 * sqrt2 * p.C
		a.ZeroPlus = a.ZeroMinus

	case baryonres.S11_1535:
		c := 4. / sqrt6
		d := 2. * sqrt3
		s := sqrt6 * L * p.S
		b := 2 * sqrt2_3 * (L*p.C - 3.*p.B)
		a.Minus1 = d*p.Tminus + c*L*p.Rminus
		a.Plus1 = -d*p.Tplus - c*L*p.Rplus
		a.ZeroMinus = -s + b
		a.ZeroPlus = s + b

	case baryonres.D13_1520:
		c := 4. / sqrt3
		d := 2. / sqrt6
		s := 2 * sqrt3 * L * p.S
		b := (4. / sqrt3) * L * p.C
		a.Minus1 = d*p.Tminus - c*L*p.Rminus
		a.Plus1 = -d*p.Tplus + c*L*p.Rplus
		a.Minus3 = sqrt2 * p.Tminus
		a.Plus3 = -sqrt2 * p.Tplus
		a.ZeroMinus = -s + b
		a.ZeroPlus = s + b

	case baryonres.S11_1650:
		a.Minus1 = (1. / sqrt6) * L * p.Rminus
		a.Plus1 = -(1. / sqrt6) * L * p.Rplus
		a.ZeroMinus = -sqrt2_3 * (L*p.C - 3.*p.B)
		a.ZeroPlus = a.ZeroMinus

	case baryonres.D13_1700:
		a.Minus1 = (1. / sqrt30) * L * p.Rminus
		a.Plus1 = -(1. / sqrt30) * L * p.Rplus
		a.Minus3 = (3. / sqrt10) * L * p.Rminus
		a.Plus3 = -(3. / sqrt10) * L * p.Rplus
		a.ZeroMinus = (sqrt2 / sqrt15) * L * p.C
		a.ZeroPlus = -a.ZeroMinus

	case baryonres.D15_1675:
		a.Minus1 = -sqrt3_5 * L * p.Rminus
		a.Plus1 = sqrt3_5 * L * p.Rplus
		a.Minus3 = -sqrt6_5 * L * p.Rminus
		a.Plus3 = sqrt6_5 * L * p.Rplus

	case baryonres.S31_1620:
		s := sqrt3_2 * L * p.S
		b := sqrt1_6 * (L*p.C - 3.*p.B)
		a.Minus1 = sqrt3*p.Tminus - sqrt1_6*L*p.Rminus
		a.Plus1 = -sqrt3*p.Tplus + sqrt1_6*L*p.Rplus
		a.ZeroMinus = -s + b
		a.ZeroPlus = s + b

	case baryonres.D33_1700:
		s := sqrt3 * L * p.S
		b := (1. / sqrt3) * L * p.C
		a.Minus1 = sqrt3_2*p.Tminus + (1./sqrt3)*L*p.Rminus
		a.Plus1 = -sqrt3_2*p.Tplus - (1./sqrt3)*L*p.Rplus
		a.Minus3 = (3. / sqrt2) * p.Tminus
		a.Plus3 = -(3. / sqrt2) * p.Tplus
		a.ZeroMinus = -s - b
		a.ZeroPlus = s - b

	case baryonres.P11_1440:
		c := (5. / 12.) * sqrt3
		s := 0.25 * sqrt3 * L2 * p.S
		b := c * L * (L*p.C - 2*p.B)
		a.Minus1 = -c * L2 * p.Rminus
		a.Plus1 = c * L2 * p.Rplus
		a.ZeroMinus = -s + b
		a.ZeroPlus = s + b

	case baryonres.P33_1600:
		c := 1. / (2. * sqrt3)
		a.Minus1 = -c * sqrt2 * L2 * p.Rminus
		a.Plus1 = c * sqrt2 * L2 * p.Rplus
		a.Minus3 = -c * sqrt6 * L2 * p.Rminus
		a.Plus3 = c * sqrt6 * L2 * p.Rplus
		a.ZeroMinus = (1. / sqrt6) * L * (L*p.C - 2*p.B)
		a.ZeroPlus = a.ZeroMinus

	case baryonres.P13_1720:
		s := sqrt3_5 * L2 * p.S
		b := sqrt2_5 * L * (L*p.C - 5*p.B)
		a.Minus1 = -sqrt3_2*L*p.Tminus + (1./sqrt15)*L2*p.Rminus
		a.Plus1 = sqrt3_2*L*p.Tplus - (1./sqrt15)*L2*p.Rplus
		a.Minus3 = -(3. / sqrt10) * L * p.Tminus
		a.Plus3 = (3. / sqrt10) * L * p.Tplus
		a.ZeroMinus = s - b
		a.ZeroPlus = -s - b

	case baryonres.F15_1680:
		s := (3. / sqrt10) * L2 * p.S
		b := sqrt2_5 * L2 * p.C
		a.Minus1 = -sqrt3_5*L*p.Tminus + (1./sqrt10)*L2*p.Rminus
		a.Plus1 = sqrt3_5*L*p.Tplus - (1./sqrt10)*L2*p.Rplus
		a.Minus3 = -sqrt6_5 * L * p.Tminus
		a.Plus3 = sqrt6_5 * L * p.Tplus
		a.ZeroMinus = -s + b
		a.ZeroPlus = s + b

	case baryonres.P31_1910:
		a.Minus1 = -(1. / sqrt15) * L2 * p.Rminus
		a.Plus1 = (1. / sqrt15) * L2 * p.Rplus
		a.ZeroMinus = -(2. / sqrt15) * L * (L*p.C - 5*p.B)
		a.ZeroPlus = a.ZeroMinus

	case baryonres.P33_1920:
		a.Minus1 = (1. / sqrt15) * L2 * p.Rminus
		a.Plus1 = -(1. / sqrt15) * L2 * p.Rplus
		a.Minus3 = -(1. / sqrt5) * L2 * p.Rminus
		a.Plus3 = (1. / sqrt5) * L2 * p.Rplus
		a.ZeroMinus = -(2. / sqrt15) * L * (L*p.C - 5*p.B)
		a.ZeroPlus = -a.ZeroMinus

	case baryonres.F35_1905:
		a.Minus1 = (1. / sqrt35) * L2 * p.Rminus
		a.Plus1 = -(1. / sqrt35) * L2 * p.Rplus
		a.Minus3 = sqrt18_35 * L2 * p.Rminus
		a.Plus3 = -sqrt18_35 * L2 * p.Rplus
		a.ZeroMinus = (2. / sqrt35) * L2 * p.C
		a.ZeroPlus = a.ZeroMinus

	case baryonres.F37_1950:
		c := sqrt6 / sqrt35
		a.Minus1 = -c * L2 * p.Rminus
		a.Plus1 = c * L2 * p.Rplus
		a.Minus3 = -sqrt2 * c * L2 * p.Rminus
		a.Plus3 = sqrt2 * c * L2 * p.Rplus
		a.ZeroMinus = -(2. * sqrt6 / sqrt35) * L2 * p.C
		a.ZeroPlus = -a.ZeroMinus

	case baryonres.P11_1710:
		c := 1. / sqrt6
		s := sqrt3_2 * L2 * p.S
		b := c * L * (L*p.C - 2*p.B)
		a.Minus1 = c * L2 * p.Rminus
		a.Plus1 = -c * L2 * p.Rplus
		a.ZeroMinus = s - b
		a.ZeroPlus = -s - b

	case baryonres.F17_1970:
		c := sqrt2 / sqrt35
		a.Minus1 = c * L2 * p.Rminus
		a.Plus1 = -c * L2 * p.Rplus
		a.Minus3 = sqrt2 * c * L2 * p.Rminus
		a.Plus3 = -sqrt2 * c * L2 * p.Rplus
		a.ZeroMinus = -(2. / sqrt35) * L2 * p.C
		a.ZeroPlus = -a.ZeroMinus
	}
	return a
}
