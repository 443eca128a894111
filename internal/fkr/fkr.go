// Package fkr computes the Feynman-Kislinger-Ravndal parameters that feed the
// Rein-Sehgal helicity amplitudes.
package fkr

import (
	"fmt"
	"math"
)

// Config holds the physical constants of the FKR model
type Config struct {
	Zeta          float64 // axial coupling scale
	Omega         float64 // oscillator spacing, GeV^2
	Ma            float64 // axial mass, GeV
	Mv            float64 // vector mass, GeV
	WeinbergAngle float64 // radians
}

// Validate rejects constants that would make the form factors singular
func (c Config) Validate() error {
	switch {
	case c.Zeta <= 0:
		return fmt.Errorf("fkr: zeta must be positive, got %g", c.Zeta)
	case c.Omega <= 0:
		return fmt.Errorf("fkr: omega must be positive, got %g", c.Omega)
	case c.Ma <= 0 || c.Mv <= 0:
		return fmt.Errorf("fkr: Ma and Mv must be positive, got %g, %g", c.Ma, c.Mv)
	}
	return nil
}

// Params is the form-factor bundle for one (q2, W) point
type Params struct {
	Lamda  float64
	Tv     float64
	Rv     float64
	S      float64
	Ta     float64
	Ra     float64
	B      float64
	C      float64
	R      float64
	T      float64
	Tplus  float64
	Tminus float64
	Rplus  float64
	Rminus float64
	Sin2W  float64 // sin^2 of the weak mixing angle, used by the NC models
}

// Calculator evaluates Params for a fixed set of constants. It is immutable
// and safe for concurrent use.
type Calculator struct {
	zeta  float64
	omega float64
	ma2   float64
	mv2   float64
	sin2w float64
}

// New builds a Calculator; Ma and Mv are stored squared
func New(cfg Config) Calculator {
	sw := math.Sin(cfg.WeinbergAngle)
	return Calculator{
		zeta:  cfg.Zeta,
		omega: cfg.Omega,
		ma2:   cfg.Ma * cfg.Ma,
		mv2:   cfg.Mv * cfg.Mv,
		sin2w: sw * sw,
	}
}

// Calculate returns the FKR parameters for squared momentum transfer q2 (<0),
// invariant mass W, nucleon mass mN and resonance index nresidx.
func (c Calculator) Calculate(q2, W, mN float64, nresidx int) Params {
	mN2 := mN * mN
	W2 := W * W
	k := 0.5 * (W2 - mN2) / mN
	v := k - 0.5*q2/mN
	Q2 := v*v - q2
	Q := math.Sqrt(Q2)

	fq := math.Pow(1-0.25*q2/mN2, 0.5-float64(nresidx))
	GV := fq * math.Pow(1/(1-q2/c.mv2), 2)
	GA := fq * math.Pow(1/(1-q2/c.ma2), 2)

	d := math.Pow(W+mN, 2) - q2
	sq2omg := math.Sqrt(2 / c.omega)
	nomg := float64(nresidx) * c.omega
	mqw := mN * Q / W

	p := Params{Sin2W: c.sin2w}
	p.Lamda = sq2omg * mqw
	p.Tv = GV / (3 * W * sq2omg)
	p.Rv = math.Sqrt2 * mqw * (W + mN) * GV / d
	p.S = (-q2 / Q2) * (3*W*mN + q2 - mN2) * GV / (6 * mN2)
	p.Ta = (2. / 3.) * (c.zeta / sq2omg) * mqw * GA / d
	p.Ra = (math.Sqrt2 / 6) * c.zeta * (GA / W) * (W + mN + 2*nomg*W/d)
	p.B = c.zeta / (3 * W * sq2omg) * (1 + (W2-mN2+q2)/d) * GA
	p.C = c.zeta / (6 * Q) * (W2 - mN2 + nomg*(W2-mN2+q2)/d) * (GA / mN)
	p.R = p.Rv
	p.T = p.Tv
	p.derive()
	return p
}

// Scaled returns a copy with the vector pieces (Tv, Rv, S) multiplied by vec
// and the axial pieces (Ta, Ra, B, C) by ax.
func (p Params) Scaled(vec, ax float64) Params {
	p.Tv *= vec
	p.Rv *= vec
	p.S *= vec
	p.Ta *= ax
	p.Ra *= ax
	p.B *= ax
	p.C *= ax
	p.R = p.Rv
	p.T = p.Tv
	p.derive()
	return p
}

func (p *Params) derive() {
	p.Rplus = -(p.Rv + p.Ra)
	p.Rminus = -(p.Rv - p.Ra)
	p.Tplus = -(p.Tv + p.Ta)
	p.Tminus = -(p.Tv - p.Ta)
}

// String renders the bundle for debug logging
func (p Params) String() string {
	return fmt.Sprintf("Lamda=%.5g Tv=%.5g Rv=%.5g S=%.5g Ta=%.5g Ra=%.5g B=%.5g C=%.5g T+=%.5g T-=%.5g R+=%.5g R-=%.5g",
		p.Lamda, p.Tv, p.Rv, p.S, p.Ta, p.Ra, p.B, p.C, p.Tplus, p.Tminus, p.Rplus, p.Rminus)
}
