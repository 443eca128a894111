// Package integrate turns the differential resonance cross section into total
// cross sections sigma(E) and scans them over energy grids.
package integrate

import (
	"context"
	"math"

	"github.com/sawpanic/resxsec/internal/interaction"
	"github.com/sawpanic/resxsec/internal/kinematics"
	"github.com/sawpanic/resxsec/internal/quad"
)

// Evaluator is the differential cross section being integrated
type Evaluator interface {
	XSec(in *interaction.Interaction, kps kinematics.PhaseSpace) float64
}

// Integrator integrates d2sigma/dWdQ2 over the allowed (W, Q2) region with
// composite Gauss-Legendre rules
type Integrator struct {
	xs      Evaluator
	limits  kinematics.Limits
	wcut    float64
	wPanels int
	wOrder  int
	q2Order int
}

// IntegratorOption customises an Integrator
type IntegratorOption func(*Integrator)

// WithWcut caps the W range, used with the DIS/RES joining scheme
func WithWcut(wcut float64) IntegratorOption {
	return func(i *Integrator) { i.wcut = wcut }
}

// WithOrders sets the W panel count and the per-panel and Q2 rule orders
func WithOrders(wPanels, wOrder, q2Order int) IntegratorOption {
	return func(i *Integrator) {
		i.wPanels, i.wOrder, i.q2Order = wPanels, wOrder, q2Order
	}
}

// WithIntegrationLimits replaces the kinematic limits
func WithIntegrationLimits(l kinematics.Limits) IntegratorOption {
	return func(i *Integrator) { i.limits = l }
}

// NewIntegrator integrates xs
func NewIntegrator(xs Evaluator, opts ...IntegratorOption) *Integrator {
	i := &Integrator{
		xs:      xs,
		limits:  kinematics.Standard{},
		wcut:    math.Inf(1),
		wPanels: 16,
		wOrder:  8,
		q2Order: 16,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Sigma returns the total cross section of in at lab probe energy E, in GeV^-2.
// in is not modified.
func (i *Integrator) Sigma(ctx context.Context, in *interaction.Interaction, E float64) (float64, error) {
	c := in.Clone()
	c.Initial.ProbeE = E
	if E <= i.limits.EnergyThreshold(c) {
		return 0, nil
	}
	rW := i.limits.WRange(c)
	if rW.Max > i.wcut {
		rW.Max = i.wcut
	}
	if !rW.Valid() {
		return 0, nil
	}

	wRule := quad.Legendre(i.wOrder, 1)
	q2Rule := quad.Legendre(i.q2Order, 1)
	step := (rW.Max - rW.Min) / float64(i.wPanels)

	var total float64
	for p := 0; p < i.wPanels; p++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		a := rW.Min + float64(p)*step
		total += wRule.Integrate(func(W float64) float64 {
			c.Kine.W = W
			rQ2 := i.limits.Q2Range(c)
			if !rQ2.Valid() {
				return 0
			}
			return q2Rule.Integrate(func(Q2 float64) float64 {
				c.Kine.Q2 = Q2
				return i.xs.XSec(c, kinematics.WQ2fE)
			}, rQ2.Min, rQ2.Max)
		}, a, a+step)
	}
	return total, nil
}
