package quad

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegendreIntegratesPolynomialsExactly(t *testing.T) {
	for _, n := range []int{1, 2, 5, 12, 24} {
		deg := 2*n - 1
		got := Legendre(n, 1).Integrate(func(x float64) float64 { return math.Pow(x, float64(deg-1)) + 1 }, 0, 2)
		want := math.Pow(2, float64(deg))/float64(deg) + 2
		assert.InEpsilon(t, want, got, 1e-10, "n=%d", n)
	}
}

func TestLegendreSmoothFunction(t *testing.T) {
	assert.InDelta(t, 2.0, Legendre(16, 1).Integrate(math.Sin, 0, math.Pi), 1e-12)
	assert.InDelta(t, 2.0, Legendre(4, 64).Integrate(math.Sin, 0, math.Pi), 1e-12)
}

func TestPanelsAgreeOnPeakedIntegrand(t *testing.T) {
	// Lorentzian of width 0.01 centred in [0, 1]
	const g = 0.01
	f := func(x float64) float64 { d := x - 0.5; return (0.5 * g / math.Pi) / (d*d + 0.25*g*g) }
	want := (2 / math.Pi) * math.Atan(1/g)

	assert.InDelta(t, want, Legendre(12, 240).Integrate(f, 0, 1), 1e-9)
	assert.Greater(t, math.Abs(Legendre(12, 1).Integrate(f, 0, 1)-want), 1e-3)
}

func TestLegendreDegenerateInput(t *testing.T) {
	r := Legendre(0, -3)
	assert.Equal(t, Rule{Order: 1, Panels: 1}, r)
	assert.Zero(t, r.Integrate(math.Exp, 1, 1))
	assert.Zero(t, r.Integrate(math.Exp, 2, 1))
}
