package integrate

import (
	"context"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/resxsec/internal/baryonres"
	"github.com/sawpanic/resxsec/internal/cache"
	"github.com/sawpanic/resxsec/internal/catalog"
	"github.com/sawpanic/resxsec/internal/config"
	"github.com/sawpanic/resxsec/internal/interaction"
	"github.com/sawpanic/resxsec/internal/kinematics"
	"github.com/sawpanic/resxsec/internal/pdg"
	"github.com/sawpanic/resxsec/internal/xsec"
)

// boxLimits is W in [1, 2] and Q2 in [0, W], open above E = 0.5
type boxLimits struct{}

func (boxLimits) EnergyThreshold(*interaction.Interaction) float64 { return 0.5 }
func (boxLimits) WRange(*interaction.Interaction) kinematics.Range {
	return kinematics.Range{Min: 1, Max: 2}
}
func (boxLimits) Q2Range(in *interaction.Interaction) kinematics.Range {
	return kinematics.Range{Min: 0, Max: in.Kine.W}
}

// polyXSec is W*Q2 scaled by (resonance id + 1) and by E
type polyXSec struct{ calls *int64 }

func (p polyXSec) XSec(in *interaction.Interaction, _ kinematics.PhaseSpace) float64 {
	if p.calls != nil {
		atomic.AddInt64(p.calls, 1)
	}
	return in.Kine.W * in.Kine.Q2 * float64(in.Exclusive.Resonance+1) * in.Initial.ProbeE
}

type counter struct{ hits, misses int64 }

func (c *counter) CacheHit()  { atomic.AddInt64(&c.hits, 1) }
func (c *counter) CacheMiss() { atomic.AddInt64(&c.misses, 1) }

func template() *interaction.Interaction {
	return interaction.NewRES(pdg.NuMu, 0, interaction.FreeNucleon(pdg.Proton), true, baryonres.P33_1232)
}

func TestSigmaPolynomial(t *testing.T) {
	ctx := context.Background()
	integ := NewIntegrator(polyXSec{}, WithIntegrationLimits(boxLimits{}))

	// int_1^2 W * W^2/2 dW = 15/8
	s, err := integ.Sigma(ctx, template(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 15./8., s, 1e-12)

	s, err = integ.Sigma(ctx, template(), 2)
	require.NoError(t, err)
	assert.InDelta(t, 15./4., s, 1e-12)

	s, err = integ.Sigma(ctx, template(), 0.4)
	require.NoError(t, err)
	assert.Zero(t, s)

	cut := NewIntegrator(polyXSec{}, WithIntegrationLimits(boxLimits{}), WithWcut(1.5), WithOrders(4, 6, 6))
	s, err = cut.Sigma(ctx, template(), 1)
	require.NoError(t, err)
	assert.InDelta(t, (math.Pow(1.5, 4)-1)/8, s, 1e-12)

	empty := NewIntegrator(polyXSec{}, WithIntegrationLimits(boxLimits{}), WithWcut(0.9))
	s, err = empty.Sigma(ctx, template(), 1)
	require.NoError(t, err)
	assert.Zero(t, s)
}

func TestSigmaDoesNotModifyTemplate(t *testing.T) {
	in := template()
	before := *in
	_, err := NewIntegrator(polyXSec{}, WithIntegrationLimits(boxLimits{})).Sigma(context.Background(), in, 1)
	require.NoError(t, err)
	assert.Equal(t, before, *in)
}

func TestSumResonances(t *testing.T) {
	sc := NewScanner(NewIntegrator(polyXSec{}, WithIntegrationLimits(boxLimits{})))
	resonances := []baryonres.Resonance{baryonres.P33_1232, baryonres.S11_1535, baryonres.D13_1520}
	byRes, err := sc.ScanResonances(context.Background(), template(), resonances, []float64{1, 1})
	require.NoError(t, err)

	sum := SumResonances(byRes, resonances)
	require.Len(t, sum, 2)
	for _, s := range sum {
		assert.InDelta(t, 15./8.*(1+2+3), s, 1e-11)
	}
	assert.Nil(t, SumResonances(byRes, nil))
}

func TestSigmaCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewIntegrator(polyXSec{}, WithIntegrationLimits(boxLimits{})).Sigma(ctx, template(), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanOrderAndCache(t *testing.T) {
	ctx := context.Background()
	var calls int64
	obs := &counter{}
	mem := cache.NewMemory()
	integ := NewIntegrator(polyXSec{calls: &calls}, WithIntegrationLimits(boxLimits{}))
	sc := NewScanner(integ, WithWorkers(3), WithCache(mem, time.Minute, "test"), WithCacheObserver(obs))

	energies := []float64{1, 2, 3, 4, 5, 6, 7}
	pts, err := sc.Scan(ctx, template(), energies)
	require.NoError(t, err)
	require.Len(t, pts, len(energies))
	for i, p := range pts {
		assert.Equal(t, energies[i], p.E)
		assert.InDelta(t, 15./8.*energies[i], p.Sigma, 1e-10)
		assert.False(t, p.Cached)
		assert.Equal(t, "P33(1232)", p.Name)
	}
	first := atomic.LoadInt64(&calls)
	assert.Equal(t, len(energies), mem.Len())

	again, err := sc.Scan(ctx, template(), energies)
	require.NoError(t, err)
	for i, p := range again {
		assert.True(t, p.Cached)
		assert.Equal(t, pts[i].Sigma, p.Sigma)
	}
	assert.Equal(t, first, atomic.LoadInt64(&calls))
	assert.EqualValues(t, len(energies), atomic.LoadInt64(&obs.hits))
	assert.EqualValues(t, len(energies), atomic.LoadInt64(&obs.misses))

	// a different namespace does not share entries
	other := NewScanner(integ, WithCache(mem, time.Minute, "other"))
	pts, err = other.Scan(ctx, template(), energies[:1])
	require.NoError(t, err)
	assert.False(t, pts[0].Cached)
}

func TestScanResonances(t *testing.T) {
	sc := NewScanner(NewIntegrator(polyXSec{}, WithIntegrationLimits(boxLimits{})), WithWorkers(0))
	out, err := sc.ScanResonances(context.Background(), template(),
		[]baryonres.Resonance{baryonres.P33_1232, baryonres.S11_1535}, []float64{1, 2})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.InDelta(t, 2*15./8.*2, out[baryonres.S11_1535][1].Sigma, 1e-10)
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sc := NewScanner(NewIntegrator(polyXSec{}, WithIntegrationLimits(boxLimits{})))
	_, err := sc.Scan(ctx, template(), []float64{1, 2, 3})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSigmaWithResonanceModel(t *testing.T) {
	pool, err := config.DefaultPool()
	require.NoError(t, err)
	x := xsec.New()
	require.NoError(t, x.ConfigureNamed("Default", catalog.NewFactory(pool, catalog.Options{})))

	integ := NewIntegrator(x)
	low, err := integ.Sigma(context.Background(), template(), 0.5)
	require.NoError(t, err)
	high, err := integ.Sigma(context.Background(), template(), 1.5)
	require.NoError(t, err)

	assert.False(t, math.IsNaN(high))
	assert.Greater(t, low, 0.0)
	assert.Greater(t, high, low)
	assert.Less(t, pdg.ToCm2(high), 1e-36)
}
