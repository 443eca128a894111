package integrate

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/sawpanic/resxsec/internal/baryonres"
	"github.com/sawpanic/resxsec/internal/cache"
	"github.com/sawpanic/resxsec/internal/interaction"
)

// CacheObserver is told whether each scan point came from the cache
type CacheObserver interface {
	CacheHit()
	CacheMiss()
}

// Point is one scanned energy
type Point struct {
	Resonance baryonres.Resonance `json:"-"`
	Name      string              `json:"resonance"`
	E         float64             `json:"E"`
	Sigma     float64             `json:"sigma"`
	Cached    bool                `json:"cached"`
}

// Scanner evaluates Sigma over energy grids with a bounded worker pool
type Scanner struct {
	integ     *Integrator
	cache     cache.Cache
	ttl       time.Duration
	workers   int
	namespace string
	observer  CacheObserver
}

// ScannerOption customises a Scanner
type ScannerOption func(*Scanner)

// WithCache memoises points in c for ttl. namespace must identify everything
// that changes the result besides the interaction and the energy, such as
// the evaluator's parameter set.
func WithCache(c cache.Cache, ttl time.Duration, namespace string) ScannerOption {
	return func(s *Scanner) { s.cache, s.ttl, s.namespace = c, ttl, namespace }
}

// WithWorkers bounds the number of concurrent integrations
func WithWorkers(n int) ScannerOption {
	return func(s *Scanner) { s.workers = n }
}

// WithCacheObserver reports cache hits and misses
func WithCacheObserver(o CacheObserver) ScannerOption {
	return func(s *Scanner) { s.observer = o }
}

// NewScanner scans with integ
func NewScanner(integ *Integrator, opts ...ScannerOption) *Scanner {
	s := &Scanner{integ: integ, workers: 4}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = 1
	}
	return s
}

// Scan returns one Point per energy, in input order. The first failing point
// cancels the rest.
func (s *Scanner) Scan(ctx context.Context, template *interaction.Interaction, energies []float64) ([]Point, error) {
	out := make([]Point, len(energies))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, E := range energies {
		i, E := i, E
		g.Go(func() error {
			p, err := s.point(ctx, template, E)
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ScanResonances scans every resonance in turn and returns the points grouped
// by resonance
func (s *Scanner) ScanResonances(ctx context.Context, template *interaction.Interaction, resonances []baryonres.Resonance, energies []float64) (map[baryonres.Resonance][]Point, error) {
	out := make(map[baryonres.Resonance][]Point, len(resonances))
	for _, res := range resonances {
		c := template.Clone()
		c.Exclusive.Resonance = res
		pts, err := s.Scan(ctx, c, energies)
		if err != nil {
			return nil, err
		}
		out[res] = pts
	}
	return out, nil
}

// SumResonances adds the scans of resonances point by point. Every scan in
// byRes must cover the same energy grid.
func SumResonances(byRes map[baryonres.Resonance][]Point, resonances []baryonres.Resonance) []float64 {
	if len(resonances) == 0 {
		return nil
	}
	sum := make([]float64, len(byRes[resonances[0]]))
	for _, res := range resonances {
		for i, p := range byRes[res] {
			sum[i] += p.Sigma
		}
	}
	return sum
}

func (s *Scanner) point(ctx context.Context, template *interaction.Interaction, E float64) (Point, error) {
	res := template.Exclusive.Resonance
	p := Point{Resonance: res, Name: res.String(), E: E}

	var key string
	if s.cache != nil {
		key = cache.Key(s.namespace, template.String(), template.Flags.String(), strconv.FormatFloat(E, 'g', -1, 64))
		v, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			s.hit()
			p.Sigma, p.Cached = v, true
			return p, nil
		case !errors.Is(err, cache.ErrMiss):
			log.Warn().Err(err).Msg("Result cache read failed")
		}
		s.miss()
	}

	sigma, err := s.integ.Sigma(ctx, template, E)
	if err != nil {
		return Point{}, err
	}
	p.Sigma = sigma

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, sigma, s.ttl); err != nil {
			log.Warn().Err(err).Msg("Result cache write failed")
		}
	}
	return p, nil
}

func (s *Scanner) hit() {
	if s.observer != nil {
		s.observer.CacheHit()
	}
}

func (s *Scanner) miss() {
	if s.observer != nil {
		s.observer.CacheMiss()
	}
}
