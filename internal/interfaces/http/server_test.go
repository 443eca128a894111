package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/resxsec/internal/algo"
	"github.com/sawpanic/resxsec/internal/baryonres"
	"github.com/sawpanic/resxsec/internal/catalog"
	"github.com/sawpanic/resxsec/internal/config"
	"github.com/sawpanic/resxsec/internal/metrics"
	"github.com/sawpanic/resxsec/internal/xsec"
)

func testServer(t *testing.T, cfg ServerConfig) (*Server, *metrics.Registry) {
	t.Helper()
	pool, err := config.DefaultPool()
	require.NoError(t, err)
	m := metrics.NewRegistry()
	x := xsec.New(xsec.WithObserver(m))
	require.NoError(t, x.ConfigureNamed(algo.DefaultParamSet, catalog.NewFactory(pool, catalog.Options{})))
	return NewServer(cfg, x, m), m
}

func noLimit() ServerConfig {
	cfg := DefaultServerConfig()
	cfg.RPS = 0
	return cfg
}

func get(t *testing.T, s *Server, target string, out any) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := testServer(t, noLimit())

	var resp HealthResponse
	rec := get(t, s, "/health", &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Len(t, rec.Header().Get("X-Request-ID"), 8)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ReinSehgalRESPXSec/Default", resp.Params.ParamSet)
	assert.True(t, resp.Params.WeightBW)
	assert.Equal(t, "BaryonResDataPDG", resp.Params.DataSetID.Name)
	assert.NotEmpty(t, resp.Params.BreitWigner.Name)
	assert.Empty(t, resp.RateLimit)
}

func TestHealthReportsRateLimitBuckets(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.RPS, cfg.Burst = 5, 10
	s, _ := testServer(t, cfg)

	get(t, s, "/health", nil)
	var resp HealthResponse
	get(t, s, "/health", &resp)

	require.Len(t, resp.RateLimit, 1)
	bucket := resp.RateLimit[0]
	assert.Equal(t, "192.0.2.1", bucket.Client)
	assert.Equal(t, 5.0, bucket.RPS)
	assert.Equal(t, 10, bucket.Burst)
	assert.Less(t, bucket.TokensAvailable, 10.0)
}

func TestXSecDefaults(t *testing.T) {
	s, m := testServer(t, noLimit())

	var resp XSecResponse
	rec := get(t, s, "/xsec", &resp)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Greater(t, resp.XSec, 0.0)
	assert.InEpsilon(t, resp.XSec*0.389379366e-27, resp.XSecCm2, 1e-12)
	assert.Equal(t, "WQ2fE", resp.PhaseSpace)
	assert.Contains(t, resp.Interaction, "res:P33(1232)")
	assert.Equal(t, 1, testutilCount(t, m, "resxsec_evaluations_total"))
}

func TestXSecQueryParameters(t *testing.T) {
	s, _ := testServer(t, noLimit())

	var free, bound XSecResponse
	get(t, s, "/xsec?E=2&W=1.3&Q2=0.4&nucleon=2112&res=S11_1535&nc=true", &free)
	get(t, s, "/xsec?E=2&W=1.3&Q2=0.4&nucleon=2112&res=S11_1535&nc=true&Z=26&N=30", &bound)

	require.Greater(t, free.XSec, 0.0)
	assert.InEpsilon(t, 30*free.XSec, bound.XSec, 1e-12)

	var xy XSecResponse
	get(t, s, "/xsec?E=2&W=1.3&Q2=0.4&kps=xyfE", &xy)
	assert.Equal(t, "xyfE", xy.PhaseSpace)
}

func TestXSecGateRejection(t *testing.T) {
	s, m := testServer(t, noLimit())

	var resp XSecResponse
	rec := get(t, s, "/xsec?probe=11", &resp)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, resp.XSec)
	assert.Equal(t, 1, testutilCount(t, m, "resxsec_gate_rejections_total"))
}

func TestXSecBadRequests(t *testing.T) {
	s, _ := testServer(t, noLimit())

	testCases := []string{
		"/xsec?E=abc",
		"/xsec?Z=x",
		"/xsec?nc=maybe",
		"/xsec?res=X11(1000)",
		"/xsec?kps=bogus",
		"/xsec?E=-1",
	}
	for _, target := range testCases {
		t.Run(target, func(t *testing.T) {
			var resp ErrorResponse
			rec := get(t, s, target, &resp)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, resp.Code)
			assert.Equal(t, rec.Header().Get("X-Request-ID"), resp.RequestID)
		})
	}
}

func TestXSecNonFinite(t *testing.T) {
	s, _ := testServer(t, noLimit())

	var resp ErrorResponse
	rec := get(t, s, "/xsec?Q2=-0.3&skip_kine=true", &resp)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "non_finite_result", resp.Code)

	rec = get(t, s, "/xsec?Q2=-0.3&skip_kine=true&explain=true", &resp)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "json_encoding_failed", resp.Code)
}

func TestExplain(t *testing.T) {
	s, _ := testServer(t, noLimit())

	var plain XSecResponse
	get(t, s, "/xsec?E=1.5&W=1.25&Q2=0.2", &plain)

	var resp ExplainResponse
	rec := get(t, s, "/xsec?E=1.5&W=1.25&Q2=0.2&explain=true", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, plain.XSec, resp.Trace.Result)
	assert.Equal(t, "CC", resp.Trace.Variant)
	assert.Empty(t, resp.Trace.Rejected)

	get(t, s, "/xsec?W=3&explain=true", &resp)
	assert.Equal(t, xsec.GateKinematics, resp.Trace.Rejected)
}

func TestResonances(t *testing.T) {
	s, _ := testServer(t, noLimit())

	var resp ResonancesResponse
	rec := get(t, s, "/resonances", &resp)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, len(baryonres.All()), resp.Count)
	delta := resp.Resonances[0]
	assert.Equal(t, "P33(1232)", delta.Name)
	assert.Equal(t, 1.232, delta.Mass)
	assert.Equal(t, 3, delta.TwiceIso)
	assert.Equal(t, 1, delta.L)
	assert.True(t, delta.Available)
}

func TestNotFound(t *testing.T) {
	s, _ := testServer(t, noLimit())

	var resp ErrorResponse
	rec := get(t, s, "/nope", &resp)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "endpoint_not_found", resp.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.RPS, cfg.Burst = 0.001, 2
	s, _ := testServer(t, cfg)

	assert.Equal(t, http.StatusOK, get(t, s, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, get(t, s, "/health", nil).Code)

	var resp ErrorResponse
	rec := get(t, s, "/health", &resp)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate_limited", resp.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	other := httptest.NewRequest(http.MethodGet, "/health", nil)
	other.RemoteAddr = "198.51.100.7:4000"
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, other)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := testServer(t, noLimit())
	get(t, s, "/xsec", nil)

	rec := get(t, s, "/metrics", nil)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body), `resxsec_evaluations_total{channel="CC"} 1`)
}

// testutilCount sums every sample of the named counter family
func testutilCount(t *testing.T, m *metrics.Registry, name string) int {
	t.Helper()
	families, err := m.Gatherer().Gather()
	require.NoError(t, err)
	var n float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			n += metric.GetCounter().GetValue()
		}
	}
	return int(n)
}
