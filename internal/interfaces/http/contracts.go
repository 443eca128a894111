package http

import (
	"time"

	"github.com/sawpanic/resxsec/internal/net/ratelimit"
	"github.com/sawpanic/resxsec/internal/xsec"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Uptime    float64         `json:"uptime_seconds"`
	Params    xsec.Parameters `json:"parameters"`
	// Per-client token buckets; absent when rate limiting is off
	RateLimit []ratelimit.ClientStats `json:"rate_limit,omitempty"`
}

// XSecResponse is the answer to GET /xsec
type XSecResponse struct {
	Interaction string  `json:"interaction"`
	PhaseSpace  string  `json:"phase_space"`
	ParamSet    string  `json:"param_set"`
	XSec        float64 `json:"xsec"`     // natural units
	XSecCm2     float64 `json:"xsec_cm2"` // GeV^-2 factor converted to cm^2
}

// ExplainResponse is the answer to GET /xsec?explain=true
type ExplainResponse struct {
	ParamSet string     `json:"param_set"`
	Trace    xsec.Trace `json:"trace"`
}

// ResonanceInfo is one row of GET /resonances
type ResonanceInfo struct {
	Name      string  `json:"name"`
	Mass      float64 `json:"mass"`
	Width     float64 `json:"width"`
	Norm      float64 `json:"bw_norm"`
	Index     int     `json:"res_index"`
	L         int     `json:"L"`
	TwiceIso  int     `json:"twice_isospin"`
	Available bool    `json:"available"`
}

// ResonancesResponse is the answer to GET /resonances
type ResonancesResponse struct {
	Resonances []ResonanceInfo `json:"resonances"`
	Count      int             `json:"count"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
