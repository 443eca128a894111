package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sawpanic/resxsec/internal/baryonres"
	"github.com/sawpanic/resxsec/internal/interaction"
	"github.com/sawpanic/resxsec/internal/kinematics"
	"github.com/sawpanic/resxsec/internal/pdg"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(s.started).Seconds(),
		Params:    s.eval.Parameters(),
	}
	if s.limiter != nil {
		resp.RateLimit = s.limiter.Stats()
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// evaluate handles GET /xsec. Query parameters mirror the eval command flags;
// anything omitted takes its value from interaction.DefaultRequest.
func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req, kps, explain, err := parseQuery(q)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_parameter", err.Error())
		return
	}
	in, err := req.Build()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_interaction", err.Error())
		return
	}

	paramSet := s.eval.Parameters().ParamSet
	if explain {
		writeJSON(w, r, http.StatusOK, ExplainResponse{ParamSet: paramSet, Trace: s.eval.Explain(in, kps)})
		return
	}

	v := s.eval.XSec(in, kps)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		writeError(w, r, http.StatusUnprocessableEntity, "non_finite_result",
			"The cross section is not finite at this point; enable the kinematics check")
		return
	}
	writeJSON(w, r, http.StatusOK, XSecResponse{
		Interaction: in.String(),
		PhaseSpace:  kps.String(),
		ParamSet:    paramSet,
		XSec:        v,
		XSecCm2:     pdg.ToCm2(v),
	})
}

func (s *Server) resonances(w http.ResponseWriter, r *http.Request) {
	ds := s.eval.Parameters().DataSet
	resp := ResonancesResponse{Resonances: make([]ResonanceInfo, 0, len(baryonres.All()))}
	for _, res := range baryonres.All() {
		info := ResonanceInfo{
			Name:     res.String(),
			L:        res.OrbitalAngularMom(),
			TwiceIso: res.Isospin(),
		}
		if ds != nil {
			if rec, err := ds.Lookup(res); err == nil {
				info.Mass, info.Width, info.Norm, info.Index = rec.Mass, rec.Width, rec.Norm, rec.Index
				info.Available = true
			}
		}
		resp.Resonances = append(resp.Resonances, info)
	}
	resp.Count = len(resp.Resonances)
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "endpoint_not_found",
		"The requested endpoint does not exist")
}

func parseQuery(q url.Values) (req interaction.Request, kps kinematics.PhaseSpace, explain bool, err error) {
	req = interaction.DefaultRequest()
	kps = kinematics.WQ2fE

	ints := map[string]*int{"probe": &req.Probe, "Z": &req.Z, "N": &req.N, "nucleon": &req.Nucleon}
	for key, dst := range ints {
		if raw := q.Get(key); raw != "" {
			if *dst, err = strconv.Atoi(raw); err != nil {
				return req, kps, false, fmt.Errorf("%s: %w", key, err)
			}
		}
	}
	floats := map[string]*float64{"E": &req.E, "W": &req.W, "Q2": &req.Q2}
	for key, dst := range floats {
		if raw := q.Get(key); raw != "" {
			if *dst, err = strconv.ParseFloat(raw, 64); err != nil {
				return req, kps, false, fmt.Errorf("%s: %w", key, err)
			}
		}
	}
	bools := map[string]*bool{
		"nc":           &req.NeutralCurrent,
		"free_nucleon": &req.FreeNucleon,
		"skip_process": &req.SkipProcess,
		"skip_kine":    &req.SkipKinematics,
		"explain":      &explain,
	}
	for key, dst := range bools {
		if raw := q.Get(key); raw != "" {
			if *dst, err = strconv.ParseBool(raw); err != nil {
				return req, kps, false, fmt.Errorf("%s: %w", key, err)
			}
		}
	}
	if raw := q.Get("res"); raw != "" {
		req.Resonance = raw
	}
	if raw := q.Get("kps"); raw != "" {
		if kps, err = kinematics.ParsePhaseSpace(raw); err != nil {
			return req, kps, false, err
		}
	}
	return req, kps, explain, nil
}

// writeJSON encodes data before writing so an encoding failure (a NaN in a
// trace, say) can still be reported with a proper status
func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		log.Warn().Err(err).Str("request_id", RequestID(r.Context())).Msg("JSON encoding failed")
		if status == http.StatusOK {
			writeError(w, r, http.StatusUnprocessableEntity, "json_encoding_failed", err.Error())
			return
		}
		http.Error(w, `{"error":"json_encoding_failed"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// writeError writes standardized error response
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, r, status, ErrorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		Code:      code,
		RequestID: RequestID(r.Context()),
		Timestamp: time.Now().UTC(),
	})
}
