// Package api exposes batch sampling over HTTP. It is a thin shell around
// the generator facade: one request maps to one engine lifecycle
// (create, configure, generate, destroy) against the configured backend.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/montanaflynn/stats"
	"github.com/rs/zerolog"

	"devrand/domain/rng"
	"devrand/internal/apperr"
	"devrand/internal/config"
	"devrand/ports"
)

// Server routes sampling requests onto a backend.
type Server struct {
	router   *chi.Mux
	backend  ports.Backend
	sampling config.SamplingConfig
	log      zerolog.Logger
}

// NewServer builds a Server with its routes registered.
func NewServer(backend ports.Backend, sampling config.SamplingConfig, log zerolog.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		backend:  backend,
		sampling: sampling,
		log:      log,
	}
	s.router.Use(middleware.Recoverer)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/v1/samples/uniform-int", s.handleUniformInt)
	s.router.Post("/v1/samples/uniform", s.handleUniform)
	s.router.Post("/v1/samples/normal", s.handleNormal)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUniformInt(w http.ResponseWriter, r *http.Request) {
	req, g, ok := s.openGenerator(w, r)
	if !ok {
		return
	}
	defer s.closeGenerator(g)

	out := make([]uint32, req.Count)
	if err := rng.NewUniformInt().Apply(g, out); err != nil {
		s.writeBackendError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, UintSampleResponse{
		Engine:  string(g.Kind()),
		Count:   len(out),
		Samples: out,
	})
}

func (s *Server) handleUniform(w http.ResponseWriter, r *http.Request) {
	req, g, ok := s.openGenerator(w, r)
	if !ok {
		return
	}
	defer s.closeGenerator(g)

	out := make([]float64, req.Count)
	if err := rng.NewUniformReal[float64]().Apply(g, out); err != nil {
		s.writeBackendError(w, err)
		return
	}
	s.writeSamples(w, g, out)
}

func (s *Server) handleNormal(w http.ResponseWriter, r *http.Request) {
	req, g, ok := s.openGenerator(w, r)
	if !ok {
		return
	}
	defer s.closeGenerator(g)

	dist := rng.NewNormal[float64]()
	params := dist.Param()
	if req.Mean != nil {
		params.Mean = *req.Mean
	}
	if req.StdDev != nil {
		params.StdDev = *req.StdDev
	}
	dist.SetParam(params)

	out := make([]float64, req.Count)
	if err := dist.Apply(g, out); err != nil {
		s.writeBackendError(w, err)
		return
	}
	s.writeSamples(w, g, out)
}

// openGenerator decodes and validates the request body, then constructs
// the engine it names. On failure the error response is already written.
func (s *Server) openGenerator(w http.ResponseWriter, r *http.Request) (*SampleRequest, *rng.Generator, bool) {
	var req SampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, apperr.InvalidInput("malformed request body"))
		return nil, nil, false
	}
	if req.Count < 1 {
		s.writeError(w, http.StatusBadRequest, apperr.InvalidInput("count must be positive"))
		return nil, nil, false
	}
	if req.Count > s.sampling.MaxCount {
		s.writeError(w, http.StatusBadRequest, apperr.InvalidInput("count exceeds configured maximum"))
		return nil, nil, false
	}

	kind := s.sampling.DefaultEngine
	if req.Engine != "" {
		kind = rng.Kind(req.Engine)
	}
	opts := []rng.Option{rng.WithOffset(req.Offset)}
	if req.Seed != nil {
		opts = append(opts, rng.WithSeed(*req.Seed))
	}

	g, err := rng.NewGenerator(kind, s.backend, opts...)
	if err != nil {
		var rngErr *rng.Error
		if errors.As(err, &rngErr) {
			s.writeBackendError(w, err)
		} else {
			s.writeError(w, http.StatusBadRequest, apperr.InvalidInput(err.Error()))
		}
		return nil, nil, false
	}
	return &req, g, true
}

// closeGenerator releases an engine, recording release failures instead of
// surfacing them: the response is already committed by the time the
// resource is torn down.
func (s *Server) closeGenerator(g *rng.Generator) {
	if err := g.Close(); err != nil {
		s.log.Warn().Err(err).Str("engine", string(g.Kind())).Msg("generator release failed")
	}
}

func (s *Server) writeSamples(w http.ResponseWriter, g *rng.Generator, samples []float64) {
	summary, err := summarize(samples)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, apperr.Wrap(err, "summarizing samples"))
		return
	}
	s.writeJSON(w, http.StatusOK, SampleResponse{
		Engine:  string(g.Kind()),
		Count:   len(samples),
		Samples: samples,
		Summary: summary,
	})
}

func summarize(samples []float64) (SampleSummary, error) {
	data := stats.Float64Data(samples)
	mean, err := data.Mean()
	if err != nil {
		return SampleSummary{}, err
	}
	sd, err := data.StandardDeviation()
	if err != nil {
		return SampleSummary{}, err
	}
	min, err := data.Min()
	if err != nil {
		return SampleSummary{}, err
	}
	max, err := data.Max()
	if err != nil {
		return SampleSummary{}, err
	}
	return SampleSummary{Mean: mean, StdDev: sd, Min: min, Max: max}, nil
}

func (s *Server) writeBackendError(w http.ResponseWriter, err error) {
	s.log.Error().Err(err).Msg("backend call failed")
	s.writeError(w, http.StatusBadGateway, apperr.New(apperr.CodeBackendError, err.Error()))
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, ErrorResponse{Code: apperr.Code(err), Message: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("encoding response")
	}
}
