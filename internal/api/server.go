// Package api exposes the pipeline over HTTP: triggering ingestion
// cycles, scoring the stored pool against a job description, and
// listing stored candidates.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/models"
	"github.com/talentsift/talentsift/internal/pipeline"
	"github.com/talentsift/talentsift/internal/ranking"
	"github.com/talentsift/talentsift/internal/scoring"
	"github.com/talentsift/talentsift/internal/store"
)

// Server handles HTTP requests.
type Server struct {
	orch   *pipeline.Orchestrator
	store  *store.Store
	engine *scoring.Engine
	log    *zap.Logger
}

func NewServer(orch *pipeline.Orchestrator, st *store.Store, engine *scoring.Engine, log *zap.Logger) *Server {
	return &Server{orch: orch, store: st, engine: engine, log: log}
}

// Router returns the HTTP router.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /ingest/run", s.handleIngestRun)
	mux.HandleFunc("POST /score", s.handleScore)
	mux.HandleFunc("GET /candidates", s.handleCandidates)

	return s.loggingMiddleware(mux)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "talentsift",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"POST /ingest/run": "Run one ingestion cycle now",
			"POST /score":      "Score stored candidates against a job description",
			"GET /candidates":  "List stored candidate profiles",
			"GET /health":      "Health check",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleIngestRun triggers a single ingestion cycle and reports the
// per-attachment outcomes.
func (s *Server) handleIngestRun(w http.ResponseWriter, r *http.Request) {
	if s.orch == nil {
		s.respondError(w, http.StatusServiceUnavailable, "no ingestion source configured")
		return
	}

	outcomes, err := s.orch.RunCycle(r.Context())
	if err != nil {
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	type outcomeView struct {
		Status   string `json:"status"`
		Identity string `json:"identity,omitempty"`
		ItemID   string `json:"item_id"`
		Filename string `json:"filename"`
		Error    string `json:"error,omitempty"`
	}
	views := make([]outcomeView, 0, len(outcomes))
	for _, o := range outcomes {
		v := outcomeView{
			Status:   string(o.Status),
			Identity: o.Identity,
			ItemID:   o.ItemID,
			Filename: o.Filename,
		}
		if o.Err != nil {
			v.Error = o.Err.Error()
		}
		views = append(views, v)
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"processed": len(views),
		"outcomes":  views,
	})
}

type scoreRequest struct {
	Role             string   `json:"role"`
	Skills           []string `json:"skills"`
	ExperienceYears  int      `json:"experience_years"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	Keywords         []string `json:"keywords"`
	MinScore         float64  `json:"min_score"`
}

// handleScore scores every stored candidate against the submitted job
// description and returns the ranked results, optionally filtered by a
// minimum final score.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	jd, err := models.NewJobDescription(req.Role, req.Skills, req.ExperienceYears,
		req.Responsibilities, req.Requirements, req.Keywords)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	profiles, err := s.store.List()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(profiles) == 0 {
		s.respondJSON(w, http.StatusOK, map[string]interface{}{
			"job_description": jd,
			"results":         []models.ScoreRecord{},
		})
		return
	}

	records := make([]models.ScoreRecord, 0, len(profiles))
	for _, p := range profiles {
		records = append(records, s.engine.Score(r.Context(), p, jd))
	}
	ranked := ranking.Rank(records)

	if req.MinScore > 0 {
		filtered := ranked[:0]
		for _, rec := range ranked {
			if rec.FinalScore >= req.MinScore {
				filtered = append(filtered, rec)
			}
		}
		ranked = filtered
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"job_description": jd,
		"results":         ranked,
	})
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.store.List()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if profiles == nil {
		profiles = []models.CandidateProfile{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":      len(profiles),
		"candidates": profiles,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}
