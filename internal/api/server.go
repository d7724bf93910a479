package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/callsight/internal/analyzer"
	"github.com/dgallion1/callsight/internal/config"
	"github.com/dgallion1/callsight/internal/docstore"
	"github.com/dgallion1/callsight/internal/pipeline"
)

// Completer is the slice of the inference client the finance handlers need.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (json.RawMessage, error)
}

// Server is the HTTP API server for callsight.
type Server struct {
	router chi.Router
	store  docstore.Store
	pipe   *pipeline.Pipeline
	llm    Completer
	client *analyzer.Client // may be nil in tests; only used for /stats/llm
	log    *slog.Logger
	cfg    config.Config

	// One analysis in flight per document id; concurrent re-analysis of the
	// same document would race on the store and hammer the rate limit.
	inflight sync.Map
}

// NewServer creates and configures the HTTP server.
func NewServer(store docstore.Store, pipe *pipeline.Pipeline, llm Completer, client *analyzer.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store:  store,
		pipe:   pipe,
		llm:    llm,
		client: client,
		log:    log,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(CORS)

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey))
		}

		r.Post("/upload", s.handleUpload)
		r.Post("/upload/file", s.handleUploadFile)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/extract-financials", s.handleExtractFinancials)

		r.Get("/documents", s.handleListDocuments)
		r.Delete("/delete/{docID}", s.handleDeleteDocument)
		r.Get("/export/{docID}", s.handleExport)
		r.Get("/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"healthy","service":"callsight"}`))
}

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.client == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model": s.client.Model(),
		"stats": s.client.Stats.SnapshotNow(),
	})
}
