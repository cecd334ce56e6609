// Package server exposes the REST surface: memory extraction, personality
// transform, model listing, and health.
package server

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"
	"github.com/rs/cors"

	"github.com/mnemoslabs/mnemos/pkg/memory"
	"github.com/mnemoslabs/mnemos/pkg/personality"
)

const (
	relevantMemoriesLimit = 5
	recentFactsLimit      = 10
)

// ModelLister is the slice of the generation client the /models debug
// route needs.
type ModelLister interface {
	ListModels(ctx context.Context) (string, error)
}

type Server struct {
	logger    *log.Logger
	extractor *memory.Extractor
	store     *memory.Store
	engine    *personality.Engine
	models    ModelLister
}

type Config struct {
	Logger    *log.Logger
	Extractor *memory.Extractor
	Store     *memory.Store
	Engine    *personality.Engine
	Models    ModelLister
}

func New(cfg Config) *Server {
	return &Server{
		logger:    cfg.Logger,
		extractor: cfg.Extractor,
		store:     cfg.Store,
		engine:    cfg.Engine,
		models:    cfg.Models,
	}
}

// Router builds the HTTP handler with CORS applied.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()

	router.Get("/health", s.handleHealth)
	router.Post("/memory/extract", s.handleExtract)
	router.Post("/personality/transform", s.handleTransform)
	router.Get("/models", s.handleModels)

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}
