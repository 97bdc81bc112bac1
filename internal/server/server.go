package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/lrklep/tale-of-light/internal/config"
	"github.com/lrklep/tale-of-light/internal/llm"
	"github.com/lrklep/tale-of-light/internal/prompt"
	"github.com/lrklep/tale-of-light/internal/types"
	"github.com/lrklep/tale-of-light/web"
)

type Server struct {
	router   *chi.Mux
	cfg      config.Config
	composer *prompt.Composer
	gen      llm.Generator
	logger   *slog.Logger
}

func NewServer(cfg config.Config, logger *slog.Logger) (*Server, error) {
	spec, err := prompt.LoadSpec(cfg.PersonaFile)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	s := &Server{
		router:   r,
		cfg:      cfg,
		composer: prompt.NewComposer(spec),
		gen:      newGenerator(cfg),
		logger:   logger,
	}
	s.routes()
	return s, nil
}

func newGenerator(cfg config.Config) llm.Generator {
	switch cfg.Provider {
	case "openai":
		return &llm.OpenAIClient{APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel}
	default:
		return &llm.GeminiClient{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL}
	}
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/chat", s.handleChat)
	s.router.Post("/api/generate-story", s.handleGenerateStory)
	// Frontend with index.html fallback for non-API paths
	s.router.Handle("/*", web.SPAHandler())
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, types.ErrorResponse{Error: msg, Status: "error"})
}

// writeGenerationError logs the raw provider failure and answers with a fixed
// user-safe message per category. Raw provider text never reaches the client.
func (s *Server) writeGenerationError(w http.ResponseWriter, err error, messages map[llm.Category]string, fallback string) {
	s.logger.Error("generation failed", "error", err)
	if errors.Is(err, llm.ErrNoCredential) {
		s.writeError(w, http.StatusInternalServerError, messages[llm.CategoryCredential])
		return
	}
	var perr *llm.ProviderError
	if errors.As(err, &perr) {
		if msg, ok := messages[perr.Category]; ok {
			s.writeError(w, http.StatusInternalServerError, msg)
			return
		}
	}
	s.writeError(w, http.StatusInternalServerError, fallback)
}
