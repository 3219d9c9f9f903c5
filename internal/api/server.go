package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lockuplabs/token-lockup-service/internal/config"
	"github.com/lockuplabs/token-lockup-service/internal/observability/tracing"
	"github.com/lockuplabs/token-lockup-service/internal/services"
	"github.com/rs/zerolog/log"
)

// Server exposes the lockup operations as a JSON HTTP API. Authentication is
// an external concern; the caller principal arrives in the X-Principal header
// and is only checked against the stored roles.
type Server struct {
	httpServer *http.Server
	service    *services.Service
}

func New(cfg *config.ApiConfig, service *services.Service) *Server {
	s := &Server{service: service}

	r := chi.NewRouter()
	r.Use(tracing.Middleware)
	r.Route("/v1/lockups", func(r chi.Router) {
		r.Post("/", s.initializeLockup)
		r.Route("/{lockupID}", func(r chi.Router) {
			r.Get("/", s.getLockup)
			r.Put("/admin", s.updateAdmin)
			r.Put("/owner", s.updateOwner)
			r.Get("/schedule", s.getSchedule)
			r.Put("/schedule", s.setSchedule)
			r.Post("/claim", s.claim)
			r.Route("/unlocks/{sequence}", func(r chi.Router) {
				r.Get("/", s.getUnlock)
				r.Put("/", s.setUnlock)
				r.Delete("/", s.removeUnlock)
			})
		})
	})

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// Start blocks serving requests until the listener fails or is shut down.
func (s *Server) Start() error {
	log.Info().Str("addr", s.httpServer.Addr).Msg("starting API server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("API server failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
