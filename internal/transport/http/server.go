package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"calmcast/internal/bundle"
	"calmcast/internal/feature"
	"calmcast/internal/tips"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// Predictor is the serving surface the predict handler needs.
type Predictor interface {
	Predict(c feature.CheckIn) (float64, error)
	Manifest() feature.Manifest
	Version() string
}

// TipProvider is the surface of the tip service the tip handlers use.
type TipProvider interface {
	SingleTip(ctx context.Context, req tips.TipRequest) string
	BatchTips(ctx context.Context, req tips.TipRequest) []string
}

// ServerConfig describes the HTTP server dependencies.
type ServerConfig struct {
	Addr      string
	Predictor Predictor
	Tips      TipProvider
	Bank      *tips.Registry
	Bundle    *bundle.Bundle
	TipAPIKey string
}

// Server is the gin HTTP front. CORS is permissive on purpose; the
// original service was debugged cross-origin.
type Server struct {
	addr    string
	handler http.Handler
}

// NewServer wires the routes and middleware.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Predictor == nil {
		return nil, errors.New("http server requires a predictor")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	registerRoutes(router, cfg)

	return &Server{
		addr:    cfg.Addr,
		handler: cors.AllowAll().Handler(router),
	}, nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.addr
}

// Handler exposes the full middleware chain, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled or the listener fails, draining
// in-flight requests on shutdown.
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	srv := &http.Server{Addr: s.addr, Handler: s.handler}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
