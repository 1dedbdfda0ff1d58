// Package httpapi serves the chat, voice and document endpoints over HTTP
// using gin.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driving"
	"github.com/lillianfidler/churchill-falls-assistant/internal/logger"
)

// Default server settings.
const (
	DefaultPort              = 3001
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 15 * time.Second
)

// Ports holds the services the HTTP API drives.
type Ports struct {
	Chat      driving.ChatService
	Voice     driving.VoiceService
	Documents driving.DocumentService

	// Search is optional. Without it /api/search is not routed.
	Search driving.SearchService
}

// Validate checks that all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Voice == nil {
		return ErrMissingVoiceService
	}
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	return nil
}

// Config configures the HTTP server.
type Config struct {
	Port           int
	AllowedOrigins []string

	// RateLimitRPS and RateLimitBurst bound chat requests per client IP.
	// A non-positive RPS disables the limiter.
	RateLimitRPS   float64
	RateLimitBurst int

	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration

	// VoiceID is reported, abbreviated, by /api/voice-status.
	VoiceID string

	// Model and Version are reported by /api/health.
	Model   string
	Version string
}

// Server is the HTTP API.
type Server struct {
	ports  *Ports
	cfg    Config
	engine *gin.Engine
}

// NewServer builds the router for the given ports.
func NewServer(ports *Ports, cfg Config) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		ports:  ports,
		cfg:    cfg,
		engine: gin.New(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return ":" + strconv.Itoa(s.cfg.Port)
}

func (s *Server) setupMiddleware() {
	s.engine.Use(Recovery())
	s.engine.Use(RequestID())
	s.engine.Use(AccessLog())
	s.engine.Use(Metrics())
	s.engine.Use(CORS(s.cfg.AllowedOrigins))
}

func (s *Server) setupRoutes() {
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	api.GET("/health", s.health)
	api.GET("/voice-status", s.voiceStatus)
	api.GET("/documents", s.listDocuments)
	api.GET("/documents/:name", s.getDocument)
	if s.ports.Search != nil {
		api.GET("/search", s.search)
	}

	limited := api.Group("")
	limited.Use(RateLimit(NewIPLimiter(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst)))
	limited.POST("/chat", s.chat)
	limited.POST("/voice-chat", s.voiceChat)
}

// Run listens on the configured port until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
