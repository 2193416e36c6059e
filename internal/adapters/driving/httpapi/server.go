// Package httpapi exposes the upload, chat and collection operations
// as a JSON HTTP API for the browser frontend.
package httpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/groundchat/internal/core/ports/driving"
	"github.com/custodia-labs/groundchat/internal/logger"
)

// ServiceName identifies this API in the health response.
const ServiceName = "groundchat"

// Default timeouts. Uploads and LLM calls can be slow, so the write
// timeout is generous.
const (
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 120 * time.Second
)

// Config holds configuration for the HTTP API server.
type Config struct {
	// Host is the listen address. Empty binds all interfaces.
	Host string

	// Port is the listen port. Zero picks a random available port.
	Port int

	// CORSOrigins lists the origins allowed to call the API from a
	// browser. Empty disables cross-origin access.
	CORSOrigins []string

	// Version is reported by the health endpoint (default: dev).
	Version string
}

// Services aggregates the driving ports the API serves.
type Services struct {
	// Documents handles uploads.
	Documents driving.DocumentService

	// Chat answers grounded questions.
	Chat driving.ChatService

	// Collections lists and deletes collections.
	Collections driving.CollectionService
}

// Validate ensures all required services are set.
func (s *Services) Validate() error {
	if s.Documents == nil {
		return fmt.Errorf("httpapi: document service is required")
	}
	if s.Chat == nil {
		return fmt.Errorf("httpapi: chat service is required")
	}
	if s.Collections == nil {
		return fmt.Errorf("httpapi: collection service is required")
	}
	return nil
}

// Server serves the groundchat HTTP API.
type Server struct {
	mu       sync.Mutex
	cfg      Config
	services Services
	engine   *gin.Engine
	server   *http.Server
	listener net.Listener
}

// NewServer creates a new HTTP API server.
func NewServer(cfg Config, services Services) (*Server, error) {
	if err := services.Validate(); err != nil {
		return nil, err
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	s := &Server{
		cfg:      cfg,
		services: services,
	}
	s.engine = s.routes()

	return s, nil
}

// routes builds the gin engine with middleware and all API routes.
func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(), corsMiddleware(s.cfg.CORSOrigins))

	api := engine.Group("/api")
	{
		api.GET("/", s.handleHealth)
		api.POST("/upload", s.handleUpload)
		api.POST("/chat", s.handleChat)
		api.GET("/collections", s.handleListCollections)
		api.DELETE("/collections/:id", s.handleDeleteCollection)
	}

	return engine
}

// Handler returns the HTTP handler serving the API. Exposed so tests
// can drive the routes without a listener.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start begins serving on the configured address. It returns once the
// listener is bound; serving continues on a background goroutine.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return fmt.Errorf("httpapi: server already started")
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	s.server = &http.Server{
		Handler:      s.engine,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the server, letting in-flight requests
// finish.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the address the server is listening on, or the
// configured address when not started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
}

// Port returns the port the server is listening on. Useful when the
// configured port was 0.
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		if tcpAddr, ok := s.listener.Addr().(*net.TCPAddr); ok {
			return tcpAddr.Port
		}
	}
	return s.cfg.Port
}
