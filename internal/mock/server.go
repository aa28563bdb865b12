// Package mock runs a development backend that answers the console's
// requests, records frames and lists them back.
package mock

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/studiowebux/snmpconsole/internal/agent"
	"github.com/studiowebux/snmpconsole/internal/analytics"
	"github.com/studiowebux/snmpconsole/internal/history"
)

// Server represents the stub backend HTTP server
type Server struct {
	config     *Config
	performer  agent.Performer
	history    *history.Manager
	stats      *analytics.Manager
	log        logrus.FieldLogger
	router     *gin.Engine
	httpServer *http.Server
}

// NewServer creates a backend that performs requests with performer and
// records frames in hist
func NewServer(cfg *Config, performer agent.Performer, hist *history.Manager, log logrus.FieldLogger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Port == 0 {
		cfg.Port = 5000
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:    cfg,
		performer: performer,
		history:   hist,
		stats:     analytics.NewManager(hist.DB()),
		log:       log,
		router:    gin.New(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              cfg.Address(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.POST("/snmp", s.handleSNMP)
		api.GET("/history", s.handleHistory)
		api.DELETE("/history", s.handleClearHistory)
		api.DELETE("/history/:id", s.handleDeleteFrame)
		api.GET("/stats", s.handleStats)
		api.GET("/ping", s.handlePing)
	}

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/health", s.handleHealth)
		v1.GET("/version", s.handleVersion)
		v1.GET("/db-ping", s.handleDBPing)
	}
}

// Serve listens until Stop is called
func (s *Server) Serve() error {
	s.log.Infof("Starting backend on %s", s.GetAddress())

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("backend server error: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server, waiting for in-flight requests
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("backend forced to shutdown: %w", err)
	}

	s.log.Info("Backend stopped")
	return nil
}

// GetRouter returns the gin engine, used by tests to serve requests in-process
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// GetAddress returns the server address
func (s *Server) GetAddress() string {
	return "http://" + s.config.Address()
}
