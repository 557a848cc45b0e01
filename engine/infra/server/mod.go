package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flowgate/flowgate/engine/bridge"
	"github.com/flowgate/flowgate/engine/mcp"
	wfrouter "github.com/flowgate/flowgate/engine/workflow/router"
	"github.com/flowgate/flowgate/pkg/logger"
	"github.com/gin-gonic/gin"
)

const mcpEndpointPath = "/mcp"

// Server hosts the HTTP and MCP surfaces of the bridge.
type Server struct {
	config *Config
	bridge *bridge.Service
	log    logger.Logger
	router *gin.Engine
}

func NewServer(config *Config, svc *bridge.Service, log logger.Logger) *Server {
	return &Server{config: config, bridge: svc, log: log}
}

func (s *Server) buildRouter() {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware(s.log))
	r.Use(LoggerMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiBase := r.Group("/api/v0")
	wfrouter.Register(apiBase, s.bridge)

	mcpHandler := mcp.NewServer(s.bridge).Handler(mcpEndpointPath)
	r.Any(mcpEndpointPath, gin.WrapH(mcpHandler))

	s.router = r
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.buildRouter()
	srv := &http.Server{
		Addr:         s.config.FullAddress(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting HTTP server", "address", fmt.Sprintf("http://%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	case <-quit:
	}
	s.log.Debug("Received shutdown signal, initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("Server shutdown completed successfully")
	return nil
}
