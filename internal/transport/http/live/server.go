// Package livehttp exposes the engine's snapshot and intents over HTTP. It is
// the presentation adapter: it renders nothing and holds no trading state.
package livehttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bfuture/internal/logger"

	"github.com/gin-gonic/gin"
)

// Server serves the /api/live routes.
type Server struct {
	addr   string
	router *gin.Engine
}

// ServerConfig describes the HTTP server dependencies.
type ServerConfig struct {
	Addr   string
	Engine EngineAPI
	Events EventSource // optional journal read access
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Engine == nil {
		return nil, errors.New("live http server requires an engine")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":9991"
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	NewRouter(cfg.Engine, cfg.Events).Register(router.Group("/api/live"))

	return &Server{addr: cfg.Addr, router: router}, nil
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("live http server listening on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	}
}

// requestLogger records manual API calls for traceability.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		client := c.ClientIP()
		c.Next()
		logger.Debugf("http %s %s from %s status=%d dur=%s",
			method, path, client, c.Writer.Status(), time.Since(start).Truncate(time.Millisecond))
	}
}
