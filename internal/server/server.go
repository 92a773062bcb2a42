// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package server is a local stand-in for the analysis service. It replays
// fixture responses so the client can be exercised without the real backend,
// including slow and failing queries.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	msgNoQuery     = "No search query provided."
	msgFetchFailed = "Failed to fetch or process data"
)

// Server serves POST /api/variable and GET /api/users from fixtures.
type Server struct {
	engine   *gin.Engine
	fixtures Fixtures
	log      *zap.Logger
}

// New builds the router. A nil logger disables request logging.
func New(fx Fixtures, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{engine: gin.New(), fixtures: fx, log: log}
	s.engine.Use(requestID(), requestLogger(log), gin.Recovery())

	api := s.engine.Group("/api")
	{
		api.POST("/variable", s.analyze)
		api.GET("/users", s.users)
	}
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("stub analysis service listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down stub analysis service")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

type analyzeRequest struct {
	SearchQuery string `json:"searchQuery"`
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SearchQuery == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgNoQuery})
		return
	}

	fx, ok := s.fixtures.Lookup(req.SearchQuery)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "no fixture for query",
			"message": msgFetchFailed,
		})
		return
	}

	if fx.Delay > 0 {
		select {
		case <-time.After(fx.Delay):
		case <-c.Request.Context().Done():
			c.Abort()
			return
		}
	}

	status := fx.Status
	if status == 0 {
		status = http.StatusOK
	}
	body := fx.Response
	if body == nil {
		body = map[string]any{}
	}
	c.JSON(status, body)
}

func (s *Server) users(c *gin.Context) {
	users := s.fixtures.Users
	if users == nil {
		users = []any{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// requestID propagates X-Request-ID, generating one when the client sent none.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
