package gateway

import (
	"context"
	"net/http"

	"stockgate/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server exposes the public API gateway.
type Server struct {
	identities IdentityStore
	history    HistoryStore
	quotes     QuoteFetcher
	healthy    func(ctx context.Context) bool
	logger     *zap.Logger
	engine     *gin.Engine
}

func NewServer(identities IdentityStore, history HistoryStore, quotes QuoteFetcher,
	healthy func(ctx context.Context) bool, logger *zap.Logger) *Server {
	s := &Server{
		identities: identities,
		history:    history,
		quotes:     quotes,
		healthy:    healthy,
		logger:     logger,
		engine:     gin.New(),
	}

	s.engine.Use(middleware.RequestLogger(logger), middleware.Recovery(logger))

	s.engine.POST("/token-auth", s.postTokenAuth)
	s.engine.GET("/healthz", s.getHealth)

	authed := s.engine.Group("/", RequireAuth(identities))
	authed.GET("/stock", s.getStock)
	authed.GET("/history", s.getHistory)
	authed.GET("/stats", RequireAdmin(), s.getStats)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) getHealth(c *gin.Context) {
	if s.healthy != nil && !s.healthy(c.Request.Context()) {
		c.String(http.StatusServiceUnavailable, "database unreachable")
		return
	}
	c.String(http.StatusOK, "ok")
}
