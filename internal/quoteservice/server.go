package quoteservice

import (
	"context"
	"errors"
	"net/http"

	"stockgate/internal/middleware"
	"stockgate/pkg/stooq"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Fetcher retrieves a normalized quote for a stock code. Satisfied by
// *stooq.Client; injectable so tests can run without the real provider.
type Fetcher interface {
	Fetch(ctx context.Context, stockCode string) (*stooq.Quote, error)
}

// Server exposes the internal quote adapter HTTP surface.
type Server struct {
	fetcher Fetcher
	logger  *zap.Logger
	engine  *gin.Engine
}

func NewServer(fetcher Fetcher, logger *zap.Logger) *Server {
	s := &Server{
		fetcher: fetcher,
		logger:  logger,
		engine:  gin.New(),
	}

	s.engine.Use(middleware.RequestLogger(logger), middleware.Recovery(logger))
	s.engine.GET("/stock", s.getStock)
	s.engine.GET("/healthz", s.getHealth)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) getStock(c *gin.Context) {
	stockCode := c.Query("stock_code")

	quote, err := s.fetcher.Fetch(c.Request.Context(), stockCode)
	if errors.Is(err, stooq.ErrInvalidRequest) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock code is required."})
		return
	}
	if err != nil {
		// The wrapped cause stays in our logs; the response body is generic so
		// no upstream detail leaks to callers.
		s.logger.Warn("upstream fetch failed",
			zap.String("stock_code", stockCode),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stock data from upstream"})
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (s *Server) getHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
