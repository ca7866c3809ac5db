package gateway

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"stockgate/pkg/storage/postgres"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// topSymbolCount is how many symbols the stats endpoint reports.
const topSymbolCount = 5

type tokenAuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// stockResponse is the gateway's normalized quote. Prices are numbers here;
// the provider timestamp is consumed for the history record but intentionally
// not exposed.
type stockResponse struct {
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
}

type historyEntry struct {
	Date   string  `json:"date"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
}

type statsEntry struct {
	Stock          string `json:"stock"`
	TimesRequested int64  `json:"times_requested"`
}

func (s *Server) postTokenAuth(c *gin.Context) {
	var req tokenAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := s.identities.Authenticate(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, postgres.ErrInvalidCredentials) {
		c.JSON(http.StatusBadRequest,
			gin.H{"non_field_errors": []string{"Unable to log in with provided credentials."}})
		return
	}
	if err != nil {
		s.logger.Error("authenticate failed", zap.String("username", req.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	token, err := s.identities.GetOrCreateToken(c.Request.Context(), user.ID)
	if err != nil {
		s.logger.Error("token issuance failed", zap.Uint("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"user_id": user.ID,
		"email":   user.Email,
	})
}

func (s *Server) getStock(c *gin.Context) {
	ident := CurrentIdentity(c)
	stockCode := c.Query("stock_code")

	quote, err := s.quotes.Fetch(c.Request.Context(), stockCode)
	if err != nil {
		// The quote service's status code passes through unchanged; anything
		// else (transport failure, broken payload) is a 500.
		status := http.StatusInternalServerError
		var upstream *UpstreamError
		if errors.As(err, &upstream) {
			status = upstream.StatusCode
		}
		s.logger.Warn("quote fetch failed", zap.String("stock_code", stockCode), zap.Error(err))
		c.JSON(status, gin.H{"error": "Failed to retrieve stock information"})
		return
	}

	open, errOpen := strconv.ParseFloat(quote.Open, 64)
	high, errHigh := strconv.ParseFloat(quote.High, 64)
	low, errLow := strconv.ParseFloat(quote.Low, 64)
	closePrice, errClose := strconv.ParseFloat(quote.Close, 64)
	if errOpen != nil || errHigh != nil || errLow != nil || errClose != nil {
		// The adapter guarantees numeric-looking price strings; a violation is
		// an upstream data problem, not a client error.
		s.logger.Warn("non-numeric price fields from quote service",
			zap.String("stock_code", stockCode))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stock information"})
		return
	}

	record := &postgres.HistoryRecord{
		UserID: ident.UserID,
		Date:   quote.Date,
		Name:   quote.Name,
		Symbol: quote.Symbol,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
	}
	if err := s.history.InsertHistory(c.Request.Context(), record); err != nil {
		// Fail closed: every successful response must have a matching history
		// record, so a failed write means no quote for the caller.
		s.logger.Error("history write failed",
			zap.Uint("user_id", ident.UserID),
			zap.String("symbol", quote.Symbol),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record query history"})
		return
	}

	c.JSON(http.StatusOK, stockResponse{
		Name:   quote.Name,
		Symbol: quote.Symbol,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
	})
}

func (s *Server) getHistory(c *gin.Context) {
	ident := CurrentIdentity(c)

	records, err := s.history.ListHistoryByUser(c.Request.Context(), ident.UserID)
	if err != nil {
		s.logger.Error("history listing failed", zap.Uint("user_id", ident.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	// Always a list, even with zero records.
	out := make([]historyEntry, 0, len(records))
	for _, r := range records {
		out = append(out, historyEntry{
			Date:   r.Date,
			Name:   r.Name,
			Symbol: r.Symbol,
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getStats(c *gin.Context) {
	rows, err := s.history.TopSymbols(c.Request.Context(), topSymbolCount)
	if err != nil {
		s.logger.Error("stats aggregation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	out := make([]statsEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, statsEntry{
			Stock:          strings.ToLower(row.Symbol),
			TimesRequested: row.TimesRequested,
		})
	}
	c.JSON(http.StatusOK, out)
}
