package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dexScope/internal/model"
)

// GetPools handles GET /api/v1/pools?token=&limit=.
func (h *Handler) GetPools(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultHandlerTimeout)
	defer cancel()

	limit, ok := h.intQuery(c, "limit", 0)
	if !ok {
		return
	}

	result, err := h.explorer.AggregatePools(ctx, c.Query("token"), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPoolDetail handles GET /api/v1/pools/:dex/:address.
func (h *Handler) GetPoolDetail(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultHandlerTimeout)
	defer cancel()

	tag, err := model.ParseDexTag(c.Param("dex"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(http.StatusBadRequest, err.Error(), nil))
		return
	}

	detail, err := h.explorer.PoolDetail(ctx, tag, c.Param("address"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, errorBody(http.StatusNotFound, "pool not found", nil))
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetCurrentPrice handles GET /api/v1/price/current?token=.
func (h *Handler) GetCurrentPrice(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultHandlerTimeout)
	defer cancel()

	price, err := h.explorer.CurrentPrice(ctx, c.Query("token"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, price)
}

// GetPriceHistory handles GET /api/v1/price/history?token=&hours=.
func (h *Handler) GetPriceHistory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultHandlerTimeout)
	defer cancel()

	hours, ok := h.intQuery(c, "hours", 24)
	if !ok {
		return
	}

	points, err := h.explorer.PriceHistory(ctx, c.Query("token"), hours)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"points": points, "total_count": len(points)})
}

// GetTopHolders handles GET /api/v1/holders?token=&limit=.
func (h *Handler) GetTopHolders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultHandlerTimeout)
	defer cancel()

	limit, ok := h.intQuery(c, "limit", 10)
	if !ok {
		return
	}

	report, err := h.explorer.TopHolders(ctx, c.Query("token"), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// SearchTokens handles GET /api/v1/tokens/search?q=.
func (h *Handler) SearchTokens(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultHandlerTimeout)
	defer cancel()

	tokens, err := h.explorer.SearchToken(ctx, c.Query("q"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": tokens, "total_count": len(tokens)})
}

// HealthCheck handles GET /healthz.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"service":   "dexscope",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// intQuery parses an optional integer query parameter. It writes the 400
// response itself and returns ok=false on bad input.
func (h *Handler) intQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		c.JSON(http.StatusBadRequest, errorBody(http.StatusBadRequest, name+" must be a non-negative integer", nil))
		return 0, false
	}
	return v, true
}

// handleError maps service failures to HTTP responses. Upstream failures
// keep their status and payload; a status of zero means the upstream was
// unreachable and maps to 502.
func (h *Handler) handleError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	var details any

	if apiErr, ok := model.AsAPIError(err); ok {
		status = apiErr.Status
		if status == 0 {
			status = http.StatusBadGateway
		}
		message = apiErr.Message
		if len(apiErr.Payload) > 0 {
			details = apiErr.Payload
		}
	}

	h.logger.Error("request failed",
		zap.String("request_id", c.GetString(requestIDContextKey)),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	)
	c.JSON(status, errorBody(status, message, details))
}

func errorBody(status int, message string, details any) gin.H {
	body := gin.H{"error": message, "status": status}
	if details != nil {
		body["details"] = details
	}
	return body
}
