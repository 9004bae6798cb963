// Package api exposes the explorer over HTTP using Gin. The package is
// organized as:
// - api.go: handler struct, routing, server lifecycle
// - handler.go: HTTP request handlers
// - middleware.go: request id and access logging middleware
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dexScope/internal/model"
	"dexScope/internal/service"
)

const (
	defaultHandlerTimeout = 30 * time.Second
	shutdownTimeout       = 10 * time.Second

	requestIDContextKey = "request_id"
	requestIDHeaderKey  = "X-Request-ID"
)

// ExplorerService is the application surface the HTTP layer depends on.
type ExplorerService interface {
	AggregatePools(ctx context.Context, tokenAddress string, limit int) (service.AggregateResult, error)
	PoolDetail(ctx context.Context, tag model.DexTag, poolAddress string) (*model.PoolDetail, error)
	SearchToken(ctx context.Context, query string) ([]model.Token, error)
	CurrentPrice(ctx context.Context, tokenAddress string) (model.TokenPrice, error)
	PriceHistory(ctx context.Context, tokenAddress string, hours int) ([]model.PricePoint, error)
	TopHolders(ctx context.Context, tokenAddress string, limit int) (model.HoldersReport, error)
}

// Handler routes HTTP requests to the explorer.
type Handler struct {
	explorer ExplorerService
	registry *prometheus.Registry
	logger   *zap.Logger
}

// NewHandler builds the HTTP layer. registry may be nil to disable /metrics.
func NewHandler(explorer ExplorerService, registry *prometheus.Registry, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		explorer: explorer,
		registry: registry,
		logger:   logger,
	}
}

// Routes configures the router.
func (h *Handler) Routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(requestIDMiddleware())
	router.Use(accessLogMiddleware(h.logger))
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/pools", h.GetPools)
		v1.GET("/pools/:dex/:address", h.GetPoolDetail)
		v1.GET("/price/current", h.GetCurrentPrice)
		v1.GET("/price/history", h.GetPriceHistory)
		v1.GET("/holders", h.GetTopHolders)
		v1.GET("/tokens/search", h.SearchTokens)
	}

	router.GET("/healthz", h.HealthCheck)
	if h.registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})))
	}

	return router
}

// Serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests before returning.
func (h *Handler) Serve(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: h.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("http server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
