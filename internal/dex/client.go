package dex

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"dexScope/internal/columnar"
	"dexScope/internal/model"
	"dexScope/internal/pools"
	"dexScope/internal/upstream"
)

// ListResult is a source's listing after normalization and filtering.
// TotalCount is the number of member pools before the limit was applied.
type ListResult struct {
	Pools      []model.PoolSummary `json:"pools"`
	TotalCount int                 `json:"total_count"`
}

// Client executes per-source operations against the upstream API.
type Client struct {
	api      *upstream.Client
	norm     *pools.Normalizer
	enricher *pools.Enricher
	observer pools.Observer
	logger   *zap.Logger
	chainID  int64
}

func NewClient(api *upstream.Client, chainID int64, enricher *pools.Enricher, observer pools.Observer, logger *zap.Logger) *Client {
	if enricher == nil {
		enricher = pools.NewEnricher(pools.EnrichConfig{}, logger, observer)
	}
	if observer == nil {
		observer = pools.NopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		api:      api,
		norm:     pools.NewNormalizer(),
		enricher: enricher,
		observer: observer,
		logger:   logger,
		chainID:  chainID,
	}
}

// ListPools lists a source's pools, normalized, completeness-filtered, and
// membership-filtered against tokenAddress (empty keeps all). The returned
// slice is capped at limit; TotalCount reports the pre-limit member count.
func (c *Client) ListPools(ctx context.Context, src Source, tokenAddress string, limit int) (ListResult, error) {
	params := url.Values{}
	if src.ServerFilter {
		params.Set("chain_id", strconv.FormatInt(c.chainID, 10))
		if tokenAddress != "" {
			params.Set("token_address", tokenAddress)
		}
	}

	tables, err := c.api.GetTables(ctx, src.ListPath, params)
	if err != nil {
		return ListResult{}, fmt.Errorf("list %s pools: %w", src.Tag, err)
	}

	records := columnar.DecodeResponse(tables)
	summaries := make([]model.PoolSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, c.norm.Summary(rec, src.Style))
	}
	c.observer.Stage(src.Tag, pools.StageList, len(records), len(summaries))

	complete := pools.FilterComplete(summaries)
	c.observer.Stage(src.Tag, pools.StageCompleteness, len(summaries), len(complete))

	members := pools.FilterByToken(complete, tokenAddress)
	c.observer.Stage(src.Tag, pools.StageMembership, len(complete), len(members))

	c.logger.Debug("pools listed",
		zap.String("dex", string(src.Tag)),
		zap.Int("fetched", len(records)),
		zap.Int("complete", len(complete)),
		zap.Int("members", len(members)),
	)

	total := len(members)
	if limit > 0 && len(members) > limit {
		members = members[:limit]
	}
	return ListResult{Pools: members, TotalCount: total}, nil
}

// GetPoolDetail fetches one pool's detail record. Returns (nil, nil) when
// the source has no detail endpoint or the endpoint knows no such pool.
func (c *Client) GetPoolDetail(ctx context.Context, src Source, poolAddress string) (*model.PoolDetail, error) {
	if src.DetailPath == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("chain_id", strconv.FormatInt(c.chainID, 10))
	params.Set("pool_address", poolAddress)

	tables, err := c.api.GetTables(ctx, src.DetailPath, params)
	if err != nil {
		return nil, fmt.Errorf("get %s pool %s: %w", src.Tag, poolAddress, err)
	}

	records := columnar.DecodeResponse(tables)
	if len(records) == 0 {
		return nil, nil
	}

	detail := c.norm.Detail(records[0], poolAddress)
	return &detail, nil
}

// EnrichPools wraps the enricher with the source's detail fetcher. Sources
// without a detail endpoint pass their summaries through unenriched.
func (c *Client) EnrichPools(ctx context.Context, src Source, summaries []model.PoolSummary) []model.EnrichedPool {
	if src.DetailPath == "" {
		return pools.AsEnriched(summaries)
	}

	fetch := func(ctx context.Context, poolAddress string) (*model.PoolDetail, error) {
		return c.GetPoolDetail(ctx, src, poolAddress)
	}
	return c.enricher.Enrich(ctx, src.Tag, summaries, fetch)
}
