// Package service orchestrates the per-DEX pipelines into one aggregated,
// TVL-ranked view, and exposes the token lookup, price, and holder queries
// built on the same upstream.
package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dexScope/internal/columnar"
	"dexScope/internal/dex"
	"dexScope/internal/model"
	"dexScope/internal/pools"
	"dexScope/internal/storage"
	"dexScope/internal/upstream"
)

// Config carries the orchestration knobs. ListLimit caps how many pools each
// source contributes before enrichment.
type Config struct {
	ChainID   int64
	ListLimit int
}

func (c *Config) applyDefaults() {
	if c.ChainID == 0 {
		c.ChainID = 8453
	}
	if c.ListLimit <= 0 {
		c.ListLimit = 100
	}
}

// Explorer is the application service behind the HTTP API and the one-shot
// CLI command.
type Explorer struct {
	cfg      Config
	dex      *dex.Client
	api      *upstream.Client
	sources  []dex.Source
	norm     *pools.Normalizer
	observer pools.Observer
	sink     storage.SnapshotSink
	logger   *zap.Logger
}

// NewExplorer wires the per-source client and supplementary queries. sink may
// be nil to disable snapshot persistence; observer and logger may be nil.
func NewExplorer(cfg Config, api *upstream.Client, dexClient *dex.Client, sources []dex.Source, observer pools.Observer, sink storage.SnapshotSink, logger *zap.Logger) *Explorer {
	cfg.applyDefaults()
	if observer == nil {
		observer = pools.NopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Explorer{
		cfg:      cfg,
		dex:      dexClient,
		api:      api,
		sources:  sources,
		norm:     pools.NewNormalizer(),
		observer: observer,
		sink:     sink,
		logger:   logger,
	}
}

// AggregateResult is one aggregation run across all sources.
type AggregateResult struct {
	TokenAddress string             `json:"token_address,omitempty"`
	Pools        []model.RankedPool `json:"pools"`
	TotalCount   int                `json:"total_count"`
	Sources      int                `json:"sources"`
	Failed       []string           `json:"failed_sources,omitempty"`
}

// AggregatePools runs the full pipeline: fan out listing and enrichment per
// source, re-apply the membership filter to the enriched sets, then merge and
// rank by TVL descending. A failing source contributes an empty set instead
// of failing the aggregation. limit caps the merged result; zero means all.
func (e *Explorer) AggregatePools(ctx context.Context, tokenAddress string, limit int) (AggregateResult, error) {
	tokenAddress = strings.TrimSpace(tokenAddress)
	if tokenAddress != "" && !common.IsHexAddress(tokenAddress) {
		return AggregateResult{}, &model.APIError{Status: http.StatusBadRequest, Message: fmt.Sprintf("invalid token address %q", tokenAddress)}
	}

	var (
		mu     sync.Mutex
		perDex = make(map[model.DexTag][]model.EnrichedPool, len(e.sources))
		failed []string
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, src := range e.sources {
		src := src
		g.Go(func() error {
			enriched, err := e.collect(gctx, src, tokenAddress)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				e.logger.Warn("source failed, contributing empty set",
					zap.String("dex", string(src.Tag)),
					zap.Error(err),
				)
				failed = append(failed, string(src.Tag))
				return nil
			}
			perDex[src.Tag] = enriched
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return AggregateResult{}, err
	}

	ranked := pools.Aggregate(perDex)
	total := len(ranked)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	sort.Strings(failed)

	e.snapshot(ctx, tokenAddress, ranked)

	return AggregateResult{
		TokenAddress: tokenAddress,
		Pools:        ranked,
		TotalCount:   total,
		Sources:      len(e.sources),
		Failed:       failed,
	}, nil
}

// collect runs one source's pipeline: list, enrich, membership re-filter.
// Enrichment can substitute detail records whose token pair differs from the
// listing's, so membership is re-checked after it.
func (e *Explorer) collect(ctx context.Context, src dex.Source, tokenAddress string) ([]model.EnrichedPool, error) {
	listing, err := e.dex.ListPools(ctx, src, tokenAddress, e.cfg.ListLimit)
	if err != nil {
		return nil, err
	}

	enriched := e.dex.EnrichPools(ctx, src, listing.Pools)

	members := pools.FilterEnrichedByToken(enriched, tokenAddress)
	e.observer.Stage(src.Tag, pools.StageMembershipPost, len(enriched), len(members))
	return members, nil
}

// PoolDetail fetches one pool's current detail from its source.
func (e *Explorer) PoolDetail(ctx context.Context, tag model.DexTag, poolAddress string) (*model.PoolDetail, error) {
	src, ok := dex.SourceByTag(e.sources, tag)
	if !ok {
		return nil, &model.APIError{Status: http.StatusNotFound, Message: fmt.Sprintf("unknown dex %q", tag)}
	}
	if !common.IsHexAddress(poolAddress) {
		return nil, &model.APIError{Status: http.StatusBadRequest, Message: fmt.Sprintf("invalid pool address %q", poolAddress)}
	}
	return e.dex.GetPoolDetail(ctx, src, poolAddress)
}

// SearchToken looks a token up by address, or by symbol/name substring with
// exact-symbol > exact-name > symbol-prefix ranking.
func (e *Explorer) SearchToken(ctx context.Context, query string) ([]model.Token, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, &model.APIError{Status: http.StatusBadRequest, Message: "empty search query"}
	}

	tokens, err := e.listTokens(ctx)
	if err != nil {
		return nil, err
	}

	if common.IsHexAddress(query) {
		var matches []model.Token
		for _, tok := range tokens {
			if strings.EqualFold(tok.Address, query) {
				matches = append(matches, tok)
			}
		}
		return matches, nil
	}

	var matches []model.Token
	for _, tok := range tokens {
		if strings.Contains(strings.ToLower(tok.Symbol), query) ||
			strings.Contains(strings.ToLower(tok.Name), query) {
			matches = append(matches, tok)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return searchRank(matches[i], query) < searchRank(matches[j], query)
	})
	return matches, nil
}

// searchRank orders matches: exact symbol, exact name, symbol prefix, rest.
func searchRank(tok model.Token, query string) int {
	symbol := strings.ToLower(tok.Symbol)
	switch {
	case symbol == query:
		return 0
	case strings.ToLower(tok.Name) == query:
		return 1
	case strings.HasPrefix(symbol, query):
		return 2
	default:
		return 3
	}
}

func (e *Explorer) listTokens(ctx context.Context) ([]model.Token, error) {
	params := url.Values{}
	params.Set("chain_id", strconv.FormatInt(e.cfg.ChainID, 10))
	tables, err := e.api.GetTables(ctx, "/evm/tokens", params)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}

	records := columnar.DecodeResponse(tables)
	tokens := make([]model.Token, 0, len(records))
	for _, rec := range records {
		tokens = append(tokens, e.norm.Token(rec, e.cfg.ChainID))
	}
	return tokens, nil
}

// CurrentPrice returns the latest USD price of a token. An empty upstream
// response is an error here; unlike pool enrichment there is no original to
// fall back to.
func (e *Explorer) CurrentPrice(ctx context.Context, tokenAddress string) (model.TokenPrice, error) {
	if !common.IsHexAddress(tokenAddress) {
		return model.TokenPrice{}, &model.APIError{Status: http.StatusBadRequest, Message: fmt.Sprintf("invalid token address %q", tokenAddress)}
	}

	params := e.tokenParams(tokenAddress)
	tables, err := e.api.GetTables(ctx, "/evm/price-current", params)
	if err != nil {
		return model.TokenPrice{}, fmt.Errorf("current price: %w", err)
	}

	records := columnar.DecodeResponse(tables)
	if len(records) == 0 {
		return model.TokenPrice{}, &model.APIError{Status: http.StatusNotFound, Message: fmt.Sprintf("no price data for %s", tokenAddress)}
	}

	rec := records[0]
	price := model.TokenPrice{
		TokenAddress: tokenAddress,
		PriceUSD:     recFloat(rec, "priceUSD", "price_usd"),
		Timestamp:    recTime(rec, "updatedAt", "updated_at"),
	}
	if addr := recString(rec, "tokenAddress", "token_address"); addr != "" {
		price.TokenAddress = addr
	}
	return price, nil
}

// PriceHistory returns hourly price samples for the last hours hours.
func (e *Explorer) PriceHistory(ctx context.Context, tokenAddress string, hours int) ([]model.PricePoint, error) {
	if !common.IsHexAddress(tokenAddress) {
		return nil, &model.APIError{Status: http.StatusBadRequest, Message: fmt.Sprintf("invalid token address %q", tokenAddress)}
	}
	if hours <= 0 {
		hours = 24
	}

	params := e.tokenParams(tokenAddress)
	params.Set("hours", strconv.Itoa(hours))
	tables, err := e.api.GetTables(ctx, "/evm/price-hour", params)
	if err != nil {
		return nil, fmt.Errorf("price history: %w", err)
	}

	records := columnar.DecodeResponse(tables)
	points := make([]model.PricePoint, 0, len(records))
	for _, rec := range records {
		point := model.PricePoint{
			TokenAddress: tokenAddress,
			Timestamp:    recTime(rec, "timestamp", "updatedAt"),
			PriceUSD:     recFloat(rec, "priceUSD", "price_usd", "price"),
			Interval:     "1h",
		}
		if addr := recString(rec, "tokenAddress", "token_address"); addr != "" {
			point.TokenAddress = addr
		}
		points = append(points, point)
	}
	return points, nil
}

// TopHolders ranks a token's largest holders. Percentages are computed
// against the summed balance of every returned holder, and the concentration
// figure covers the top ten of the requested slice.
func (e *Explorer) TopHolders(ctx context.Context, tokenAddress string, limit int) (model.HoldersReport, error) {
	if !common.IsHexAddress(tokenAddress) {
		return model.HoldersReport{}, &model.APIError{Status: http.StatusBadRequest, Message: fmt.Sprintf("invalid token address %q", tokenAddress)}
	}
	if limit <= 0 {
		limit = 10
	}

	tables, err := e.api.GetTables(ctx, "/evm/tvl/top-owners", e.tokenParams(tokenAddress))
	if err != nil {
		return model.HoldersReport{}, fmt.Errorf("top holders: %w", err)
	}

	records := columnar.DecodeResponse(tables)
	var totalSupply float64
	for _, rec := range records {
		totalSupply += recFloat(rec, "tokenAmount", "token_amount")
	}

	count := len(records)
	if count > limit {
		count = limit
	}
	holders := make([]model.TopHolder, 0, count)
	for _, rec := range records[:count] {
		amount := recFloat(rec, "tokenAmount", "token_amount")
		var pct float64
		if totalSupply > 0 {
			pct = amount / totalSupply * 100
		}
		holders = append(holders, model.TopHolder{
			HolderAddress: recString(rec, "owner", "holderAddress", "holder_address"),
			Balance:       strconv.FormatFloat(amount, 'f', -1, 64),
			BalanceUSD:    recFloat(rec, "valueUSD", "balanceUSD", "balance_usd"),
			Percentage:    pct,
		})
	}

	var concentration float64
	for i, h := range holders {
		if i >= 10 {
			break
		}
		concentration += h.Percentage
	}

	return model.HoldersReport{
		TokenAddress:       tokenAddress,
		Holders:            holders,
		TotalHolders:       len(records),
		Top10Concentration: concentration,
	}, nil
}

func (e *Explorer) tokenParams(tokenAddress string) url.Values {
	params := url.Values{}
	params.Set("token_address", tokenAddress)
	params.Set("chain_id", strconv.FormatInt(e.cfg.ChainID, 10))
	return params
}

// snapshot persists the ranked result when a sink is configured. Persistence
// failures are logged and never surfaced to the caller.
func (e *Explorer) snapshot(ctx context.Context, tokenAddress string, ranked []model.RankedPool) {
	if e.sink == nil || len(ranked) == 0 {
		return
	}
	snap := model.NewSnapshot(e.cfg.ChainID, tokenAddress, ranked)
	if err := e.sink.PutSnapshot(ctx, snap); err != nil {
		e.logger.Warn("snapshot persistence failed",
			zap.String("snapshot_id", snap.ID),
			zap.Error(err),
		)
	}
}

func recString(rec columnar.Record, fields ...string) string {
	v, _ := columnar.Resolve(rec, fields...)
	return columnar.String(v)
}

func recFloat(rec columnar.Record, fields ...string) float64 {
	v, _ := columnar.Resolve(rec, fields...)
	return columnar.Float(v)
}

func recTime(rec columnar.Record, fields ...string) int64 {
	v, _ := columnar.Resolve(rec, fields...)
	return columnar.UnixTime(v, time.Now())
}
