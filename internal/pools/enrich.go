package pools

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"dexScope/internal/model"
)

// DetailFetcher fetches one pool's detail record. A (nil, nil) return means
// the endpoint answered but knows no such pool.
type DetailFetcher func(ctx context.Context, poolAddress string) (*model.PoolDetail, error)

// EnrichConfig bounds the enrichment fan-out. Batches run strictly
// sequentially; fetches within a batch run in parallel, so BatchSize is the
// peak number of in-flight detail requests.
type EnrichConfig struct {
	MaxPools     int
	BatchSize    int
	FetchTimeout time.Duration
}

const (
	defaultMaxEnrich    = 30
	defaultEnrichBatch  = 10
	defaultFetchTimeout = 10 * time.Second
)

// Enricher augments the top summaries with per-pool detail, falling back to
// the original summary when a detail fetch fails or carries no signal.
type Enricher struct {
	cfg      EnrichConfig
	logger   *zap.Logger
	observer Observer
}

func NewEnricher(cfg EnrichConfig, logger *zap.Logger, observer Observer) *Enricher {
	if cfg.MaxPools <= 0 {
		cfg.MaxPools = defaultMaxEnrich
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultEnrichBatch
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = NopObserver{}
	}
	return &Enricher{cfg: cfg, logger: logger, observer: observer}
}

// Enrich processes the first MaxPools summaries in batches of BatchSize.
// Output preserves input order regardless of fetch completion order.
// Summaries beyond MaxPools are not returned.
func (e *Enricher) Enrich(ctx context.Context, dex model.DexTag, summaries []model.PoolSummary, fetch DetailFetcher) []model.EnrichedPool {
	limit := len(summaries)
	if limit > e.cfg.MaxPools {
		limit = e.cfg.MaxPools
	}
	candidates := summaries[:limit]
	out := make([]model.EnrichedPool, 0, limit)

	for start := 0; start < limit; start += e.cfg.BatchSize {
		end := start + e.cfg.BatchSize
		if end > limit {
			end = limit
		}
		batch := candidates[start:end]

		// Index-aligned result slices let concurrent fetches land without
		// locks and keep the batch's output in submission order.
		details := make([]*model.PoolDetail, len(batch))
		errs := make([]error, len(batch))

		var wg sync.WaitGroup
		wg.Add(len(batch))
		for i := range batch {
			go func(i int, addr string) {
				defer wg.Done()
				fetchCtx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
				defer cancel()
				details[i], errs[i] = fetch(fetchCtx, addr)
			}(i, batch[i].PoolAddress)
		}
		wg.Wait()

		for i, summary := range batch {
			pool, outcome, keep := e.resolveOutcome(summary, details[i], errs[i])
			e.observer.Enrichment(dex, outcome)
			if !keep {
				e.logger.Debug("pool dropped",
					zap.String("dex", string(dex)),
					zap.String("pool", summary.PoolAddress),
					zap.String("outcome", outcome),
				)
				continue
			}
			out = append(out, pool)
		}
	}

	e.observer.Stage(dex, StageEnrich, limit, len(out))
	e.logger.Info("enrichment complete",
		zap.String("dex", string(dex)),
		zap.Int("candidates", limit),
		zap.Int("returned", len(out)),
	)

	return out
}

// resolveOutcome applies the per-pool fallback policy, in priority order:
// merge a detail with signal; keep the original when the detail is empty or
// the fetch failed but the summary had signal; drop otherwise. The decision
// inspects the original summary's values, never the detail's absence alone.
func (e *Enricher) resolveOutcome(summary model.PoolSummary, detail *model.PoolDetail, err error) (model.EnrichedPool, string, bool) {
	if err != nil {
		if summary.HasSignal() {
			e.logger.Warn("detail fetch failed, keeping original",
				zap.String("pool", summary.PoolAddress),
				zap.Float64("tvl_usd", summary.TVLUSD),
				zap.Error(err),
			)
			return model.EnrichedPool{PoolSummary: summary}, OutcomeKeptAfterError, true
		}
		return model.EnrichedPool{}, OutcomeDroppedAfterError, false
	}

	if detail != nil && detail.HasSignal() {
		return model.EnrichedPool{PoolSummary: mergeDetail(summary, *detail), Enriched: true}, OutcomeMerged, true
	}

	// A weak detail response must not erase known-good listing data.
	if summary.HasSignal() {
		return model.EnrichedPool{PoolSummary: summary}, OutcomeKeptOriginal, true
	}
	return model.EnrichedPool{}, OutcomeDroppedEmpty, false
}

// mergeDetail overlays present-and-nonzero detail fields onto the summary.
// Symbols fall back to the summary's values when the detail omits them.
func mergeDetail(s model.PoolSummary, d model.PoolDetail) model.PoolSummary {
	out := s

	if d.PoolAddress != "" {
		out.PoolAddress = d.PoolAddress
	}
	if d.Token0Address != "" {
		out.Token0Address = d.Token0Address
	}
	if d.Token1Address != "" {
		out.Token1Address = d.Token1Address
	}
	if d.Token0Symbol != "" {
		out.Token0Symbol = d.Token0Symbol
	}
	if d.Token1Symbol != "" {
		out.Token1Symbol = d.Token1Symbol
	}
	if d.Token0Decimals != 0 {
		out.Token0Decimals = d.Token0Decimals
	}
	if d.Token1Decimals != 0 {
		out.Token1Decimals = d.Token1Decimals
	}
	if d.PoolType != "" {
		out.PoolType = d.PoolType
	}
	if d.FeeTier != 0 {
		out.FeeTier = d.FeeTier
	}
	if d.TVLUSD != 0 {
		out.TVLUSD = d.TVLUSD
	}
	if d.Volume24h != 0 {
		out.Volume24h = d.Volume24h
	}
	if d.Volume1h != 0 {
		out.Volume1h = d.Volume1h
	}
	if d.Volume7d != 0 {
		out.Volume7d = d.Volume7d
	}
	if d.FeeAPR != 0 {
		out.FeeAPR = d.FeeAPR
	}
	if d.SwapCount24h != 0 {
		out.SwapCount24h = d.SwapCount24h
	}
	if d.UniqueUsers24h != 0 {
		out.UniqueUsers24h = d.UniqueUsers24h
	}
	if d.CreatedAt != 0 {
		out.CreatedAt = d.CreatedAt
	}

	return out
}

// AsEnriched wraps summaries unchanged, for sources without a detail
// endpoint.
func AsEnriched(summaries []model.PoolSummary) []model.EnrichedPool {
	out := make([]model.EnrichedPool, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, model.EnrichedPool{PoolSummary: s})
	}
	return out
}
