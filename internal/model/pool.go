package model

// PoolSummary is the canonical description of a liquidity pool as produced
// from an upstream listing, prior to enrichment.
type PoolSummary struct {
	PoolAddress    string  `json:"pool_address"`
	Token0Address  string  `json:"token0_address"`
	Token0Symbol   string  `json:"token0_symbol"`
	Token0Decimals int     `json:"token0_decimals,omitempty"`
	Token1Address  string  `json:"token1_address"`
	Token1Symbol   string  `json:"token1_symbol"`
	Token1Decimals int     `json:"token1_decimals,omitempty"`
	PoolType       string  `json:"pool_type,omitempty"`
	FeeTier        int     `json:"fee_tier"`
	TVLUSD         float64 `json:"tvl_usd"`
	Volume24h      float64 `json:"volume_24h"`
	Volume1h       float64 `json:"volume_1h"`
	Volume7d       float64 `json:"volume_7d"`
	FeeAPR         float64 `json:"fee_apr,omitempty"`
	SwapCount24h   int64   `json:"swap_count_24h"`
	UniqueUsers24h int64   `json:"unique_users_24h"`
	CreatedAt      int64   `json:"created_timestamp"`
}

// HasSignal reports whether the summary carries any known-good liquidity data
// worth preserving when enrichment fails or comes back empty.
func (p PoolSummary) HasSignal() bool {
	return p.TVLUSD > 0 || p.Volume24h > 0
}
