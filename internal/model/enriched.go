package model

// EnrichedPool is the result of merging a PoolSummary with its detail record.
// Enriched is false when the original summary was kept unmodified.
type EnrichedPool struct {
	PoolSummary
	Enriched bool `json:"enriched"`
}

// RankedPool is an enriched pool tagged with its source DEX, as emitted by
// the aggregator.
type RankedPool struct {
	EnrichedPool
	Dex DexTag `json:"dex"`
}
