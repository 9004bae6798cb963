package model

// PoolDetail is the single-pool record returned by a per-DEX detail endpoint.
// It has the same shape as PoolSummary; its TVL and APR fields are
// authoritative when present and non-zero.
type PoolDetail PoolSummary

// HasSignal reports whether the detail response carries meaningful data.
func (d PoolDetail) HasSignal() bool {
	return d.TVLUSD > 0 || d.FeeAPR > 0
}
