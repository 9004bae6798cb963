// Package pools implements the canonical pool pipeline: normalization of
// decoded upstream records, completeness and token-membership filtering,
// bounded-concurrency detail enrichment, and TVL-ranked aggregation.
package pools

// Field-priority tables for the entity types. Upstream producers disagree on
// naming and casing, so each canonical field lists its source candidates in
// priority order. Schema drift lands here, not in code.
var (
	poolAddressFields    = []string{"poolId", "poolAddress", "pool_address", "address"}
	token0AddressFields  = []string{"token0", "token0Address", "token0_address"}
	token0SymbolFields   = []string{"token0Symbol", "token0_symbol"}
	token0DecimalsFields = []string{"token0Decimals", "token0_decimals"}
	token1AddressFields  = []string{"token1", "token1Address", "token1_address"}
	token1SymbolFields   = []string{"token1Symbol", "token1_symbol"}
	token1DecimalsFields = []string{"token1Decimals", "token1_decimals"}
	poolTypeFields       = []string{"poolType", "pool_type", "type"}
	feeTierFields        = []string{"feeTier", "fee_tier", "fee"}
	tvlFields            = []string{"poolTvlUSD", "tvlUSD", "tvl_usd", "tvl"}
	createdAtFields      = []string{"createdAt", "createdTimestamp", "created_at"}

	// v2-style listings report a flat 7d fee APR.
	feeAPRListFields = []string{"swapFeeApr7d", "feeApr", "fee_apr"}
)

// bucketedField describes a metric that some producers report as a mapping
// keyed by bucket name ("1 day", "1 week") and others flatten into plain
// fields.
type bucketedField struct {
	BucketField string
	Bucket      string
	Flat        []string
}

var (
	volume24hField = bucketedField{"swapVolumeUSD", "1 day", []string{"volumeUSD1d", "volume24hUSD", "volume24h", "volume_24h"}}
	volume1hField  = bucketedField{"swapVolumeUSD", "1 hour", []string{"volumeUSD1h", "volume1hUSD", "volume1h", "volume_1h"}}
	volume7dField  = bucketedField{"swapVolumeUSD", "1 week", []string{"volumeUSD7d", "volume7dUSD", "volume7d", "volume_7d"}}

	swapCount24hField   = bucketedField{"swapCount", "1 day", []string{"swapCount1d", "swapCount24h", "swap_count_24h"}}
	uniqueUsers24hField = bucketedField{"uniqueUserCount", "1 day", []string{"uniqueUsers1d", "uniqueUsers24h", "unique_users_24h"}}
	feeAPRDetailField   = bucketedField{"feeApr", "1 day", []string{"feeAPR1d", "fee_apr", "feeAPR"}}
)
