package pools

import (
	"testing"
	"time"

	"dexScope/internal/columnar"
)

var testNow = func() time.Time { return time.Unix(1700000000, 0).UTC() }

func TestSummaryV3(t *testing.T) {
	rec := columnar.Record{
		"poolAddress":  "0xpool",
		"token0":       "0xAAA",
		"token0Symbol": "WETH",
		"token1":       "0xBBB",
		"token1Symbol": "USDC",
		"feeTier":      500.0,
		"poolTvlUSD":   1500000.0,
		"volume24hUSD": 2500.0,
		"volume7dUSD":  9000.0,
		"createdAt":    "2024-01-01T00:00:00Z",
	}

	got := NewNormalizerAt(testNow).Summary(rec, StyleV3)

	if got.PoolAddress != "0xpool" {
		t.Fatalf("pool address: %q", got.PoolAddress)
	}
	if got.Token0Address != "0xAAA" || got.Token1Address != "0xBBB" {
		t.Fatalf("token addresses passed through wrong: %q %q", got.Token0Address, got.Token1Address)
	}
	if got.Token0Decimals != 18 || got.Token1Decimals != 18 {
		t.Fatalf("decimals should default to 18, got %d/%d", got.Token0Decimals, got.Token1Decimals)
	}
	if got.FeeTier != 500 {
		t.Fatalf("fee tier: %d", got.FeeTier)
	}
	if got.TVLUSD != 1500000 || got.Volume24h != 2500 || got.Volume7d != 9000 {
		t.Fatalf("numeric fields: tvl=%v v24=%v v7=%v", got.TVLUSD, got.Volume24h, got.Volume7d)
	}
	if got.CreatedAt != 1704067200 {
		t.Fatalf("created at: %d", got.CreatedAt)
	}
	if got.PoolType != "" {
		t.Fatalf("v3 pools carry no pool type, got %q", got.PoolType)
	}
}

func TestSummaryV3FieldPriority(t *testing.T) {
	rec := columnar.Record{
		"poolId":       "0xwinner",
		"pool_address": "0xloser",
		"token0Symbol": "A",
		"token1Symbol": "B",
		"tvlUSD":       "12.5",
	}

	got := NewNormalizerAt(testNow).Summary(rec, StyleV3)
	if got.PoolAddress != "0xwinner" {
		t.Fatalf("poolId should outrank pool_address, got %q", got.PoolAddress)
	}
	if got.TVLUSD != 12.5 {
		t.Fatalf("string numeric should coerce, got %v", got.TVLUSD)
	}
}

func TestSummaryV2Defaults(t *testing.T) {
	rec := columnar.Record{
		"poolId":       "0xpool",
		"token0":       "0xaaa",
		"token0Symbol": "AERO",
		"token1":       "0xbbb",
		"token1Symbol": "USDC",
		"swapFeeApr7d": 14.2,
	}

	got := NewNormalizerAt(testNow).Summary(rec, StyleV2)
	if got.PoolType != "volatile" {
		t.Fatalf("v2 pool type should default to volatile, got %q", got.PoolType)
	}
	if got.FeeAPR != 14.2 {
		t.Fatalf("fee apr: %v", got.FeeAPR)
	}
	if got.CreatedAt != testNow().Unix() {
		t.Fatalf("missing created at should default to now, got %d", got.CreatedAt)
	}
}

func TestSummaryBadNumericCoercesToZero(t *testing.T) {
	rec := columnar.Record{
		"poolAddress":  "0xpool",
		"token0Symbol": "A",
		"token1Symbol": "B",
		"poolTvlUSD":   "garbage",
		"volume24hUSD": nil,
	}

	got := NewNormalizerAt(testNow).Summary(rec, StyleV3)
	if got.TVLUSD != 0 || got.Volume24h != 0 {
		t.Fatalf("bad numerics must coerce to zero: tvl=%v v24=%v", got.TVLUSD, got.Volume24h)
	}
}

func TestDetailBucketedMetrics(t *testing.T) {
	rec := columnar.Record{
		"poolAddress":     "0xpool",
		"token0Symbol":    "WETH",
		"token1Symbol":    "USDC",
		"poolTvlUSD":      2000000.0,
		"swapVolumeUSD":   map[string]any{"1 day": 500.0, "1 hour": 20.0, "1 week": 3100.0},
		"swapCount":       map[string]any{"1 day": 42.0},
		"uniqueUserCount": map[string]any{"1 day": 7.0},
		"feeApr":          map[string]any{"1 day": 3.5},
	}

	got := NewNormalizerAt(testNow).Detail(rec, "0xfallback")

	if got.Volume24h != 500 || got.Volume1h != 20 || got.Volume7d != 3100 {
		t.Fatalf("bucketed volumes: %v %v %v", got.Volume24h, got.Volume1h, got.Volume7d)
	}
	if got.SwapCount24h != 42 || got.UniqueUsers24h != 7 {
		t.Fatalf("bucketed counts: %d %d", got.SwapCount24h, got.UniqueUsers24h)
	}
	if got.FeeAPR != 3.5 {
		t.Fatalf("bucketed fee apr: %v", got.FeeAPR)
	}
}

func TestDetailFlatFallbackAndAddress(t *testing.T) {
	rec := columnar.Record{
		"token0Symbol": "WETH",
		"token1Symbol": "USDC",
		"volumeUSD1d":  123.0,
		"feeAPR1d":     1.25,
	}

	got := NewNormalizerAt(testNow).Detail(rec, "0xrequested")
	if got.PoolAddress != "0xrequested" {
		t.Fatalf("missing address should fall back to the requested one, got %q", got.PoolAddress)
	}
	if got.Volume24h != 123 || got.FeeAPR != 1.25 {
		t.Fatalf("flat fallbacks: v24=%v apr=%v", got.Volume24h, got.FeeAPR)
	}
}
