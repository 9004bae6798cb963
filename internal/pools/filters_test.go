package pools

import (
	"reflect"
	"testing"

	"dexScope/internal/model"
)

func summary(addr, t0, t0sym, t1, t1sym string, tvl float64) model.PoolSummary {
	return model.PoolSummary{
		PoolAddress:   addr,
		Token0Address: t0,
		Token0Symbol:  t0sym,
		Token1Address: t1,
		Token1Symbol:  t1sym,
		TVLUSD:        tvl,
	}
}

func TestFilterComplete(t *testing.T) {
	in := []model.PoolSummary{
		summary("0x1", "0xa", "WETH", "0xb", "USDC", 100),
		summary("0x2", "0xa", "", "0xb", "USDC", 200),
		summary("0x3", "0xa", "WETH", "0xb", "  ", 300),
	}

	got := FilterComplete(in)
	if len(got) != 1 || got[0].PoolAddress != "0x1" {
		t.Fatalf("expected only the complete pool, got %+v", got)
	}
}

func TestFilterCompleteIdempotent(t *testing.T) {
	in := []model.PoolSummary{
		summary("0x1", "0xa", "WETH", "0xb", "USDC", 100),
		summary("0x2", "0xa", "", "0xb", "USDC", 200),
	}

	once := FilterComplete(in)
	twice := FilterComplete(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter should be idempotent: %+v != %+v", once, twice)
	}
}

func TestFilterByTokenCaseInsensitive(t *testing.T) {
	in := []model.PoolSummary{
		summary("0x1", "0xABCdef", "WETH", "0xother", "USDC", 100),
		summary("0x2", "0xother", "USDC", "0xabcDEF", "WETH", 200),
		summary("0x3", "0xother", "USDC", "0xother2", "DAI", 300),
	}

	upper := FilterByToken(in, "0xABCDEF")
	lower := FilterByToken(in, "0xabcdef")

	if !reflect.DeepEqual(upper, lower) {
		t.Fatalf("case should not matter: %+v != %+v", upper, lower)
	}
	if len(upper) != 2 {
		t.Fatalf("expected 2 member pools, got %d", len(upper))
	}
}

func TestFilterByTokenEmptyTokenKeepsAll(t *testing.T) {
	in := []model.PoolSummary{
		summary("0x1", "0xa", "WETH", "0xb", "USDC", 100),
	}
	if got := FilterByToken(in, ""); len(got) != 1 {
		t.Fatalf("empty token should keep all pools, got %+v", got)
	}
}

func TestFilterEnrichedByToken(t *testing.T) {
	in := []model.EnrichedPool{
		{PoolSummary: summary("0x1", "0xaaa", "WETH", "0xbbb", "USDC", 100), Enriched: true},
		// A detail response that substituted a different pool's pair.
		{PoolSummary: summary("0x2", "0xccc", "FOO", "0xddd", "BAR", 200), Enriched: true},
	}

	got := FilterEnrichedByToken(in, "0xAAA")
	if len(got) != 1 || got[0].PoolAddress != "0x1" {
		t.Fatalf("post-enrichment re-filter must drop substituted pairs, got %+v", got)
	}
}
