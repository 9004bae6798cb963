package pools

import (
	"time"

	"dexScope/internal/columnar"
	"dexScope/internal/model"
)

const defaultTokenDecimals = 18

// Style selects the producer family a record came from. V2-style listings
// carry a stable/volatile pool type and a flat 7d fee APR; V3-style listings
// carry token decimals and a fee tier.
type Style int

const (
	StyleV2 Style = iota
	StyleV3
)

// Normalizer maps decoded records into canonical pool entities. The clock is
// injectable because a missing creation timestamp defaults to now.
type Normalizer struct {
	now func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// NewNormalizerAt pins the clock, for tests.
func NewNormalizerAt(now func() time.Time) *Normalizer {
	return &Normalizer{now: now}
}

// Summary normalizes one listing record into a PoolSummary. Numeric fields
// coerce to zero on bad input; identity strings pass through unmodified.
func (n *Normalizer) Summary(rec columnar.Record, style Style) model.PoolSummary {
	s := model.PoolSummary{
		PoolAddress:   resolveString(rec, poolAddressFields),
		Token0Address: resolveString(rec, token0AddressFields),
		Token0Symbol:  resolveString(rec, token0SymbolFields),
		Token1Address: resolveString(rec, token1AddressFields),
		Token1Symbol:  resolveString(rec, token1SymbolFields),
		TVLUSD:        resolveFloat(rec, tvlFields),
		Volume24h:     resolveBucketFloat(rec, volume24hField),
		Volume7d:      resolveBucketFloat(rec, volume7dField),
		CreatedAt:     n.resolveTime(rec, createdAtFields),
	}

	switch style {
	case StyleV2:
		s.PoolType = resolveString(rec, poolTypeFields)
		if s.PoolType == "" {
			s.PoolType = "volatile"
		}
		s.FeeAPR = resolveFloat(rec, feeAPRListFields)
	case StyleV3:
		s.Token0Decimals = resolveDecimals(rec, token0DecimalsFields)
		s.Token1Decimals = resolveDecimals(rec, token1DecimalsFields)
		s.FeeTier = resolveInt(rec, feeTierFields)
		s.Volume1h = resolveBucketFloat(rec, volume1hField)
	}

	return s
}

// Detail normalizes one detail-endpoint record into a PoolDetail.
// fallbackAddress is the requested pool address, used when the response
// omits its own.
func (n *Normalizer) Detail(rec columnar.Record, fallbackAddress string) model.PoolDetail {
	d := model.PoolDetail{
		PoolAddress:    resolveString(rec, poolAddressFields),
		Token0Address:  resolveString(rec, token0AddressFields),
		Token0Symbol:   resolveString(rec, token0SymbolFields),
		Token0Decimals: resolveDecimals(rec, token0DecimalsFields),
		Token1Address:  resolveString(rec, token1AddressFields),
		Token1Symbol:   resolveString(rec, token1SymbolFields),
		Token1Decimals: resolveDecimals(rec, token1DecimalsFields),
		FeeTier:        resolveInt(rec, feeTierFields),
		TVLUSD:         resolveFloat(rec, tvlFields),
		Volume24h:      resolveBucketFloat(rec, volume24hField),
		Volume1h:       resolveBucketFloat(rec, volume1hField),
		Volume7d:       resolveBucketFloat(rec, volume7dField),
		SwapCount24h:   resolveBucketInt64(rec, swapCount24hField),
		UniqueUsers24h: resolveBucketInt64(rec, uniqueUsers24hField),
		FeeAPR:         resolveBucketFloat(rec, feeAPRDetailField),
		CreatedAt:      n.resolveTime(rec, createdAtFields),
	}
	if d.PoolAddress == "" {
		d.PoolAddress = fallbackAddress
	}
	return d
}

// Token normalizes one token-catalogue record.
func (n *Normalizer) Token(rec columnar.Record, chainID int64) model.Token {
	decimals := defaultTokenDecimals
	if v, ok := columnar.Resolve(rec, "decimals"); ok {
		decimals = columnar.Int(v)
	}
	id := chainID
	if v, ok := columnar.Resolve(rec, "chainId", "chain_id"); ok {
		id = columnar.Int64(v)
	}
	return model.Token{
		Address:  resolveString(rec, []string{"address", "tokenAddress", "token_address"}),
		Symbol:   resolveString(rec, []string{"symbol"}),
		Name:     resolveString(rec, []string{"name"}),
		Decimals: decimals,
		ChainID:  id,
	}
}

func (n *Normalizer) resolveTime(rec columnar.Record, fields []string) int64 {
	v, _ := columnar.Resolve(rec, fields...)
	return columnar.UnixTime(v, n.now())
}

func resolveString(rec columnar.Record, fields []string) string {
	v, _ := columnar.Resolve(rec, fields...)
	return columnar.String(v)
}

func resolveFloat(rec columnar.Record, fields []string) float64 {
	v, _ := columnar.Resolve(rec, fields...)
	return columnar.Float(v)
}

func resolveInt(rec columnar.Record, fields []string) int {
	v, _ := columnar.Resolve(rec, fields...)
	return columnar.Int(v)
}

func resolveDecimals(rec columnar.Record, fields []string) int {
	if v, ok := columnar.Resolve(rec, fields...); ok {
		if d := columnar.Int(v); d > 0 {
			return d
		}
	}
	return defaultTokenDecimals
}

func resolveBucketFloat(rec columnar.Record, f bucketedField) float64 {
	v, _ := columnar.ResolveBucket(rec, f.BucketField, f.Bucket, f.Flat...)
	return columnar.Float(v)
}

func resolveBucketInt64(rec columnar.Record, f bucketedField) int64 {
	v, _ := columnar.ResolveBucket(rec, f.BucketField, f.Bucket, f.Flat...)
	return columnar.Int64(v)
}
