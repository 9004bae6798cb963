package pools

import (
	"strings"

	"dexScope/internal/model"
)

// FilterComplete drops summaries whose token0 or token1 symbol is blank.
// Such records cannot be displayed or matched and are treated as upstream
// noise, not partial failures. Idempotent.
func FilterComplete(summaries []model.PoolSummary) []model.PoolSummary {
	out := make([]model.PoolSummary, 0, len(summaries))
	for _, p := range summaries {
		if strings.TrimSpace(p.Token0Symbol) == "" || strings.TrimSpace(p.Token1Symbol) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterByToken retains summaries where tokenAddress is one of the two
// constituent tokens, case-insensitively.
func FilterByToken(summaries []model.PoolSummary, tokenAddress string) []model.PoolSummary {
	out := make([]model.PoolSummary, 0, len(summaries))
	for _, p := range summaries {
		if memberOf(p, tokenAddress) {
			out = append(out, p)
		}
	}
	return out
}

// FilterEnrichedByToken re-applies the membership filter after enrichment.
// Detail endpoints for some DEXes have been observed to substitute a
// different pool's token pair when an address is ambiguous, so this second
// pass is mandatory.
func FilterEnrichedByToken(enriched []model.EnrichedPool, tokenAddress string) []model.EnrichedPool {
	out := make([]model.EnrichedPool, 0, len(enriched))
	for _, p := range enriched {
		if memberOf(p.PoolSummary, tokenAddress) {
			out = append(out, p)
		}
	}
	return out
}

func memberOf(p model.PoolSummary, tokenAddress string) bool {
	if tokenAddress == "" {
		return true
	}
	return (p.Token0Address != "" && strings.EqualFold(p.Token0Address, tokenAddress)) ||
		(p.Token1Address != "" && strings.EqualFold(p.Token1Address, tokenAddress))
}
