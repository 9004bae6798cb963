package pools

import (
	"sort"

	"dexScope/internal/model"
)

// Aggregate concatenates per-DEX enriched pool sets, tags each pool with its
// source, and sorts descending by TVL. The stable sort keeps input order for
// equal TVLs; tags are visited in sorted order so that input order is itself
// deterministic across calls.
func Aggregate(perDex map[model.DexTag][]model.EnrichedPool) []model.RankedPool {
	tags := make([]model.DexTag, 0, len(perDex))
	for tag := range perDex {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	var total int
	for _, tag := range tags {
		total += len(perDex[tag])
	}

	out := make([]model.RankedPool, 0, total)
	for _, tag := range tags {
		for _, pool := range perDex[tag] {
			out = append(out, model.RankedPool{EnrichedPool: pool, Dex: tag})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TVLUSD > out[j].TVLUSD })
	return out
}
