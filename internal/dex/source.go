// Package dex binds the upstream client to the per-DEX pool endpoints and
// exposes the per-source operations: listing, single-pool detail, and
// enrichment.
package dex

import (
	"dexScope/internal/model"
	"dexScope/internal/pools"
)

// Source describes one DEX integration. DetailPath is empty for sources
// without a per-pool detail endpoint. ServerFilter marks listings that accept
// chain_id/token_address query parameters; the membership filter is applied
// client-side regardless, because server-side support is unreliable.
type Source struct {
	Tag          model.DexTag
	ListPath     string
	DetailPath   string
	Style        pools.Style
	ServerFilter bool
}

// DefaultSources is the catalogue of supported DEX integrations.
func DefaultSources() []Source {
	return []Source{
		{Tag: model.DexAerodrome, ListPath: "/evm/aero/v2/pools", Style: pools.StyleV2},
		{Tag: model.DexUniswap, ListPath: "/evm/uniswap/v3/pools", DetailPath: "/evm/uniswap/v3/pool", Style: pools.StyleV3, ServerFilter: true},
		{Tag: model.DexPancake, ListPath: "/evm/pancake/v3/pools", DetailPath: "/evm/pancake/v3/pool", Style: pools.StyleV3, ServerFilter: true},
		{Tag: model.DexSushi, ListPath: "/evm/sushi/v3/pools", DetailPath: "/evm/sushi/v3/pool", Style: pools.StyleV3, ServerFilter: true},
		{Tag: model.DexAlien, ListPath: "/evm/alien/v3/pools", DetailPath: "/evm/alien/v3/pool", Style: pools.StyleV3, ServerFilter: true},
	}
}

// SourceByTag looks up a source in the catalogue.
func SourceByTag(sources []Source, tag model.DexTag) (Source, bool) {
	for _, src := range sources {
		if src.Tag == tag {
			return src, true
		}
	}
	return Source{}, false
}
