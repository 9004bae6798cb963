package model

import "fmt"

// DexTag identifies the source DEX of a pool.
type DexTag string

const (
	DexAerodrome DexTag = "aerodrome"
	DexUniswap   DexTag = "uniswap"
	DexPancake   DexTag = "pancake"
	DexSushi     DexTag = "sushi"
	DexAlien     DexTag = "alien"
)

// ParseDexTag validates a user-supplied DEX name.
func ParseDexTag(s string) (DexTag, error) {
	switch DexTag(s) {
	case DexAerodrome, DexUniswap, DexPancake, DexSushi, DexAlien:
		return DexTag(s), nil
	}
	return "", fmt.Errorf("unknown dex: %q", s)
}
