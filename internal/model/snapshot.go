package model

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot captures one aggregation result for offline analysis.
type Snapshot struct {
	ID           string       `json:"id"`
	ChainID      int64        `json:"chain_id"`
	TokenAddress string       `json:"token_address,omitempty"`
	TakenAt      time.Time    `json:"taken_at"`
	Pools        []RankedPool `json:"pools"`
}

// NewSnapshot stamps an aggregation result with an id and capture time.
func NewSnapshot(chainID int64, tokenAddress string, pools []RankedPool) Snapshot {
	return Snapshot{
		ID:           uuid.NewString(),
		ChainID:      chainID,
		TokenAddress: tokenAddress,
		TakenAt:      time.Now().UTC(),
		Pools:        pools,
	}
}
