// Package postgres persists aggregation snapshots to Postgres.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dexScope/internal/model"
)

// Store writes snapshots and their ranked pools in a single batch.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PutSnapshot inserts the snapshot header and one row per ranked pool.
// Rank is the pool's position in the TVL-descending ordering.
func (s *Store) PutSnapshot(ctx context.Context, snap model.Snapshot) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO snapshots (id, chain_id, token_address, taken_at, pool_count)
		VALUES ($1, $2, $3, $4, $5)
	`,
		snap.ID,
		snap.ChainID,
		snap.TokenAddress,
		snap.TakenAt,
		len(snap.Pools),
	)
	for rank, pool := range snap.Pools {
		batch.Queue(`
			INSERT INTO snapshot_pools (
				snapshot_id, rank, dex, pool_address,
				token0, token0_symbol, token1, token1_symbol,
				pool_type, fee_tier, tvl_usd, volume_24h_usd, fee_apr,
				enriched, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,now())
		`,
			snap.ID,
			rank,
			string(pool.Dex),
			pool.PoolAddress,
			pool.Token0Address,
			pool.Token0Symbol,
			pool.Token1Address,
			pool.Token1Symbol,
			pool.PoolType,
			pool.FeeTier,
			pool.TVLUSD,
			pool.Volume24h,
			pool.FeeAPR,
			pool.Enriched,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < len(snap.Pools)+1; i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("persist snapshot %s: %w", snap.ID, err)
		}
	}
	return nil
}
