// Package storage provides optional sinks for aggregation snapshots. The
// pipeline itself is request-scoped; snapshots exist for offline analysis
// and never feed back into serving.
package storage

import (
	"context"

	"dexScope/internal/model"
)

// SnapshotSink defines a sink for aggregation snapshots.
type SnapshotSink interface {
	PutSnapshot(ctx context.Context, snap model.Snapshot) error
}
