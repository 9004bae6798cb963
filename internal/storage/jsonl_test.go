package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"dexScope/internal/model"
)

func TestJsonlSinkAppendsOneLinePerSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "snapshots.jsonl")
	sink := NewJsonlSink(path)

	for i := 0; i < 2; i++ {
		snap := model.NewSnapshot(8453, "0xtok", []model.RankedPool{
			{EnrichedPool: model.EnrichedPool{PoolSummary: model.PoolSummary{PoolAddress: "0x1", TVLUSD: 100}}, Dex: model.DexUniswap},
		})
		if err := sink.PutSnapshot(context.Background(), snap); err != nil {
			t.Fatalf("put snapshot: %v", err)
		}
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	var lines int
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var snap model.Snapshot
		if err := json.Unmarshal(scanner.Bytes(), &snap); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines+1, err)
		}
		if snap.ChainID != 8453 || len(snap.Pools) != 1 {
			t.Fatalf("snapshot content mismatch: %+v", snap)
		}
		lines++
	}
	if lines != 2 {
		t.Fatalf("expected 2 lines, got %d", lines)
	}
}
