package columnar

import (
	"testing"
	"time"
)

func TestResolvePriorityOrder(t *testing.T) {
	rec := Record{
		"poolAddress":  "0xsecond",
		"pool_address": "0xthird",
		"poolId":       "0xfirst",
	}

	v, ok := Resolve(rec, "poolId", "poolAddress", "pool_address")
	if !ok || v != "0xfirst" {
		t.Fatalf("expected first candidate to win, got %v (%v)", v, ok)
	}
}

func TestResolveSkipsNil(t *testing.T) {
	rec := Record{"poolId": nil, "poolAddress": "0xaaa"}

	v, ok := Resolve(rec, "poolId", "poolAddress")
	if !ok || v != "0xaaa" {
		t.Fatalf("nil candidate should be skipped, got %v (%v)", v, ok)
	}
}

func TestResolveMissing(t *testing.T) {
	rec := Record{"other": 1.0, "alsoNil": nil}

	if _, ok := Resolve(rec, "a", "b", "alsoNil"); ok {
		t.Fatalf("expected missing when no candidate is present")
	}
	if _, ok := Resolve(Record{}); ok {
		t.Fatalf("expected missing for empty candidate list")
	}
}

func TestResolveBucket(t *testing.T) {
	rec := Record{
		"swapVolumeUSD": map[string]any{"1 day": 1234.5, "1 week": 9999.0},
		"volume24hUSD":  1.0,
	}

	v, ok := ResolveBucket(rec, "swapVolumeUSD", "1 day", "volumeUSD1d", "volume24hUSD")
	if !ok || v != 1234.5 {
		t.Fatalf("expected bucketed value to win, got %v (%v)", v, ok)
	}
}

func TestResolveBucketFlatFallback(t *testing.T) {
	rec := Record{"volume24hUSD": 42.0}

	v, ok := ResolveBucket(rec, "swapVolumeUSD", "1 day", "volumeUSD1d", "volume24hUSD")
	if !ok || v != 42.0 {
		t.Fatalf("expected flat fallback, got %v (%v)", v, ok)
	}
}

func TestResolveBucketMissingKey(t *testing.T) {
	rec := Record{
		"swapVolumeUSD": map[string]any{"1 week": 9999.0},
		"volume24hUSD":  42.0,
	}

	// Bucketed form present but target bucket absent: flat candidates apply.
	v, ok := ResolveBucket(rec, "swapVolumeUSD", "1 day", "volume24hUSD")
	if !ok || v != 42.0 {
		t.Fatalf("expected flat fallback for missing bucket key, got %v (%v)", v, ok)
	}
}

func TestFloatCoercion(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{1500.25, 1500.25},
		{"42.5", 42.5},
		{" 7 ", 7},
		{int64(3), 3},
		{"not-a-number", 0},
		{nil, 0},
		{map[string]any{}, 0},
	}

	for _, tc := range cases {
		if got := Float(tc.in); got != tc.want {
			t.Fatalf("Float(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestStringCoercion(t *testing.T) {
	if got := String("0xabc"); got != "0xabc" {
		t.Fatalf("String passthrough failed: %q", got)
	}
	if got := String(nil); got != "" {
		t.Fatalf("String(nil) = %q, want empty", got)
	}
	if got := String(12.5); got != "" {
		t.Fatalf("String(float) = %q, want empty", got)
	}
}

func TestUnixTime(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()

	if got := UnixTime("2024-01-01T00:00:00Z", now); got != 1704067200 {
		t.Fatalf("RFC3339 parse: got %d", got)
	}
	if got := UnixTime(1704067200.0, now); got != 1704067200 {
		t.Fatalf("unix seconds: got %d", got)
	}
	if got := UnixTime(1704067200000.0, now); got != 1704067200 {
		t.Fatalf("unix millis: got %d", got)
	}
	if got := UnixTime("garbage", now); got != now.Unix() {
		t.Fatalf("fallback to now: got %d", got)
	}
	if got := UnixTime(nil, now); got != now.Unix() {
		t.Fatalf("absent value should default to now: got %d", got)
	}
}
