package dex

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dexScope/internal/model"
	"dexScope/internal/upstream"
)

func columnarBody(columns []string, rows ...[]any) string {
	body := `[{"columns":[`
	for i, col := range columns {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"name":%q,"type":"String"}`, col)
	}
	body += `],"data":[`
	for i, row := range rows {
		if i > 0 {
			body += ","
		}
		body += "["
		for j, v := range row {
			if j > 0 {
				body += ","
			}
			switch val := v.(type) {
			case string:
				body += fmt.Sprintf("%q", val)
			default:
				body += fmt.Sprintf("%v", val)
			}
		}
		body += "]"
	}
	body += `]}]`
	return body
}

func newTestDexClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	api := upstream.NewClient(upstream.Config{BaseURL: server.URL}, nil)
	return NewClient(api, 8453, nil, nil, nil)
}

func uniswapSource(t *testing.T) Source {
	t.Helper()
	src, ok := SourceByTag(DefaultSources(), model.DexUniswap)
	if !ok {
		t.Fatalf("uniswap source missing from catalogue")
	}
	return src
}

func TestListPools(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/evm/uniswap/v3/pools", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("chain_id") != "8453" {
			t.Errorf("chain_id not forwarded: %q", r.URL.RawQuery)
		}
		w.Write([]byte(columnarBody(
			[]string{"poolAddress", "token0", "token0Symbol", "token1", "token1Symbol", "poolTvlUSD"},
			[]any{"0x1", "0xTOK", "WETH", "0xusdc", "USDC", 1000.0},
			[]any{"0x2", "0xother", "DAI", "0xusdc", "USDC", 2000.0},
			[]any{"0x3", "0xtok", "", "0xusdc", "USDC", 3000.0},
		)))
	})

	client := newTestDexClient(t, mux)
	got, err := client.ListPools(context.Background(), uniswapSource(t), "0xtok", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 0x2 fails membership, 0x3 fails completeness.
	if got.TotalCount != 1 || len(got.Pools) != 1 || got.Pools[0].PoolAddress != "0x1" {
		t.Fatalf("listing mismatch: %+v", got)
	}
}

func TestListPoolsLimit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/evm/uniswap/v3/pools", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(columnarBody(
			[]string{"poolAddress", "token0", "token0Symbol", "token1", "token1Symbol"},
			[]any{"0x1", "0xtok", "A", "0xb", "B"},
			[]any{"0x2", "0xtok", "A", "0xb", "B"},
			[]any{"0x3", "0xtok", "A", "0xb", "B"},
		)))
	})

	client := newTestDexClient(t, mux)
	got, err := client.ListPools(context.Background(), uniswapSource(t), "0xtok", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Pools) != 2 || got.TotalCount != 3 {
		t.Fatalf("limit handling wrong: len=%d total=%d", len(got.Pools), got.TotalCount)
	}
}

func TestGetPoolDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/evm/uniswap/v3/pool", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pool_address") != "0xpool" {
			t.Errorf("pool_address not forwarded: %q", r.URL.RawQuery)
		}
		w.Write([]byte(`[{"columns":[{"name":"token0Symbol","type":"String"},{"name":"poolTvlUSD","type":"Float64"},{"name":"swapVolumeUSD","type":"Map"}],"data":[["WETH",2000000,{"1 day":500}]]}]`))
	})

	client := newTestDexClient(t, mux)
	detail, err := client.GetPoolDetail(context.Background(), uniswapSource(t), "0xpool")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail == nil {
		t.Fatalf("expected detail")
	}
	if detail.PoolAddress != "0xpool" {
		t.Fatalf("address fallback wrong: %q", detail.PoolAddress)
	}
	if detail.TVLUSD != 2000000 || detail.Volume24h != 500 {
		t.Fatalf("detail numerics: tvl=%v v24=%v", detail.TVLUSD, detail.Volume24h)
	}
}

func TestGetPoolDetailAbsent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/evm/uniswap/v3/pool", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	client := newTestDexClient(t, mux)
	detail, err := client.GetPoolDetail(context.Background(), uniswapSource(t), "0xpool")
	if err != nil || detail != nil {
		t.Fatalf("expected (nil, nil) for empty response, got %+v, %v", detail, err)
	}
}

func TestGetPoolDetailNoEndpoint(t *testing.T) {
	client := newTestDexClient(t, http.NewServeMux())
	src, _ := SourceByTag(DefaultSources(), model.DexAerodrome)

	detail, err := client.GetPoolDetail(context.Background(), src, "0xpool")
	if err != nil || detail != nil {
		t.Fatalf("sources without a detail endpoint must return (nil, nil)")
	}
}

func TestEnrichPoolsPassthroughWithoutDetailEndpoint(t *testing.T) {
	client := newTestDexClient(t, http.NewServeMux())
	src, _ := SourceByTag(DefaultSources(), model.DexAerodrome)

	in := []model.PoolSummary{{PoolAddress: "0x1", TVLUSD: 100}}
	got := client.EnrichPools(context.Background(), src, in)
	if len(got) != 1 || got[0].Enriched || got[0].TVLUSD != 100 {
		t.Fatalf("passthrough mismatch: %+v", got)
	}
}
