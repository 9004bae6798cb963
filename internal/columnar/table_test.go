package columnar

import (
	"reflect"
	"testing"
)

func TestDecode(t *testing.T) {
	table := Table{
		Columns: []Column{{Name: "poolAddress", Type: "String"}, {Name: "tvlUSD", Type: "Float64"}},
		Data: [][]any{
			{"0xaaa", 1500.5},
			{"0xbbb", 0.0},
		},
	}

	got := Decode(table)
	want := []Record{
		{"poolAddress": "0xaaa", "tvlUSD": 1500.5},
		{"poolAddress": "0xbbb", "tvlUSD": 0.0},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("records mismatch: %+v != %+v", got, want)
	}
}

func TestDecodeLengthMatchesData(t *testing.T) {
	table := Table{
		Columns: []Column{{Name: "a"}},
		Data:    [][]any{{1.0}, {2.0}, {3.0}},
	}
	if got := Decode(table); len(got) != len(table.Data) {
		t.Fatalf("expected %d records, got %d", len(table.Data), len(got))
	}
}

func TestDecodeEmpty(t *testing.T) {
	if got := Decode(Table{}); got != nil {
		t.Fatalf("expected nil for empty table, got %+v", got)
	}
	if got := Decode(Table{Columns: []Column{{Name: "a"}}}); got != nil {
		t.Fatalf("expected nil for table without data, got %+v", got)
	}
	if got := Decode(Table{Data: [][]any{{1.0}}}); got != nil {
		t.Fatalf("expected nil for table without columns, got %+v", got)
	}
}

func TestDecodeShortRow(t *testing.T) {
	table := Table{
		Columns: []Column{{Name: "a"}, {Name: "b"}},
		Data:    [][]any{{"only"}},
	}

	got := Decode(table)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if _, ok := got[0]["b"]; ok {
		t.Fatalf("field b should be absent for short row")
	}
}

func TestDecodeResponse(t *testing.T) {
	if got := DecodeResponse(nil); got != nil {
		t.Fatalf("expected nil for empty response, got %+v", got)
	}

	tables := []Table{
		{Columns: []Column{{Name: "a"}}, Data: [][]any{{"first"}}},
		{Columns: []Column{{Name: "a"}}, Data: [][]any{{"second"}}},
	}
	got := DecodeResponse(tables)
	if len(got) != 1 || got[0]["a"] != "first" {
		t.Fatalf("expected first table only, got %+v", got)
	}
}
