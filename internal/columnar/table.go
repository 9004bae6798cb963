// Package columnar reassembles the upstream API's columnar tables into
// field-keyed records and resolves fields across producers that disagree on
// naming. It performs no business logic and no type coercion beyond the
// helpers in coerce.go.
package columnar

// Column describes one declared column of an upstream table. Type is
// informational and not relied upon for parsing.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Table is the columnar response shape: column descriptors plus positional
// row arrays. Every row is expected to align with Columns.
type Table struct {
	Columns []Column `json:"columns"`
	Data    [][]any  `json:"data"`
	Rows    int      `json:"rows,omitempty"`
}

// Record is one row keyed by column name.
type Record map[string]any

// Decode converts a table into a sequence of records. A table with no
// columns or no data yields an empty sequence, not an error.
func Decode(t Table) []Record {
	if len(t.Columns) == 0 || len(t.Data) == 0 {
		return nil
	}

	records := make([]Record, 0, len(t.Data))
	for _, row := range t.Data {
		rec := make(Record, len(t.Columns))
		for i, col := range t.Columns {
			if i >= len(row) {
				break
			}
			rec[col.Name] = row[i]
		}
		records = append(records, rec)
	}
	return records
}

// DecodeResponse decodes the first table of an upstream response body, which
// arrives as a JSON array of tables. An empty array yields an empty sequence.
func DecodeResponse(tables []Table) []Record {
	if len(tables) == 0 {
		return nil
	}
	return Decode(tables[0])
}
