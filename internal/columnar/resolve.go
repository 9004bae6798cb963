package columnar

// Resolve returns the value of the first candidate field present in the
// record with a non-nil value, in listed priority order. It exists because
// upstream producers disagree on field naming (poolId vs poolAddress vs
// pool_address), and that drift is data, not code: callers pass the priority
// list from a declarative table.
func Resolve(rec Record, candidates ...string) (any, bool) {
	for _, name := range candidates {
		if v, ok := rec[name]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// ResolveBucket resolves a time-bucketed metric. Some producers report
// metrics as a mapping keyed by human-readable bucket names ("1 day",
// "1 week"); others flatten the same value into plain fields. The bucketed
// form wins when present; otherwise the flat candidates are tried in order.
func ResolveBucket(rec Record, bucketField, bucket string, flat ...string) (any, bool) {
	if raw, ok := rec[bucketField]; ok && raw != nil {
		switch m := raw.(type) {
		case map[string]any:
			if v, ok := m[bucket]; ok && v != nil {
				return v, true
			}
		case Record:
			if v, ok := m[bucket]; ok && v != nil {
				return v, true
			}
		}
	}
	return Resolve(rec, flat...)
}
