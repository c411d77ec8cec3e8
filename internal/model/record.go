package model

// RawRecord is an untyped key/value bag produced by a fetch unit for one
// observed company instance. Records are owned by the orchestrator until
// handed to the triangulation engine, then discarded.
type RawRecord map[string]any

// Str returns the string value for key, or "" if absent or not a string.
func (r RawRecord) Str(key string) string {
	s, _ := r[key].(string)
	return s
}

// Int returns the integer value for key, coercing common numeric types.
func (r RawRecord) Int(key string) int {
	switch n := r[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	default:
		return 0
	}
}

// StrList returns the string-slice value for key. Both []string and []any
// are accepted; checkpoint round-trips through JSON produce the latter.
func (r RawRecord) StrList(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Map returns the nested map value for key, or nil.
func (r RawRecord) Map(key string) RawRecord {
	switch v := r[key].(type) {
	case RawRecord:
		return v
	case map[string]any:
		return RawRecord(v)
	default:
		return nil
	}
}

// Source returns the source name stamped on the record by its fetch unit.
func (r RawRecord) Source() string { return r.Str("source") }

// SourceURL returns the article or page URL the record was extracted from.
func (r RawRecord) SourceURL() string { return r.Str("source_url") }
