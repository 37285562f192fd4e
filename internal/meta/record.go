package meta

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Record is one decoded line of a metadata file.
type Record struct {
	// Line is the 1-based line number the record was read from.
	Line int
	// Fields holds the decoded JSON object. Numbers are json.Number.
	Fields map[string]any
}

// DocID returns the record's doc_id when present and a string.
func (r Record) DocID() (string, bool) {
	v, ok := r.Fields[FieldDocID]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Keys returns the record's field names, sorted.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns the value of a field, treating JSON null as absent.
func (r Record) Value(field string) (any, bool) {
	v, ok := r.Fields[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Int parses an integer-like field. JSON numbers and numeric strings are
// accepted; the returned string is the value as it appeared in the record.
func (r Record) Int(field string) (int, string, error) {
	v, ok := r.Value(field)
	if !ok {
		return 0, "", fmt.Errorf("field %s not set", field)
	}
	var raw string
	switch t := v.(type) {
	case json.Number:
		raw = t.String()
	case string:
		raw = strings.TrimSpace(t)
	default:
		raw = fmt.Sprint(t)
		return 0, raw, fmt.Errorf("field %s has non-numeric type %T", field, v)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// Integral floats such as 1999.0 are accepted.
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, raw, fmt.Errorf("parse %s: %w", field, err)
		}
		n = int(f)
	}
	return n, raw, nil
}
