package models

import (
	"sort"
)

// Record holds one scraped table row: field name to typed value.
// Context keys such as season and team are merged in by the caller.
type Record map[string]Value

// Clone returns a shallow copy of r; a nil Record clones to an empty one
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Has reports whether r carries field, even when its value is Null
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Text returns the string stored under field, if it is a Text value
func (r Record) Text(field string) (string, bool) {
	v, ok := r[field]
	if !ok {
		return "", false
	}
	return v.Text()
}

// Keys returns the field names of r in sorted order
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Project returns a Record with only the given fields. Absent fields map to Null
// so two records missing the same field still share a key.
func (r Record) Project(fields []string) Record {
	out := make(Record, len(fields))
	for _, f := range fields {
		out[f] = r[f]
	}
	return out
}

// ExpectedSchema is the ordered list of fields a Record from one page type
// should contain. It is only used to report drift, never to reject data.
type ExpectedSchema []string

// Missing returns the expected fields absent from r, in schema order
func (s ExpectedSchema) Missing(r Record) []string {
	var missing []string
	for _, field := range s {
		if !r.Has(field) {
			missing = append(missing, field)
		}
	}
	return missing
}

// Columns returns the schema fields followed by any extra fields present in
// the records, sorted. Used for CSV headers.
func (s ExpectedSchema) Columns(records []Record) []string {
	seen := make(map[string]bool, len(s))
	cols := make([]string, 0, len(s))
	for _, f := range s {
		if !seen[f] {
			seen[f] = true
			cols = append(cols, f)
		}
	}

	var extra []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)

	return append(cols, extra...)
}
