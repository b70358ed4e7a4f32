package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Document is a schemaless JSON-like object as persisted by the page store.
// Values are whatever encoding/json produces for interface{}: string, float64,
// bool, nil, []any and map[string]any. Accessors never panic and report
// wrong-typed values as absent.
type Document map[string]any

// Has reports whether key is present with a non-nil value.
func (d Document) Has(key string) bool {
	v, ok := d[key]
	return ok && v != nil
}

// String returns the string at key.
func (d Document) String(key string) (string, bool) {
	s, ok := d[key].(string)
	return s, ok
}

// NonEmptyString returns the string at key when it is present and not blank.
func (d Document) NonEmptyString(key string) (string, bool) {
	s, ok := d.String(key)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// Map returns the nested object at key.
func (d Document) Map(key string) (Document, bool) {
	switch m := d[key].(type) {
	case Document:
		return m, true
	case map[string]any:
		return Document(m), true
	default:
		return nil, false
	}
}

// Slice returns the array at key.
func (d Document) Slice(key string) ([]any, bool) {
	switch s := d[key].(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, true
	default:
		return nil, false
	}
}

// Strings returns the string elements of the array at key, skipping elements
// of any other type.
func (d Document) Strings(key string) ([]string, bool) {
	items, ok := d.Slice(key)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// Int returns the integral number at key. JSON numbers, Go integers and
// numeric strings are accepted; fractional values are truncated.
func (d Document) Int(key string) (int, bool) {
	return toInt(d[key])
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

// DocumentFromJSON decodes a JSON object. Anything other than an object
// yields an empty document.
func DocumentFromJSON(data []byte) Document {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		return Document{}
	}
	return doc
}

// AsDocument converts an arbitrary value into a Document when it is object-like.
func AsDocument(v any) (Document, bool) {
	switch m := v.(type) {
	case Document:
		return m, m != nil
	case map[string]any:
		return Document(m), m != nil
	default:
		return nil, false
	}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Document:
		return t.Clone()
	case map[string]any:
		return map[string]any(Document(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case float32:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, false
			}
			return int(f), true
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
