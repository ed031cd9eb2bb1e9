// Package record defines the provenance metadata record embedded in figures.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// Default keys written by the composer.
const (
	KeyFigure       = "figure"
	KeyCreatedAt    = "created_at"
	KeySource       = "source"
	KeyCellNumber   = "cell_number"
	KeyGitCommit    = "git_commit"
	KeyRefigVersion = "refig_version"
)

// DefaultKeys lists the keys every composed record carries, in sorted order.
var DefaultKeys = []string{KeyCellNumber, KeyCreatedAt, KeyFigure, KeyGitCommit, KeyRefigVersion, KeySource}

// ErrNotObject is returned when a payload decodes to something other than a JSON object.
var ErrNotObject = errors.New("metadata payload is not a JSON object")

// Record maps metadata keys to JSON-serializable values. Absent optional
// values are stored as nil and serialize as JSON null.
type Record map[string]any

// Marshal serializes the record as compact JSON with sorted keys. HTML
// characters are left unescaped; the markup codec escapes on its own.
func (r Record) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]any(r)); err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// MarshalIndent serializes the record with two-space indentation and sorted keys.
func (r Record) MarshalIndent() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any(r)); err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses a JSON object into a Record. Integer literals decode as
// int64, or as json.Number when they overflow int64; other numbers decode
// as float64. Nested objects and arrays follow the same rules.
func Unmarshal(data []byte) (Record, error) {
	v, err := UnmarshalValue(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok || obj == nil {
		return nil, ErrNotObject
	}
	return Record(obj), nil
}

// UnmarshalValue parses a single JSON value with the number rules of
// Unmarshal.
func UnmarshalValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return normalize(v), nil
}

func normalize(v any) any {
	switch v := v.(type) {
	case json.Number:
		return number(v)
	case map[string]any:
		for k, e := range v {
			v[k] = normalize(e)
		}
		return v
	case []any:
		for i, e := range v {
			v[i] = normalize(e)
		}
		return v
	default:
		return v
	}
}

func number(n json.Number) any {
	if !strings.ContainsAny(n.String(), ".eE") {
		if i, err := n.Int64(); err == nil {
			return i
		}
		return n
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge copies every key of extra into r, overwriting existing keys.
func (r Record) Merge(extra map[string]any) Record {
	for k, v := range extra {
		r[k] = v
	}
	return r
}

// Int returns the integer stored under key. Floats are accepted when they
// hold an integral value.
func (r Record) Int(key string) (int64, bool) {
	switch v := r[key].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int64(v), true
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
	}
	return 0, false
}
