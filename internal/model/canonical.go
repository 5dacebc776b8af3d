package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// MarshalSnapshot produces canonical JSON for golden-file comparison.
//
// This is the ONLY serialization golden tests should use. Differences from
// standard json.Marshal:
//  1. Object keys are sorted bytewise.
//  2. No HTML escaping (< > & are NOT escaped).
//  3. Strings are NFC normalized at the serialization boundary.
//  4. Floats are forbidden (returns an error) — snapshot builders round
//     pixel coordinates to integers first, so snapshots never drift on
//     floating-point formatting.
//  5. Nil values are forbidden.
func MarshalSnapshot(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("nil is forbidden in snapshot JSON")
	case string:
		return marshalSnapshotString(val)
	case int:
		return []byte(strconv.FormatInt(int64(val), 10)), nil
	case int64:
		return []byte(strconv.FormatInt(val, 10)), nil
	case bool:
		return []byte(strconv.FormatBool(val)), nil
	case float32, float64:
		return nil, fmt.Errorf("floats are forbidden in snapshot JSON: %v", val)
	case []any:
		return marshalSnapshotArray(val)
	case map[string]any:
		return marshalSnapshotObject(val)
	default:
		return nil, fmt.Errorf("unsupported type for snapshot JSON: %T", v)
	}
}

func marshalSnapshotArray(arr []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := MarshalSnapshot(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalSnapshotObject(obj map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalSnapshotString(k)
		if err != nil {
			return nil, fmt.Errorf("object key %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := MarshalSnapshot(obj[k])
		if err != nil {
			return nil, fmt.Errorf("object[%q]: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalSnapshotString encodes with NFC normalization and without HTML
// escaping, so labels like "Trip <2024>" survive round-trips unchanged.
func marshalSnapshotString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder appends a trailing newline.
	out := buf.Bytes()
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	return out, nil
}

// SnapshotPx rounds a pixel coordinate to the nearest integer for snapshot
// serialization.
func SnapshotPx(f float64) int {
	if f < 0 {
		return -int(-f + 0.5)
	}
	return int(f + 0.5)
}
