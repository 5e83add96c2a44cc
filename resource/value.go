package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Value is a server-held record decoded from JSON. Records are views over
// remote state: this client never owns them and only caches them per
// mounted controller.
type Value = any

// Normalize rewrites v so that every nested value is one of nil, bool,
// string, json.Number, map[string]any or []any. Numeric fields keep full
// precision regardless of how the payload was produced.
func Normalize(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool, string, json.Number:
		return t, nil
	case float32, float64, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return json.Number(fmt.Sprintf("%v", t)), nil
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			nv, err := Normalize(vv)
			if err != nil {
				return nil, err
			}
			m[k] = nv
		}
		return m, nil
	case []any:
		s := make([]any, len(t))
		for i := range t {
			nv, err := Normalize(t[i])
			if err != nil {
				return nil, err
			}
			s[i] = nv
		}
		return s, nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("value not JSON-serializable: %T: %w", t, err)
		}
		return Decode(b)
	}
}

// Decode parses JSON preserving numbers as json.Number.
func Decode(b []byte) (Value, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return Normalize(v)
}

func AsObject(v Value) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func AsArray(v Value) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

// Field reads a named field from an object record.
func Field(v Value, key string) (any, bool) {
	obj, ok := AsObject(v)
	if !ok {
		return nil, false
	}
	field, ok := obj[key]
	return field, ok
}

// ID returns the record's identifier rendered as a string. Identifiers may
// arrive as JSON strings or numbers; both compare by their string form.
func ID(v Value) (string, bool) {
	field, ok := Field(v, "id")
	if !ok {
		return "", false
	}
	return Stringify(field)
}

// Name returns the record's optional human-readable name.
func Name(v Value) (string, bool) {
	field, ok := Field(v, "name")
	if !ok {
		return "", false
	}
	name, ok := field.(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// DisplayLabel is the confirmation-dialog text for a record: its name when
// present, otherwise "ID <id>".
func DisplayLabel(v Value) string {
	if name, ok := Name(v); ok {
		return name
	}
	if id, ok := ID(v); ok {
		return "ID " + id
	}
	return "<unknown>"
}

// Stringify renders a scalar field for display. Objects and arrays render
// through their JSON encoding.
func Stringify(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		if t {
			return "true", true
		}
		return "false", true
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}

// Clone deep-copies a normalized value.
func Clone(v Value) Value {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = Clone(vv)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i := range t {
			s[i] = Clone(t[i])
		}
		return s
	default:
		return t
	}
}
