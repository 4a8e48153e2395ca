package lang

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Mapping is an ordered translation-key to display-string mapping for a
// single locale. Key order follows the upstream payload so that encoded
// output is reproducible across runs.
type Mapping struct {
	keys   []string
	values map[string]string
}

// Entry is a single key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value string
}

// Decode parses a flat JSON object into a Mapping, preserving the key
// order of the payload. Duplicate keys keep the last value without
// changing the position of the first occurrence, matching ordinary
// JSON object semantics.
func Decode(data []byte) (*Mapping, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse language file: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("language file is not a JSON object")
	}

	m := &Mapping{values: make(map[string]string)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse language file: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in language file", keyTok)
		}

		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("value of key %q is not a string: %w", key, err)
		}

		if _, seen := m.values[key]; !seen {
			m.keys = append(m.keys, key)
		}
		m.values[key] = value
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse language file: %w", err)
	}

	return m, nil
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in upstream order.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value for key.
func (m *Mapping) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Entries returns all key/value pairs in upstream order.
func (m *Mapping) Entries() []Entry {
	out := make([]Entry, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Entry{Key: k, Value: m.values[k]})
	}
	return out
}

// Filter returns a new Mapping holding only the entries whose key is
// accepted by pred, in the original order.
func (m *Mapping) Filter(pred func(key string) bool) *Mapping {
	out := &Mapping{values: make(map[string]string)}
	for _, k := range m.keys {
		if pred(k) {
			out.keys = append(out.keys, k)
			out.values[k] = m.values[k]
		}
	}
	return out
}

// Encode renders the mapping as a 2-space indented JSON object in key
// order, without HTML escaping, so non-ASCII display strings stay
// readable in the output files. Identical mappings always encode to
// identical bytes.
func (m *Mapping) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n  ")
		if err := encodeString(enc, &buf, k); err != nil {
			return nil, err
		}
		buf.WriteString(": ")
		if err := encodeString(enc, &buf, m.values[k]); err != nil {
			return nil, err
		}
	}
	if len(m.keys) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	return buf.Bytes(), nil
}

// encodeString writes a JSON string without the trailing newline the
// encoder appends.
func encodeString(enc *json.Encoder, buf *bytes.Buffer, s string) error {
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode string %q: %w", s, err)
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
