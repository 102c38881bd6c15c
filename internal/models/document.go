package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is an opaque JSON object carried through run and step payloads.
// The server treats these as pass-through blobs, so the raw bytes are kept
// verbatim and key order is preserved across a round trip.
type Document []byte

// NewDocument marshals v into a Document.
func NewDocument(v any) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return Document(data), nil
}

// MarshalJSON returns the raw bytes, or null for an empty document.
func (d Document) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

// UnmarshalJSON stores a copy of the raw bytes. JSON null becomes an empty
// document.
func (d *Document) UnmarshalJSON(data []byte) error {
	if d == nil {
		return fmt.Errorf("cannot unmarshal into nil Document")
	}
	if bytes.Equal(data, []byte("null")) {
		*d = nil
		return nil
	}
	*d = append((*d)[0:0], data...)
	return nil
}

// Valid reports whether the document holds well-formed JSON.
func (d Document) Valid() bool {
	return json.Valid(d)
}

// IsEmpty reports whether the document holds no payload.
func (d Document) IsEmpty() bool {
	return len(d) == 0 || bytes.Equal(d, []byte("null"))
}

// Field returns the top-level string value for key, or "" if absent or not a
// string.
func (d Document) Field(key string) string {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(d, &m); err != nil {
		return ""
	}
	raw, ok := m[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Pretty returns the document indented for display. Invalid or empty
// documents render as their raw text.
func (d Document) Pretty() string {
	if d.IsEmpty() {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, d, "", "  "); err != nil {
		return string(d)
	}
	return buf.String()
}

func (d Document) String() string {
	return string(d)
}
