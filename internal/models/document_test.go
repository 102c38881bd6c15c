package models

import (
	"encoding/json"
	"testing"
)

func TestDocumentRoundTripPreservesKeyOrder(t *testing.T) {
	raw := `{"zebra":1,"alpha":{"nested":true},"mid":"x"}`

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != raw {
		t.Errorf("round trip = %s, want %s", out, raw)
	}
}

func TestDocumentNull(t *testing.T) {
	var doc Document
	if err := json.Unmarshal([]byte("null"), &doc); err != nil {
		t.Fatalf("Unmarshal(null) error = %v", err)
	}
	if !doc.IsEmpty() {
		t.Error("IsEmpty() = false after unmarshaling null")
	}

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != "null" {
		t.Errorf("Marshal() = %s, want null", out)
	}
}

func TestDocumentInsideStruct(t *testing.T) {
	raw := `{"id":"r1","input":{"b":2,"a":1},"output":null}`

	var v struct {
		ID     string   `json:"id"`
		Input  Document `json:"input"`
		Output Document `json:"output"`
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if string(v.Input) != `{"b":2,"a":1}` {
		t.Errorf("Input = %s, want raw bytes with order kept", v.Input)
	}
	if !v.Output.IsEmpty() {
		t.Error("Output.IsEmpty() = false for null payload")
	}
}

func TestDocumentValid(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want bool
	}{
		{"object", Document(`{"a":1}`), true},
		{"array", Document(`[1,2]`), true},
		{"scalar", Document(`"x"`), true},
		{"broken", Document(`{"a":`), false},
		{"empty", Document(nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocumentField(t *testing.T) {
	doc := Document(`{"message":"boom","code":500,"nested":{"message":"inner"}}`)

	if got := doc.Field("message"); got != "boom" {
		t.Errorf("Field(message) = %q, want boom", got)
	}
	if got := doc.Field("code"); got != "" {
		t.Errorf("Field(code) = %q, want empty for non-string", got)
	}
	if got := doc.Field("missing"); got != "" {
		t.Errorf("Field(missing) = %q, want empty", got)
	}
}

func TestDocumentPretty(t *testing.T) {
	doc := Document(`{"a":1}`)
	want := "{\n  \"a\": 1\n}"
	if got := doc.Pretty(); got != want {
		t.Errorf("Pretty() = %q, want %q", got, want)
	}

	// Invalid JSON falls back to the raw text instead of erroring.
	broken := Document(`not json`)
	if got := broken.Pretty(); got != "not json" {
		t.Errorf("Pretty() = %q, want raw text", got)
	}

	var empty Document
	if got := empty.Pretty(); got != "" {
		t.Errorf("Pretty() on empty = %q, want empty", got)
	}
}

func TestNewDocument(t *testing.T) {
	doc, err := NewDocument(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}
	if string(doc) != `{"a":1}` {
		t.Errorf("NewDocument() = %s", doc)
	}

	if _, err := NewDocument(make(chan int)); err == nil {
		t.Error("NewDocument(chan) error = nil, want error")
	}
}
