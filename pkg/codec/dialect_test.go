package codec

import (
	"encoding/json"
	"testing"
)

func TestDialectRoundTrip(t *testing.T) {
	text := blankGridText("Dialect", "Author", "Info")
	doc, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	dialect, err := EncodeDialect(doc)
	if err != nil {
		t.Fatalf("EncodeDialect: %v", err)
	}
	if dialect.Version != dialectVersion {
		t.Fatalf("version = %d, want %d", dialect.Version, dialectVersion)
	}
	if dialect.Title != "Dialect" {
		t.Fatalf("title = %q", dialect.Title)
	}

	raw, err := json.Marshal(dialect)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	again, err := DecodeDialect(raw)
	if err != nil {
		t.Fatalf("DecodeDialect: %v", err)
	}
	if again.Title != doc.Title {
		t.Fatalf("round trip title mismatch: %q vs %q", again.Title, doc.Title)
	}
}

func TestDecodeDialectRejectsInvalidKind(t *testing.T) {
	raw := []byte(`{"version":1,"cells":[{"id":"0,0","kind":"weird","x":0,"y":0}]}`)
	if _, err := DecodeDialect(raw); err == nil {
		t.Fatalf("expected validation to reject an invalid kind")
	}
}

func TestDecodeDialectRejectsInvalidAngle(t *testing.T) {
	raw := []byte(`{"version":1,"columns":[{"x":0,"y":0,"angle":"45"}]}`)
	if _, err := DecodeDialect(raw); err == nil {
		t.Fatalf("expected validation to reject an invalid column angle")
	}
}
