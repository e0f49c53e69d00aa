package bson

import (
	"testing"

	"github.com/zoobzio/porridge"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/bson" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/bson")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()

	out := porridge.NormalizeKeys(porridge.Hash{
		"person": porridge.Hash{"name": "Ada"},
	}, porridge.StringKey)

	data, err := c.Marshal(out)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored map[string]any
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	person, ok := restored["person"].(primitive.M)
	if !ok {
		t.Fatalf("person decoded as %T, want primitive.M", restored["person"])
	}
	if person["name"] != "Ada" {
		t.Errorf("person.name = %v, want Ada", person["name"])
	}
}

func TestMarshalSequenceFails(t *testing.T) {
	if _, err := New().Marshal([]any{1, 2}); err == nil {
		t.Error("Marshal(sequence) should fail")
	}
}

func TestLoadWhitelist(t *testing.T) {
	c := New()
	data, err := c.Marshal(map[string]any{"id": true, "buildings": map[string]any{"city": true}})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	policy, err := porridge.LoadWhitelist(c, data)
	if err != nil {
		t.Fatalf("LoadWhitelist() error: %v", err)
	}
	if !policy.Allowed("city", nil, porridge.Options{}.WithField("buildings")) {
		t.Error("buildings.city should be allowed through an embedded document")
	}
	if policy.Allowed("name", nil, porridge.Options{}.WithField("buildings")) {
		t.Error("buildings.name should be denied")
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	var v map[string]any
	if err := New().Unmarshal([]byte{0x01, 0x02}, &v); err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}
