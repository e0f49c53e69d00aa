// Package testing provides fixtures and helpers for porridge tests.
package testing

import (
	"testing"

	"github.com/zoobzio/porridge"
)

// TestKey returns a valid 32-byte AES key for testing.
func TestKey(tb testing.TB) []byte {
	tb.Helper()
	return []byte("32-byte-key-for-aes-256-encrypt!")
}

// TestEncryptor returns an AES encryptor configured for testing.
func TestEncryptor(tb testing.TB) porridge.Encryptor {
	tb.Helper()
	enc, err := porridge.AES(TestKey(tb))
	if err != nil {
		tb.Fatalf("AES() error: %v", err)
	}
	return enc
}

// Building is a fixture associated with Person.
type Building struct {
	ID   int
	City string
}

// Person is the canonical fixture: plain fields, a masked field, a redacted
// field, a has-many association and a computed accessor.
type Person struct {
	ID        int
	Name      string
	Email     string     `send.mask:"email"`
	Password  string     `porridge:"-"`
	Note      string     `send.redact:"[REDACTED]"`
	Buildings []Building `porridge:"buildings"`
}

// Initials is read by Send("initials").
func (p Person) Initials() string {
	out := make([]rune, 0, 2)
	first := true
	for _, r := range p.Name {
		if first && r != ' ' {
			out = append(out, r)
			first = false
		}
		if r == ' ' {
			first = true
		}
	}
	return string(out)
}

// Jacob returns the Person used across end-to-end scenarios.
func Jacob() Person {
	return Person{
		ID:       123,
		Name:     "Jacob Lockard",
		Email:    "jacob@example.com",
		Password: "hunter2",
		Note:     "prefers mornings",
		Buildings: []Building{
			{ID: 1, City: "Boston"},
			{ID: 2, City: "Denver"},
		},
	}
}

// BuildingSerializer serializes a Building's id and city.
func BuildingSerializer(tb testing.TB) porridge.Serializer {
	tb.Helper()
	s, err := porridge.Define().
		Attribute("id").
		Attribute("city").
		Build()
	if err != nil {
		tb.Fatalf("Build() error: %v", err)
	}
	return s
}

// PersonSerializer serializes a Person's id, name and buildings by hand,
// without Scan.
func PersonSerializer(tb testing.TB) porridge.Serializer {
	tb.Helper()
	s, err := porridge.Define().
		Attribute("id").
		Attribute("name").
		HasMany("buildings", BuildingSerializer(tb)).
		Build()
	if err != nil {
		tb.Fatalf("Build() error: %v", err)
	}
	return s
}

// MustSerialize runs s from an empty Hash and fails the test on error.
func MustSerialize(tb testing.TB, s porridge.Serializer, object any, opts porridge.Options) any {
	tb.Helper()
	out, err := s.Serialize(object, porridge.Hash{}, opts)
	if err != nil {
		tb.Fatalf("Serialize() error: %v", err)
	}
	return out
}
