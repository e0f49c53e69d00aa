package porridge

import (
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"
)

type defAuthor struct {
	Name string
}

type defPost struct {
	Title    string
	Author   *defAuthor
	Writer   defAuthor
	Comments []string
}

func serializeAll(t *testing.T, d *Definition, object any) any {
	t.Helper()
	s, err := d.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	out, err := s.Serialize(object, Hash{}, Options{}.WithFieldPolicy(PermitAll()))
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	return out
}

func TestDefinition_Attributes(t *testing.T) {
	d := Define().
		Attribute("title").
		AttributeFunc("shout", func(object any, _ Options) (any, error) {
			return object.(defPost).Title + "!", nil
		}).
		Field("constant", Value(1))

	out := serializeAll(t, d, defPost{Title: "Hello"})
	want := Hash{"title": "Hello", "shout": "Hello!", "constant": 1}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Serialize() = %v, want %v", out, want)
	}
}

func TestDefinition_DeriveIsIndependent(t *testing.T) {
	base := Define().Attribute("title")
	admin := base.Derive().Attribute("comments")
	base.Field("late", Value(true))

	post := defPost{Title: "Hi", Comments: []string{"a"}}

	if got := serializeAll(t, base, post); !reflect.DeepEqual(got, Hash{"title": "Hi", "late": true}) {
		t.Errorf("base = %v", got)
	}
	if got := serializeAll(t, admin, post); !reflect.DeepEqual(got, Hash{"title": "Hi", "comments": []string{"a"}}) {
		t.Errorf("admin = %v", got)
	}
}

func TestDefinition_Associations(t *testing.T) {
	author := Must(Define().Attribute("name").Build())
	letters := SerializerFunc(func(object, _ any, _ Options) (any, error) {
		return len(object.(string)), nil
	})

	d := Define().
		BelongsTo("author", author).
		BelongsTo("writer", author, FromName("Writer")).
		BelongsTo("by", author, FromExtractor(Send("Author"))).
		HasMany("comments", letters)

	post := defPost{
		Author:   &defAuthor{Name: "Ada"},
		Writer:   defAuthor{Name: "Grace"},
		Comments: []string{"hi", "hello"},
	}
	out := serializeAll(t, d, post)

	want := Hash{
		"author":   Hash{"name": "Ada"},
		"writer":   Hash{"name": "Grace"},
		"by":       Hash{"name": "Ada"},
		"comments": []any{2, 5},
	}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Serialize() = %v, want %v", out, want)
	}
}

func TestDefinition_AssociationHierarchy(t *testing.T) {
	author := Must(Define().Attribute("name").Build())
	d := Define().BelongsTo("author", author)
	s := Must(d.Build())

	policy := NewWhitelist(Whitelist{"author": Whitelist{"name": true}})
	out, err := s.Serialize(defPost{Author: &defAuthor{Name: "Ada"}}, Hash{}, Options{}.WithFieldPolicy(policy))
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if want := (Hash{"author": Hash{"name": "Ada"}}); !reflect.DeepEqual(out, want) {
		t.Errorf("Serialize() = %v, want %v", out, want)
	}

	shallow := NewWhitelist(Whitelist{"author": true})
	out, err = s.Serialize(defPost{Author: &defAuthor{Name: "Ada"}}, Hash{}, Options{}.WithFieldPolicy(shallow))
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if want := (Hash{"author": Hash{}}); !reflect.DeepEqual(out, want) {
		t.Errorf("Serialize() = %v, want %v", out, want)
	}
}

func TestDefinition_StickyError(t *testing.T) {
	d := Define().
		Attribute("title").
		Field(nil, Value(1)).
		Serializer(nil).
		Attribute("comments")

	if !errors.Is(d.Err(), ErrInvalidFieldName) {
		t.Errorf("Err() = %v, want the first failure", d.Err())
	}
	if _, err := d.Build(); !errors.Is(err, ErrInvalidFieldName) {
		t.Errorf("Build() error = %v, want ErrInvalidFieldName", err)
	}
	if got := len(d.Serializers()); got != 2 {
		t.Errorf("Serializers() has %d entries, want 2", got)
	}

	derived := d.Derive()
	if !errors.Is(derived.Err(), ErrInvalidFieldName) {
		t.Error("Derive should carry the recorded error")
	}
}

func TestDefinition_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		d    *Definition
		want error
	}{
		{"nil serializer", Define().Serializer(nil), ErrInvalidSerializer},
		{"nil attribute func", Define().AttributeFunc("a", nil), ErrInvalidExtractor},
		{"nil association", Define().BelongsTo("a", nil), ErrInvalidSerializer},
		{"non-string association without source", Define().BelongsTo(1, Identity()), ErrInvalidExtractor},
		{"nil has-many", Define().HasMany("a", nil), ErrInvalidSerializer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.d.Err(), tt.want) {
				t.Errorf("Err() = %v, want %v", tt.d.Err(), tt.want)
			}
		})
	}
}

func TestDefinition_SerializersIsACopy(t *testing.T) {
	d := Define().Attribute("title")
	list := d.Serializers()
	list[0] = Identity()

	if got := serializeAll(t, d, defPost{Title: "x"}); !reflect.DeepEqual(got, Hash{"title": "x"}) {
		t.Errorf("Serialize() = %v", got)
	}
}
