package porridge

import (
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestForExtracted_SelfIsTransparent(t *testing.T) {
	base := Must(NewChain(
		Must(NewField("name", Send("Name"))),
		Must(NewField("kind", Value("person"))),
	))
	wrapped := Must(NewForExtracted(base, Self()))

	object := struct{ Name string }{"Ada"}
	opts := Options{}.WithFieldPolicy(PermitAll())

	direct, err := base.Serialize(object, Hash{"seed": 1}, opts)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	via, err := wrapped.Serialize(object, Hash{"seed": 1}, opts)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if !reflect.DeepEqual(direct, via) {
		t.Errorf("ForExtracted(Self) = %v, want %v", via, direct)
	}
}

func TestForExtracted_RepointsObject(t *testing.T) {
	type Owner struct{ Name string }
	type Pet struct{ Owner Owner }

	base := Must(NewField("owner_name", Send("Name")))
	wrapped := Must(NewForExtracted(base, Send("Owner")))

	out, err := wrapped.Serialize(Pet{Owner: Owner{Name: "Ada"}}, Hash{}, Options{}.WithFieldPolicy(PermitAll()))
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if want := (Hash{"owner_name": "Ada"}); !reflect.DeepEqual(out, want) {
		t.Errorf("Serialize() = %v, want %v", out, want)
	}
}

func TestForExtracted_ExtractorError(t *testing.T) {
	boom := errors.New("boom")
	wrapped := Must(NewForExtracted(Identity(), ExtractorFunc(func(any, Options) (any, error) {
		return nil, boom
	})))
	if _, err := wrapped.Serialize(nil, nil, Options{}); !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
}

func TestNewForExtracted_Invalid(t *testing.T) {
	if _, err := NewForExtracted(nil, Self()); !errors.Is(err, ErrInvalidSerializer) {
		t.Errorf("error = %v, want ErrInvalidSerializer", err)
	}
	if _, err := NewForExtracted(Identity(), nil); !errors.Is(err, ErrInvalidExtractor) {
		t.Errorf("error = %v, want ErrInvalidExtractor", err)
	}
}

func TestSerializingExtractor(t *testing.T) {
	type Address struct{ City string }
	type User struct{ Address Address }

	var seenInput any
	var seenHierarchy []any
	city := SerializerFunc(func(object, input any, opts Options) (any, error) {
		seenInput = input
		seenHierarchy = opts.FieldHierarchy()
		return Must(NewField("city", Send("City"))).Serialize(object, input, opts)
	})
	address := Must(NewField("address", Must(NewSerializingExtractor(Send("Address"), city))))

	out, err := address.Serialize(User{Address: Address{City: "Oslo"}}, Hash{}, Options{}.WithFieldPolicy(PermitAll()))
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}

	want := Hash{"address": Hash{"city": "Oslo"}}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Serialize() = %v, want %v", out, want)
	}
	if !reflect.DeepEqual(seenInput, Hash{}) {
		t.Errorf("nested serializer input = %v, want empty Hash", seenInput)
	}
	if !reflect.DeepEqual(seenHierarchy, []any{"address"}) {
		t.Errorf("nested hierarchy = %v, want [address]", seenHierarchy)
	}
}

func TestNewSerializingExtractor_Invalid(t *testing.T) {
	if _, err := NewSerializingExtractor(nil, Identity()); !errors.Is(err, ErrInvalidExtractor) {
		t.Errorf("error = %v, want ErrInvalidExtractor", err)
	}
	if _, err := NewSerializingExtractor(Self(), nil); !errors.Is(err, ErrInvalidSerializer) {
		t.Errorf("error = %v, want ErrInvalidSerializer", err)
	}
}
