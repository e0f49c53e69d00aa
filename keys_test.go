package porridge

import (
	"reflect"
	"testing"
)

type keyLabel string

func TestKeyFuncs(t *testing.T) {
	tests := []struct {
		name string
		fn   KeyFunc
		key  any
		want string
	}{
		{"string", StringKey, "first_name", "first_name"},
		{"int", StringKey, 42, "42"},
		{"named string", StringKey, keyLabel("x"), "x"},
		{"snake", SnakeKey, "FirstName", "first_name"},
		{"snake from camel", SnakeKey, "firstName", "first_name"},
		{"camel", CamelKey, "first_name", "firstName"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.key); got != tt.want {
				t.Errorf("%s(%v) = %q, want %q", tt.name, tt.key, got, tt.want)
			}
		})
	}
}

func TestNormalizeKeys(t *testing.T) {
	in := Hash{
		"id": 1,
		7:    "seven",
		"buildings": []any{
			Hash{"city": "Oslo"},
			map[any]any{1: true},
		},
		"many":  []Hash{{"x": 1}},
		"plain": map[string]any{"y": Hash{"z": 2}},
		"typed": map[keyLabel]any{"t": 3},
		"bytes": []byte("raw"),
	}

	want := map[string]any{
		"id": 1,
		"7":  "seven",
		"buildings": []any{
			map[string]any{"city": "Oslo"},
			map[string]any{"1": true},
		},
		"many":  []any{map[string]any{"x": 1}},
		"plain": map[string]any{"y": map[string]any{"z": 2}},
		"typed": map[string]any{"t": 3},
		"bytes": []byte("raw"),
	}

	got := NormalizeKeys(in, StringKey)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeKeys() =\n%v\nwant\n%v", got, want)
	}
	if _, ok := in[7]; !ok {
		t.Error("input modified")
	}
}

func TestNormalizeKeys_Scalars(t *testing.T) {
	for _, v := range []any{nil, 1, "a", true} {
		if got := NormalizeKeys(v, StringKey); got != v {
			t.Errorf("NormalizeKeys(%v) = %v", v, got)
		}
	}
}

func TestKeyNormalizer(t *testing.T) {
	base := Must(NewChain(
		Must(NewField("FirstName", Value("Ada"))),
		Must(NewField("LastName", Value("Lovelace"))),
	))
	k := Must(NewKeyNormalizer(base, SnakeKey))

	out, err := k.Serialize(nil, Hash{}, Options{}.WithFieldPolicy(PermitAll()))
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	want := map[string]any{"first_name": "Ada", "last_name": "Lovelace"}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Serialize() = %v, want %v", out, want)
	}

	defaulted := Must(NewKeyNormalizer(Must(NewField(1, Value(true))), nil))
	out, err = defaulted.Serialize(nil, Hash{}, Options{}.WithFieldPolicy(PermitAll()))
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if want := (map[string]any{"1": true}); !reflect.DeepEqual(out, want) {
		t.Errorf("Serialize() = %v, want %v", out, want)
	}
}

func TestNormalizeKeys_Collisions(t *testing.T) {
	tests := []struct {
		name string
		in   any
		fn   KeyFunc
		want map[string]any
	}{
		{
			name: "string key wins over int",
			in:   Hash{1: "int", "1": "string"},
			fn:   StringKey,
			want: map[string]any{"1": "string"},
		},
		{
			name: "lowest string key wins",
			in:   map[string]any{"first_name": "snake", "FirstName": "pascal"},
			fn:   SnakeKey,
			want: map[string]any{"first_name": "pascal"},
		},
		{
			name: "non-string keys ordered by type",
			in:   map[any]any{int64(2): "int64", 2: "int"},
			fn:   StringKey,
			want: map[string]any{"2": "int"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				if got := NormalizeKeys(tt.in, tt.fn); !reflect.DeepEqual(got, tt.want) {
					t.Fatalf("run %d: NormalizeKeys() = %v, want %v", i, got, tt.want)
				}
			}
		})
	}
}
