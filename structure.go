package porridge

import (
	"reflect"

	"github.com/samber/lo"
)

// Hash is the accumulating output structure. Keys are field names stored
// verbatim, so any comparable value may be a key.
type Hash map[any]any

// With returns a new Hash holding h's entries plus key. h is left untouched,
// so earlier references to it remain valid snapshots.
func (h Hash) With(key, value any) Hash {
	return Hash(lo.Assign(map[any]any(h), map[any]any{key: value}))
}

// asHash views an input structure as a Hash without copying when possible.
func asHash(input any) (Hash, bool) {
	switch in := input.(type) {
	case nil:
		return Hash{}, true
	case Hash:
		return in, true
	case map[any]any:
		return Hash(in), true
	case map[string]any:
		out := make(Hash, len(in))
		for k, v := range in {
			out[k] = v
		}
		return out, true
	}
	return nil, false
}

// IsSequence is the default array predicate: slices and arrays are
// sequences, except byte slices which serialize as a single value.
func IsSequence(v any) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return t.Elem().Kind() != reflect.Uint8
	}
	return false
}

// elements returns the items of a slice or array in order. Values that
// cannot be indexed report false.
func elements(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
