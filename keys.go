package porridge

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/samber/lo"
)

// KeyFunc renders a map key in canonical string form.
type KeyFunc func(key any) string

// StringKey renders keys with their default string formatting.
func StringKey(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	return fmt.Sprint(key)
}

// SnakeKey renders keys as snake_case strings.
func SnakeKey(key any) string {
	return lo.SnakeCase(StringKey(key))
}

// CamelKey renders keys as camelCase strings.
func CamelKey(key any) string {
	return lo.CamelCase(StringKey(key))
}

// KeyNormalizer rewrites every key of the wrapped serializer's output,
// at every depth, without altering values.
type KeyNormalizer struct {
	base    Serializer
	keyFunc KeyFunc
}

// NewKeyNormalizer validates base. A nil fn selects StringKey.
func NewKeyNormalizer(base Serializer, fn KeyFunc) (*KeyNormalizer, error) {
	if err := ValidSerializers("base", base); err != nil {
		return nil, err
	}
	if fn == nil {
		fn = StringKey
	}
	return &KeyNormalizer{base: base, keyFunc: fn}, nil
}

// Serialize runs base and normalizes its output.
func (k *KeyNormalizer) Serialize(object, input any, opts Options) (any, error) {
	out, err := k.base.Serialize(object, input, opts)
	if err != nil {
		return nil, err
	}
	return NormalizeKeys(out, k.keyFunc), nil
}

// NormalizeKeys returns a deep copy of v where every map becomes a
// map[string]any keyed by fn. Sequences are walked; other values are
// returned as is.
//
// When several keys render to the same string, one wins in a fixed order:
// string keys before other keys, then by type name and formatted value.
func NormalizeKeys(v any, fn KeyFunc) any {
	switch t := v.(type) {
	case Hash:
		return normalizeEntries(lo.Entries(map[any]any(t)), fn)
	case map[any]any:
		return normalizeEntries(lo.Entries(t), fn)
	case map[string]any:
		return normalizeEntries(lo.MapToSlice(t, func(k string, v any) lo.Entry[any, any] {
			return lo.Entry[any, any]{Key: k, Value: v}
		}), fn)
	case []any:
		return lo.Map(t, func(item any, _ int) any {
			return NormalizeKeys(item, fn)
		})
	case []Hash:
		return lo.Map(t, func(item Hash, _ int) any {
			return NormalizeKeys(item, fn)
		})
	case nil:
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map && rv.Type().Elem().Kind() == reflect.Interface {
		entries := make([]lo.Entry[any, any], 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			entries = append(entries, lo.Entry[any, any]{Key: iter.Key().Interface(), Value: iter.Value().Interface()})
		}
		return normalizeEntries(entries, fn)
	}
	return v
}

func normalizeEntries(entries []lo.Entry[any, any], fn KeyFunc) map[string]any {
	ranks := make(map[any]string, len(entries))
	for _, e := range entries {
		ranks[e.Key] = keyRank(e.Key)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return ranks[entries[i].Key] < ranks[entries[j].Key]
	})

	out := make(map[string]any, len(entries))
	for _, e := range entries {
		k := fn(e.Key)
		if _, taken := out[k]; taken {
			continue
		}
		out[k] = NormalizeKeys(e.Value, fn)
	}
	return out
}

// keyRank orders source keys: strings first, then by type and value.
func keyRank(key any) string {
	if s, ok := key.(string); ok {
		return "0" + s
	}
	return fmt.Sprintf("1%T\x00%v", key, key)
}
