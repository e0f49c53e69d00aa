package porridge

import (
	"reflect"
)

// Whitelist is a nested permission map. Each key is a field name; each value
// is either a leaf (truthy allows the path) or another map that continues
// the match one level deeper.
type Whitelist map[any]any

// WhitelistPolicy allows a field when its full hierarchy path resolves to a
// truthy leaf of the whitelist.
//
// The policy never widens a shallow grant: {"user": true} allows "user" but
// not "user.id". Only nil, typed nil and false leaves are falsy; any other
// value (including 0, "" and 3.14) allows the field.
type WhitelistPolicy struct {
	whitelist any
}

// NewWhitelist returns a policy over w. The map is read, never modified.
func NewWhitelist(w Whitelist) *WhitelistPolicy {
	return &WhitelistPolicy{whitelist: w}
}

// NewWhitelistFrom returns a policy over any nested map, such as the
// map[string]any produced by decoding a configuration document.
func NewWhitelistFrom(w any) *WhitelistPolicy {
	return &WhitelistPolicy{whitelist: w}
}

// Allowed matches the hierarchy in opts extended by name.
func (p *WhitelistPolicy) Allowed(name, _ any, opts Options) bool {
	path := append(opts.FieldHierarchy(), name)
	return resolve(path, p.whitelist, 0)
}

func resolve(path []any, current any, level int) bool {
	if level >= len(path) {
		return truthy(current)
	}
	child, isMap := lookup(current, path[level])
	if !isMap {
		return false
	}
	return resolve(path, child, level+1)
}

// lookup reads key from a map-shaped value. The boolean reports whether
// current is a map at all; a missing key yields nil.
func lookup(current, key any) (any, bool) {
	switch m := current.(type) {
	case nil:
		return nil, false
	case Whitelist:
		return m[key], true
	case map[any]any:
		return m[key], true
	case map[string]any:
		s, ok := stringKey(key)
		if !ok {
			return nil, true
		}
		return m[s], true
	}

	rv := reflect.ValueOf(current)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	if key == nil {
		return nil, true
	}
	kv := reflect.ValueOf(key)
	kt := rv.Type().Key()
	switch {
	case kv.Type().AssignableTo(kt):
	case kv.Kind() == kt.Kind() && kv.Type().ConvertibleTo(kt):
		kv = kv.Convert(kt)
	default:
		return nil, true
	}
	if v := rv.MapIndex(kv); v.IsValid() {
		return v.Interface(), true
	}
	return nil, true
}

// stringKey accepts string segments and named string types.
func stringKey(key any) (string, bool) {
	if s, ok := key.(string); ok {
		return s, true
	}
	if key == nil {
		return "", false
	}
	rv := reflect.ValueOf(key)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// truthy treats false of any bool kind, nil and typed nil as falsy.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Bool {
		return rv.Bool()
	}
	return !isNil(v)
}
