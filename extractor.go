package porridge

import (
	"reflect"
	"strings"

	"github.com/samber/lo"
)

var errorType = reflect.TypeFor[error]()

// sendExtractor resolves a named accessor on the driving object.
type sendExtractor struct {
	names []string
}

// Send returns an extractor that reads the accessor called name.
//
// Resolution on the dereferenced object, first match wins:
//
//  1. an exported zero-argument method returning T or (T, error)
//  2. an exported struct field
//  3. a map entry keyed by name
//
// Methods and fields are tried under name and under its PascalCase form,
// so Send("first_name") finds FirstName. Fields finally match the
// PascalCase form case-insensitively, so Send("id") finds ID. An object with no such accessor
// extracts nil without error.
func Send(name string) Extractor {
	names := []string{name}
	if pascal := lo.PascalCase(name); pascal != name && pascal != "" {
		names = append(names, pascal)
	}
	return &sendExtractor{names: names}
}

func (s *sendExtractor) Extract(object any, _ Options) (any, error) {
	if object == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(object)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil, nil
	}

	for _, name := range s.names {
		if v, ok, err := callMethod(rv, name); ok || err != nil {
			return v, err
		}
	}

	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		for _, name := range s.names {
			sf, ok := rv.Type().FieldByName(name)
			if !ok || !sf.IsExported() {
				continue
			}
			f, err := rv.FieldByIndexErr(sf.Index)
			if err != nil {
				return nil, nil
			}
			return f.Interface(), nil
		}
		fold := s.names[len(s.names)-1]
		sf, ok := rv.Type().FieldByNameFunc(func(n string) bool {
			return strings.EqualFold(n, fold)
		})
		if ok && sf.IsExported() {
			if f, err := rv.FieldByIndexErr(sf.Index); err == nil {
				return f.Interface(), nil
			}
		}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, nil
		}
		key := reflect.ValueOf(s.names[0]).Convert(rv.Type().Key())
		if v := rv.MapIndex(key); v.IsValid() {
			return v.Interface(), nil
		}
	}
	return nil, nil
}

// callMethod invokes an exported zero-argument method named name on rv or,
// for addressable values, on its pointer.
func callMethod(rv reflect.Value, name string) (any, bool, error) {
	m := rv.MethodByName(name)
	if !m.IsValid() && rv.Kind() != reflect.Ptr && rv.Kind() != reflect.Interface {
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		m = ptr.MethodByName(name)
	}
	if !m.IsValid() {
		return nil, false, nil
	}

	mt := m.Type()
	if mt.NumIn() != 0 {
		return nil, false, nil
	}
	switch mt.NumOut() {
	case 1:
		return m.Call(nil)[0].Interface(), true, nil
	case 2:
		if !mt.Out(1).Implements(errorType) {
			return nil, false, nil
		}
		out := m.Call(nil)
		if err, _ := out[1].Interface().(error); err != nil {
			return nil, true, err
		}
		return out[0].Interface(), true, nil
	}
	return nil, false, nil
}

type keyExtractor struct {
	key any
}

// Key returns an extractor that reads key from a map. Non-map objects and
// missing keys extract nil.
func Key(key any) Extractor {
	return &keyExtractor{key: key}
}

func (k *keyExtractor) Extract(object any, _ Options) (any, error) {
	switch m := object.(type) {
	case nil:
		return nil, nil
	case Hash:
		return m[k.key], nil
	case map[any]any:
		return m[k.key], nil
	case map[string]any:
		s, ok := k.key.(string)
		if !ok {
			return nil, nil
		}
		return m[s], nil
	}

	rv := reflect.ValueOf(object)
	if rv.Kind() != reflect.Map || k.key == nil {
		return nil, nil
	}
	kv := reflect.ValueOf(k.key)
	kt := rv.Type().Key()
	switch {
	case kv.Type().AssignableTo(kt):
	case kv.Kind() == kt.Kind() && kv.Type().ConvertibleTo(kt):
		kv = kv.Convert(kt)
	default:
		return nil, nil
	}
	if v := rv.MapIndex(kv); v.IsValid() {
		return v.Interface(), nil
	}
	return nil, nil
}

type indexExtractor struct {
	index int
}

// Index returns an extractor that reads position i of a sequence.
// Out of range positions and non-sequences extract nil.
func Index(i int) Extractor {
	return &indexExtractor{index: i}
}

func (x *indexExtractor) Extract(object any, _ Options) (any, error) {
	items, ok := elements(object)
	if !ok || x.index < 0 || x.index >= len(items) {
		return nil, nil
	}
	return items[x.index], nil
}

type valueExtractor struct {
	value any
}

// Value returns an extractor that always yields v.
func Value(v any) Extractor {
	return &valueExtractor{value: v}
}

func (c *valueExtractor) Extract(_ any, _ Options) (any, error) {
	return c.value, nil
}

// Self returns an extractor that yields the driving object itself.
func Self() Extractor {
	return ExtractorFunc(func(object any, _ Options) (any, error) {
		return object, nil
	})
}
