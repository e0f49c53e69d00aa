package porridge

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/jinzhu/inflection"
	"github.com/samber/lo"
)

// maxUnwrap bounds how many pointer/slice layers are peeled off while
// looking for a named type.
const maxUnwrap = 8

// RootKeyFunc computes the root key for a driving object. isArray reports
// the verdict of the root's array predicate for object.
type RootKeyFunc func(object any, isArray bool) (any, error)

// WithRoot nests the wrapped serializer's output under a single root key.
type WithRoot struct {
	base    Serializer
	key     any
	keyFunc RootKeyFunc
	isArray func(any) bool
}

// RootOption configures a WithRoot.
type RootOption func(*WithRoot)

// WithRootKey uses key verbatim instead of inferring one.
func WithRootKey(key any) RootOption {
	return func(r *WithRoot) {
		r.key = key
	}
}

// WithRootKeyFunc replaces the type-name inference.
func WithRootKeyFunc(fn RootKeyFunc) RootOption {
	return func(r *WithRoot) {
		if fn != nil {
			r.keyFunc = fn
		}
	}
}

// WithRootArrayPredicate replaces IsSequence when deciding whether the
// root key is pluralized.
func WithRootArrayPredicate(fn func(any) bool) RootOption {
	return func(r *WithRoot) {
		if fn != nil {
			r.isArray = fn
		}
	}
}

// NewWithRoot validates base and returns a root-wrapping serializer.
func NewWithRoot(base Serializer, opts ...RootOption) (*WithRoot, error) {
	if err := ValidSerializers("base", base); err != nil {
		return nil, err
	}
	r := &WithRoot{base: base, keyFunc: InferRootKey, isArray: IsSequence}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Serialize calls base with unchanged input and options and nests the
// result under the root key.
func (r *WithRoot) Serialize(object, input any, opts Options) (any, error) {
	key := r.key
	if key == nil {
		var err error
		key, err = r.keyFunc(object, r.isArray(object))
		if err != nil {
			return nil, err
		}
	}

	out, err := r.base.Serialize(object, input, opts)
	if err != nil {
		return nil, err
	}
	return Hash{key: out}, nil
}

// InferRootKey derives a key from the type name of a representative
// sample: the first element of an array, the element type of an empty
// typed slice, or the object itself. The name is snake_cased, then
// pluralized for arrays and singularized otherwise.
//
//	Person   -> "person"
//	[]Person -> "people"
func InferRootKey(object any, isArray bool) (any, error) {
	t := sampleType(object, isArray)
	name := namedType(t)
	if name == "" {
		return nil, errors.Wrapf(ErrRootKey, "no named type for %T", object)
	}

	base := lo.SnakeCase(name)
	if isArray {
		return inflection.Plural(base), nil
	}
	return inflection.Singular(base), nil
}

func sampleType(object any, isArray bool) reflect.Type {
	if object == nil {
		return nil
	}
	if !isArray {
		return reflect.TypeOf(object)
	}
	items, ok := elements(object)
	if !ok {
		return reflect.TypeOf(object)
	}
	if len(items) > 0 && items[0] != nil {
		return reflect.TypeOf(items[0])
	}
	return reflect.TypeOf(object).Elem()
}

// namedType unwraps pointers and containers until it reaches a named type.
func namedType(t reflect.Type) string {
	for i := 0; t != nil && i < maxUnwrap; i++ {
		if t.Name() != "" {
			return t.Name()
		}
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array:
			t = t.Elem()
		default:
			return ""
		}
	}
	return ""
}
