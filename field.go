package porridge

import (
	"reflect"
)

// Field is the emission unit. It asks the per-call policy whether its name
// may be emitted and, when allowed, writes one key into a copy of the
// accumulating Hash.
type Field struct {
	name      any
	extractor Extractor
}

// NewField validates the name and extractor. The name becomes a map key,
// so it must be a non-nil comparable value.
func NewField(name any, extractor Extractor) (*Field, error) {
	if name == nil || !reflect.TypeOf(name).Comparable() {
		return nil, newContractError(ErrInvalidFieldName, "name", name)
	}
	if err := ValidExtractors("extractor", extractor); err != nil {
		return nil, err
	}
	return &Field{name: name, extractor: extractor}, nil
}

// Name returns the output key.
func (f *Field) Name() any {
	return f.name
}

// Serialize emits the field into a copy of input.
//
// The policy is read from opts on every call. A denied field returns input
// as is and never runs the extractor. An allowed field extracts with an
// options copy whose hierarchy ends in this field's name.
func (f *Field) Serialize(object, input any, opts Options) (any, error) {
	policy, err := policyFrom(opts)
	if err != nil {
		return nil, err
	}

	if !policy.Allowed(f.name, object, opts.Without(KeyFieldPolicy)) {
		return input, nil
	}

	hash, ok := asHash(input)
	if !ok {
		return nil, newContractError(ErrInvalidInput, "input", input)
	}

	value, err := f.extractor.Extract(object, opts.WithField(f.name))
	if err != nil {
		return nil, err
	}
	return hash.With(f.name, value), nil
}

func policyFrom(opts Options) (FieldPolicy, error) {
	v, ok := opts.Get(KeyFieldPolicy)
	if !ok {
		return nil, newContractError(ErrInvalidFieldPolicy, KeyFieldPolicy, nil)
	}
	policy, err := AsFieldPolicy(v)
	if err != nil {
		return nil, newContractError(ErrInvalidFieldPolicy, KeyFieldPolicy, v)
	}
	return policy, nil
}
