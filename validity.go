package porridge

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/errors"
)

// AsSerializer performs the structural check for the Serializer role.
// A candidate qualifies when it implements Serializer or is a function with
// SerializerFunc's signature, and is not nil.
func AsSerializer(candidate any) (Serializer, error) {
	if isNil(candidate) {
		return nil, newContractError(ErrInvalidSerializer, "", nil)
	}
	switch c := candidate.(type) {
	case Serializer:
		return c, nil
	case func(object, input any, opts Options) (any, error):
		return SerializerFunc(c), nil
	}
	return nil, newContractError(ErrInvalidSerializer, "", candidate)
}

// AsExtractor performs the structural check for the Extractor role.
func AsExtractor(candidate any) (Extractor, error) {
	if isNil(candidate) {
		return nil, newContractError(ErrInvalidExtractor, "", nil)
	}
	switch c := candidate.(type) {
	case Extractor:
		return c, nil
	case func(object any, opts Options) (any, error):
		return ExtractorFunc(c), nil
	}
	return nil, newContractError(ErrInvalidExtractor, "", candidate)
}

// AsFieldPolicy performs the structural check for the FieldPolicy role.
func AsFieldPolicy(candidate any) (FieldPolicy, error) {
	if isNil(candidate) {
		return nil, newContractError(ErrInvalidFieldPolicy, "", nil)
	}
	switch c := candidate.(type) {
	case FieldPolicy:
		return c, nil
	case func(name, object any, opts Options) bool:
		return FieldPolicyFunc(c), nil
	}
	return nil, newContractError(ErrInvalidFieldPolicy, "", candidate)
}

// ValidSerializers checks every candidate and reports the first failure,
// naming param (indexed when more than one candidate is given).
// Zero candidates always pass.
func ValidSerializers(param string, candidates ...any) error {
	return validate(param, candidates, func(c any) error {
		_, err := AsSerializer(c)
		return err
	})
}

// ValidExtractors checks every candidate for the Extractor role.
func ValidExtractors(param string, candidates ...any) error {
	return validate(param, candidates, func(c any) error {
		_, err := AsExtractor(c)
		return err
	})
}

// ValidFieldPolicies checks every candidate for the FieldPolicy role.
func ValidFieldPolicies(param string, candidates ...any) error {
	return validate(param, candidates, func(c any) error {
		_, err := AsFieldPolicy(c)
		return err
	})
}

func validate(param string, candidates []any, check func(any) error) error {
	for i, c := range candidates {
		err := check(c)
		if err == nil {
			continue
		}
		var ce *ContractError
		if errors.As(err, &ce) {
			name := param
			if len(candidates) > 1 {
				name = fmt.Sprintf("%s[%d]", param, i)
			}
			return newContractError(ce.Err, name, c)
		}
		return err
	}
	return nil
}

// isNil reports whether v is nil or a typed nil behind an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
