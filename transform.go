package porridge

import (
	"encoding/base64"
	"fmt"
)

// valueTransform decorates an extractor with a string transformation.
// Strings and byte slices are transformed as a whole, string slices per
// element; nil passes through untouched.
type valueTransform struct {
	base      Extractor
	operation string
	sentinel  error
	fn        func([]byte) (string, error)
}

func (t *valueTransform) Extract(object any, opts Options) (any, error) {
	v, err := t.base.Extract(object, opts)
	if err != nil {
		return nil, err
	}

	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return t.apply([]byte(val))
	case []byte:
		return t.apply(val)
	case *string:
		if val == nil {
			return nil, nil
		}
		return t.apply([]byte(*val))
	case []string:
		out := make([]string, len(val))
		for i, s := range val {
			r, err := t.apply([]byte(s))
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	}
	return nil, newTransformError(t.sentinel, t.operation, fmt.Errorf("unsupported value type %T", v))
}

func (t *valueTransform) apply(b []byte) (string, error) {
	s, err := t.fn(b)
	if err != nil {
		return "", newTransformError(t.sentinel, t.operation, err)
	}
	return s, nil
}

func newValueTransform(base Extractor, operation string, sentinel error, fn func([]byte) (string, error)) (Extractor, error) {
	if err := ValidExtractors("base", base); err != nil {
		return nil, err
	}
	return &valueTransform{base: base, operation: operation, sentinel: sentinel, fn: fn}, nil
}

// Masked applies m to the value extracted by base.
func Masked(base Extractor, m Masker) (Extractor, error) {
	if m == nil {
		return nil, newConfigError(ErrMask, "", "")
	}
	return newValueTransform(base, "mask", ErrMask, func(b []byte) (string, error) {
		return m.Mask(string(b)), nil
	})
}

// Redacted replaces every non-nil value extracted by base with replacement.
func Redacted(base Extractor, replacement string) (Extractor, error) {
	return newValueTransform(base, "redact", ErrRedact, func([]byte) (string, error) {
		return replacement, nil
	})
}

// Hashed replaces the value extracted by base with its hash.
func Hashed(base Extractor, h Hasher) (Extractor, error) {
	if h == nil {
		return nil, newConfigError(ErrHash, "", "")
	}
	return newValueTransform(base, "hash", ErrHash, h.Hash)
}

// Encrypted replaces the value extracted by base with its base64-encoded
// ciphertext.
func Encrypted(base Extractor, enc Encryptor) (Extractor, error) {
	if enc == nil {
		return nil, newConfigError(ErrMissingEncryptor, "", "")
	}
	return newValueTransform(base, "encrypt", ErrEncrypt, func(b []byte) (string, error) {
		ct, err := enc.Encrypt(b)
		if err != nil {
			return "", err
		}
		return base64.StdEncoding.EncodeToString(ct), nil
	})
}
