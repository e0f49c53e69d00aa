package porridge

import (
	"encoding"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/zoobzio/sentinel"
)

// Struct tags understood by Scan.
const (
	tagName    = "porridge"
	tagMask    = "send.mask"
	tagRedact  = "send.redact"
	tagHash    = "send.hash"
	tagEncrypt = "send.encrypt"
)

var scanTags = []string{tagName, tagMask, tagRedact, tagHash, tagEncrypt}

func init() {
	for _, t := range scanTags {
		sentinel.Tag(t)
	}
}

var (
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
)

// ScanOption configures Scan.
type ScanOption func(*scanner)

// WithEncryptor registers the encryptor used by `send.encrypt` tags.
func WithEncryptor(algo EncryptAlgo, enc Encryptor) ScanOption {
	return func(s *scanner) {
		s.encryptors[algo] = enc
	}
}

// WithHasher overrides the hasher used by `send.hash` tags.
func WithHasher(algo HashAlgo, h Hasher) ScanOption {
	return func(s *scanner) {
		s.hashers[algo] = h
	}
}

// WithMasker overrides the masker used by `send.mask` tags.
func WithMasker(mt MaskType, m Masker) ScanOption {
	return func(s *scanner) {
		s.maskers[mt] = m
	}
}

// Scan builds a Definition for struct type T from its exported fields.
//
// Each field is emitted under its `porridge` tag, or the snake_case form of
// its Go name; `porridge:"-"` skips it. Struct, pointer-to-struct,
// slice-of-struct and map-of-struct fields become associations serialized
// by their own scanned definition; maps keep their keys. Value transforms are declared with tags:
//
//	send.mask:"email"     - mask with a builtin masker
//	send.redact:"***"     - replace with a fixed value
//	send.hash:"sha256"    - replace with a hash
//	send.encrypt:"aes"    - replace with base64 ciphertext (see WithEncryptor)
//
// Types that contain themselves are rejected with ErrRecursiveType; define
// those by hand.
func Scan[T any](opts ...ScanOption) (*Definition, error) {
	s := &scanner{
		encryptors: make(map[EncryptAlgo]Encryptor),
		hashers:    make(map[HashAlgo]Hasher),
		maskers:    make(map[MaskType]Masker),
		visiting:   make(map[reflect.Type]bool),
	}
	for _, opt := range opts {
		opt(s)
	}

	rt := reflect.TypeFor[T]()
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, errors.Newf("scan: %s is not a struct", rt)
	}

	spec := sentinel.Scan[T]()
	fields := make([]scannedField, 0, len(spec.Fields))
	for _, f := range spec.Fields {
		if !rt.FieldByIndex(f.Index).IsExported() {
			continue
		}
		fields = append(fields, scannedField{
			name:  f.Name,
			index: f.Index,
			rtype: f.ReflectType,
			tags:  f.Tags,
		})
	}

	s.visiting[rt] = true
	return s.define(rt.Name(), fields)
}

type scanner struct {
	encryptors map[EncryptAlgo]Encryptor
	hashers    map[HashAlgo]Hasher
	maskers    map[MaskType]Masker
	visiting   map[reflect.Type]bool
}

type scannedField struct {
	name  string
	index []int
	rtype reflect.Type
	tags  map[string]string
}

func (s *scanner) define(typeName string, fields []scannedField) (*Definition, error) {
	d := Define()
	for _, f := range fields {
		key, skip := fieldKey(f)
		if skip {
			continue
		}

		e, err := s.extractor(f)
		if err != nil {
			return nil, errors.Wrapf(err, "%s.%s", typeName, f.name)
		}
		d.Field(key, e)
	}
	if d.Err() != nil {
		return nil, d.Err()
	}
	return d, nil
}

func fieldKey(f scannedField) (string, bool) {
	tag := f.tags[tagName]
	if tag == "-" {
		return "", true
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, false
	}
	return lo.SnakeCase(f.name), false
}

func (s *scanner) extractor(f scannedField) (Extractor, error) {
	var e Extractor = &structField{index: f.index}

	nested, shape := associationType(f.rtype)
	if nested != nil {
		if s.visiting[nested] {
			return nil, errors.Wrapf(ErrRecursiveType, "%s", nested)
		}
		s.visiting[nested] = true
		inner, err := s.define(nested.Name(), reflectFields(nested))
		delete(s.visiting, nested)
		if err != nil {
			return nil, err
		}

		chain, err := inner.Build()
		if err != nil {
			return nil, err
		}
		serializer := Serializer(&skipNil{base: chain})
		switch shape {
		case shapeMany:
			if serializer, err = NewArray(serializer); err != nil {
				return nil, err
			}
		case shapeKeyed:
			serializer = &eachValue{base: serializer}
		}
		return NewSerializingExtractor(e, &skipNil{base: serializer})
	}

	return s.decorate(e, f)
}

// decorate wraps e with the value transforms declared on f. Order: hash,
// encrypt, mask, redact; redaction always has the last word.
func (s *scanner) decorate(e Extractor, f scannedField) (Extractor, error) {
	var err error

	if algo, ok := f.tags[tagHash]; ok {
		h, found := s.hashers[HashAlgo(algo)]
		if !found {
			if !IsValidHashAlgo(HashAlgo(algo)) {
				return nil, newConfigError(ErrInvalidTag, algo, f.name)
			}
			h, _ = HasherFor(HashAlgo(algo))
		}
		if e, err = Hashed(e, h); err != nil {
			return nil, err
		}
	}

	if algo, ok := f.tags[tagEncrypt]; ok {
		if !IsValidEncryptAlgo(EncryptAlgo(algo)) {
			return nil, newConfigError(ErrInvalidTag, algo, f.name)
		}
		enc, found := s.encryptors[EncryptAlgo(algo)]
		if !found {
			return nil, newConfigError(ErrMissingEncryptor, algo, f.name)
		}
		if e, err = Encrypted(e, enc); err != nil {
			return nil, err
		}
	}

	if mt, ok := f.tags[tagMask]; ok {
		m, found := s.maskers[MaskType(mt)]
		if !found {
			if !IsValidMaskType(MaskType(mt)) {
				return nil, newConfigError(ErrInvalidTag, mt, f.name)
			}
			m, _ = MaskerFor(MaskType(mt))
		}
		if e, err = Masked(e, m); err != nil {
			return nil, err
		}
	}

	if replacement, ok := f.tags[tagRedact]; ok {
		if e, err = Redacted(e, replacement); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// associationShape is how a field holds its associated structs.
type associationShape int

const (
	shapeOne associationShape = iota
	shapeMany
	shapeKeyed
)

// associationType reports the struct type serialized as a nested object,
// and whether the field holds one, a sequence, or a map of them.
func associationType(t reflect.Type) (reflect.Type, associationShape) {
	shape := shapeOne
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		shape = shapeMany
		t = t.Elem()
	case reflect.Map:
		shape = shapeKeyed
		t = t.Elem()
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || isScalarStruct(t) {
		return nil, shapeOne
	}
	return t, shape
}

// isScalarStruct reports struct types that encode themselves (time.Time)
// or expose nothing to walk.
func isScalarStruct(t reflect.Type) bool {
	pt := reflect.PointerTo(t)
	if t.Implements(textMarshalerType) || pt.Implements(textMarshalerType) ||
		t.Implements(jsonMarshalerType) || pt.Implements(jsonMarshalerType) {
		return true
	}
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			return false
		}
	}
	return true
}

// reflectFields lists the exported fields of a nested struct type, using
// sentinel's cached metadata when the type has already been scanned.
func reflectFields(rt reflect.Type) []scannedField {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		out := make([]scannedField, 0, len(spec.Fields))
		for _, f := range spec.Fields {
			if !rt.FieldByIndex(f.Index).IsExported() {
				continue
			}
			out = append(out, scannedField{name: f.Name, index: f.Index, rtype: f.ReflectType, tags: f.Tags})
		}
		return out
	}

	out := make([]scannedField, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		tags := make(map[string]string)
		for _, t := range scanTags {
			if v, ok := sf.Tag.Lookup(t); ok {
				tags[t] = v
			}
		}
		out = append(out, scannedField{name: sf.Name, index: sf.Index, rtype: sf.Type, tags: tags})
	}
	return out
}

// structField reads a field by index path from a struct or pointer to one.
type structField struct {
	index []int
}

func (f *structField) Extract(object any, _ Options) (any, error) {
	if object == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(object)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, nil
	}
	v, err := rv.FieldByIndexErr(f.index)
	if err != nil {
		return nil, nil
	}
	return v.Interface(), nil
}

// skipNil serializes nil associations as nil instead of an empty object.
type skipNil struct {
	base Serializer
}

func (s *skipNil) Serialize(object, input any, opts Options) (any, error) {
	if isNil(object) {
		return nil, nil
	}
	return s.base.Serialize(object, input, opts)
}

// eachValue serializes every value of a map with base, keeping the keys.
type eachValue struct {
	base Serializer
}

func (s *eachValue) Serialize(object, input any, opts Options) (any, error) {
	rv := reflect.ValueOf(object)
	if rv.Kind() != reflect.Map {
		return s.base.Serialize(object, input, opts)
	}
	out := make(Hash, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		v, err := s.base.Serialize(iter.Value().Interface(), input, opts)
		if err != nil {
			return nil, err
		}
		out[iter.Key().Interface()] = v
	}
	return out, nil
}
