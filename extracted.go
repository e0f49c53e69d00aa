package porridge

// ForExtracted re-points the driving object of a wrapped serializer to a
// value pulled from an extractor. Input and options pass through untouched.
type ForExtracted struct {
	base      Serializer
	extractor Extractor
}

// NewForExtracted validates both collaborators.
func NewForExtracted(base Serializer, extractor Extractor) (*ForExtracted, error) {
	if err := ValidSerializers("base", base); err != nil {
		return nil, err
	}
	if err := ValidExtractors("extractor", extractor); err != nil {
		return nil, err
	}
	return &ForExtracted{base: base, extractor: extractor}, nil
}

// Serialize extracts from object and hands the value to base.
func (f *ForExtracted) Serialize(object, input any, opts Options) (any, error) {
	value, err := f.extractor.Extract(object, opts)
	if err != nil {
		return nil, err
	}
	return f.base.Serialize(value, input, opts)
}

// SerializingExtractor extracts a value and serializes it from a fresh,
// empty Hash, returning the result as the extracted value. It is how a
// nested association is built while sharing the surrounding options and
// field hierarchy.
type SerializingExtractor struct {
	base       Extractor
	serializer Serializer
}

// NewSerializingExtractor validates both collaborators.
func NewSerializingExtractor(base Extractor, serializer Serializer) (*SerializingExtractor, error) {
	if err := ValidExtractors("base", base); err != nil {
		return nil, err
	}
	if err := ValidSerializers("serializer", serializer); err != nil {
		return nil, err
	}
	return &SerializingExtractor{base: base, serializer: serializer}, nil
}

// Extract runs the extractor, then the serializer with an empty seed.
func (s *SerializingExtractor) Extract(object any, opts Options) (any, error) {
	value, err := s.base.Extract(object, opts)
	if err != nil {
		return nil, err
	}
	return s.serializer.Serialize(value, Hash{}, opts)
}
