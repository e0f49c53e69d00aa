package porridge

// Definition accumulates an ordered list of serializers and builds them
// into a Chain. It is the declarative layer over the core constructors:
// every method goes through the same validating constructors, and the first
// failure is kept and reported by Build.
//
//	base := porridge.Define().
//	    Attribute("id").
//	    Attribute("name")
//
//	admin := base.Derive().
//	    Attribute("email")
//
// Derive copies the list, so fields added to admin never reach base and
// fields added to base afterwards never reach admin.
type Definition struct {
	serializers []Serializer
	err         error
}

// Define starts an empty Definition.
func Define() *Definition {
	return &Definition{}
}

// Derive returns an independent copy of d.
func (d *Definition) Derive() *Definition {
	owned := make([]Serializer, len(d.serializers))
	copy(owned, d.serializers)
	return &Definition{serializers: owned, err: d.err}
}

// Serializer appends s as is.
func (d *Definition) Serializer(s Serializer) *Definition {
	if err := ValidSerializers("serializer", s); err != nil {
		return d.fail(err)
	}
	d.serializers = append(d.serializers, s)
	return d
}

// Field appends a Field reading name through e.
func (d *Definition) Field(name any, e Extractor) *Definition {
	f, err := NewField(name, e)
	if err != nil {
		return d.fail(err)
	}
	d.serializers = append(d.serializers, f)
	return d
}

// Attribute appends a Field that reads the accessor of the same name.
func (d *Definition) Attribute(name string) *Definition {
	return d.Field(name, Send(name))
}

// AttributeFunc appends a Field whose value is computed by fn.
func (d *Definition) AttributeFunc(name any, fn ExtractorFunc) *Definition {
	if fn == nil {
		return d.fail(newContractError(ErrInvalidExtractor, "fn", nil))
	}
	return d.Field(name, fn)
}

// AssociationOption selects where an association reads its value from.
type AssociationOption func(*association)

type association struct {
	extractor Extractor
}

// FromName reads the association through Send(name) instead of the field name.
func FromName(name string) AssociationOption {
	return func(a *association) {
		a.extractor = Send(name)
	}
}

// FromExtractor reads the association through e.
func FromExtractor(e Extractor) AssociationOption {
	return func(a *association) {
		a.extractor = e
	}
}

// BelongsTo appends a Field whose value is the associated object serialized
// by s from an empty Hash.
func (d *Definition) BelongsTo(name any, s Serializer, opts ...AssociationOption) *Definition {
	a := association{}
	if str, ok := name.(string); ok {
		a.extractor = Send(str)
	}
	for _, opt := range opts {
		opt(&a)
	}
	if a.extractor == nil {
		return d.fail(newContractError(ErrInvalidExtractor, "association", nil))
	}

	e, err := NewSerializingExtractor(a.extractor, s)
	if err != nil {
		return d.fail(err)
	}
	return d.Field(name, e)
}

// HasMany is BelongsTo with s mapped over every element of the association.
func (d *Definition) HasMany(name any, s Serializer, opts ...AssociationOption) *Definition {
	arr, err := NewArray(s)
	if err != nil {
		return d.fail(err)
	}
	return d.BelongsTo(name, arr, opts...)
}

// Serializers returns a copy of the accumulated list.
func (d *Definition) Serializers() []Serializer {
	out := make([]Serializer, len(d.serializers))
	copy(out, d.serializers)
	return out
}

// Err returns the first error recorded while defining.
func (d *Definition) Err() error {
	return d.err
}

// Build returns the accumulated serializers as a Chain.
func (d *Definition) Build() (Serializer, error) {
	if d.err != nil {
		return nil, d.err
	}
	return NewChain(d.serializers...)
}

func (d *Definition) fail(err error) *Definition {
	if d.err == nil {
		d.err = err
	}
	return d
}
