package porridge

// Array broadcasts a base serializer over the elements of an array-like
// driving value, or delegates once when the value is not array-like.
type Array struct {
	base    Serializer
	isArray func(any) bool
}

// ArrayOption configures an Array.
type ArrayOption func(*Array)

// WithArrayPredicate replaces IsSequence as the array-ness test.
func WithArrayPredicate(fn func(any) bool) ArrayOption {
	return func(a *Array) {
		if fn != nil {
			a.isArray = fn
		}
	}
}

// NewArray validates base and returns an Array around it.
func NewArray(base Serializer, opts ...ArrayOption) (*Array, error) {
	if err := ValidSerializers("base", base); err != nil {
		return nil, err
	}
	a := &Array{base: base, isArray: IsSequence}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Serialize maps base over each element, passing the same input and opts
// to every element, and collects the results positionally.
func (a *Array) Serialize(object, input any, opts Options) (any, error) {
	if !a.isArray(object) {
		return a.base.Serialize(object, input, opts)
	}
	items, ok := elements(object)
	if !ok {
		return a.base.Serialize(object, input, opts)
	}

	out := make([]any, len(items))
	for i, item := range items {
		v, err := a.base.Serialize(item, input, opts)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
