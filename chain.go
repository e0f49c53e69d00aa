package porridge

// Chain composes serializers sequentially, threading each output into the
// next serializer's input. Every child sees the same object and options.
type Chain struct {
	serializers []Serializer
}

// NewChain validates and composes serializers. With no serializers the
// chain is the identity.
func NewChain(serializers ...Serializer) (*Chain, error) {
	candidates := make([]any, len(serializers))
	for i, s := range serializers {
		candidates[i] = s
	}
	if err := ValidSerializers("serializers", candidates...); err != nil {
		return nil, err
	}

	owned := make([]Serializer, len(serializers))
	copy(owned, serializers)
	return &Chain{serializers: owned}, nil
}

// Serialize runs every child in declared order and stops at the first error.
func (c *Chain) Serialize(object, input any, opts Options) (any, error) {
	output := input
	for _, s := range c.serializers {
		var err error
		output, err = s.Serialize(object, output, opts)
		if err != nil {
			return nil, err
		}
	}
	return output, nil
}

// Len returns the number of chained serializers.
func (c *Chain) Len() int {
	return len(c.serializers)
}
