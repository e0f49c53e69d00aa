package porridge

// Presentable lets a type bypass a Processor's serializer and build its own
// structure. Root wrapping and key normalization still apply to the result.
//
// The options passed to Present already carry the processor's field policy,
// so implementations that emit their own Fields are filtered the same way:
//
//	func (u User) Present(opts porridge.Options) (any, error) {
//	    return userFields.Serialize(u, porridge.Hash{}, opts)
//	}
type Presentable interface {
	Present(opts Options) (any, error)
}

// presenting dispatches to Present when the object implements Presentable.
type presenting struct {
	base Serializer
}

func (p *presenting) Serialize(object, input any, opts Options) (any, error) {
	if pr, ok := object.(Presentable); ok {
		return pr.Present(opts)
	}
	return p.base.Serialize(object, input, opts)
}
