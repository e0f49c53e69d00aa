package porridge

import (
	"reflect"
	"sync"
)

// registryKey combines type and codec for cache lookup.
type registryKey struct {
	typ         reflect.Type
	contentType string
}

var (
	registry   = make(map[registryKey]any)
	registryMu sync.RWMutex
)

// Use returns a cached processor for T or builds one from Scan[T].
// Processors are cached by type and codec content type; options only take
// effect on the call that builds the processor.
func Use[T any](codec Codec, opts ...ProcessorOption) (*Processor[T], error) {
	if isNil(codec) {
		return nil, newContractError(ErrInvalidCodec, "codec", nil)
	}
	key := registryKey{typ: reflect.TypeFor[T](), contentType: codec.ContentType()}

	registryMu.RLock()
	if cached, ok := registry[key]; ok {
		registryMu.RUnlock()
		return cached.(*Processor[T]), nil
	}
	registryMu.RUnlock()

	registryMu.Lock()
	defer registryMu.Unlock()

	if cached, ok := registry[key]; ok {
		return cached.(*Processor[T]), nil
	}

	cfg := processorConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	def, err := Scan[T](cfg.scanOpts...)
	if err != nil {
		return nil, err
	}
	serializer, err := def.Build()
	if err != nil {
		return nil, err
	}

	processor, err := newProcessor[T](serializer, codec, cfg)
	if err != nil {
		return nil, err
	}

	registry[key] = processor
	return processor, nil
}

// Reset clears the processor registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[registryKey]any)
}
