package porridge

import (
	"context"
	"reflect"
	"sync"
	"time"
)

// Processor binds a serializer to a codec for values of type T.
// Serialize produces the intermediate structure; Send normalizes its keys
// and marshals it.
//
// Processors are safe for concurrent use. SetPolicy and SetCodec may be
// called at any time; in-flight calls keep the configuration they started
// with.
type Processor[T any] struct {
	mu         sync.RWMutex
	codec      Codec
	policy     FieldPolicy
	serializer Serializer
	keyFunc    KeyFunc
	typeName   string
}

type processorConfig struct {
	policy   FieldPolicy
	root     bool
	rootKey  any
	keyFunc  KeyFunc
	scanOpts []ScanOption
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*processorConfig)

// WithPolicy sets the field policy injected when a call's options carry
// none. The default is PermitAll.
func WithPolicy(policy FieldPolicy) ProcessorOption {
	return func(c *processorConfig) {
		c.policy = policy
	}
}

// WithRootName nests output under key.
func WithRootName(key any) ProcessorOption {
	return func(c *processorConfig) {
		c.root = true
		c.rootKey = key
	}
}

// WithInferredRoot nests output under a key inferred from the object's
// type name (see InferRootKey).
func WithInferredRoot() ProcessorOption {
	return func(c *processorConfig) {
		c.root = true
		c.rootKey = nil
	}
}

// WithKeys sets how Send renders map keys. The default is StringKey.
func WithKeys(fn KeyFunc) ProcessorOption {
	return func(c *processorConfig) {
		c.keyFunc = fn
	}
}

// WithScanOptions passes options to Scan when Use builds a processor.
func WithScanOptions(opts ...ScanOption) ProcessorOption {
	return func(c *processorConfig) {
		c.scanOpts = append(c.scanOpts, opts...)
	}
}

// NewProcessor creates a Processor running serializer and encoding with codec.
func NewProcessor[T any](serializer Serializer, codec Codec, opts ...ProcessorOption) (*Processor[T], error) {
	cfg := processorConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return newProcessor[T](serializer, codec, cfg)
}

func newProcessor[T any](serializer Serializer, codec Codec, cfg processorConfig) (*Processor[T], error) {
	if err := ValidSerializers("serializer", serializer); err != nil {
		return nil, err
	}
	if isNil(codec) {
		return nil, newContractError(ErrInvalidCodec, "codec", nil)
	}

	policy := cfg.policy
	if policy == nil {
		policy = PermitAll()
	} else if err := ValidFieldPolicies("policy", policy); err != nil {
		return nil, err
	}

	serializer = &presenting{base: serializer}
	if cfg.root {
		var rootOpts []RootOption
		if cfg.rootKey != nil {
			rootOpts = append(rootOpts, WithRootKey(cfg.rootKey))
		}
		root, err := NewWithRoot(serializer, rootOpts...)
		if err != nil {
			return nil, err
		}
		serializer = root
	}

	keyFunc := cfg.keyFunc
	if keyFunc == nil {
		keyFunc = StringKey
	}

	p := &Processor[T]{
		codec:      codec,
		policy:     policy,
		serializer: serializer,
		keyFunc:    keyFunc,
		typeName:   reflect.TypeFor[T]().String(),
	}

	emitProcessorCreated(context.Background(), codec.ContentType(), p.typeName)
	return p, nil
}

// SetPolicy replaces the default field policy. Safe for concurrent use.
// An invalid policy is rejected and the current one kept.
func (p *Processor[T]) SetPolicy(policy FieldPolicy) error {
	if err := ValidFieldPolicies("policy", policy); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.policy = policy
	return nil
}

// SetCodec replaces the codec. Safe for concurrent use.
// A nil codec is rejected and the current one kept.
func (p *Processor[T]) SetCodec(codec Codec) error {
	if isNil(codec) {
		return newContractError(ErrInvalidCodec, "codec", nil)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.codec = codec
	return nil
}

// ContentType returns the current codec's content type.
func (p *Processor[T]) ContentType() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.codec.ContentType()
}

// snapshot returns the configuration for one call.
func (p *Processor[T]) snapshot() (Codec, FieldPolicy) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.codec, p.policy
}

// Serialize runs the serializer on obj from an empty Hash.
func (p *Processor[T]) Serialize(ctx context.Context, obj T, opts Options) (any, error) {
	codec, policy := p.snapshot()

	start := time.Now()
	emitSerializeStart(ctx, codec.ContentType(), p.typeName)

	out, err := p.serialize(obj, policy, opts)
	emitSerializeComplete(ctx, codec.ContentType(), p.typeName, time.Since(start), err)
	return out, err
}

// Send serializes obj, normalizes the keys of the result and marshals it.
func (p *Processor[T]) Send(ctx context.Context, obj T, opts Options) ([]byte, error) {
	codec, policy := p.snapshot()

	start := time.Now()
	emitSendStart(ctx, codec.ContentType(), p.typeName)

	var retErr error
	var retData []byte
	defer func() {
		emitSendComplete(ctx, codec.ContentType(), p.typeName,
			len(retData), time.Since(start), retErr)
	}()

	out, err := p.serialize(obj, policy, opts)
	if err != nil {
		retErr = err
		return nil, retErr
	}

	data, err := codec.Marshal(NormalizeKeys(out, p.keyFunc))
	if err != nil {
		retErr = newCodecError(ErrMarshal, err)
		return nil, retErr
	}
	retData = data
	return retData, nil
}

func (p *Processor[T]) serialize(obj T, policy FieldPolicy, opts Options) (any, error) {
	if _, present := opts.Get(KeyFieldPolicy); !present {
		opts = opts.WithFieldPolicy(policy)
	}
	return p.serializer.Serialize(obj, Hash{}, opts)
}
