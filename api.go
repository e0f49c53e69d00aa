// Package porridge turns domain objects into nested, serialization-ready
// structures through small composable transforms.
//
// A pipeline is a tree of Serializer and Extractor values built once and
// called many times. A single call threads three things through the tree:
// the driving object, the accumulating input, and an immutable Options map
// that carries the per-call FieldPolicy and the current field hierarchy.
//
// # Protocols
//
//   - Serializer: (object, input, options) -> output
//   - Extractor: (object, options) -> value
//   - FieldPolicy: (name, object, options) -> allowed
//
// Plain functions satisfy the protocols through SerializerFunc,
// ExtractorFunc and FieldPolicyFunc.
//
// # Combinators
//
//   - Chain: runs serializers in order, feeding each output to the next
//   - Array: maps a serializer over sequences, delegates once otherwise
//   - ForExtracted: swaps the driving object for an extracted value
//   - SerializingExtractor: extracts a value and serializes it from an empty Hash
//   - Field: consults the policy, extends the hierarchy, emits one key
//
// # Basic Usage
//
//	person := porridge.Must(porridge.NewChain(
//	    porridge.Must(porridge.NewField("id", porridge.Send("Identifier"))),
//	    porridge.Must(porridge.NewField("name", porridge.Send("Name"))),
//	))
//
//	policy := porridge.NewWhitelist(porridge.Whitelist{"id": true, "name": true})
//	out, err := person.Serialize(p, porridge.Hash{}, porridge.Options{}.WithFieldPolicy(policy))
//
// # Field Policies
//
// Every Field looks up the policy in the options on every call. The
// WhitelistPolicy matches the full hierarchy path against a nested map:
//
//	porridge.Whitelist{
//	    "id": true,
//	    "buildings": porridge.Whitelist{"id": true, "city": true},
//	}
//
// A truthy leaf allows exactly that path. It never implies that deeper
// fields are allowed.
//
// # Boundary Wrappers
//
//   - WithRoot nests output under an explicit or inferred root key
//   - KeyNormalizer rewrites every key to a canonical string form
//   - Processor runs a pipeline, normalizes keys and marshals with a Codec
//
// # Codec Providers
//
// The following codec implementations are available as subpackages:
//
//   - json - JSON encoding (application/json)
//   - sonic - JSON encoding backed by bytedance/sonic (application/json)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
//   - structpb - protobuf google.protobuf.Value encoding (application/protobuf)
package porridge

// Serializer transforms an (object, input, options) triple into an output.
//
// Implementations must not mutate opts or input in place. They may return
// input itself when they have nothing to add.
type Serializer interface {
	Serialize(object, input any, opts Options) (any, error)
}

// Extractor pulls a value out of an object.
type Extractor interface {
	Extract(object any, opts Options) (any, error)
}

// FieldPolicy decides whether a named field may be emitted.
// opts carries the field hierarchy of the parent, without the policy itself.
type FieldPolicy interface {
	Allowed(name, object any, opts Options) bool
}

// SerializerFunc adapts a function to the Serializer interface.
type SerializerFunc func(object, input any, opts Options) (any, error)

// Serialize calls f.
func (f SerializerFunc) Serialize(object, input any, opts Options) (any, error) {
	return f(object, input, opts)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(object any, opts Options) (any, error)

// Extract calls f.
func (f ExtractorFunc) Extract(object any, opts Options) (any, error) {
	return f(object, opts)
}

// FieldPolicyFunc adapts a predicate to the FieldPolicy interface.
type FieldPolicyFunc func(name, object any, opts Options) bool

// Allowed calls f.
func (f FieldPolicyFunc) Allowed(name, object any, opts Options) bool {
	return f(name, object, opts)
}

type identity struct{}

// Identity returns the base serializer. It returns input unchanged.
func Identity() Serializer {
	return identity{}
}

func (identity) Serialize(_, input any, _ Options) (any, error) {
	return input, nil
}

type nilExtractor struct{}

// Nil returns the base extractor. It always extracts nil.
func Nil() Extractor {
	return nilExtractor{}
}

func (nilExtractor) Extract(_ any, _ Options) (any, error) {
	return nil, nil
}

type permitAll struct{}

// PermitAll returns the default policy, which allows every field.
func PermitAll() FieldPolicy {
	return permitAll{}
}

func (permitAll) Allowed(_, _ any, _ Options) bool {
	return true
}

type denyAll struct{}

// DenyAll returns a policy that rejects every field.
func DenyAll() FieldPolicy {
	return denyAll{}
}

func (denyAll) Allowed(_, _ any, _ Options) bool {
	return false
}

// Must panics if err is non-nil and returns v otherwise.
// Use it for pipelines assembled at package initialization.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
