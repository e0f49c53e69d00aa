// Package structpb provides a protobuf codec that encodes serialized
// structures as google.protobuf.Value messages.
package structpb

import (
	"fmt"
	"reflect"

	"github.com/zoobzio/porridge"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// structpbCodec implements porridge.Codec for protobuf.
type structpbCodec struct{}

// New returns a protobuf codec over google.protobuf.Value.
func New() porridge.Codec {
	return &structpbCodec{}
}

// ContentType returns the MIME type for protobuf.
func (c *structpbCodec) ContentType() string {
	return "application/protobuf"
}

// Marshal encodes v as a google.protobuf.Value. Maps must have string keys
// (normalize first); typed slices and maps are widened to []any and
// map[string]any.
func (c *structpbCodec) Marshal(v any) ([]byte, error) {
	plain, err := widen(v)
	if err != nil {
		return nil, err
	}
	value, err := structpb.NewValue(plain)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(value)
}

// Unmarshal decodes a google.protobuf.Value into v, which must be a
// *structpb.Value, *any or *map[string]any. Numbers decode as float64.
func (c *structpbCodec) Unmarshal(data []byte, v any) error {
	if target, ok := v.(*structpb.Value); ok {
		return proto.Unmarshal(data, target)
	}

	var value structpb.Value
	if err := proto.Unmarshal(data, &value); err != nil {
		return err
	}

	switch target := v.(type) {
	case *any:
		*target = value.AsInterface()
	case *map[string]any:
		s := value.GetStructValue()
		if s == nil {
			return fmt.Errorf("structpb: cannot decode %T into map", value.GetKind())
		}
		*target = s.AsMap()
	default:
		return fmt.Errorf("structpb: unsupported target %T", v)
	}
	return nil
}

// widen rewrites v into the shapes structpb.NewValue accepts.
func widen(v any) (any, error) {
	switch t := v.(type) {
	case nil, bool, string, []byte,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			w, err := widen(val)
			if err != nil {
				return nil, err
			}
			out[k] = w
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return nil, nil
		}
		return widen(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			w, err := widen(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = w
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("structpb: map key %s is not a string", rv.Type().Key())
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			w, err := widen(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = w
		}
		return out, nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String(), nil
	}
	return nil, fmt.Errorf("structpb: unsupported value %T", v)
}
