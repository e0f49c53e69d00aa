// Package sonic provides a JSON codec backed by bytedance/sonic.
//
// Output matches the json package byte for byte for normalized structures:
// map keys are sorted and HTML is not escaped.
package sonic

import (
	"github.com/bytedance/sonic"
	"github.com/zoobzio/porridge"
)

var api = sonic.Config{
	SortMapKeys:    true,
	ValidateString: true,
}.Froze()

// sonicCodec implements porridge.Codec for JSON.
type sonicCodec struct{}

// New returns a sonic-backed JSON codec.
func New() porridge.Codec {
	return &sonicCodec{}
}

// ContentType returns the MIME type for JSON.
func (c *sonicCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *sonicCodec) Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (c *sonicCodec) Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}
