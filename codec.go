package porridge

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// LoadWhitelist decodes a whitelist document with c and returns a policy
// over it. Any codec that decodes nested objects into maps works:
//
//	id: true
//	name: true
//	buildings:
//	  id: true
//	  city: true
func LoadWhitelist(c Codec, data []byte) (*WhitelistPolicy, error) {
	var doc map[string]any
	if err := c.Unmarshal(data, &doc); err != nil {
		return nil, newCodecError(ErrUnmarshal, err)
	}
	return NewWhitelistFrom(doc), nil
}
