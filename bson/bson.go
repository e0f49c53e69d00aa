// Package bson provides a BSON codec implementation.
package bson

import (
	"github.com/zoobzio/porridge"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
)

// bsonCodec implements porridge.Codec for BSON.
//
// BSON documents must be maps or structs at the top level; marshaling a
// bare sequence fails. Wrap array output with a root key first.
type bsonCodec struct{}

// New returns a BSON codec.
func New() porridge.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v. Embedded documents decoded into
// interface values become bson.M rather than bson.D, so whitelist documents
// can be walked by key.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(data))
	if err != nil {
		return err
	}
	dec.DefaultDocumentM()
	return dec.Decode(v)
}
