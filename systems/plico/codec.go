// Package plico implements instrument servers protocol.
// Messages are carried over gRPC and encoded as JSON.
package plico

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

const (
	// CodecName is the gRPC content subtype used by instruments.
	CodecName = "json"
)

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// JSON codec for gRPC.
type jsonCodec struct {
}

// Marshal encodes message.
func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes message.
func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// Name returns content subtype.
func (jsonCodec) Name() string {
	return CodecName
}
