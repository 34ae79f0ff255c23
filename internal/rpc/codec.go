// Package rpc is the wire contract of the todokeeper gRPC API: message
// types, the service descriptor and a client stub. Messages travel as JSON
// through a gRPC codec registered under CodecName.
package rpc

import (
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName is the content subtype, so requests carry
// "application/grpc+json".
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// CallOption selects the JSON codec for a call.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(CodecName)
}
