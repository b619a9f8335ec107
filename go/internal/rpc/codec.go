package rpc

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// Codec serializes plain Go structs as JSON. It replaces connect's protobuf
// JSON codec, so messages do not need generated protobuf types.
type Codec struct{}

// Name is the content sub-type: "application/json" for unary calls.
func (Codec) Name() string { return "json" }

func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// MarshalStable lets connect send idempotent calls as cacheable GETs.
// encoding/json emits struct fields in declaration order and sorts map keys.
func (c Codec) MarshalStable(v any) ([]byte, error) { return c.Marshal(v) }

func (Codec) IsBinary() bool { return false }

// HandlerOptions are the options every service handler is mounted with.
func HandlerOptions(extra ...connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, extra...)
}

// ClientOptions are the options every typed client is built with.
func ClientOptions(extra ...connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, extra...)
}
