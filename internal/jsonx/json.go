// Package jsonx is the JSON codec used for vault records, RPC payloads and
// HTTP bodies. It wraps json-iterator configured to behave like encoding/json,
// so json.RawMessage fields and struct tags keep their stdlib meaning.
package jsonx

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal encodes v
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// Unmarshal decodes data into v
func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}

// NewDecoder reads JSON values from r
func NewDecoder(r io.Reader) *jsoniter.Decoder {
	return api.NewDecoder(r)
}

// NewEncoder writes JSON values to w, one per line
func NewEncoder(w io.Writer) *jsoniter.Encoder {
	return api.NewEncoder(w)
}
