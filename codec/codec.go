// Package codec encodes the manifest stored at the head of every snapshot.
//
// The manifest records the name of the codec that wrote it. Both built-in
// codecs produce plain JSON, so a snapshot written with one can be read with
// the other.
package codec

import (
	"errors"
	"fmt"
)

// ErrUnknownCodec is returned by Lookup for names no built-in codec answers to.
var ErrUnknownCodec = errors.New("codec: unknown codec")

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Lookup returns the built-in codec registered under name.
func Lookup(name string) (Codec, error) {
	switch name {
	case JSON{}.Name():
		return JSON{}, nil
	case GoJSON{}.Name():
		return GoJSON{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}
