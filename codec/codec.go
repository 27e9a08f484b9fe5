// Package codec centralizes compression of persisted artifacts.
//
// The name of a codec is its stable identifier for ByName: bytes
// written under one name must always decode under that name. Stores
// do not record which codec compressed a payload; it is read back
// through the codec it was written with.
package codec

import "fmt"

// Codec compresses and decompresses artifact payloads.
// Implementations must be safe for concurrent use.
type Codec interface {
	Name() string
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "none":
		return None{}, true
	case "zstd":
		return Zstd{}, true
	case "lz4":
		return LZ4{}, true
	default:
		return nil, false
	}
}

// Default is the codec used when none is configured.
var Default Codec = None{}

// None passes payloads through unchanged.
type None struct{}

func (None) Name() string { return "none" }

func (None) Compress(data []byte) ([]byte, error) { return data, nil }

func (None) Decompress(data []byte) ([]byte, error) { return data, nil }

// MustCompress is a helper for internal tests.
func MustCompress(c Codec, data []byte) []byte {
	if c == nil {
		c = Default
	}
	out, err := c.Compress(data)
	if err != nil {
		panic(fmt.Errorf("codec %s compress failed: %w", c.Name(), err))
	}
	return out
}
