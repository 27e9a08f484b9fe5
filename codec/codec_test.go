package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("6x+1 6x-1 "), 1000)

	for _, name := range []string{"none", "zstd", "lz4"} {
		t.Run(name, func(t *testing.T) {
			c, ok := ByName(name)
			require.True(t, ok)
			assert.Equal(t, name, c.Name())

			compressed, err := c.Compress(payload)
			require.NoError(t, err)

			got, err := c.Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestCompressorsShrinkRepetitivePayloads(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB, 0xCD}, 1<<16)

	for _, c := range []Codec{Zstd{}, LZ4{}} {
		out := MustCompress(c, payload)
		assert.Less(t, len(out), len(payload), c.Name())
	}
}

func TestByNameUnknown(t *testing.T) {
	_, ok := ByName("snappy")
	assert.False(t, ok)
}

func TestEmptyPayload(t *testing.T) {
	for _, c := range []Codec{None{}, Zstd{}, LZ4{}} {
		compressed, err := c.Compress(nil)
		require.NoError(t, err, c.Name())

		got, err := c.Decompress(compressed)
		require.NoError(t, err, c.Name())
		assert.Empty(t, got, c.Name())
	}
}
