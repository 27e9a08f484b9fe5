package codec

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	zstdEncOnce sync.Once
	zstdEnc     *zstd.Encoder
	zstdDecOnce sync.Once
	zstdDec     *zstd.Decoder
)

// Zstd compresses payloads with Zstandard. Encoder and decoder are
// shared process-wide; EncodeAll/DecodeAll are concurrency-safe.
type Zstd struct{}

func (Zstd) Name() string { return "zstd" }

func (Zstd) Compress(data []byte) ([]byte, error) {
	zstdEncOnce.Do(func() {
		zstdEnc, _ = zstd.NewWriter(nil)
	})
	return zstdEnc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

func (Zstd) Decompress(data []byte) ([]byte, error) {
	zstdDecOnce.Do(func() {
		zstdDec, _ = zstd.NewReader(nil)
	})
	return zstdDec.DecodeAll(data, nil)
}
