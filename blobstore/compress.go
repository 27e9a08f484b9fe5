package blobstore

import (
	"context"

	"github.com/Zprime137/iZ-library/codec"
)

// CompressingStore wraps a Store and compresses payloads with a codec
// on the way in, decompressing on the way out. Large prime lists and
// gap arrays compress well; object-storage transfer is usually the
// bottleneck, not the codec.
type CompressingStore struct {
	inner Store
	codec codec.Codec
}

// NewCompressingStore wraps inner with the given codec (codec.Default
// if nil).
func NewCompressingStore(inner Store, c codec.Codec) *CompressingStore {
	if c == nil {
		c = codec.Default
	}
	return &CompressingStore{inner: inner, codec: c}
}

func (s *CompressingStore) Put(ctx context.Context, name string, data []byte) error {
	compressed, err := s.codec.Compress(data)
	if err != nil {
		return err
	}
	return s.inner.Put(ctx, name, compressed)
}

func (s *CompressingStore) Get(ctx context.Context, name string) ([]byte, error) {
	compressed, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.codec.Decompress(compressed)
}

func (s *CompressingStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

func (s *CompressingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}
