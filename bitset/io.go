package bitset

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Zprime137/iZ-library/internal/fs"
)

// Ext is the conventional file extension for serialised bitmaps.
const Ext = ".bitmap"

// ErrHashMismatch is returned by ReadFile when the stored digest does
// not match the payload.
var ErrHashMismatch = errors.New("bitset: hash mismatch")

// WriteFile serialises the bitmap as
//
//	{uint64 size | packed bytes | 32-byte SHA-256 of the packed bytes}
//
// all little-endian. A nil fsys uses the local file system.
func (b *Bitmap) WriteFile(fsys fs.FileSystem, path string) error {
	if fsys == nil {
		fsys = fs.Default
	}

	f, err := fsys.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	sum := sha256.Sum256(b.data)

	var hdr [8]byte
	binary.LittleEndian.PutUint64(hdr[:], b.size)

	for _, chunk := range [][]byte{hdr[:], b.data, sum[:]} {
		if _, err := f.Write(chunk); err != nil {
			f.Close()
			fsys.Remove(path)
			return err
		}
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a bitmap written by WriteFile, validating the digest.
func ReadFile(fsys fs.FileSystem, path string) (*Bitmap, error) {
	if fsys == nil {
		fsys = fs.Default
	}

	f, err := fsys.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var hdr [8]byte
	if _, err := io.ReadFull(f, hdr[:]); err != nil {
		return nil, fmt.Errorf("bitset: read header: %w", err)
	}
	size := binary.LittleEndian.Uint64(hdr[:])

	b := New(size)
	if _, err := io.ReadFull(f, b.data); err != nil {
		return nil, fmt.Errorf("bitset: read payload: %w", err)
	}

	var sum [sha256.Size]byte
	if _, err := io.ReadFull(f, sum[:]); err != nil {
		return nil, fmt.Errorf("bitset: read digest: %w", err)
	}

	computed := sha256.Sum256(b.data)
	if !bytes.Equal(sum[:], computed[:]) {
		return nil, ErrHashMismatch
	}
	return b, nil
}
