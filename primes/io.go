package primes

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

// Ext is the conventional file extension for serialised prime lists.
const Ext = ".primes"

// ErrHashMismatch is returned by ReadFile when the stored digest does
// not match the payload.
var ErrHashMismatch = errors.New("primes: hash mismatch")

// WriteFile serialises the list as
//
//	{int32 count | uint64[count] | 32-byte SHA-256 of the values}
//
// all little-endian. A nil fsys uses the local file system.
func (l *List) WriteFile(fsys fs.FileSystem, path string) error {
	if fsys == nil {
		fsys = fs.Default
	}

	f, err := fsys.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	payload := l.packed()
	sum := sha256.Sum256(payload)

	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(l.values)))

	for _, chunk := range [][]byte{hdr[:], payload, sum[:]} {
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

// ReadFile reads a list written by WriteFile, validating the digest.
func ReadFile(fsys fs.FileSystem, path string) (*List, error) {
	if fsys == nil {
		fsys = fs.Default
	}

	f, err := fsys.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var hdr [4]byte
	if _, err := io.ReadFull(f, hdr[:]); err != nil {
		return nil, fmt.Errorf("primes: read header: %w", err)
	}
	count := int(int32(binary.LittleEndian.Uint32(hdr[:])))
	if count < 0 {
		return nil, fmt.Errorf("primes: invalid count %d", count)
	}

	payload := make([]byte, 8*count)
	if _, err := io.ReadFull(f, payload); err != nil {
		return nil, fmt.Errorf("primes: read payload: %w", err)
	}

	var sum [sha256.Size]byte
	if _, err := io.ReadFull(f, sum[:]); err != nil {
		return nil, fmt.Errorf("primes: read digest: %w", err)
	}

	computed := sha256.Sum256(payload)
	if !bytes.Equal(sum[:], computed[:]) {
		return nil, ErrHashMismatch
	}

	l := New(count)
	for i := 0; i < count; i++ {
		l.values = append(l.values, binary.LittleEndian.Uint64(payload[8*i:]))
	}
	return l, nil
}
