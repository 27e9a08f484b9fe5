// Package bitset implements the byte-packed bitmap the sieves mark
// composites in. Bit x of a bitmap stands for one candidate in an iZ
// matrix; ClearModP is the composite-marking primitive shared by every
// sieve variant.
package bitset

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Bitmap is a fixed-size array of bits. Bit i lives in byte i/8 at
// position i%8. The size is fixed at creation; index arguments outside
// [0, size) are the caller's bug, not checked in the hot path.
type Bitmap struct {
	size uint64
	data []byte
}

// New creates a Bitmap with all bits cleared.
func New(size uint64) *Bitmap {
	return &Bitmap{
		size: size,
		data: make([]byte, (size+7)/8),
	}
}

// Len returns the number of bits.
func (b *Bitmap) Len() uint64 { return b.size }

// Bytes returns the packed backing bytes. The slice is shared with the
// bitmap and must not be modified.
func (b *Bitmap) Bytes() []byte { return b.data }

// SetAll sets every bit to 1.
func (b *Bitmap) SetAll() {
	for i := range b.data {
		b.data[i] = 0xFF
	}
}

// ClearAll sets every bit to 0.
func (b *Bitmap) ClearAll() {
	for i := range b.data {
		b.data[i] = 0
	}
}

// Set sets bit i to 1.
func (b *Bitmap) Set(i uint64) {
	b.data[i/8] |= 1 << (i % 8)
}

// Unset sets bit i to 0.
func (b *Bitmap) Unset(i uint64) {
	b.data[i/8] &^= 1 << (i % 8)
}

// Test reports whether bit i is set.
func (b *Bitmap) Test(i uint64) bool {
	return b.data[i/8]&(1<<(i%8)) != 0
}

// Toggle flips bit i.
func (b *Bitmap) Toggle(i uint64) {
	b.data[i/8] ^= 1 << (i % 8)
}

// ClearModP clears the bits at start, start+p, start+2p, … up to and
// including limit. This is the composite-marking primitive: p is the
// sieving prime, start the index of its first multiple in range.
// limit must be below Len.
func (b *Bitmap) ClearModP(p, start, limit uint64) {
	for i := start; i <= limit; i += p {
		b.data[i/8] &^= 1 << (i % 8)
	}
}

// Clone returns an independent copy.
func (b *Bitmap) Clone() *Bitmap {
	c := &Bitmap{size: b.size, data: make([]byte, len(b.data))}
	copy(c.data, b.data)
	return c
}

// CopyFrom overwrites this bitmap's bits with src's. Both bitmaps must
// have the same size. Used to reset a scratch segment from the
// canonical pre-sieved one without reallocating.
func (b *Bitmap) CopyFrom(src *Bitmap) {
	if b.size != src.size {
		panic(fmt.Sprintf("bitset: CopyFrom size mismatch: %d != %d", b.size, src.size))
	}
	copy(b.data, src.data)
}

// CopyRange copies length bits from src starting at srcIdx into this
// bitmap starting at destIdx. The copy is bit-exact and runs forward,
// so overlapping ranges within one bitmap are fine when destIdx >
// srcIdx — which is exactly how DuplicateSegment tiles a pattern.
func (b *Bitmap) CopyRange(destIdx uint64, src *Bitmap, srcIdx, length uint64) {
	for i := uint64(0); i < length; i++ {
		if src.Test(srcIdx + i) {
			b.Set(destIdx + i)
		} else {
			b.Unset(destIdx + i)
		}
	}
}

// DuplicateSegment tiles the bit range [start, start+vxSize) y-1
// additional times to its right, filling [start, start+y*vxSize).
// Returns an error when the tiled range does not fit.
func (b *Bitmap) DuplicateSegment(start, vxSize, y uint64) error {
	if start+vxSize*y > b.size {
		return fmt.Errorf("bitset: duplicate segment out of bounds: start=%d vx=%d y=%d size=%d",
			start, vxSize, y, b.size)
	}
	cursor := start + vxSize
	for i := uint64(1); i < y; i++ {
		b.CopyRange(cursor, b, start, vxSize)
		cursor += vxSize
	}
	return nil
}

// Count returns the number of set bits in [0, Len).
func (b *Bitmap) Count() uint64 {
	var n uint64
	for i := uint64(0); i < b.size; i++ {
		if b.Test(i) {
			n++
		}
	}
	return n
}

// Hash returns the SHA-256 digest of the packed bytes.
func (b *Bitmap) Hash() [sha256.Size]byte {
	return sha256.Sum256(b.data)
}

// String renders the bits as a "0"/"1" text, lowest index first.
func (b *Bitmap) String() string {
	var sb strings.Builder
	sb.Grow(int(b.size))
	for i := uint64(0); i < b.size; i++ {
		if b.Test(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// FromString builds a Bitmap from a "0"/"1" text produced by String.
func FromString(s string) (*Bitmap, error) {
	b := New(uint64(len(s)))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			b.Set(uint64(i))
		case '0':
		default:
			return nil, fmt.Errorf("bitset: invalid character %q at %d", s[i], i)
		}
	}
	return b, nil
}
