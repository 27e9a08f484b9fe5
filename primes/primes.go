// Package primes holds the ordered prime lists the sieves produce.
package primes

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
)

// List is an append-only sequence of 64-bit primes in strictly
// ascending order, as emitted by a sieve. The only retraction allowed
// is DropLast, used to discard a trailing overshoot past the bound.
type List struct {
	values []uint64
}

// New creates a List with the given capacity estimate.
func New(estimate int) *List {
	if estimate < 0 {
		estimate = 0
	}
	return &List{values: make([]uint64, 0, estimate)}
}

// Estimate returns the capacity estimate for the primes up to n,
// about 1.5 * n/ln(n).
func Estimate(n uint64) int {
	if n < 17 {
		return 8
	}
	return int(1.5 * float64(n) / math.Log(float64(n)))
}

// Append pushes p. Callers append in ascending order; Append does not
// re-check it.
func (l *List) Append(p uint64) {
	l.values = append(l.values, p)
}

// Count returns the number of primes stored.
func (l *List) Count() int { return len(l.values) }

// At returns the i-th prime.
func (l *List) At(i int) uint64 { return l.values[i] }

// Last returns the largest (most recently appended) prime. The list
// must be non-empty.
func (l *List) Last() uint64 { return l.values[len(l.values)-1] }

// DropLast removes the trailing prime. No-op on an empty list.
func (l *List) DropLast() {
	if len(l.values) > 0 {
		l.values = l.values[:len(l.values)-1]
	}
}

// Values returns the backing slice, shared with the list.
func (l *List) Values() []uint64 { return l.values }

// TrimToCount releases the over-allocated capacity left by the
// estimate.
func (l *List) TrimToCount() {
	if cap(l.values) > len(l.values) {
		trimmed := make([]uint64, len(l.values))
		copy(trimmed, l.values)
		l.values = trimmed
	}
}

// Hash returns the SHA-256 digest of the primes packed as
// little-endian uint64 values. Two sieves agree iff their digests are
// byte-identical.
func (l *List) Hash() [sha256.Size]byte {
	return sha256.Sum256(l.packed())
}

func (l *List) packed() []byte {
	buf := make([]byte, 8*len(l.values))
	for i, p := range l.values {
		binary.LittleEndian.PutUint64(buf[8*i:], p)
	}
	return buf
}
