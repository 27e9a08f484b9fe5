package primes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAppendAndDrop(t *testing.T) {
	l := New(4)
	for _, p := range []uint64{2, 3, 5, 7, 11} {
		l.Append(p)
	}

	assert.Equal(t, 5, l.Count())
	assert.Equal(t, uint64(11), l.Last())
	assert.Equal(t, uint64(5), l.At(2))

	l.DropLast()
	assert.Equal(t, 4, l.Count())
	assert.Equal(t, uint64(7), l.Last())

	l.TrimToCount()
	assert.Equal(t, 4, l.Count())
	assert.Equal(t, []uint64{2, 3, 5, 7}, l.Values())
}

func TestEstimate(t *testing.T) {
	// pi(10^6) = 78498; the estimate must leave headroom above it.
	est := Estimate(1_000_000)
	assert.Greater(t, est, 78498)
	assert.Less(t, est, 160_000)

	assert.Equal(t, 8, Estimate(2))
}

func TestHashDistinguishesLists(t *testing.T) {
	a, b := New(3), New(3)
	for _, p := range []uint64{2, 3, 5} {
		a.Append(p)
		b.Append(p)
	}
	assert.Equal(t, a.Hash(), b.Hash())

	b.Append(7)
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestFileRoundTrip(t *testing.T) {
	l := New(8)
	for _, p := range []uint64{2, 3, 5, 7, 11, 13} {
		l.Append(p)
	}

	path := filepath.Join(t.TempDir(), "small"+Ext)
	require.NoError(t, l.WriteFile(nil, path))

	got, err := ReadFile(nil, path)
	require.NoError(t, err)
	assert.Equal(t, l.Values(), got.Values())
	assert.Equal(t, l.Hash(), got.Hash())
}

func TestReadFileRejectsTampering(t *testing.T) {
	l := New(4)
	for _, p := range []uint64{2, 3, 5, 7} {
		l.Append(p)
	}

	path := filepath.Join(t.TempDir(), "small"+Ext)
	require.NoError(t, l.WriteFile(nil, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[len(raw)-40] ^= 0x80 // corrupt the last prime value
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	_, err = ReadFile(nil, path)
	assert.ErrorIs(t, err, ErrHashMismatch)
}
