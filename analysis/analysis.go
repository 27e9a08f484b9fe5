// Package analysis surveys the prime population of pre-sieved iZm
// segments: how many candidates survive in each matrix and how many
// twin, cousin and sexy constellations the segment can still host.
// The pair counting runs on roaring bitmaps, where a constellation is
// an intersection of one matrix with a shifted matrix.
package analysis

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/Zprime137/iZ-library/bitset"
	"github.com/Zprime137/iZ-library/izm"
)

// SegmentStats summarises one wheel segment of size vx, covering 6*vx
// naturals.
type SegmentStats struct {
	VX      uint64 // segment size in x
	Range   uint64 // naturals covered, 6*vx
	IZ5     uint64 // survivors in the 6x-1 matrix
	IZ7     uint64 // survivors in the 6x+1 matrix
	Primes  uint64 // IZ5 + IZ7
	Twins   uint64 // x survives in both matrices: (6x-1, 6x+1)
	Cousins uint64 // gap-4 pairs: (6(x-1)+1, 6x-1)
	Sexy    uint64 // gap-6 pairs within one matrix
}

func (s SegmentStats) String() string {
	return fmt.Sprintf("vx=%d range=%d iZ-=%d iZ+=%d primes=%d twins=%d cousins=%d sexy=%d",
		s.VX, s.Range, s.IZ5, s.IZ7, s.Primes, s.Twins, s.Cousins, s.Sexy)
}

// toRoaring lifts the set bits of b in [1, vx] into a roaring bitmap.
func toRoaring(b *bitset.Bitmap, vx uint64) *roaring.Bitmap {
	r := roaring.New()
	for x := uint64(1); x <= vx; x++ {
		if b.Test(x) {
			r.Add(uint32(x))
		}
	}
	return r
}

// Stats counts survivors and constellation slots in the segment
// [1, vx] of the two matrices. vx must fit 32 bits (the largest
// primorial the sieves use is far below that).
func Stats(vx uint64, x5, x7 *bitset.Bitmap) SegmentStats {
	b5 := toRoaring(x5, vx)
	b7 := toRoaring(x7, vx)

	// A shift by one turns "set at x-1" into "set at x", so every
	// pair rule becomes a plain intersection.
	s5 := roaring.AddOffset(b5, 1)
	s7 := roaring.AddOffset(b7, 1)

	stats := SegmentStats{
		VX:    vx,
		Range: 6 * vx,
		IZ5:   b5.GetCardinality(),
		IZ7:   b7.GetCardinality(),
	}
	stats.Primes = stats.IZ5 + stats.IZ7
	stats.Twins = roaring.And(b5, b7).GetCardinality()
	stats.Cousins = roaring.And(b5, s7).GetCardinality()
	stats.Sexy = roaring.And(b5, s5).GetCardinality() + roaring.And(b7, s7).GetCardinality()
	return stats
}

// VXGrowth builds the pre-sieved segment at each primorial
// 35, 35*11, ... up to factors iZ primes and reports the survivor
// statistics at every step. factors is capped at 6 (vx = 1,616,615)
// to bound memory.
func VXGrowth(factors int) ([]SegmentStats, error) {
	if factors < 2 || factors > 6 {
		return nil, fmt.Errorf("analysis: factors must be in [2, 6], got %d", factors)
	}

	maxVX := uint64(1)
	for _, p := range izm.SmallPrimes[:factors] {
		maxVX *= p
	}

	x5 := bitset.New(maxVX + 10)
	x7 := bitset.New(maxVX + 10)

	out := make([]SegmentStats, 0, factors-1)
	vx := uint64(35)
	for i := 2; i <= factors; i++ {
		izm.BuildSegment(vx, x5, x7)
		out = append(out, Stats(vx, x5, x7))
		if i < factors {
			vx *= izm.SmallPrimes[i]
		}
	}
	return out, nil
}
