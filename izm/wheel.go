package izm

import (
	"fmt"

	"github.com/Zprime137/iZ-library/bitset"
)

// SeedBase writes the primorial-35 (5*7) base pattern into bits
// [1, 35] of x5 and x7: bit i of x5 survives iff 6i-1 is coprime to 35,
// bit i of x7 iff 6i+1 is. All other bits are left untouched.
func SeedBase(x5, x7 *bitset.Bitmap) {
	for i := uint64(1); i <= 35; i++ {
		if (i-1)%5 != 0 && (i+1)%7 != 0 {
			x5.Set(i)
		}
		if (i+1)%5 != 0 && (i-1)%7 != 0 {
			x7.Set(i)
		}
	}
}

// BuildSegment constructs the pre-sieved iZm segment of length vx in
// x5 and x7: after it returns, bit x in [1, vx] is set iff 6x-1
// (resp. 6x+1) is coprime to every prime dividing vx. vx must be a
// primorial 5*7*11*... and both bitmaps must hold at least vx+2 bits —
// the pattern is tiled prime by prime, and each new prime's composites
// are marked across the extended range with the Xp wheel.
func BuildSegment(vx uint64, x5, x7 *bitset.Bitmap) {
	if x5.Len() < vx+2 || x7.Len() < vx+2 {
		panic(fmt.Sprintf("izm: segment bitmaps too small for vx=%d", vx))
	}

	x5.ClearAll()
	x7.ClearAll()
	SeedBase(x5, x7)

	current := uint64(35)
	idx := 2 // 5 and 7 are in the base pattern
	for vx%SmallPrimes[idx] == 0 {
		q := SmallPrimes[idx]
		idx++

		xq := (q + 1) / 6

		// Tile the current pattern q times, then strike q's own
		// residue classes in the extended range.
		if err := x5.DuplicateSegment(1, current, q); err != nil {
			panic(err)
		}
		if err := x7.DuplicateSegment(1, current, q); err != nil {
			panic(err)
		}
		current *= q

		if q%6 > 1 {
			// q = 6xq - 1: its iZ- composites start at q's own slot.
			x5.ClearModP(q, xq, current+1)
			x7.ClearModP(q, q*xq-xq, current+1)
		} else {
			x5.ClearModP(q, q*xq-xq, current+1)
			x7.ClearModP(q, xq, current+1)
		}
	}
}
