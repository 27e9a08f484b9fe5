package sieve

import (
	"math/bits"

	"github.com/Zprime137/iZ-library/bitset"
	"github.com/Zprime137/iZ-library/izm"
	"github.com/Zprime137/iZ-library/primes"
)

// vxFactorLimit caps the number of primorial factors of the iZm
// segment size at 6, i.e. vx ≤ 5*7*11*13*17*19 = 1,616,615.
const vxFactorLimit = 6

// div6 returns floor(p*p / 6) without overflowing 64 bits.
func div6(p uint64) uint64 {
	hi, lo := bits.Mul64(p, p)
	q, _ := bits.Div64(hi, lo, 6)
	return q
}

// IZ is the classic iZ sieve: two bitmaps indexed by x cover the
// 6x-1 and 6x+1 residue classes, one third of the naturals. A prime
// z found at x marks its composites in both matrices with the Xp
// wheel: the iZ- row of z starts at z*x ± x depending on z's own
// matrix.
func IZ(n uint64) *primes.List {
	if n < 5 {
		return smallBound(n)
	}

	list := primes.New(primes.Estimate(n))

	// 2 and 3 are the only primes outside the iZ set.
	list.Append(2)
	list.Append(3)

	xn := (n+1)/6 + 1
	x5 := bitset.New(xn + 1)
	x7 := bitset.New(xn + 1)
	x5.SetAll()
	x7.SetAll()

	nSqrt := intSqrt(n) + 1

	for x := uint64(1); x < xn; x++ {
		if x5.Test(x) {
			z := izm.Z(x, izm.MatrixMinus)
			list.Append(z)

			if z < nSqrt {
				x5.ClearModP(z, z*x+x, xn)
				x7.ClearModP(z, z*x-x, xn)
			}
		}

		if x7.Test(x) {
			z := izm.Z(x, izm.MatrixPlus)
			list.Append(z)

			if z < nSqrt {
				x5.ClearModP(z, z*x-x, xn)
				x7.ClearModP(z, z*x+x, xn)
			}
		}
	}

	for list.Count() > 0 && list.Last() > n {
		list.DropLast()
	}
	list.TrimToCount()
	return list
}

// IZm is the segmented iZ sieve. One pre-sieved wheel segment of
// primorial length vx is built once and reused for every segment; per
// segment, only the root primes beyond vx's factors mark composites,
// at offsets located by izm.SolveForX. Working memory is two segment
// bitmaps regardless of n.
func IZm(n uint64) *primes.List {
	if n < 5 {
		return smallBound(n)
	}

	list := primes.New(primes.Estimate(n))
	list.Append(2)
	list.Append(3)

	xn := (n+1)/6 + 1
	vx := izm.LimitedVX(xn, vxFactorLimit)

	// The primes dividing vx are pre-sieved out of the wheel pattern,
	// so they are emitted here, before any segment is scanned.
	startIdx := 2
	for _, p := range izm.SmallPrimes {
		if vx%p != 0 {
			break
		}
		list.Append(p)
		startIdx++
	}

	x5 := bitset.New(vx + 10)
	x7 := bitset.New(vx + 10)
	izm.BuildSegment(vx, x5, x7)

	t5 := x5.Clone()
	t7 := x7.Clone()

	// First segment (y = 0): collect the root primes, marking each
	// one's composites within the segment while its square is in
	// range.
	for x := uint64(2); x <= vx; x++ {
		if t5.Test(x) {
			p := izm.Z(x, izm.MatrixMinus)
			list.Append(p)

			if div6(p) < vx {
				t5.ClearModP(p, p*x+x, vx)
				t7.ClearModP(p, p*x-x, vx)
			}
		}

		if t7.Test(x) {
			p := izm.Z(x, izm.MatrixPlus)
			list.Append(p)

			if div6(p) < vx {
				t5.ClearModP(p, p*x-x, vx)
				t7.ClearModP(p, p*x+x, vx)
			}
		}
	}

	// Remaining segments.
	maxY := xn / vx
	limit := vx

	for y := uint64(1); y <= maxY; y++ {
		t5.CopyFrom(x5)
		t7.CopyFrom(x7)

		if y == maxY {
			limit = xn % vx
		}
		yvx := y * vx

		for i := startIdx; i < list.Count(); i++ {
			p := list.At(i)

			// Past this prime no root has composites in range.
			if div6(p) > yvx+limit {
				break
			}

			xp5 := izm.SolveForX(izm.MatrixMinus, p, vx, y)
			xp7 := izm.SolveForX(izm.MatrixPlus, p, vx, y)
			t5.ClearModP(p, xp5, limit)
			t7.ClearModP(p, xp7, limit)
		}

		for x := uint64(1); x <= limit; x++ {
			if t5.Test(x) {
				list.Append(izm.Z(x+yvx, izm.MatrixMinus))
			}
			if t7.Test(x) {
				list.Append(izm.Z(x+yvx, izm.MatrixPlus))
			}
		}
	}

	for list.Count() > 0 && list.Last() > n {
		list.DropLast()
	}
	list.TrimToCount()
	return list
}
