// Package sieve implements prime sieves up to a bound n: the iZ
// variants built on the 6x±1 residue classes, and the classical
// baselines (Eratosthenes, Euler, Atkin, wheel) they are
// cross-validated against. Every sieve honours the same contract:
// the returned list holds all primes ≤ n in strictly ascending order.
package sieve

import (
	"math"

	"github.com/Zprime137/iZ-library/bitset"
	"github.com/Zprime137/iZ-library/primes"
)

// Algorithm pairs a sieve function with a display name, for the
// integrity driver and benchmark tables.
type Algorithm struct {
	Name string
	Run  func(n uint64) *primes.List
}

// All returns every sieve in this package, baselines first.
func All() []Algorithm {
	return []Algorithm{
		{Name: "classic-eratosthenes", Run: ClassicEratosthenes},
		{Name: "eratosthenes", Run: Eratosthenes},
		{Name: "segmented", Run: Segmented},
		{Name: "wheel", Run: Wheel},
		{Name: "euler", Run: Euler},
		{Name: "atkin", Run: Atkin},
		{Name: "iZ", Run: IZ},
		{Name: "iZm", Run: IZm},
	}
}

// intSqrt returns floor(sqrt(n)).
func intSqrt(n uint64) uint64 {
	r := uint64(math.Sqrt(float64(n)))
	for r > 0 && r*r > n {
		r--
	}
	for r < math.MaxUint32 && (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// smallBound emits the primes ≤ n for n < 5 directly.
func smallBound(n uint64) *primes.List {
	list := primes.New(2)
	if n >= 2 {
		list.Append(2)
	}
	if n >= 3 {
		list.Append(3)
	}
	return list
}

// ClassicEratosthenes is the unoptimised sieve of Eratosthenes,
// consulting every integer in [2, n].
func ClassicEratosthenes(n uint64) *primes.List {
	if n < 5 {
		return smallBound(n)
	}

	list := primes.New(primes.Estimate(n))
	bits := bitset.New(n + 1)
	bits.SetAll()

	nSqrt := intSqrt(n)
	for p := uint64(2); p <= n; p++ {
		if bits.Test(p) {
			list.Append(p)
			if p <= nSqrt {
				bits.ClearModP(p, p*p, n)
			}
		}
	}

	list.TrimToCount()
	return list
}

// Eratosthenes is the odd-skipping sieve of Eratosthenes.
func Eratosthenes(n uint64) *primes.List {
	if n < 5 {
		return smallBound(n)
	}

	list := primes.New(primes.Estimate(n))
	bits := bitset.New(n + 1)
	bits.SetAll()

	nSqrt := intSqrt(n)
	list.Append(2)

	for p := uint64(3); p <= n; p += 2 {
		if bits.Test(p) {
			list.Append(p)
			if p <= nSqrt {
				// Stride 2p: even multiples are never consulted.
				bits.ClearModP(2*p, p*p, n)
			}
		}
	}

	list.TrimToCount()
	return list
}

// Segmented is the segmented sieve of Eratosthenes with segment size
// sqrt(n).
func Segmented(n uint64) *primes.List {
	if n < 5 {
		return smallBound(n)
	}

	list := primes.New(primes.Estimate(n))
	segmentSize := intSqrt(n)
	bits := bitset.New(segmentSize + 1)
	bits.SetAll()

	// Root primes up to sqrt(n) via the plain odd sieve.
	list.Append(2)
	for p := uint64(3); p <= segmentSize; p += 2 {
		if bits.Test(p) {
			list.Append(p)
			for m := p * p; m <= segmentSize; m += 2 * p {
				bits.Unset(m)
			}
		}
	}
	rootCount := list.Count()

	for low := segmentSize + 1; low <= n; low += segmentSize {
		high := low + segmentSize - 1
		if high > n {
			high = n
		}
		bits.SetAll()

		for i := 0; i < rootCount; i++ {
			p := list.At(i)
			if p > high/p {
				break
			}

			start := (low / p) * p
			if start < low {
				start += p
			}
			if start < p*p {
				start = p * p
			}
			bits.ClearModP(p, start-low, high-low)
		}

		for v := low; v <= high; v++ {
			if v%2 == 0 {
				continue
			}
			if bits.Test(v - low) {
				list.Append(v)
			}
		}
	}

	list.TrimToCount()
	return list
}

// Wheel is a 2*3*5 wheel sieve: the base primes' multiples are
// cleared up front and only the remaining odd values are consulted.
func Wheel(n uint64) *primes.List {
	if n < 5 {
		return smallBound(n)
	}

	list := primes.New(primes.Estimate(n))
	bits := bitset.New(n + 1)
	bits.SetAll()

	for _, p := range []uint64{2, 3, 5} {
		list.Append(p)
		if p*p <= n {
			bits.ClearModP(p, p*p, n)
		}
	}

	nSqrt := intSqrt(n)
	for p := uint64(7); p <= nSqrt; p += 2 {
		if bits.Test(p) {
			bits.ClearModP(2*p, p*p, n)
		}
	}

	for p := uint64(7); p <= n; p += 2 {
		if bits.Test(p) {
			list.Append(p)
		}
	}

	for list.Count() > 0 && list.Last() > n {
		list.DropLast()
	}
	list.TrimToCount()
	return list
}

// Euler is the linear sieve over the odd values: every odd composite
// is cleared exactly once, by its smallest prime factor.
func Euler(n uint64) *primes.List {
	if n < 5 {
		return smallBound(n)
	}

	list := primes.New(primes.Estimate(n))
	bits := bitset.New(n + 1)
	bits.SetAll()

	list.Append(2)
	for i := uint64(3); i <= n; i += 2 {
		if bits.Test(i) {
			list.Append(i)
		}

		for j := 1; j < list.Count(); j++ {
			p := list.At(j)
			if p > n/i {
				break
			}
			bits.Unset(p * i)
			if i%p == 0 {
				break
			}
		}
	}

	list.TrimToCount()
	return list
}

// Atkin is the sieve of Atkin: quadratic-form solution counts toggle
// candidacy, then squares of survivors strike their multiples.
func Atkin(n uint64) *primes.List {
	if n < 5 {
		return smallBound(n)
	}

	list := primes.New(primes.Estimate(n))
	bits := bitset.New(n + 1)

	nSqrt := intSqrt(n) + 1
	list.Append(2)
	list.Append(3)

	for x := uint64(1); x < nSqrt; x++ {
		for y := uint64(1); y < nSqrt; y++ {
			num := 4*x*x + y*y
			if num <= n && (num%12 == 1 || num%12 == 5) {
				bits.Toggle(num)
			}

			num = 3*x*x + y*y
			if num <= n && num%12 == 7 {
				bits.Toggle(num)
			}

			if x > y {
				num = 3*x*x - y*y
				if num <= n && num%12 == 11 {
					bits.Toggle(num)
				}
			}
		}
	}

	for i := uint64(5); i < nSqrt; i++ {
		if bits.Test(i) {
			bits.ClearModP(i * i, i*i, n)
		}
	}

	for i := uint64(5); i <= n; i += 2 {
		if bits.Test(i) {
			list.Append(i)
		}
	}

	list.TrimToCount()
	return list
}
