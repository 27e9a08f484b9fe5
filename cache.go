package iz

import (
	"sync"

	"github.com/Zprime137/iZ-library/bitset"
	"github.com/Zprime137/iZ-library/izm"
	"github.com/Zprime137/iZ-library/primes"
	"github.com/Zprime137/iZ-library/sieve"
)

// VX6Size is the fixed primorial of the VX6 micro-sieve:
// 5*7*11*13*17*19.
const VX6Size = 1_616_615

// The prime list up to VX6Size and the pre-sieved VX6 wheel segment
// are shared by the VX6 sieve and the generator. Both are built once
// behind a sync.Once and never mutated after publication, so
// concurrent workers read them without locking.
var (
	primesOnce   sync.Once
	cachedPrimes *primes.List

	wheelOnce          sync.Once
	cachedX5, cachedX7 *bitset.Bitmap
)

// vx6Primes returns the cached ascending prime list up to VX6Size.
func vx6Primes() *primes.List {
	primesOnce.Do(func() {
		cachedPrimes = sieve.IZ(VX6Size)
	})
	return cachedPrimes
}

// vx6Wheel returns the cached pre-sieved VX6 segment bitmaps.
func vx6Wheel() (x5, x7 *bitset.Bitmap) {
	wheelOnce.Do(func() {
		cachedX5 = bitset.New(VX6Size + 100)
		cachedX7 = bitset.New(VX6Size + 100)
		izm.BuildSegment(VX6Size, cachedX5, cachedX7)
	})
	return cachedX5, cachedX7
}
