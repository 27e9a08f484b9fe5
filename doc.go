// Package iz generates primes on the iZ set, the integers of the form
// 6x ± 1 that contain every prime above 3.
//
// The sieves live in the sieve subpackage; this package carries the
// pieces built on top of them: the parallel random prime generator and
// the VX6 micro-sieve.
//
// # Sieving
//
//	list := sieve.IZm(1_000_000)        // all primes ≤ 10^6, ascending
//	err := sieve.CheckIntegrity(sieve.All(), 1_000_000)
//
// # Random primes
//
// RandomIZPrime searches the arithmetic progressions iZ(x + vx*y) for
// a primorial vx and a random x coprime to it. Every prime dividing vx
// is pre-excluded from the progression, so the prime density near 2^B
// is several times that of random odd integers.
//
//	p, err := iz.RandomIZPrime(ctx, izm.MatrixMinus, 2048,
//		iz.WithWorkers(8), iz.WithRounds(25))
//
// # VX6 segments
//
// The VX6 micro-sieve fixes vx = 5*7*11*13*17*19 = 1,616,615 and
// sieves the segment starting at iZ(vx*y, +1) for an arbitrarily large
// y, emitting the primes as a stream of 16-bit gaps with an embedded
// content hash.
package iz
