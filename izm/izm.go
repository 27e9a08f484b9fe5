// Package izm implements the arithmetic of the iZ set, the integers of
// the form 6x ± 1. Every prime above 3 is iZ(x, m) for exactly one
// x ≥ 1 and matrix m ∈ {-1, +1}; the functions here map between primes
// and their (matrix, x) coordinates and locate a prime's first multiple
// inside a segment of the iZ-lattice. The wheel construction that
// pre-sieves a primorial-sized segment lives in wheel.go.
package izm

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"
)

// MatrixMinus and MatrixPlus identify the two iZ matrices, 6x-1 and
// 6x+1.
const (
	MatrixMinus = -1
	MatrixPlus  = +1
)

// SmallPrimes are the iZ primes below 100, the candidate factors for
// primorial segment sizes.
var SmallPrimes = []uint64{5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73, 79, 83, 89, 97}

// ErrNoSolution is returned by SolveForY when the progression
// x + vx*y never hits a multiple of p, i.e. when p divides vx.
var ErrNoSolution = errors.New("izm: no solution, p divides vx")

func checkMatrix(matrixID int) {
	if matrixID != MatrixMinus && matrixID != MatrixPlus {
		panic(fmt.Sprintf("izm: matrix must be -1 or +1, got %d", matrixID))
	}
}

// Z computes 6x + matrixID. x must be positive and matrixID in
// {-1, +1}; both are invariants of the callers, violating them is a
// bug.
func Z(x uint64, matrixID int) uint64 {
	checkMatrix(matrixID)
	if x == 0 {
		panic("izm: x must be greater than 0")
	}
	if matrixID > 0 {
		return 6*x + 1
	}
	return 6*x - 1
}

// BigZ computes 6x + matrixID for an arbitrary-precision x > 0.
func BigZ(x *big.Int, matrixID int) *big.Int {
	checkMatrix(matrixID)
	if x.Sign() <= 0 {
		panic("izm: x must be greater than 0")
	}
	z := new(big.Int).Mul(x, big.NewInt(6))
	if matrixID > 0 {
		return z.Add(z, big.NewInt(1))
	}
	return z.Sub(z, big.NewInt(1))
}

// NormalizedXP returns the x-coordinate in the target matrix at which
// the prime p > 3 begins marking composites. p's own coordinate is
// x_p = (p+1)/6; in the matrix opposite to p's it reflects to p - x_p.
func NormalizedXP(matrixID int, p uint64) uint64 {
	checkMatrix(matrixID)
	xp := (p + 1) / 6
	pID := MatrixMinus
	if p%6 == 1 {
		pID = MatrixPlus
	}

	if matrixID < 0 {
		if pID > 0 {
			xp = p - xp
		}
	} else {
		if pID < 0 {
			xp = p - xp
		}
	}
	return xp
}

// mulMod computes (a * b) mod m without overflowing 64 bits.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a%m, b%m)
	_, rem := bits.Div64(hi, lo, m)
	return rem
}

// SolveForX returns the smallest in-segment offset x such that
// (x + vx*y) ≡ x_p (mod p), i.e. the index of p's first multiple in
// segment y. The result lies in [1, p]: a result of p means the
// residue class starts at the segment origin, which the sieves never
// read, so marking from p is equivalent.
func SolveForX(matrixID int, p, vx, y uint64) uint64 {
	xp := NormalizedXP(matrixID, p)
	d := (mulMod(vx, y, p) + p - xp%p) % p
	return p - d
}

// SolveForXBig is SolveForX for segment indices y beyond 64 bits.
func SolveForXBig(matrixID int, p, vx uint64, y *big.Int) uint64 {
	xp := NormalizedXP(matrixID, p)
	pBig := new(big.Int).SetUint64(p)

	t := new(big.Int).Mul(y, new(big.Int).SetUint64(vx))
	t.Sub(t, new(big.Int).SetUint64(xp))
	t.Mod(t, pBig)

	return p - t.Uint64()
}

// SolveForY returns the smallest segment index y such that
// (x + vx*y) ≡ x_p (mod p). With p prime the progression has a
// solution iff p does not divide vx; otherwise ErrNoSolution.
func SolveForY(matrixID int, p, vx, x uint64) (uint64, error) {
	if vx%p == 0 {
		return 0, ErrNoSolution
	}

	xp := NormalizedXP(matrixID, p)
	if x%p == xp {
		return 0, nil
	}

	delta := (xp + p - x%p) % p
	inv := ModularInverse(int64(vx%p), int64(p))
	return mulMod(delta, uint64(inv), p), nil
}

// ModularInverse returns the multiplicative inverse of a modulo m via
// the extended Euclidean algorithm. m must be greater than 1 and
// gcd(a, m) must be 1.
func ModularInverse(a, m int64) int64 {
	if m <= 1 {
		panic("izm: modulus must be greater than 1")
	}

	m0, x0, x1 := m, int64(0), int64(1)
	for a > 1 {
		q := a / m
		a, m = m, a%m
		x0, x1 = x1-q*x0, x0
	}

	if x1 < 0 {
		x1 += m0
	}
	return x1
}

// LimitedVX picks the segment size for sieving up to index xn: the
// primorial 5*7*11*... grown while the next factor keeps it under
// xn/2, capped at limit factors.
func LimitedVX(xn uint64, limit int) uint64 {
	vx := uint64(35)
	i := 2 // 5 and 7 already consumed
	for i < limit && vx*SmallPrimes[i] < xn/2 {
		vx *= SmallPrimes[i]
		i++
	}
	return vx
}

// MaxVX returns the largest primorial 5*7*11*... whose bit length is
// below bitSize. primes is an ascending prime list starting 2, 3, 5
// and extending far enough to cover bitSize (the cached list up to the
// vx6 bound is ample for any practical bit size).
func MaxVX(bitSize int, primes []uint64) *big.Int {
	i := 2 // skip 2, 3
	vx := new(big.Int).SetUint64(primes[i])

	for vx.BitLen() < bitSize {
		i++
		vx.Mul(vx, new(big.Int).SetUint64(primes[i]))
	}
	return vx.Div(vx, new(big.Int).SetUint64(primes[i]))
}
