package izm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZ(t *testing.T) {
	assert.Equal(t, uint64(5), Z(1, MatrixMinus))
	assert.Equal(t, uint64(7), Z(1, MatrixPlus))
	assert.Equal(t, uint64(29), Z(5, MatrixMinus))
	assert.Equal(t, uint64(31), Z(5, MatrixPlus))

	assert.Panics(t, func() { Z(0, MatrixPlus) })
	assert.Panics(t, func() { Z(1, 0) })
}

func TestBigZ(t *testing.T) {
	x := big.NewInt(100)
	assert.Equal(t, int64(599), BigZ(x, MatrixMinus).Int64())
	assert.Equal(t, int64(601), BigZ(x, MatrixPlus).Int64())

	assert.Panics(t, func() { BigZ(big.NewInt(0), MatrixPlus) })
}

// Every prime p > 3 must satisfy 6*((p+1)/6) + matrix(p) == p.
func TestIZCoordinateIdentity(t *testing.T) {
	for _, p := range []uint64{5, 7, 11, 13, 17, 19, 23, 101, 997, 7919} {
		x := (p + 1) / 6
		matrix := MatrixMinus
		if p%6 == 1 {
			matrix = MatrixPlus
		}
		assert.Equal(t, p, Z(x, matrix), "p=%d", p)
	}
}

func TestNormalizedXP(t *testing.T) {
	// p = 11 = 6*2-1 lives in iZ-: its own slot in iZ- is 2, the
	// reflection into iZ+ is p - 2 = 9.
	assert.Equal(t, uint64(2), NormalizedXP(MatrixMinus, 11))
	assert.Equal(t, uint64(9), NormalizedXP(MatrixPlus, 11))

	// p = 13 = 6*2+1 lives in iZ+.
	assert.Equal(t, uint64(2), NormalizedXP(MatrixPlus, 13))
	assert.Equal(t, uint64(11), NormalizedXP(MatrixMinus, 13))
}

func TestSolveForX(t *testing.T) {
	// (x + vx*y) must land on x_p's residue class mod p.
	cases := []struct {
		matrixID int
		p, vx, y uint64
	}{
		{MatrixPlus, 11, 5005, 7},
		{MatrixMinus, 11, 5005, 7},
		{MatrixPlus, 23, 35035, 1},
		{MatrixMinus, 23, 35035, 9},
		{MatrixPlus, 101, 1616615, 3},
		{MatrixMinus, 9973, 1616615, 12},
	}

	for _, tc := range cases {
		x := SolveForX(tc.matrixID, tc.p, tc.vx, tc.y)
		xp := NormalizedXP(tc.matrixID, tc.p)

		assert.GreaterOrEqual(t, x, uint64(1))
		assert.LessOrEqual(t, x, tc.p)
		assert.Equal(t, uint64(0), (x+tc.vx*tc.y-xp)%tc.p,
			"matrix=%d p=%d vx=%d y=%d", tc.matrixID, tc.p, tc.vx, tc.y)
	}
}

func TestSolveForXBigMatchesUint64(t *testing.T) {
	for _, y := range []uint64{0, 1, 7, 12345} {
		got := SolveForXBig(MatrixPlus, 101, 35035, new(big.Int).SetUint64(y))
		assert.Equal(t, SolveForX(MatrixPlus, 101, 35035, y), got, "y=%d", y)
	}

	// A y far beyond 64 bits still satisfies the congruence.
	y := new(big.Int).Lsh(big.NewInt(1), 100)
	x := SolveForXBig(MatrixMinus, 9973, 1616615, y)

	check := new(big.Int).Mul(y, big.NewInt(1616615))
	check.Add(check, new(big.Int).SetUint64(x))
	check.Sub(check, new(big.Int).SetUint64(NormalizedXP(MatrixMinus, 9973)))
	check.Mod(check, big.NewInt(9973))
	assert.Equal(t, int64(0), check.Int64())
}

func TestSolveForY(t *testing.T) {
	// p = 11 divides 5005: no solution.
	_, err := SolveForY(MatrixPlus, 11, 5005, 3)
	assert.ErrorIs(t, err, ErrNoSolution)

	// p = 23 is coprime to 35035: y must satisfy the congruence.
	for _, x := range []uint64{1, 2, 10, 100} {
		y, err := SolveForY(MatrixMinus, 23, 35035, x)
		require.NoError(t, err)
		assert.Less(t, y, uint64(23))

		xp := NormalizedXP(MatrixMinus, 23)
		assert.Equal(t, uint64(0), (x+35035*y+23-xp)%23, "x=%d", x)
	}

	// x already on the residue class gives y = 0.
	xp := NormalizedXP(MatrixPlus, 23)
	y, err := SolveForY(MatrixPlus, 23, 35035, xp)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), y)
}

func TestModularInverse(t *testing.T) {
	cases := []struct{ a, m int64 }{
		{3, 7}, {35, 11}, {10, 17}, {35035, 23},
	}
	for _, tc := range cases {
		inv := ModularInverse(tc.a%tc.m, tc.m)
		assert.Equal(t, int64(1), (tc.a%tc.m*inv)%tc.m, "a=%d m=%d", tc.a, tc.m)
	}

	assert.Panics(t, func() { ModularInverse(3, 1) })
}

func TestLimitedVX(t *testing.T) {
	// Tiny range stays at the 35 floor.
	assert.Equal(t, uint64(35), LimitedVX(100, 6))

	// Large range with 6 factors reaches 5*7*11*13*17*19.
	assert.Equal(t, uint64(1616615), LimitedVX(1<<40, 6))

	// The factor cap binds before the range does.
	assert.Equal(t, uint64(385), LimitedVX(1<<40, 3))
}

func TestMaxVX(t *testing.T) {
	primes := append([]uint64{2, 3}, SmallPrimes...)

	vx := MaxVX(24, primes)
	assert.Less(t, vx.BitLen(), 24)

	// Multiplying by the next unused factor must cross the limit:
	// vx is the largest such primorial.
	next := new(big.Int).Set(vx)
	for _, p := range SmallPrimes {
		if new(big.Int).Mod(vx, new(big.Int).SetUint64(p)).Sign() != 0 {
			next.Mul(next, new(big.Int).SetUint64(p))
			break
		}
	}
	assert.GreaterOrEqual(t, next.BitLen(), 24)
}
