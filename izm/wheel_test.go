package izm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zprime137/iZ-library/bitset"
)

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func TestSeedBase(t *testing.T) {
	x5 := bitset.New(40)
	x7 := bitset.New(40)
	SeedBase(x5, x7)

	for i := uint64(1); i <= 35; i++ {
		assert.Equal(t, gcd(6*i-1, 35) == 1, x5.Test(i), "x5 bit %d", i)
		assert.Equal(t, gcd(6*i+1, 35) == 1, x7.Test(i), "x7 bit %d", i)
	}
	assert.False(t, x5.Test(0))
	assert.False(t, x7.Test(0))
}

func TestBuildSegment(t *testing.T) {
	for _, vx := range []uint64{35, 385, 5005} {
		x5 := bitset.New(vx + 10)
		x7 := bitset.New(vx + 10)
		BuildSegment(vx, x5, x7)

		for x := uint64(1); x <= vx; x++ {
			assert.Equal(t, gcd(6*x-1, vx) == 1, x5.Test(x), "vx=%d x5 bit %d", vx, x)
			assert.Equal(t, gcd(6*x+1, vx) == 1, x7.Test(x), "vx=%d x7 bit %d", vx, x)
		}
	}
}

// One residue class mod p is struck per prime p dividing vx, so each
// matrix keeps prod(p-1) survivors per period.
func TestBuildSegmentSurvivorCount(t *testing.T) {
	vx := uint64(385) // 5*7*11
	x5 := bitset.New(vx + 10)
	x7 := bitset.New(vx + 10)
	BuildSegment(vx, x5, x7)

	count5, count7 := 0, 0
	for x := uint64(1); x <= vx; x++ {
		if x5.Test(x) {
			count5++
		}
		if x7.Test(x) {
			count7++
		}
	}
	assert.Equal(t, 4*6*10, count5)
	assert.Equal(t, 4*6*10, count7)
}

// The pre-sieved pattern is periodic with period vx.
func TestBuildSegmentPeriodicity(t *testing.T) {
	vx := uint64(385)
	x5 := bitset.New(vx + 10)
	x7 := bitset.New(vx + 10)
	BuildSegment(vx, x5, x7)

	for x := uint64(1); x <= 40; x++ {
		assert.Equal(t, gcd(6*(x+vx)-1, vx) == 1, x5.Test(x), "x=%d", x)
	}
}

func TestBuildSegmentTooSmall(t *testing.T) {
	require.Panics(t, func() {
		BuildSegment(385, bitset.New(100), bitset.New(100))
	})
}
