package iz

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zprime137/iZ-library/izm"
)

func TestRandomIZPrimeRejectsBadArguments(t *testing.T) {
	ctx := context.Background()

	_, err := RandomIZPrime(ctx, 0, 256)
	assert.Error(t, err)

	_, err = RandomIZPrime(ctx, izm.MatrixMinus, 8)
	var badSize *ErrInvalidBitSize
	require.ErrorAs(t, err, &badSize)
	assert.Equal(t, 8, badSize.BitSize)
}

func TestRandomIZPrime(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		matrixID int
		bitSize  int
		wantMod6 uint64
	}{
		{izm.MatrixMinus, 256, 5},
		{izm.MatrixPlus, 256, 1},
		{izm.MatrixMinus, 384, 5},
	}

	for _, tc := range cases {
		p, err := RandomIZPrime(ctx, tc.matrixID, tc.bitSize,
			WithWorkers(4), WithRounds(25), WithMaxRestarts(64))
		require.NoError(t, err, "matrix=%d bits=%d", tc.matrixID, tc.bitSize)

		assert.Equal(t, tc.bitSize, p.BitLen())

		mod6 := new(big.Int).Mod(p, big.NewInt(6))
		assert.Equal(t, tc.wantMod6, mod6.Uint64())

		// Confirm with an independent, stricter check.
		assert.True(t, p.ProbablyPrime(40))
	}
}

func TestRandomIZPrimeLarge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 1024-bit search in short mode")
	}

	p, err := RandomIZPrime(context.Background(), izm.MatrixMinus, 1024,
		WithWorkers(4), WithMaxRestarts(64))
	require.NoError(t, err)

	assert.Equal(t, 1024, p.BitLen())
	assert.Equal(t, uint64(5), new(big.Int).Mod(p, big.NewInt(6)).Uint64())
	assert.True(t, p.ProbablyPrime(40))
}

func TestRandomIZPrimeSingleWorker(t *testing.T) {
	p, err := RandomIZPrime(context.Background(), izm.MatrixPlus, 256,
		WithWorkers(1), WithMaxRestarts(64))
	require.NoError(t, err)
	assert.Equal(t, 256, p.BitLen())
}

func TestRandomIZPrimeCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := RandomIZPrime(ctx, izm.MatrixMinus, 4096, WithWorkers(2))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 10*time.Second, "workers must exit promptly")
}

// The progression candidates stay coprime to vx, so results never
// carry a factor from the primorial.
func TestRandomIZPrimeCoprimeToSmallFactors(t *testing.T) {
	p, err := RandomIZPrime(context.Background(), izm.MatrixMinus, 256,
		WithWorkers(2), WithMaxRestarts(64))
	require.NoError(t, err)

	for _, q := range []int64{5, 7, 11, 13} {
		mod := new(big.Int).Mod(p, big.NewInt(q))
		assert.NotEqual(t, int64(0), mod.Int64(), "divisible by %d", q)
	}
}
