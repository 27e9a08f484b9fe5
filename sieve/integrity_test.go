package sieve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zprime137/iZ-library/primes"
)

func TestCheckIntegrity(t *testing.T) {
	assert.NoError(t, CheckIntegrity(All(), 10_000))
}

func TestCheckIntegrityReportsMismatchByName(t *testing.T) {
	broken := Algorithm{
		Name: "broken",
		Run: func(n uint64) *primes.List {
			list := Eratosthenes(n)
			list.DropLast()
			return list
		},
	}

	err := CheckIntegrity([]Algorithm{{Name: "eratosthenes", Run: Eratosthenes}, broken}, 1000)
	require.Error(t, err)

	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "broken", mismatch.Algorithm)
	assert.Equal(t, "eratosthenes", mismatch.Reference)
}

func TestCheckIntegrityNeedsTwo(t *testing.T) {
	assert.Error(t, CheckIntegrity([]Algorithm{{Name: "iZ", Run: IZ}}, 100))
}
