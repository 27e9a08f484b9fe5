package iz

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPrimeFound is returned when every generator worker
	// exhausts its restart budget without a confirmed prime.
	ErrNoPrimeFound = errors.New("no prime found within the attempt budget")

	// ErrInvalidY is returned when a VX6 segment index is not a
	// base-10 numeric string.
	ErrInvalidY = errors.New("y must be a base-10 numeric string")

	// ErrHashMismatch is returned when a VX6 file's stored digest
	// does not match its gap payload.
	ErrHashMismatch = errors.New("vx6: hash mismatch")
)

// ErrInvalidBitSize indicates a requested prime size the generator
// cannot serve.
type ErrInvalidBitSize struct {
	BitSize int
}

func (e *ErrInvalidBitSize) Error() string {
	return fmt.Sprintf("invalid bit size: %d (minimum %d)", e.BitSize, minBitSize)
}
