package sieve

import (
	"fmt"
)

// MismatchError reports the first sieve whose output disagrees with
// the reference (the first algorithm in the set).
type MismatchError struct {
	Algorithm string
	Reference string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("sieve: %s output disagrees with %s", e.Algorithm, e.Reference)
}

// CheckIntegrity runs every algorithm at bound n and compares the
// SHA-256 digests of the emitted prime sequences. The prime set up to
// n is canonical, so the digests must be bit-identical; the first
// disagreement is reported by name. Returns nil when all agree.
func CheckIntegrity(algorithms []Algorithm, n uint64) error {
	if len(algorithms) < 2 {
		return fmt.Errorf("sieve: integrity check needs at least 2 algorithms, got %d", len(algorithms))
	}

	reference := algorithms[0].Run(n).Hash()
	for _, a := range algorithms[1:] {
		if a.Run(n).Hash() != reference {
			return &MismatchError{Algorithm: a.Name, Reference: algorithms[0].Name}
		}
	}
	return nil
}
