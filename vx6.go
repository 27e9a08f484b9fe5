package iz

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/Zprime137/iZ-library/bitset"
	"github.com/Zprime137/iZ-library/internal/fs"
	"github.com/Zprime137/iZ-library/izm"
)

// VX6Ext is the file extension for serialised VX6 segments.
const VX6Ext = ".vx6"

// vx6RootSkip is the index of the first cached prime that can have
// composites in a VX6 segment: 2 and 3 are outside the iZ set and
// 5, 7, 11, 13, 17, 19 divide the segment size, so marking starts at
// 23.
const vx6RootSkip = 8

// VX6 sieves one segment of the iZ-lattice at the fixed primorial
// VX6Size, for a segment index y of any magnitude. The primes found
// are stored as 16-bit gaps from Base; cumulative sums reproduce them.
type VX6 struct {
	Y    string // decimal segment index
	Gaps []uint16

	// Survivor bitmaps, populated by Sieve.
	X5, X7 *bitset.Bitmap
}

// NewVX6 creates a VX6 segment holder for the given decimal y.
func NewVX6(y string) (*VX6, error) {
	if !isNumeric(y) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidY, y)
	}
	return &VX6{Y: y}, nil
}

func isNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (v *VX6) yInt() *big.Int {
	y, ok := new(big.Int).SetString(v.Y, 10)
	if !ok {
		panic(fmt.Sprintf("vx6: y %q not numeric", v.Y))
	}
	return y
}

// Base returns the segment's base value 6*VX6Size*y + 1, the point
// the gap stream accumulates from.
func (v *VX6) Base() *big.Int {
	base := v.yInt()
	base.Mul(base, big.NewInt(VX6Size))
	base.Mul(base, bigSix)
	return base.Add(base, bigOne)
}

// Sieve populates the survivor bitmaps and the gap stream. Composites
// of the cached primes below VX6Size are struck deterministically;
// when y is large enough that a survivor may still have a factor
// beyond that bound, each survivor is confirmed with rounds of
// Miller-Rabin (default 25 when rounds ≤ 0).
func (v *VX6) Sieve(ctx context.Context, rounds int) error {
	if rounds <= 0 {
		rounds = 25
	}

	y := v.yInt()
	if y.Sign() == 0 {
		// The first segment belongs to the plain sieves: root primes
		// live inside it and would strike their own slots here.
		return fmt.Errorf("vx6: y must be at least 1")
	}

	cached := vx6Primes()
	wheel5, wheel7 := vx6Wheel()
	v.X5 = wheel5.Clone()
	v.X7 = wheel7.Clone()
	v.Gaps = v.Gaps[:0]

	yvx := new(big.Int).Mul(y, big.NewInt(VX6Size))

	// A survivor needs probabilistic confirmation only if its value
	// can exceed the square of the largest usable root prime.
	upperLimit := new(big.Int).Add(yvx, big.NewInt(VX6Size))
	upperLimit = izm.BigZ(upperLimit, izm.MatrixPlus)
	upperLimit.Sqrt(upperLimit)

	probabilistic := true
	for i := vx6RootSkip; i < cached.Count(); i++ {
		p := cached.At(i)
		if upperLimit.Cmp(new(big.Int).SetUint64(p)) < 0 {
			// Root primes cover the whole segment: results are
			// deterministic.
			probabilistic = false
			break
		}

		xp5 := izm.SolveForXBig(izm.MatrixMinus, p, VX6Size, y)
		v.X5.ClearModP(p, xp5, VX6Size)
		xp7 := izm.SolveForXBig(izm.MatrixPlus, p, VX6Size, y)
		v.X7.ClearModP(p, xp7, VX6Size)
	}

	value := new(big.Int)

	// The gap accumulator starts at the x = 4 column: no x below 4
	// survives the wheel, and iZ(yvx+4, -1) sits base+22 away.
	gap := uint32(18)
	for x := uint64(4); x <= VX6Size; x++ {
		if x%4096 == 0 && ctx.Err() != nil {
			return ctx.Err()
		}

		gap += 4
		if v.X5.Test(x) {
			isPrime := true
			if probabilistic {
				value.SetUint64(x)
				value.Add(value, yvx)
				isPrime = izm.BigZ(value, izm.MatrixMinus).ProbablyPrime(rounds)
			}

			if isPrime {
				v.Gaps = append(v.Gaps, uint16(gap))
				gap = 0
			} else {
				v.X5.Unset(x)
			}
		}

		gap += 2
		if v.X7.Test(x) {
			isPrime := true
			if probabilistic {
				value.SetUint64(x)
				value.Add(value, yvx)
				isPrime = izm.BigZ(value, izm.MatrixPlus).ProbablyPrime(rounds)
			}

			if isPrime {
				v.Gaps = append(v.Gaps, uint16(gap))
				gap = 0
			} else {
				v.X7.Unset(x)
			}
		}
	}

	return nil
}

// Primes reconstructs the primes from the gap stream: base += gap[i].
func (v *VX6) Primes() []*big.Int {
	out := make([]*big.Int, 0, len(v.Gaps))
	acc := v.Base()
	for _, gap := range v.Gaps {
		acc.Add(acc, new(big.Int).SetUint64(uint64(gap)))
		out = append(out, new(big.Int).Set(acc))
	}
	return out
}

func (v *VX6) gapBytes() []byte {
	buf := make([]byte, 2*len(v.Gaps))
	for i, g := range v.Gaps {
		binary.LittleEndian.PutUint16(buf[2*i:], g)
	}
	return buf
}

// WriteFile serialises the segment as
//
//	{uint64 yLen (incl. trailing NUL) | y bytes + NUL |
//	 uint64 gap count | uint16[count] gaps |
//	 32-byte SHA-256 over the raw gap bytes}
//
// all little-endian. A nil fsys uses the local file system.
func (v *VX6) WriteFile(fsys fs.FileSystem, path string) error {
	if fsys == nil {
		fsys = fs.Default
	}

	f, err := fsys.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	payload := v.gapBytes()
	sum := sha256.Sum256(payload)

	var hdr [8]byte
	binary.LittleEndian.PutUint64(hdr[:], uint64(len(v.Y)+1))

	var count [8]byte
	binary.LittleEndian.PutUint64(count[:], uint64(len(v.Gaps)))

	chunks := [][]byte{
		hdr[:],
		append([]byte(v.Y), 0),
		count[:],
		payload,
		sum[:],
	}
	for _, chunk := range chunks {
		if _, err := f.Write(chunk); err != nil {
			f.Close()
			fsys.Remove(path)
			return err
		}
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadVX6File reads a segment written by WriteFile, validating the
// digest and the y string.
func ReadVX6File(fsys fs.FileSystem, path string) (*VX6, error) {
	if fsys == nil {
		fsys = fs.Default
	}

	f, err := fsys.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var hdr [8]byte
	if _, err := io.ReadFull(f, hdr[:]); err != nil {
		return nil, fmt.Errorf("vx6: read y length: %w", err)
	}
	yLen := binary.LittleEndian.Uint64(hdr[:])
	if yLen == 0 || yLen > 1<<20 {
		return nil, fmt.Errorf("vx6: invalid y length %d", yLen)
	}

	yBuf := make([]byte, yLen)
	if _, err := io.ReadFull(f, yBuf); err != nil {
		return nil, fmt.Errorf("vx6: read y: %w", err)
	}
	y := string(yBuf[:yLen-1])
	if !isNumeric(y) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidY, y)
	}

	var countBuf [8]byte
	if _, err := io.ReadFull(f, countBuf[:]); err != nil {
		return nil, fmt.Errorf("vx6: read gap count: %w", err)
	}
	count := binary.LittleEndian.Uint64(countBuf[:])
	if count > 2*VX6Size {
		return nil, fmt.Errorf("vx6: invalid gap count %d", count)
	}

	payload := make([]byte, 2*count)
	if _, err := io.ReadFull(f, payload); err != nil {
		return nil, fmt.Errorf("vx6: read gaps: %w", err)
	}

	var sum [sha256.Size]byte
	if _, err := io.ReadFull(f, sum[:]); err != nil {
		return nil, fmt.Errorf("vx6: read digest: %w", err)
	}

	computed := sha256.Sum256(payload)
	if !bytes.Equal(sum[:], computed[:]) {
		return nil, ErrHashMismatch
	}

	v := &VX6{Y: y, Gaps: make([]uint16, count)}
	for i := range v.Gaps {
		v.Gaps[i] = binary.LittleEndian.Uint16(payload[2*i:])
	}
	return v, nil
}
