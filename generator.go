package iz

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/Zprime137/iZ-library/izm"
)

const (
	// minBitSize keeps the primorial construction meaningful; below
	// this the progression degenerates to a handful of candidates.
	minBitSize = 16

	// gcdAttempts bounds the +6 walk to an x coprime to vx.
	gcdAttempts = 10_000

	// maxAttempts bounds the progression steps per search pass.
	maxAttempts = 1_000_000
)

var (
	bigOne = big.NewInt(1)
	bigSix = big.NewInt(6)
)

// RandomIZPrime returns a probable prime with exactly bitSize bits in
// the chosen matrix: the result is ≡ matrixID (mod 6) and passes
// rounds of Miller-Rabin.
//
// The search runs on the iZ-lattice: with vx the largest primorial
// 5*7*11*... below bitSize bits and x a random value coprime to vx,
// every candidate iZ(x + vx*y, matrixID) avoids all primes dividing
// vx. Workers search independent progressions in parallel; the first
// confirmed prime wins and cancels the rest. The function does not
// return until every worker has terminated.
func RandomIZPrime(ctx context.Context, matrixID, bitSize int, opts ...Option) (*big.Int, error) {
	if matrixID != izm.MatrixMinus && matrixID != izm.MatrixPlus {
		return nil, fmt.Errorf("matrix must be -1 or +1, got %d", matrixID)
	}
	if bitSize < minBitSize {
		return nil, &ErrInvalidBitSize{BitSize: bitSize}
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.WithBitSize(bitSize)

	vx := izm.MaxVX(bitSize, vx6Primes().Values())

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan *big.Int, o.workers)
	g, searchCtx := errgroup.WithContext(searchCtx)

	for i := 0; i < o.workers; i++ {
		w := &worker{
			id:       i,
			matrixID: matrixID,
			bitSize:  bitSize,
			vx:       vx,
			rounds:   o.rounds,
			restarts: o.maxRestarts,
			logger:   logger.WithWorker(i),
		}
		g.Go(func() error {
			return w.run(searchCtx, results)
		})
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case p := <-results:
		cancel()
		<-done // no zombie workers
		return p, nil

	case err := <-done:
		if err != nil {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		select {
		case p := <-results:
			// A worker published in the gap between send and exit.
			return p, nil
		default:
			return nil, ErrNoPrimeFound
		}
	}
}

// worker searches one progression of the iZ-lattice at a time.
type worker struct {
	id       int
	matrixID int
	bitSize  int
	vx       *big.Int
	rounds   int
	restarts int
	logger   *Logger
}

func (w *worker) run(ctx context.Context, results chan<- *big.Int) error {
	// Debug progress is throttled: a 4096-bit search makes thousands
	// of attempts per second.
	limiter := rate.NewLimiter(rate.Every(time.Second), 1)

	for restart := 0; restart < w.restarts; restart++ {
		if ctx.Err() != nil {
			return nil
		}

		p, err := w.searchOnce(ctx, limiter)
		if err != nil {
			return err
		}
		if p != nil {
			results <- p
			return nil
		}

		w.logger.Debug("search pass exhausted, reseeding", "restart", restart+1)
	}
	return nil
}

// searchOnce seeds a fresh progression and walks it until a prime is
// confirmed, the candidate drifts out of the bit-size window, or the
// attempt budget runs out. A nil, nil return means reseed and retry.
func (w *worker) searchOnce(ctx context.Context, limiter *rate.Limiter) (*big.Int, error) {
	x, err := rand.Int(rand.Reader, w.vx)
	if err != nil {
		return nil, fmt.Errorf("seed worker %d: %w", w.id, err)
	}
	if x.Sign() == 0 {
		x.SetInt64(1)
	}

	candidate := izm.BigZ(x, w.matrixID)

	// Walk x forward until the progression candidate + k*vx can
	// contain primes at all.
	tmp := new(big.Int)
	coprime := false
	for i := 0; i < gcdAttempts; i++ {
		candidate.Add(candidate, bigSix)
		if tmp.GCD(nil, nil, w.vx, candidate).Cmp(bigOne) == 0 {
			coprime = true
			break
		}
	}
	if !coprime {
		return nil, nil
	}

	// One lattice row is 6*vx wide in integer terms: stepping by it
	// advances y in iZ(x + vx*y, matrixID), keeping the candidate
	// ≡ matrixID (mod 6) and coprime to vx. Skip the first row, then
	// jump to the first candidate with exactly bitSize bits.
	step := new(big.Int).Mul(w.vx, bigSix)
	candidate.Add(candidate, step)

	floor := new(big.Int).Lsh(bigOne, uint(w.bitSize-1))
	if candidate.Cmp(floor) < 0 {
		k := new(big.Int).Sub(floor, candidate)
		k.Div(k, step)
		k.Add(k, bigOne)
		candidate.Add(candidate, k.Mul(k, step))
	}

	for i := 0; i < maxAttempts; i++ {
		if ctx.Err() != nil {
			return nil, nil
		}

		candidate.Add(candidate, step)
		if candidate.BitLen() > w.bitSize {
			return nil, nil
		}

		if limiter.Allow() {
			w.logger.Debug("searching", "attempt", i)
		}

		if candidate.ProbablyPrime(w.rounds) {
			return new(big.Int).Set(candidate), nil
		}
	}
	return nil, nil
}
