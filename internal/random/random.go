// Package random provides the random-draw source used by the mint
// engine, with a crypto-backed default and a replayable source for
// deterministic tests.
package random

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
)

// ErrInvalidRange indicates max < min was requested.
var ErrInvalidRange = errors.New("draw range is invalid")

// Source yields uniform random integers over an inclusive range.
// The default implementation must be unpredictable to callers before
// the draw completes.
type Source interface {
	DrawUniform(min, max uint64) (uint64, error)
}

type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source { return cryptoSource{} }

func (cryptoSource) DrawUniform(min, max uint64) (uint64, error) {
	if max < min {
		return 0, ErrInvalidRange
	}
	n, err := crand.Int(crand.Reader, new(big.Int).SetUint64(max-min+1))
	if err != nil {
		return 0, fmt.Errorf("read random draw: %w", err)
	}
	return min + n.Uint64(), nil
}

// Sequence replays a fixed series of draws. It is the substitute used
// to make the mint pipeline deterministic in tests.
type Sequence struct {
	mu     sync.Mutex
	values []uint64
	next   int
}

// NewSequence returns a Sequence that yields the given values in order.
func NewSequence(values ...uint64) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) DrawUniform(min, max uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next >= len(s.values) {
		return 0, errors.New("sequence exhausted")
	}
	v := s.values[s.next]
	s.next++
	if v < min || v > max {
		return 0, fmt.Errorf("sequence value %d outside range [%d, %d]", v, min, max)
	}
	return v, nil
}
