package dice

import (
	"math/rand"
	"sync"
)

// Source is the randomness provider for rolls.
type Source interface {
	// Intn returns a non-negative random int in [0, n). n is always > 0.
	Intn(n int) int
}

type globalSource struct{}

func (globalSource) Intn(n int) int {
	return rand.Intn(n)
}

// GlobalSource returns a Source backed by the process-wide math/rand
// generator. It is safe for concurrent use.
func GlobalSource() Source {
	return globalSource{}
}

// NewSeededSource returns a deterministic Source for the given seed. The
// returned source is not safe for concurrent use; wrap it with
// NewLockedSource when it is shared.
func NewSeededSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// LockedSource serializes access to an underlying Source.
type LockedSource struct {
	mu  sync.Mutex
	src Source
}

func NewLockedSource(src Source) *LockedSource {
	return &LockedSource{src: src}
}

func (s *LockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Intn(n)
}

// rollDie rolls a single die with the provided number of sides.
func rollDie(src Source, sides int) int {
	return src.Intn(sides) + 1
}
