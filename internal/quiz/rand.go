package quiz

import (
	"math/rand/v2"
	"sync"
)

// RandSource picks an index in [0, n). Implementations must be safe for concurrent use.
type RandSource interface {
	IntN(n int) int
}

// NewRandSource returns a seeded, goroutine-safe source, or the runtime's
// randomly seeded source when seed is 0.
func NewRandSource(seed uint64) RandSource {
	if seed == 0 {
		return runtimeSource{}
	}
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type runtimeSource struct{}

func (runtimeSource) IntN(n int) int { return rand.IntN(n) }

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
