package wager

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the uniform random source a resolver draws from. *rand.Rand
// satisfies it; tests substitute fixed sequences.
type Rand interface {
	Intn(n int) int
}

type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Intn(n)
}

// NewRand returns a mutex-guarded source safe for concurrent resolvers.
// A zero seed means seed from the clock.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))}
}
