package recommend

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source supplies the random draws used to vary phrasing.
// IntN returns a value in [0, n) and is only called with n > 0.
type Source interface {
	IntN(n int) int
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLockedSource returns a seeded source that is safe for concurrent use.
func NewLockedSource(seed uint64) Source {
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeSource returns a concurrency-safe source seeded from the clock.
func NewTimeSource() Source {
	return NewLockedSource(uint64(time.Now().UnixNano()))
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// NewSeededSource returns a deterministic source for a single goroutine.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func choose(src Source, items []string) string {
	return items[src.IntN(len(items))]
}

// sample draws k distinct entries without replacement (partial Fisher-Yates).
func sample(src Source, items []string, k int) []string {
	if k > len(items) {
		k = len(items)
	}
	pool := append([]string(nil), items...)
	out := make([]string, 0, k)
	for i := 0; i < k; i++ {
		j := i + src.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		out = append(out, pool[i])
	}
	return out
}
