// Package random provides the entropy the opponent and the first-turn draw consume.
package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source - supplies non-deterministic integers on demand.
type Source interface {
	Uint32() uint32
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New - seeded source safe for concurrent use. A zero seed is replaced by the current time.
func New(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &lockedSource{
		rng: rand.New(rand.NewSource(seed)), //nolint: gosec // game moves, not secrets
	}
}

func (that *lockedSource) Uint32() uint32 {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rng.Uint32()
}

// Sequence - replays fixed values in a loop, for deterministic games.
type Sequence struct {
	values []uint32
	next   int
}

func NewSequence(values ...uint32) *Sequence {
	if len(values) == 0 {
		values = []uint32{0}
	}

	return &Sequence{values: values}
}

func (that *Sequence) Uint32() uint32 {
	value := that.values[that.next]
	that.next = (that.next + 1) % len(that.values)

	return value
}
