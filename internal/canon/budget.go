package canon

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
)

// budget enforces the recursion and deep iteration bounds of one run and
// counts the work done. It is shared by every worker of the run.
type budget struct {
	maxDegree int
	maxDeep   int // per blank node; negative means unlimited

	mu   sync.Mutex
	deep map[string]int

	calls        atomic.Int64
	permutations atomic.Int64
	maxSeen      atomic.Int64
}

func newBudget(maxDegree int) *budget {
	return &budget{maxDegree: maxDegree, maxDeep: -1, deep: make(map[string]int)}
}

// setWorkFactor derives the per-node deep iteration limit from the number of
// blank nodes that needed N-degree hashing.
func (b *budget) setWorkFactor(factor, nonUnique int) {
	if factor < 0 {
		b.maxDeep = -1
		return
	}
	limit := math.Pow(float64(nonUnique), float64(factor))
	if limit > math.MaxInt32 {
		b.maxDeep = math.MaxInt32
		return
	}
	b.maxDeep = int(limit)
}

// enter is called at the start of every N-degree hash of id at depth.
func (b *budget) enter(ctx context.Context, id string, depth int) error {
	if err := ctx.Err(); err != nil {
		return timeoutError(err)
	}
	if b.maxDegree > 0 && depth > b.maxDegree {
		return &Error{
			Code:      ErrCodeDegreeLimitExceeded,
			Message:   fmt.Sprintf("recursion depth %d exceeds max degree %d", depth, b.maxDegree),
			BlankNode: id,
		}
	}
	if b.maxDeep >= 0 {
		b.mu.Lock()
		n := b.deep[id]
		if n > b.maxDeep {
			b.mu.Unlock()
			return &Error{
				Code:      ErrCodeDegreeLimitExceeded,
				Message:   fmt.Sprintf("maximum deep iterations exceeded (%d)", b.maxDeep),
				BlankNode: id,
			}
		}
		b.deep[id] = n + 1
		b.mu.Unlock()
	}
	b.calls.Add(1)
	for {
		seen := b.maxSeen.Load()
		if int64(depth) <= seen || b.maxSeen.CompareAndSwap(seen, int64(depth)) {
			break
		}
	}
	return nil
}

// trial is called once per permutation tried.
func (b *budget) trial(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return timeoutError(err)
	}
	b.permutations.Add(1)
	return nil
}
