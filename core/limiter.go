package core

import (
	"errors"
	"fmt"
	"sync"
)

// ErrCallBudget is returned once the configured gateway call budget is
// exhausted. Callers can detect it with errors.Is to distinguish a capped
// run from a transport or host failure.
var ErrCallBudget = errors.New("gateway call budget exhausted")

// CallLimiter enforces a maximum number of gateway calls per game run. An
// unattended run must not burn provider quota without bound when a game
// drags on longer than expected.
type CallLimiter struct {
	max   int
	count int
	mu    sync.Mutex
}

// NewCallLimiter creates a new limiter with a max number of calls.
// If max == 0, unlimited calls are allowed.
func NewCallLimiter(max int) *CallLimiter {
	return &CallLimiter{max: max}
}

// Increment increases the call counter and returns ErrCallBudget once the
// limit is exceeded.
func (cl *CallLimiter) Increment() error {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cl.count++
	if cl.max > 0 && cl.count > cl.max {
		return fmt.Errorf("%w: max %d", ErrCallBudget, cl.max)
	}

	return nil
}

// Count returns the current number of calls made.
func (cl *CallLimiter) Count() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	return cl.count
}

// Remaining returns how many calls are left before hitting the limit.
func (cl *CallLimiter) Remaining() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if cl.max == 0 {
		return -1 // unlimited
	}

	return cl.max - cl.count
}
