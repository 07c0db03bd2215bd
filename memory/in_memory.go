package memory

import (
	"sync"

	"github.com/hupe1980/wolfarena/core"
)

// InMemoryLog is a process-local, append-only thought log backing one
// player's private memory. It is safe for concurrent access and returns
// defensive copies so callers can never mutate internal state.
type InMemoryLog struct {
	mu       sync.RWMutex
	thoughts []string
}

// Compile-time check that InMemoryLog satisfies core.Memory.
var _ core.Memory = (*InMemoryLog)(nil)

// NewInMemoryLog constructs an empty in-memory thought log.
func NewInMemoryLog() *InMemoryLog {
	return &InMemoryLog{}
}

// Append records a thought at the end of the log.
func (l *InMemoryLog) Append(thought string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.thoughts = append(l.thoughts, thought)
}

// Recent returns a copy of the last n thoughts in chronological order. It
// returns everything when n exceeds the log length and nothing when n <= 0.
func (l *InMemoryLog) Recent(n int) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n <= 0 {
		return []string{}
	}
	start := len(l.thoughts) - n
	if start < 0 {
		start = 0
	}
	out := make([]string, len(l.thoughts)-start)
	copy(out, l.thoughts[start:])
	return out
}

// All returns a copy of the full thought history.
func (l *InMemoryLog) All() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.thoughts))
	copy(out, l.thoughts)
	return out
}

// Len reports how many thoughts have been recorded.
func (l *InMemoryLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.thoughts)
}
