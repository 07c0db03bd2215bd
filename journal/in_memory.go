package journal

import (
	"sync"

	"github.com/hupe1980/wolfarena/core"
)

// InMemoryLog is a volatile core.EventLog implementation storing events in
// a process-local slice. It is safe for concurrent access; every read hands
// out a copy so callers can never reorder or rewrite history.
type InMemoryLog struct {
	mu     sync.RWMutex
	events []core.PublicEvent
}

// Compile-time check that InMemoryLog satisfies core.EventLog.
var _ core.EventLog = (*InMemoryLog)(nil)

// NewInMemoryLog constructs an empty in-memory event log.
func NewInMemoryLog() *InMemoryLog {
	return &InMemoryLog{}
}

// Append adds an event to the end of the journal.
func (l *InMemoryLog) Append(ev core.PublicEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

// Events returns a defensive copy of the full history in append order.
func (l *InMemoryLog) Events() []core.PublicEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]core.PublicEvent, len(l.events))
	copy(out, l.events)
	return out
}

// Recent returns a copy of the last n events in chronological order. It
// returns the full history when n exceeds the journal length and nothing
// when n <= 0.
func (l *InMemoryLog) Recent(n int) []core.PublicEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n <= 0 {
		return []core.PublicEvent{}
	}
	start := len(l.events) - n
	if start < 0 {
		start = 0
	}
	out := make([]core.PublicEvent, len(l.events)-start)
	copy(out, l.events[start:])
	return out
}

// Len reports how many events have been journaled.
func (l *InMemoryLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}
