package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/wolfarena/core"
)

// Mock is a scriptable core.Gateway for tests. Replies are served from a
// FIFO queue in the order they were enqueued; once the queue is drained the
// default reply is served, or an error when no default is set. Every
// request is recorded for assertions.
type Mock struct {
	mu         sync.Mutex
	name       string
	queue      []mockReply
	defaultTxt string
	requests   []core.GatewayRequest
}

type mockReply struct {
	text string
	err  error
}

// Compile-time check that Mock satisfies core.Gateway.
var _ core.Gateway = (*Mock)(nil)

// NewMock creates an empty mock gateway.
func NewMock() *Mock {
	return &Mock{name: "mock"}
}

// Enqueue appends one reply text to the queue (chainable).
func (m *Mock) Enqueue(text string) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockReply{text: text})
	return m
}

// EnqueueAll appends several reply texts in order (chainable).
func (m *Mock) EnqueueAll(texts ...string) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range texts {
		m.queue = append(m.queue, mockReply{text: t})
	}
	return m
}

// EnqueueError appends a transport failure to the queue (chainable).
func (m *Mock) EnqueueError(err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockReply{err: err})
	return m
}

// SetDefault sets the reply served once the queue is drained (chainable).
func (m *Mock) SetDefault(text string) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultTxt = text
	return m
}

// Name identifies the gateway in logs.
func (m *Mock) Name() string { return m.name }

// Respond pops the next scripted reply.
func (m *Mock) Respond(ctx context.Context, req core.GatewayRequest) (core.GatewayResponse, error) {
	if err := ctx.Err(); err != nil {
		return core.GatewayResponse{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)

	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		if next.err != nil {
			return core.GatewayResponse{}, next.err
		}
		return core.GatewayResponse{Text: next.text}, nil
	}
	if m.defaultTxt != "" {
		return core.GatewayResponse{Text: m.defaultTxt}, nil
	}
	return core.GatewayResponse{}, fmt.Errorf("mock gateway: queue exhausted after %d calls", len(m.requests))
}

// Requests returns a copy of every request seen so far.
func (m *Mock) Requests() []core.GatewayRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.GatewayRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// Calls reports how many requests the mock has served.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
