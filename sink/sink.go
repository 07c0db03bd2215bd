package sink

import "github.com/hupe1980/wolfarena/core"

// NoOp discards every notice. Useful as an explicit placeholder where a
// sink is required but nobody is watching.
type NoOp struct{}

// Compile-time check that NoOp satisfies core.EventSink.
var _ core.EventSink = NoOp{}

// Publish implements core.EventSink.
func (NoOp) Publish(core.Notice) {}

// Fanout forwards each notice to every wrapped sink in registration order.
// Publish is only as prompt as the slowest member, so long-running members
// should buffer internally.
type Fanout struct {
	sinks []core.EventSink
}

var _ core.EventSink = (*Fanout)(nil)

// NewFanout composes several sinks into one. Nil entries are skipped, so
// callers can pass optional sinks without guarding.
func NewFanout(sinks ...core.EventSink) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

// Publish implements core.EventSink.
func (f *Fanout) Publish(n core.Notice) {
	for _, s := range f.sinks {
		s.Publish(n)
	}
}
