package event

import (
	"sync"
	"sync/atomic"
)

// AsyncSink hands events to a handler running on its own goroutine.
// Handle never blocks: when the buffer is full the event is dropped and counted.
type AsyncSink struct {
	ch      chan Event
	handler Handler
	dropped atomic.Uint64
	once    sync.Once
	quit    chan struct{}
	done    chan struct{}
}

// NewAsyncSink starts the delivery goroutine.
func NewAsyncSink(capacity int, h Handler) *AsyncSink {
	s := &AsyncSink{
		ch:      make(chan Event, capacity),
		handler: h,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.loop()
	return s
}

// Handle is a Handler suitable for Bus.Subscribe. Events handed in after
// Close are discarded.
func (s *AsyncSink) Handle(e Event) {
	select {
	case <-s.quit:
		return
	default:
	}
	select {
	case s.ch <- e:
	default:
		s.dropped.Add(1)
	}
}

// Dropped returns the number of events lost to a full buffer.
func (s *AsyncSink) Dropped() uint64 {
	return s.dropped.Load()
}

// Close stops accepting events and waits until the buffered ones are handled.
// It is safe to call while other goroutines are still inside Handle.
func (s *AsyncSink) Close() {
	s.once.Do(func() {
		close(s.quit)
	})
	<-s.done
}

// loop never closes ch: a late sender must not panic.
func (s *AsyncSink) loop() {
	defer close(s.done)
	for {
		select {
		case e := <-s.ch:
			s.handler(e)
		case <-s.quit:
			s.drain()
			return
		}
	}
}

func (s *AsyncSink) drain() {
	for {
		select {
		case e := <-s.ch:
			s.handler(e)
		default:
			return
		}
	}
}
