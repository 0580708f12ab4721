// Package event carries simulation notifications to presentation layers.
//
// The simulation emits into a Bus during a tick; the Bus holds them in a
// queue and delivers them to subscribers when the tick is flushed, so no
// subscriber runs in the middle of an update.
package event

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/zyedidia/generic/queue"
)

// Kind names an event.
type Kind string

const (
	PlayerJumped     Kind = "player-jumped"
	PlayerDied       Kind = "player-died"
	PlayerMoved      Kind = "player-moved"
	PlayerExtracted  Kind = "player-extracted"
	PlayerRespawned  Kind = "player-respawned"
	CheckpointSet    Kind = "checkpoint-set"
	BoxOpened        Kind = "box-opened"    // payload: paper | red
	LockerOpened     Kind = "locker-opened" // payload: metal | wood
	CardTaken        Kind = "card-taken"
	ComputerUnlocked Kind = "computer-unlocked"
	DronesDisabled   Kind = "drones-disabled"
	DogsDisabled     Kind = "dogs-disabled"
	DroneMoving      Kind = "drone-moving"
	DogMoving        Kind = "dog-moving"
	RareCardFound    Kind = "rare-card-found"
	CommonCardFound  Kind = "common-card-found"
	LevelChanged     Kind = "level-changed"
)

// Payload values for box and locker events.
const (
	PayloadPaper = "paper"
	PayloadRed   = "red"
	PayloadMetal = "metal"
	PayloadWood  = "wood"
)

// Event is one notification. X and Y are the pixel position of the source when it has one.
type Event struct {
	Kind    Kind
	Payload string
	Tick    uint64
	X, Y    int
}

// Handler consumes delivered events.
type Handler func(Event)

// Sink accepts events from simulation code.
type Sink interface {
	Emit(e Event)
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Emit(Event) {}

// Bus buffers events for the current tick and fans them out on Flush.
// Emit and Flush must be called from the simulation goroutine.
type Bus struct {
	pending *queue.Queue[Event]
	count   int
	tick    uint64

	mu     sync.RWMutex
	subs   map[int]Handler
	nextID int

	emitted   atomic.Uint64
	delivered atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		pending: queue.New[Event](),
		subs:    make(map[int]Handler),
	}
}

// SetTick stamps subsequently emitted events with tick.
func (b *Bus) SetTick(tick uint64) {
	b.tick = tick
}

// Emit queues an event for the next Flush.
func (b *Bus) Emit(e Event) {
	if e.Tick == 0 {
		e.Tick = b.tick
	}
	b.pending.Enqueue(e)
	b.count++
	b.emitted.Add(1)
}

// Subscribe registers h and returns a function that removes it.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = h
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Pending returns the number of queued events.
func (b *Bus) Pending() int {
	return b.count
}

// Flush delivers queued events in emission order and returns how many were delivered.
// Subscribers registered first see each event first.
func (b *Bus) Flush() int {
	b.mu.RLock()
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	handlers := make([]Handler, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		handlers = append(handlers, b.subs[id])
	}
	b.mu.RUnlock()

	n := 0
	for !b.pending.Empty() {
		e := b.pending.Dequeue()
		b.count--
		for _, h := range handlers {
			h(e)
		}
		n++
	}
	b.delivered.Add(uint64(n))
	return n
}

// Stats aggregates bus counters.
type Stats struct {
	Emitted   uint64
	Delivered uint64
	Pending   int
}

// Stats returns the bus counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Emitted:   b.emitted.Load(),
		Delivered: b.delivered.Load(),
		Pending:   b.count,
	}
}
