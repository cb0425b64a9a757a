package events

import (
	"sync"
	"sync/atomic"

	"github.com/tso-redispatch/redispatch/pkg/types"
)

// DefaultCapacity is the number of events retained per entity before the
// oldest entries are evicted
const DefaultCapacity = 100

// Event is one stamped, immutable entry of an entity's event log
type Event struct {
	ID       uint64
	EntityID string
	Payload  types.EventPayload
}

// Appender is the log-append capability handed to event producers. Producers
// never touch the id allocator or the log internals directly.
type Appender interface {
	Append(entityID string, payload types.EventPayload) Event
}

// Log stores the most recent events per entity for bounded replay. A single
// process-wide allocator assigns strictly increasing ids across all
// entities, so ids are unique but not contiguous within one entity.
type Log struct {
	capacity int
	nextID   atomic.Uint64

	mu       sync.RWMutex
	entities map[string]*entityLog
}

type entityLog struct {
	mu     sync.Mutex
	events []Event // ascending id order
}

// NewLog creates a log retaining up to capacity events per entity. A
// capacity of zero or less falls back to DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		capacity: capacity,
		entities: make(map[string]*entityLog),
	}
}

// Append stamps the payload with the next global id and stores it in the
// entity's log, evicting the oldest entry if the log is at capacity.
// Appends for different entities do not block each other.
func (l *Log) Append(entityID string, payload types.EventPayload) Event {
	el := l.entity(entityID)

	el.mu.Lock()
	defer el.mu.Unlock()

	// Allocate under the entity lock so ids appear in the log in
	// allocation order
	event := Event{
		ID:       l.nextID.Add(1),
		EntityID: entityID,
		Payload:  payload,
	}

	el.events = append(el.events, event)
	if len(el.events) > l.capacity {
		el.events = el.events[1:]
	}

	return event
}

// Stamp assigns the next global id to the payload without retaining the
// event. Used for per-connection connected events, which are delivered with
// an id but never replayed; resuming from a stamped id is meaningless but
// harmless, replay simply starts from the retained events past it.
func (l *Log) Stamp(entityID string, payload types.EventPayload) Event {
	return Event{
		ID:       l.nextID.Add(1),
		EntityID: entityID,
		Payload:  payload,
	}
}

// ReplayAfter returns every retained event of the entity with id strictly
// greater than afterID, in ascending id order. An unknown entity or an
// afterID past the newest event yields an empty result; an afterID that was
// already evicted is not an error, the caller just sees a gap.
func (l *Log) ReplayAfter(entityID string, afterID uint64) []Event {
	l.mu.RLock()
	el, ok := l.entities[entityID]
	l.mu.RUnlock()
	if !ok {
		return nil
	}

	el.mu.Lock()
	defer el.mu.Unlock()

	// Retained events are sorted by id, find the first one past afterID
	idx := len(el.events)
	for i, e := range el.events {
		if e.ID > afterID {
			idx = i
			break
		}
	}
	if idx == len(el.events) {
		return nil
	}

	out := make([]Event, len(el.events)-idx)
	copy(out, el.events[idx:])
	return out
}

// Len returns the number of events currently retained for the entity
func (l *Log) Len(entityID string) int {
	l.mu.RLock()
	el, ok := l.entities[entityID]
	l.mu.RUnlock()
	if !ok {
		return 0
	}

	el.mu.Lock()
	defer el.mu.Unlock()
	return len(el.events)
}

func (l *Log) entity(entityID string) *entityLog {
	l.mu.RLock()
	el, ok := l.entities[entityID]
	l.mu.RUnlock()
	if ok {
		return el
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if el, ok = l.entities[entityID]; ok {
		return el
	}
	el = &entityLog{}
	l.entities[entityID] = el
	return el
}
