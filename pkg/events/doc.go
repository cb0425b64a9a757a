/*
Package events provides the per-entity event log backing resumable streams.

The log is the only state shared between concurrent stream connections. It
retains the most recent events per entity (100 by default) so that a client
reconnecting with a Last-Event-ID can replay what it missed, within the
retention window.

# Architecture

	┌──────────────── EVENT LOG ─────────────────────────┐
	│                                                     │
	│  Append(entity, payload)                            │
	│     │                                               │
	│     ├── global atomic allocator → next event id     │
	│     │   (shared across ALL entities)                │
	│     ▼                                               │
	│  ┌─────────────┐  ┌─────────────┐                  │
	│  │ entity ENT01│  │ entity ENT02│   per-entity      │
	│  │ [12 14 15..]│  │ [13 16 17..]│   bounded slices  │
	│  └─────────────┘  └─────────────┘   (FIFO eviction) │
	│     ▲                                               │
	│  ReplayAfter(entity, afterID) → events with         │
	│  id > afterID, ascending, consistent snapshot       │
	└─────────────────────────────────────────────────────┘

# Guarantees

  - Ids are globally unique and strictly increasing; within one entity's
    log they are ascending but not contiguous (other entities consume ids
    from the same allocator).
  - Eviction removes only the oldest entry; the log never reorders.
  - An evicted id can never be replayed again. ReplayAfter with an evicted
    afterID silently returns only the retained tail, it is not an error.
  - Appends for different entities proceed in parallel; append and replay
    for the same entity serialize, so a replay never observes a
    half-applied append or eviction.

# Usage

	eventLog := events.NewLog(events.DefaultCapacity)

	ev := eventLog.Append("ENT01", types.NewHeartbeatPayload(time.Now()))
	missed := eventLog.ReplayAfter("ENT01", lastSeenID)

Producers receive the log through the Appender interface and never touch
the allocator directly.
*/
package events
