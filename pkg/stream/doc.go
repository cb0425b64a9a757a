/*
Package stream composes resumable server-sent event sessions.

Each open connection gets one session. A session delivers, in order:

 1. Replay: every retained event of the entity with id greater than the
    resume point, when the client supplied one
 2. Exactly one connected event, synthesized for this connection and never
    stored in the log
 3. The live merge of this connection's two generators: a fixed-interval
    heartbeat and a randomly spaced order-issued notification

# Architecture

	              ┌──────────── SESSION ────────────────┐
	 resume id ──▶│ replay (from shared event log)      │
	              │   ▼                                  │
	              │ connected (stamped, not logged)     │
	              │   ▼                                  │
	              │ live merge ◀── heartbeat ticker     │──▶ sink (SSE)
	              │            ◀── order timer ──▶ OrderSource
	              └──────────────┬───────────────────────┘
	                             │ Append
	                             ▼
	                    shared per-entity event log

Generators are scheduled per connection, not per entity: two concurrent
streams for one entity each produce their own heartbeats and orders into
the shared log. Closing the connection cancels the session context, which
stops both timers.

Live events are handed to the sink in generation order with no reordering
buffer. Numeric id order across the two generators reflects allocation
order on the shared counter, which is not a designed total order.

# Wire format

Envelopes encode as server-sent events: an "event:" line carrying the kind
name (connected, heartbeat, ORDER_ISSUED), an "id:" line with the decimal
event id, and a single "data:" line with the JSON payload.
*/
package stream
