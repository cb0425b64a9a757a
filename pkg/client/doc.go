/*
Package client implements the entity-side subscriber: a reconnecting event
stream consumer plus the per-order fetch-and-acknowledge workflow.

# Connection state machine

	Disconnected ──▶ Connecting ──▶ Streaming
	                     ▲              │
	                     └── 5s delay ◀─┘ (any failure)

A Subscription opens the entity's stream endpoint and consumes events
forever. Every id-carrying event updates the remembered last event id
BEFORE the event is dispatched, so a failure during handling can never
lose the resume point. On any stream failure the subscription waits a
fixed delay and reconnects, sending the remembered id in the
Last-Event-ID header. There is no retry limit and no backoff.

# Event dispatch

	connected    → telemetry log only
	heartbeat    → liveness tracking
	ORDER_ISSUED → OrderHandler workflow

The workflow fetches the order detail via the event's resource locator and
submits a RECEIVED acknowledgement to the locator's acknowledgement
sub-resource. Both calls are fire-and-forget relative to the stream:
failures are logged, not retried, and never block event consumption.

Resource locators arrive pre-encoded (an order id's '/' is already %2F)
and are appended to the base URL verbatim. Nothing in this package
re-encodes them; double-encoding is the bug class this design guards
against.
*/
package client
