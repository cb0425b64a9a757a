package types

import (
	"time"

	"github.com/google/uuid"
)

// EventKind identifies the wire event name of a stream event
type EventKind string

const (
	EventConnected   EventKind = "connected"
	EventHeartbeat   EventKind = "heartbeat"
	EventOrderIssued EventKind = "ORDER_ISSUED"
)

// EventPayload is the kind-specific data object of a stream event. It is a
// closed set: Connected, Heartbeat, and OrderIssued implement it and
// consumers dispatch with an exhaustive type switch.
type EventPayload interface {
	Kind() EventKind
}

// ConnectedPayload is sent once, immediately after a stream is opened. It
// is synthesized per connection and never stored, so its id must never be
// used as a resume point.
type ConnectedPayload struct {
	EventType    string    `json:"eventType"`
	ConnectionID uuid.UUID `json:"connectionId"`
	Timestamp    time.Time `json:"timestamp"`
}

func (ConnectedPayload) Kind() EventKind { return EventConnected }

// NewConnectedPayload creates a connected payload with a fresh connection id
func NewConnectedPayload(now time.Time) ConnectedPayload {
	return ConnectedPayload{
		EventType:    string(EventConnected),
		ConnectionID: uuid.New(),
		Timestamp:    now,
	}
}

// HeartbeatPayload is sent periodically to keep the stream alive
type HeartbeatPayload struct {
	EventType string    `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
}

func (HeartbeatPayload) Kind() EventKind { return EventHeartbeat }

// NewHeartbeatPayload creates a heartbeat payload stamped with now
func NewHeartbeatPayload(now time.Time) HeartbeatPayload {
	return HeartbeatPayload{
		EventType: string(EventHeartbeat),
		Timestamp: now,
	}
}

// OrderIssuedPayload notifies an entity that a new order exists. ResourceURL
// is the pre-encoded path of the order detail resource; consumers must treat
// it as opaque and never re-encode it.
type OrderIssuedPayload struct {
	EventType         string    `json:"eventType"`
	RedispatchOrderID string    `json:"redispatchOrderId"`
	EntityID          string    `json:"entityId"`
	Timestamp         time.Time `json:"timestamp"`
	ResourceURL       string    `json:"resourceUrl"`
}

func (OrderIssuedPayload) Kind() EventKind { return EventOrderIssued }
