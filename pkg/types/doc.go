/*
Package types defines the shared data model for the redispatch platform.

This package contains the wire-level order model (RedispatchOrder and its
nested period, item, series, and point structures), the acknowledgement
record, and the stream event payloads. All JSON field names match the
published API schema exactly; timestamps serialize as ISO-8601 (RFC 3339).

# Order Model

A RedispatchOrder is one dispatch instruction for an entity:

	RedispatchOrder
	├── RedispatchOrderID    "51/I/03.02.2026"
	├── EntityID             "ENT01"
	├── IssueOrderTs         issuance timestamp
	├── RedispatchOrderReason  B (balancing) or S (security)
	├── RedispatchOrderPeriod  validity window
	└── RedispatchOrders []   one or more technical items
	    ├── RedispatchingObjectMrid   UUID of the physical object
	    ├── MeasurementUnit / CurveType  (MAW / A01)
	    └── SeriesPeriods []
	        ├── Direction (G/P), Resolution (P1D/PT60M/PT15M)
	        ├── TimeInterval
	        └── SeriesPoints []   position + quantity bounds

Orders are immutable after creation. Order ids may contain '/' and travel
percent-encoded inside resource paths.

# Stream Events

EventPayload is a closed union over three kinds:

  - ConnectedPayload: synthesized once per stream connection, never stored
  - HeartbeatPayload: periodic liveness signal
  - OrderIssuedPayload: notification carrying the order id and its
    pre-encoded resource path

Consumers dispatch with a type switch over EventPayload:

	switch p := payload.(type) {
	case types.ConnectedPayload:
		// telemetry only
	case types.HeartbeatPayload:
		// liveness tracking
	case types.OrderIssuedPayload:
		// fetch + acknowledge workflow
	}

# Acknowledgements

An Acknowledgement references exactly one order/entity pair and carries a
status (RECEIVED, ACCEPTED, REJECTED) plus an optional reason. The service
rejects acknowledgements whose body ids do not match the target resource.
*/
package types
