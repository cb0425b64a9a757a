/*
Package api exposes the redispatch order service over HTTP.

# Endpoints

	GET  /redispatch/{entityId}/stream
	     Long-lived server-sent event stream. Honors the Last-Event-ID
	     header as a resume point; a malformed value means a fresh connect,
	     never a failed request.

	GET  /redispatch/{entityId}/orders/{orderId}
	     Order detail as JSON. 404 for unknown orders and for orders owned
	     by a different entity.

	POST /redispatch/{entityId}/orders/{orderId}/acknowledgement
	     Records an acknowledgement. The body's redispatchOrderId and
	     entityId must exactly equal the path; mismatches are 400 and
	     nothing is recorded. Success is 202 with no body.

	GET  /metrics    Prometheus metrics
	GET  /healthz    Liveness probe

# Path handling

Order ids contain slashes and travel percent-encoded in paths
(.../orders/51%2FI%2F03.02.2026). Routing therefore splits the escaped
path and decodes the order id segment afterwards; a stock mux would decode
too early and mis-split the path.

No failure in a handler is fatal to the process: transport errors end only
the affected stream, application errors map to 4xx responses.
*/
package api
