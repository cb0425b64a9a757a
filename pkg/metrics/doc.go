/*
Package metrics exposes Prometheus collectors for the redispatch platform.

Collectors cover the three planes of the system: stream delivery (active
connections, events by kind, replay volume), the order API (requests by
endpoint and status, acknowledgements by status, orders issued), and the
subscriber client (reconnect attempts, order fetches by result).

All collectors register on the default registry at package init. The
service mounts Handler() at /metrics.
*/
package metrics
