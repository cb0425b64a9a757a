/*
Package gateway provides the pass-through reverse proxy fronting the order
service.

Entities connect to the gateway, which forwards every request to the
service unchanged. Two properties matter and are covered by tests:

  - Raw paths survive the hop. Order resource paths carry percent-encoded
    slashes (%2F) and must reach the upstream exactly once-encoded, never
    decoded or double-encoded.
  - Stream responses flush unbuffered, so server-sent events arrive at the
    subscriber as they are produced.

The gateway holds no routing table, no credentials, and no state.
*/
package gateway
