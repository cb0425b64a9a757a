package stream

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/tso-redispatch/redispatch/pkg/types"
)

// Envelope is one wire unit of an event stream: the event name, an optional
// id, and the kind-specific payload.
type Envelope struct {
	ID      string // decimal event id, empty for none
	Kind    types.EventKind
	Payload types.EventPayload
}

// NewEnvelope wraps a payload with its wire id
func NewEnvelope(id uint64, payload types.EventPayload) Envelope {
	return Envelope{
		ID:      strconv.FormatUint(id, 10),
		Kind:    payload.Kind(),
		Payload: payload,
	}
}

// Encode writes the envelope in server-sent-event framing:
//
//	event: <kind>
//	id: <id>
//	data: <payload JSON>
//	<blank line>
//
// The data object is JSON on a single line, so no multi-line data splitting
// is needed.
func Encode(w io.Writer, env Envelope) error {
	data, err := json.Marshal(env.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	if _, err := fmt.Fprintf(w, "event: %s\n", env.Kind); err != nil {
		return err
	}
	if env.ID != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", env.ID); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return nil
}
