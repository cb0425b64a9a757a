package stream

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tso-redispatch/redispatch/pkg/types"
)

func TestEncodeFraming(t *testing.T) {
	ts := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	env := NewEnvelope(42, types.HeartbeatPayload{
		EventType: "heartbeat",
		Timestamp: ts,
	})

	var sb strings.Builder
	require.NoError(t, Encode(&sb, env))

	out := sb.String()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "event: heartbeat", lines[0])
	assert.Equal(t, "id: 42", lines[1])
	assert.Equal(t, `data: {"eventType":"heartbeat","timestamp":"2026-02-03T10:00:00Z"}`, lines[2])
	assert.Equal(t, "", lines[3])
	assert.Equal(t, "", lines[4])
}

func TestEncodeOmitsEmptyID(t *testing.T) {
	env := Envelope{
		Kind:    types.EventHeartbeat,
		Payload: types.HeartbeatPayload{EventType: "heartbeat"},
	}

	var sb strings.Builder
	require.NoError(t, Encode(&sb, env))
	assert.NotContains(t, sb.String(), "id:")
}

func TestEncodePreservesEncodedResourceURL(t *testing.T) {
	env := NewEnvelope(7, types.OrderIssuedPayload{
		EventType:         "ORDER_ISSUED",
		RedispatchOrderID: "51/I/03.02.2026",
		EntityID:          "ENT01",
		ResourceURL:       "/redispatch/ENT01/orders/51%2FI%2F03.02.2026",
	})

	var sb strings.Builder
	require.NoError(t, Encode(&sb, env))

	// The pre-encoded path must survive JSON encoding exactly once-encoded
	assert.Contains(t, sb.String(), "/redispatch/ENT01/orders/51%2FI%2F03.02.2026")
	assert.NotContains(t, sb.String(), "%252F")
}

func TestOrderResourceURL(t *testing.T) {
	tests := []struct {
		name     string
		entityID string
		orderID  string
		expected string
	}{
		{
			name:     "slashes are escaped once",
			entityID: "ENT01",
			orderID:  "51/I/03.02.2026",
			expected: "/redispatch/ENT01/orders/51%2FI%2F03.02.2026",
		},
		{
			name:     "plain id passes through",
			entityID: "ENT02",
			orderID:  "plain",
			expected: "/redispatch/ENT02/orders/plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, OrderResourceURL(tt.entityID, tt.orderID))
		})
	}
}
