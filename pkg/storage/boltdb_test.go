package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tso-redispatch/redispatch/pkg/types"
)

func openTestStores(t *testing.T) map[string]Store {
	t.Helper()

	bolt, err := NewBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { bolt.Close() })

	return map[string]Store{
		"bolt":   bolt,
		"memory": NewMemoryStore(),
	}
}

func TestSaveAndListAcknowledgements(t *testing.T) {
	for name, store := range openTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ack := &types.Acknowledgement{
				RedispatchOrderID: "7/I/03.02.2026",
				EntityID:          "ENT01",
				Status:            types.AckReceived,
			}

			first := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
			require.NoError(t, store.SaveAcknowledgement(ack, first))

			records, err := store.ListAcknowledgements("7/I/03.02.2026")
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, *ack, records[0].Acknowledgement)
			assert.True(t, records[0].ReceivedAt.Equal(first))
		})
	}
}

func TestDuplicateSubmissionsKeptSeparate(t *testing.T) {
	for name, store := range openTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ack := &types.Acknowledgement{
				RedispatchOrderID: "8/I/03.02.2026",
				EntityID:          "ENT01",
				Status:            types.AckReceived,
			}

			base := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
			require.NoError(t, store.SaveAcknowledgement(ack, base))
			require.NoError(t, store.SaveAcknowledgement(ack, base.Add(time.Second)))

			records, err := store.ListAcknowledgements("8/I/03.02.2026")
			require.NoError(t, err)
			require.Len(t, records, 2)
			assert.True(t, records[0].ReceivedAt.Before(records[1].ReceivedAt))
		})
	}
}

func TestListUnknownOrderIsEmpty(t *testing.T) {
	for name, store := range openTestStores(t) {
		t.Run(name, func(t *testing.T) {
			records, err := store.ListAcknowledgements("nope")
			require.NoError(t, err)
			assert.Empty(t, records)
		})
	}
}

func TestOrdersDoNotLeakAcrossKeys(t *testing.T) {
	for name, store := range openTestStores(t) {
		t.Run(name, func(t *testing.T) {
			now := time.Now()
			for _, orderID := range []string{"1/I/03.02.2026", "11/I/03.02.2026"} {
				ack := &types.Acknowledgement{
					RedispatchOrderID: orderID,
					EntityID:          "ENT01",
					Status:            types.AckAccepted,
				}
				require.NoError(t, store.SaveAcknowledgement(ack, now))
			}

			// "1/I/..." must not match records of "11/I/..."
			records, err := store.ListAcknowledgements("1/I/03.02.2026")
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, "1/I/03.02.2026", records[0].Acknowledgement.RedispatchOrderID)
		})
	}
}
