package orders

import (
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tso-redispatch/redispatch/pkg/log"
	"github.com/tso-redispatch/redispatch/pkg/storage"
	"github.com/tso-redispatch/redispatch/pkg/types"
)

func TestMain(m *testing.M) {
	log.Init(log.Config{Level: log.ErrorLevel, JSONOutput: true, Output: io.Discard})
	m.Run()
}

var orderIDPattern = regexp.MustCompile(`^\d+/I/\d{2}\.\d{2}\.\d{4}$`)

func TestGenerateOrderShape(t *testing.T) {
	svc := NewService(storage.NewMemoryStore())

	for i := 0; i < 20; i++ {
		order := svc.GenerateOrder("ENT01")

		assert.Regexp(t, orderIDPattern, order.RedispatchOrderID)
		assert.Equal(t, "ENT01", order.EntityID)
		assert.Contains(t, []string{"B", "S"}, order.RedispatchOrderReason)
		assert.True(t, order.RedispatchOrderPeriod.EndDt.After(order.RedispatchOrderPeriod.StartDt))

		require.NotEmpty(t, order.RedispatchOrders)
		assert.LessOrEqual(t, len(order.RedispatchOrders), 3)

		for _, item := range order.RedispatchOrders {
			assert.NotEqual(t, uuid.Nil, item.RedispatchingObjectMrid)
			assert.Equal(t, "MAW", item.MeasurementUnit)
			assert.Equal(t, "A01", item.CurveType)
			require.NotEmpty(t, item.SeriesPeriods)

			for _, period := range item.SeriesPeriods {
				assert.Contains(t, []string{"G", "P"}, period.Direction)
				assert.Contains(t, []string{"0", "1"}, period.AutogenerationRedispatch)
				assert.Contains(t, []string{"P1D", "PT60M", "PT15M"}, period.Resolution)

				for i, point := range period.SeriesPoints {
					assert.Equal(t, i+1, point.Position)
					assert.Greater(t, point.QuantityMax, point.QuantityMin)
					assert.GreaterOrEqual(t, point.QuantityMin, 50.0)
				}
			}
		}
	}
}

func TestGenerateOrderIDsIncrease(t *testing.T) {
	svc := NewService(storage.NewMemoryStore())

	first := svc.GenerateOrder("ENT01").RedispatchOrderID
	second := svc.GenerateOrder("ENT01").RedispatchOrderID
	assert.NotEqual(t, first, second)
}

func TestGetOrder(t *testing.T) {
	svc := NewService(storage.NewMemoryStore())
	order := svc.GenerateOrder("ENT01")

	fetched, ok := svc.GetOrder(order.RedispatchOrderID)
	require.True(t, ok)
	assert.Equal(t, order, fetched)

	_, ok = svc.GetOrder("99/I/01.01.2000")
	assert.False(t, ok)
}

func TestPointCountPerResolution(t *testing.T) {
	start := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		hours      int
		resolution string
		expected   int
	}{
		{name: "daily rounds up", hours: 36, resolution: "P1D", expected: 2},
		{name: "hourly", hours: 12, resolution: "PT60M", expected: 12},
		{name: "quarter hourly", hours: 12, resolution: "PT15M", expected: 48},
		{name: "unknown resolution falls back to one", hours: 12, resolution: "PT5M", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := start.Add(time.Duration(tt.hours) * time.Hour)
			assert.Equal(t, tt.expected, pointCount(start, end, tt.resolution))
		})
	}
}

func TestAcknowledgeRecords(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewService(store)

	ack := &types.Acknowledgement{
		RedispatchOrderID: "5/I/03.02.2026",
		EntityID:          "ENT01",
		Status:            types.AckRejected,
		Reason:            "unit unavailable",
	}
	require.NoError(t, svc.Acknowledge(ack))

	records, err := store.ListAcknowledgements("5/I/03.02.2026")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, *ack, records[0].Acknowledgement)
}
