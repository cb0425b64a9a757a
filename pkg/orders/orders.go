package orders

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/tso-redispatch/redispatch/pkg/log"
	"github.com/tso-redispatch/redispatch/pkg/storage"
	"github.com/tso-redispatch/redispatch/pkg/types"
)

var (
	reasons     = []string{"B", "S"}
	directions  = []string{"G", "P"}
	resolutions = []string{"P1D", "PT60M", "PT15M"}
)

// Source synthesizes a new order for an entity. Event producers depend on
// this capability only.
type Source interface {
	GenerateOrder(entityID string) *types.RedispatchOrder
}

// Service generates mock redispatch orders, keeps them for lookup, and
// records submitted acknowledgements.
type Service struct {
	sequence atomic.Uint64
	now      func() time.Time
	acks     storage.Store

	mu    sync.RWMutex
	store map[string]*types.RedispatchOrder
}

// NewService creates an order service recording acknowledgements to acks
func NewService(acks storage.Store) *Service {
	return &Service{
		now:   time.Now,
		acks:  acks,
		store: make(map[string]*types.RedispatchOrder),
	}
}

// GenerateOrder creates a new random order for the entity and stores it
// for later lookup. Order ids follow the "<seq>/I/<dd.MM.yyyy>" scheme, so
// they always contain path separators.
func (s *Service) GenerateOrder(entityID string) *types.RedispatchOrder {
	now := s.now()
	orderID := fmt.Sprintf("%d/I/%s", s.sequence.Add(1), now.Format("02.01.2006"))

	periodStart := now.Add(time.Hour).Truncate(time.Hour)
	periodEnd := periodStart.Add(time.Duration(12+rand.IntN(36)) * time.Hour)

	itemCount := 1 + rand.IntN(3)
	items := make([]types.RedispatchOrderItem, itemCount)
	for i := range items {
		items[i] = randomOrderItem(periodStart, periodEnd)
	}

	order := &types.RedispatchOrder{
		RedispatchOrderID:     orderID,
		EntityID:              entityID,
		IssueOrderTs:          now,
		RedispatchOrderReason: reasons[rand.IntN(len(reasons))],
		RedispatchOrderPeriod: types.RedispatchOrderPeriod{StartDt: periodStart, EndDt: periodEnd},
		RedispatchOrders:      items,
	}

	s.mu.Lock()
	s.store[orderID] = order
	s.mu.Unlock()

	return order
}

// GetOrder returns the order with the given id, or false if none exists
func (s *Service) GetOrder(orderID string) (*types.RedispatchOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.store[orderID]
	return order, ok
}

// Acknowledge records an acknowledgement. Duplicate submissions for one
// order are recorded as separate entries; the audit trail keeps them
// visible instead of collapsing them.
func (s *Service) Acknowledge(ack *types.Acknowledgement) error {
	if err := s.acks.SaveAcknowledgement(ack, s.now()); err != nil {
		return fmt.Errorf("failed to record acknowledgement: %w", err)
	}

	logger := log.WithComponent("orders")
	logger.Info().
		Str("order_id", ack.RedispatchOrderID).
		Str("entity_id", ack.EntityID).
		Str("status", string(ack.Status)).
		Msg("Acknowledgement received")
	return nil
}

func randomOrderItem(periodStart, periodEnd time.Time) types.RedispatchOrderItem {
	return types.RedispatchOrderItem{
		RedispatchingObjectMrid: uuid.New(),
		MeasurementUnit:         "MAW",
		CurveType:               "A01",
		SeriesPeriods:           []types.SeriesPeriod{randomSeriesPeriod(periodStart, periodEnd)},
	}
}

func randomSeriesPeriod(start, end time.Time) types.SeriesPeriod {
	resolution := resolutions[rand.IntN(len(resolutions))]

	points := make([]types.SeriesPoint, pointCount(start, end, resolution))
	for i := range points {
		min := 50.0 + rand.Float64()*100.0
		max := min + 10.0 + rand.Float64()*40.0
		points[i] = types.SeriesPoint{Position: i + 1, QuantityMax: max, QuantityMin: min}
	}

	return types.SeriesPeriod{
		Direction:                directions[rand.IntN(len(directions))],
		AutogenerationRedispatch: fmt.Sprintf("%d", rand.IntN(2)),
		Resolution:               resolution,
		TimeInterval:             types.TimeInterval{StartDt: start, EndDt: end},
		SeriesPoints:             points,
	}
}

func pointCount(start, end time.Time, resolution string) int {
	hours := end.Sub(start).Hours()
	switch resolution {
	case "P1D":
		return int(math.Ceil(hours / 24.0))
	case "PT60M":
		return int(hours)
	case "PT15M":
		return int(hours * 4)
	default:
		return 1
	}
}
