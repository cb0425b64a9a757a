package client

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tso-redispatch/redispatch/pkg/log"
	"github.com/tso-redispatch/redispatch/pkg/metrics"
	"github.com/tso-redispatch/redispatch/pkg/types"
)

// EventHandler reacts to the events of one subscription
type EventHandler interface {
	HandleConnected(payload types.ConnectedPayload)
	HandleHeartbeat(payload types.HeartbeatPayload)
	HandleOrderIssued(payload types.OrderIssuedPayload)
}

// OrderHandler implements the standard entity workflow: log connection
// telemetry, track heartbeats, and for every issued order fetch its detail
// and submit a RECEIVED acknowledgement.
type OrderHandler struct {
	api      *APIClient
	entityID string
	logger   zerolog.Logger

	// workflows tracks in-flight fetch+acknowledge pairs so Wait can drain
	// them in tests and on shutdown
	workflows sync.WaitGroup
}

// NewOrderHandler creates the workflow handler for one entity
func NewOrderHandler(api *APIClient, entityID string) *OrderHandler {
	return &OrderHandler{
		api:      api,
		entityID: entityID,
		logger:   log.WithEntityID(entityID),
	}
}

// HandleConnected logs the new connection
func (h *OrderHandler) HandleConnected(payload types.ConnectedPayload) {
	h.logger.Info().
		Str("connection_id", payload.ConnectionID.String()).
		Time("timestamp", payload.Timestamp).
		Msg("Stream connected")
}

// HandleHeartbeat tracks stream liveness
func (h *OrderHandler) HandleHeartbeat(payload types.HeartbeatPayload) {
	h.logger.Debug().Time("timestamp", payload.Timestamp).Msg("Heartbeat received")
}

// HandleOrderIssued runs the fetch-and-acknowledge workflow for the order.
// The workflow is fire-and-forget relative to the stream: it runs in its
// own goroutine, failures are logged and never retried, and nothing blocks
// event consumption.
func (h *OrderHandler) HandleOrderIssued(payload types.OrderIssuedPayload) {
	h.logger.Info().
		Str("order_id", payload.RedispatchOrderID).
		Str("resource_url", payload.ResourceURL).
		Msg("Order issued")

	h.workflows.Add(1)
	go func() {
		defer h.workflows.Done()
		h.processOrder(payload)
	}()
}

// Wait blocks until every in-flight workflow has finished
func (h *OrderHandler) Wait() {
	h.workflows.Wait()
}

func (h *OrderHandler) processOrder(payload types.OrderIssuedPayload) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	order, err := h.api.FetchOrder(ctx, payload.ResourceURL)
	if err != nil {
		metrics.ClientOrdersFetched.WithLabelValues("error").Inc()
		h.logger.Error().Err(err).Str("order_id", payload.RedispatchOrderID).Msg("Failed to fetch order")
		return
	}
	metrics.ClientOrdersFetched.WithLabelValues("ok").Inc()

	h.logger.Info().
		Str("order_id", order.RedispatchOrderID).
		Str("reason", order.RedispatchOrderReason).
		Time("period_start", order.RedispatchOrderPeriod.StartDt).
		Time("period_end", order.RedispatchOrderPeriod.EndDt).
		Int("items", len(order.RedispatchOrders)).
		Msg("Order details retrieved")

	ack := &types.Acknowledgement{
		RedispatchOrderID: payload.RedispatchOrderID,
		EntityID:          h.entityID,
		Status:            types.AckReceived,
	}
	if err := h.api.SendAcknowledgement(ctx, payload.ResourceURL, ack); err != nil {
		h.logger.Error().Err(err).Str("order_id", payload.RedispatchOrderID).Msg("Failed to send acknowledgement")
		return
	}
}
