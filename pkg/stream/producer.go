package stream

import (
	"context"
	"math/rand/v2"
	"net/url"
	"time"

	"github.com/tso-redispatch/redispatch/pkg/events"
	"github.com/tso-redispatch/redispatch/pkg/log"
	"github.com/tso-redispatch/redispatch/pkg/metrics"
	"github.com/tso-redispatch/redispatch/pkg/orders"
	"github.com/tso-redispatch/redispatch/pkg/types"
)

// Default production cadences
const (
	DefaultHeartbeatInterval = 30 * time.Second
	DefaultOrderMinInterval  = 20 * time.Second
	DefaultOrderMaxInterval  = 40 * time.Second
)

// Config holds the production cadences of one stream connection
type Config struct {
	HeartbeatInterval time.Duration
	OrderMinInterval  time.Duration
	OrderMaxInterval  time.Duration
}

// DefaultConfig returns the standard production cadences
func DefaultConfig() Config {
	return Config{
		HeartbeatInterval: DefaultHeartbeatInterval,
		OrderMinInterval:  DefaultOrderMinInterval,
		OrderMaxInterval:  DefaultOrderMaxInterval,
	}
}

// producer generates the live events of one stream connection: periodic
// heartbeats and randomly spaced order notifications. Every open connection
// runs its own producer pair, so multiple streams for one entity each feed
// the shared entity log independently.
type producer struct {
	entityID string
	appender events.Appender
	source   orders.Source
	cfg      Config
	out      chan<- events.Event
}

// run starts both generators and blocks until ctx is cancelled. Both timers
// stop with the context, releasing the connection from log contention.
func (p *producer) run(ctx context.Context) {
	go p.heartbeatLoop(ctx)
	go p.orderLoop(ctx)
	<-ctx.Done()
}

func (p *producer) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.emit(ctx, types.NewHeartbeatPayload(time.Now()))
		}
	}
}

func (p *producer) orderLoop(ctx context.Context) {
	timer := time.NewTimer(p.randomInterval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			order := p.source.GenerateOrder(p.entityID)
			metrics.OrdersIssued.Inc()
			logger := log.WithComponent("stream")
			logger.Info().
				Str("entity_id", p.entityID).
				Str("order_id", order.RedispatchOrderID).
				Msg("Order issued")

			p.emit(ctx, types.OrderIssuedPayload{
				EventType:         string(types.EventOrderIssued),
				RedispatchOrderID: order.RedispatchOrderID,
				EntityID:          order.EntityID,
				Timestamp:         order.IssueOrderTs,
				ResourceURL:       OrderResourceURL(order.EntityID, order.RedispatchOrderID),
			})

			// Draw a fresh interval for every tick
			timer.Reset(p.randomInterval())
		}
	}
}

// emit appends the event to the shared entity log and hands it to this
// connection's session
func (p *producer) emit(ctx context.Context, payload types.EventPayload) {
	event := p.appender.Append(p.entityID, payload)
	select {
	case p.out <- event:
	case <-ctx.Done():
	}
}

func (p *producer) randomInterval() time.Duration {
	min, max := p.cfg.OrderMinInterval, p.cfg.OrderMaxInterval
	if max <= min {
		return min
	}
	return min + rand.N(max-min)
}

// OrderResourceURL builds the detail resource path for an order. The order
// id is percent-encoded exactly once here; everything downstream treats the
// result as opaque.
func OrderResourceURL(entityID, orderID string) string {
	return "/redispatch/" + entityID + "/orders/" + url.PathEscape(orderID)
}
