package stream

import (
	"context"
	"time"

	"github.com/tso-redispatch/redispatch/pkg/events"
	"github.com/tso-redispatch/redispatch/pkg/log"
	"github.com/tso-redispatch/redispatch/pkg/metrics"
	"github.com/tso-redispatch/redispatch/pkg/orders"
	"github.com/tso-redispatch/redispatch/pkg/types"
)

// Sink receives the wire units of one session in delivery order. A sink
// error ends the session.
type Sink func(Envelope) error

// Server composes event stream sessions on top of the shared event log and
// the order source
type Server struct {
	log    *events.Log
	source orders.Source
	cfg    Config
}

// NewServer creates a stream server
func NewServer(eventLog *events.Log, source orders.Source, cfg Config) *Server {
	return &Server{
		log:    eventLog,
		source: source,
		cfg:    cfg,
	}
}

// Serve runs one stream session until ctx is cancelled or the sink fails.
// Delivery order is fixed: replayed events first (when resume is set), then
// exactly one synthesized connected event, then the live merge of this
// connection's heartbeat and order generators.
func (s *Server) Serve(ctx context.Context, entityID string, resume *uint64, sink Sink) error {
	logger := log.WithEntityID(entityID)

	metrics.StreamsActive.Inc()
	defer metrics.StreamsActive.Dec()

	// Replay retained events past the resume point
	if resume != nil {
		replayed := s.log.ReplayAfter(entityID, *resume)
		for _, ev := range replayed {
			if err := sink(NewEnvelope(ev.ID, ev.Payload)); err != nil {
				return err
			}
		}
		if len(replayed) > 0 {
			metrics.EventsReplayed.Add(float64(len(replayed)))
			logger.Info().
				Uint64("after_id", *resume).
				Int("count", len(replayed)).
				Msg("Replayed events")
		}
	}

	// The connected event is stamped with an id but never logged, so it can
	// never come back as replay
	connected := s.log.Stamp(entityID, types.NewConnectedPayload(time.Now()))
	if err := sink(NewEnvelope(connected.ID, connected.Payload)); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	live := make(chan events.Event, 16)
	p := &producer{
		entityID: entityID,
		appender: s.log,
		source:   s.source,
		cfg:      s.cfg,
		out:      live,
	}
	go p.run(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-live:
			if err := sink(NewEnvelope(ev.ID, ev.Payload)); err != nil {
				return err
			}
			metrics.EventsPublished.WithLabelValues(string(ev.Payload.Kind())).Inc()
		}
	}
}
