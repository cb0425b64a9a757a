package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tso-redispatch/redispatch/pkg/log"
	"github.com/tso-redispatch/redispatch/pkg/metrics"
	"github.com/tso-redispatch/redispatch/pkg/types"
)

// DefaultRetryDelay is the fixed pause between reconnection attempts
const DefaultRetryDelay = 5 * time.Second

// Subscription owns one logical stream subscription for one entity. It
// connects, consumes events, remembers the highest event id seen, and on
// any stream failure reconnects with that id as the resume point. There is
// no retry limit and no backoff; the subscription runs until its context
// is cancelled.
type Subscription struct {
	baseURL    string
	entityID   string
	handler    EventHandler
	retryDelay time.Duration
	httpc      *http.Client
	logger     zerolog.Logger

	mu          sync.Mutex
	lastEventID string
}

// NewSubscription creates a subscription for one entity against the
// gateway base URL
func NewSubscription(baseURL, entityID string, handler EventHandler) *Subscription {
	return &Subscription{
		baseURL:    baseURL,
		entityID:   entityID,
		handler:    handler,
		retryDelay: DefaultRetryDelay,
		// No client timeout: the stream is expected to stay open forever
		httpc:  &http.Client{},
		logger: log.WithEntityID(entityID),
	}
}

// WithRetryDelay overrides the reconnect delay
func (s *Subscription) WithRetryDelay(d time.Duration) *Subscription {
	s.retryDelay = d
	return s
}

// Run consumes the stream until ctx is cancelled, reconnecting with the
// last seen event id after every failure
func (s *Subscription) Run(ctx context.Context) error {
	for {
		err := s.consume(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn().Err(err).Dur("retry_in", s.retryDelay).Msg("Stream failed, reconnecting")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retryDelay):
			metrics.ClientReconnects.Inc()
		}
	}
}

// LastEventID returns the highest event id seen so far, empty before the
// first id-carrying event
func (s *Subscription) LastEventID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastEventID
}

func (s *Subscription) setLastEventID(id string) {
	s.mu.Lock()
	s.lastEventID = id
	s.mu.Unlock()
}

func (s *Subscription) consume(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/redispatch/"+s.entityID+"/stream", nil)
	if err != nil {
		return fmt.Errorf("failed to create stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	if lastID := s.LastEventID(); lastID != "" {
		s.logger.Info().Str("last_event_id", lastID).Msg("Resuming stream")
		req.Header.Set("Last-Event-ID", lastID)
	} else {
		s.logger.Info().Msg("Opening stream")
	}

	resp, err := s.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("stream connection failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream returned status %d", resp.StatusCode)
	}

	reader := NewEventReader(resp.Body)
	for {
		ev, err := reader.Next()
		if err != nil {
			if err == io.EOF {
				return fmt.Errorf("stream closed by server")
			}
			return fmt.Errorf("stream read failed: %w", err)
		}

		// Record the resume point before dispatching, so a crash during
		// handling never loses it. The traded-off cost: an event that
		// fails mid-handling is not re-delivered after reconnect.
		if ev.ID != "" {
			s.setLastEventID(ev.ID)
		}
		s.dispatch(ev)
	}
}

// dispatch routes one event to the handler by kind. Malformed payloads are
// dropped with a warning, never fatal to the stream.
func (s *Subscription) dispatch(ev *ServerEvent) {
	switch types.EventKind(ev.Event) {
	case types.EventConnected:
		var payload types.ConnectedPayload
		if err := json.Unmarshal([]byte(ev.Data), &payload); err != nil {
			s.logger.Warn().Err(err).Str("event", ev.Event).Msg("Dropping malformed event payload")
			return
		}
		s.handler.HandleConnected(payload)
	case types.EventHeartbeat:
		var payload types.HeartbeatPayload
		if err := json.Unmarshal([]byte(ev.Data), &payload); err != nil {
			s.logger.Warn().Err(err).Str("event", ev.Event).Msg("Dropping malformed event payload")
			return
		}
		s.handler.HandleHeartbeat(payload)
	case types.EventOrderIssued:
		var payload types.OrderIssuedPayload
		if err := json.Unmarshal([]byte(ev.Data), &payload); err != nil {
			s.logger.Warn().Err(err).Str("event", ev.Event).Msg("Dropping malformed event payload")
			return
		}
		s.handler.HandleOrderIssued(payload)
	default:
		s.logger.Warn().Str("event", ev.Event).Msg("Unknown event type")
	}
}
