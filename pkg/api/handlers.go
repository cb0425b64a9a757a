package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tso-redispatch/redispatch/pkg/metrics"
	"github.com/tso-redispatch/redispatch/pkg/stream"
	"github.com/tso-redispatch/redispatch/pkg/types"
)

// handleStream opens a server-sent event stream for the entity. A resume
// point arrives in the Last-Event-ID header; a malformed value degrades to
// a fresh connect instead of failing the request.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request, entityID string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.logger.Error().Msg("response writer does not support flushing")
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	var resume *uint64
	if raw := r.Header.Get("Last-Event-ID"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			s.logger.Warn().Str("last_event_id", raw).Msg("Invalid Last-Event-ID, starting fresh")
		} else {
			resume = &id
		}
	}

	s.logger.Info().
		Str("entity_id", entityID).
		Str("last_event_id", r.Header.Get("Last-Event-ID")).
		Msg("Stream connection request")
	metrics.APIRequestsTotal.WithLabelValues("stream", "200").Inc()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	err := s.streams.Serve(r.Context(), entityID, resume, func(env stream.Envelope) error {
		if err := stream.Encode(w, env); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil && r.Context().Err() == nil {
		s.logger.Warn().Err(err).Str("entity_id", entityID).Msg("Stream ended")
	}
}

// handleGetOrder returns the order detail. An unknown order and an entity
// mismatch are both 404: the mismatch must not leak that the order exists.
func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request, entityID, escapedOrderID string) {
	orderID, err := url.PathUnescape(escapedOrderID)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues("get_order", "400").Inc()
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	s.logger.Info().
		Str("entity_id", entityID).
		Str("order_id", orderID).
		Msg("Order detail request")

	order, ok := s.orders.GetOrder(orderID)
	if !ok || order.EntityID != entityID {
		metrics.APIRequestsTotal.WithLabelValues("get_order", "404").Inc()
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	metrics.APIRequestsTotal.WithLabelValues("get_order", "200").Inc()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(order); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write order response")
	}
}

// handleAcknowledge records an acknowledgement for the order. The body ids
// must exactly equal the path's entity and order; a mismatch is rejected
// before anything is recorded.
func (s *Server) handleAcknowledge(w http.ResponseWriter, r *http.Request, entityID, escapedOrderID string) {
	orderID, err := url.PathUnescape(escapedOrderID)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues("acknowledge", "400").Inc()
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var ack types.Acknowledgement
	if err := json.NewDecoder(r.Body).Decode(&ack); err != nil {
		metrics.APIRequestsTotal.WithLabelValues("acknowledge", "400").Inc()
		http.Error(w, "invalid acknowledgement body", http.StatusBadRequest)
		return
	}

	s.logger.Info().
		Str("entity_id", entityID).
		Str("order_id", orderID).
		Str("status", string(ack.Status)).
		Msg("Acknowledgement request")

	if ack.RedispatchOrderID != orderID || ack.EntityID != entityID {
		metrics.APIRequestsTotal.WithLabelValues("acknowledge", "400").Inc()
		http.Error(w, "acknowledgement data mismatch", http.StatusBadRequest)
		return
	}

	if err := s.orders.Acknowledge(&ack); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("Failed to record acknowledgement")
		metrics.APIRequestsTotal.WithLabelValues("acknowledge", "500").Inc()
		http.Error(w, "failed to record acknowledgement", http.StatusInternalServerError)
		return
	}

	metrics.AcknowledgementsTotal.WithLabelValues(string(ack.Status)).Inc()
	metrics.APIRequestsTotal.WithLabelValues("acknowledge", "202").Inc()
	w.WriteHeader(http.StatusAccepted)
}
