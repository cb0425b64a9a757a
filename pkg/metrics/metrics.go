package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Stream metrics
	StreamsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "redispatch_streams_active",
			Help: "Number of currently open event stream connections",
		},
	)

	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redispatch_events_published_total",
			Help: "Total number of events delivered to streams by kind",
		},
		[]string{"kind"},
	)

	EventsReplayed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "redispatch_events_replayed_total",
			Help: "Total number of events replayed to resuming streams",
		},
	)

	// API metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redispatch_api_requests_total",
			Help: "Total number of API requests by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	AcknowledgementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redispatch_acknowledgements_total",
			Help: "Total number of recorded acknowledgements by status",
		},
		[]string{"status"},
	)

	OrdersIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "redispatch_orders_issued_total",
			Help: "Total number of mock orders issued to streams",
		},
	)

	// Client metrics
	ClientReconnects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "redispatch_client_reconnects_total",
			Help: "Total number of stream reconnection attempts",
		},
	)

	ClientOrdersFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redispatch_client_orders_fetched_total",
			Help: "Total number of order detail fetches by result",
		},
		[]string{"result"},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(StreamsActive)
	prometheus.MustRegister(EventsPublished)
	prometheus.MustRegister(EventsReplayed)
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(AcknowledgementsTotal)
	prometheus.MustRegister(OrdersIssued)
	prometheus.MustRegister(ClientReconnects)
	prometheus.MustRegister(ClientOrdersFetched)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
