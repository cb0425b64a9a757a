package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tso-redispatch/redispatch/pkg/types"
)

func TestWorkflowFetchesThenAcknowledges(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
		acks  []types.Acknowledgement
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.Method+" "+r.URL.EscapedPath())
		mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(types.RedispatchOrder{
				RedispatchOrderID:     "51/I/03.02.2026",
				EntityID:              "ENT01",
				RedispatchOrderReason: "B",
			})
		case http.MethodPost:
			var ack types.Acknowledgement
			require.NoError(t, json.NewDecoder(r.Body).Decode(&ack))
			mu.Lock()
			acks = append(acks, ack)
			mu.Unlock()
			w.WriteHeader(http.StatusAccepted)
		}
	}))
	defer server.Close()

	handler := NewOrderHandler(NewAPIClient(server.URL), "ENT01")
	handler.HandleOrderIssued(types.OrderIssuedPayload{
		EventType:         "ORDER_ISSUED",
		RedispatchOrderID: "51/I/03.02.2026",
		EntityID:          "ENT01",
		ResourceURL:       "/redispatch/ENT01/orders/51%2FI%2F03.02.2026",
	})
	handler.Wait()

	mu.Lock()
	defer mu.Unlock()

	// The pre-encoded locator must hit the wire exactly once-encoded, on
	// both the fetch and the acknowledgement
	require.Equal(t, []string{
		"GET /redispatch/ENT01/orders/51%2FI%2F03.02.2026",
		"POST /redispatch/ENT01/orders/51%2FI%2F03.02.2026/acknowledgement",
	}, paths)

	require.Len(t, acks, 1)
	assert.Equal(t, "51/I/03.02.2026", acks[0].RedispatchOrderID)
	assert.Equal(t, "ENT01", acks[0].EntityID)
	assert.Equal(t, types.AckReceived, acks[0].Status)
}

func TestWorkflowFetchFailureSkipsAcknowledgement(t *testing.T) {
	var (
		mu    sync.Mutex
		posts int
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			mu.Lock()
			posts++
			mu.Unlock()
		}
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	handler := NewOrderHandler(NewAPIClient(server.URL), "ENT01")
	handler.HandleOrderIssued(types.OrderIssuedPayload{
		RedispatchOrderID: "1/I/03.02.2026",
		EntityID:          "ENT01",
		ResourceURL:       "/redispatch/ENT01/orders/1%2FI%2F03.02.2026",
	})
	handler.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, posts, "a failed fetch must not be acknowledged")
}

func TestWorkflowDoesNotBlockCaller(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()
	defer close(release)

	handler := NewOrderHandler(NewAPIClient(server.URL), "ENT01")

	done := make(chan struct{})
	go func() {
		handler.HandleOrderIssued(types.OrderIssuedPayload{
			RedispatchOrderID: "2/I/03.02.2026",
			EntityID:          "ENT01",
			ResourceURL:       "/redispatch/ENT01/orders/2%2FI%2F03.02.2026",
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("HandleOrderIssued blocked on the workflow")
	}
}
