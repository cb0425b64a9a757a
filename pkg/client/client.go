package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tso-redispatch/redispatch/pkg/log"
	"github.com/tso-redispatch/redispatch/pkg/types"
)

// APIClient performs the one-shot order API calls of the workflow: fetching
// order details and submitting acknowledgements.
type APIClient struct {
	baseURL string
	httpc   *http.Client
	logger  zerolog.Logger
}

// NewAPIClient creates a client for the given gateway base URL
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		httpc: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: log.WithComponent("api-client"),
	}
}

// FetchOrder retrieves the order detail behind a resource locator. The
// locator is already percent-encoded by the producer and is appended to the
// base URL verbatim; the escaped form survives url.Parse as the request's
// RawPath, so %2F goes out exactly once-encoded.
func (c *APIClient) FetchOrder(ctx context.Context, resourceURL string) (*types.RedispatchOrder, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+resourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("order fetch returned status %d", resp.StatusCode)
	}

	var order types.RedispatchOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode order: %w", err)
	}

	c.logger.Info().Str("order_id", order.RedispatchOrderID).Msg("Order received")
	return &order, nil
}

// SendAcknowledgement posts an acknowledgement to the locator's
// acknowledgement sub-resource
func (c *APIClient) SendAcknowledgement(ctx context.Context, resourceURL string, ack *types.Acknowledgement) error {
	body, err := json.Marshal(ack)
	if err != nil {
		return fmt.Errorf("failed to marshal acknowledgement: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+resourceURL+"/acknowledgement", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send acknowledgement: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("acknowledgement returned status %d", resp.StatusCode)
	}

	c.logger.Info().
		Str("order_id", ack.RedispatchOrderID).
		Str("status", string(ack.Status)).
		Msg("Acknowledgement accepted")
	return nil
}
