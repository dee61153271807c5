package wolt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront-drive/internal/apilog"
	"storefront-drive/internal/apperr"
	"storefront-drive/internal/logx"
)

// Base URLs of the Wolt Drive public API.
const (
	DevelopmentBaseURL = "https://daas-public-api.development.dev.woltapi.com"
	ProductionBaseURL  = "https://daas-public-api.wolt.com"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 1 << 20
)

// Config carries Wolt Drive client settings.
type Config struct {
	APIToken    string
	MerchantID  string
	VenueID     string
	Development bool

	// HTTPClient overrides the default 30s-timeout client; used in tests.
	HTTPClient *http.Client
	// BaseURL overrides the environment-derived base URL; used in tests.
	BaseURL string
}

// Client is a Wolt Drive API client. Every attempt (request and response,
// including negotiation retries) is appended to the apilog sink; sink
// failures are logged and discarded, never surfaced.
type Client struct {
	baseURL    string
	token      string
	merchantID string
	venueID    string
	http       *http.Client
	sink       apilog.Sink
	logger     logx.Logger
	now        func() time.Time
}

// NewClient creates a Wolt Drive API client.
func NewClient(cfg Config, sink apilog.Sink, logger logx.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.Development {
			baseURL = DevelopmentBaseURL
		} else {
			baseURL = ProductionBaseURL
		}
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if sink == nil {
		sink = apilog.NewMemorySink()
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Client{
		baseURL:    baseURL,
		token:      cfg.APIToken,
		merchantID: cfg.MerchantID,
		venueID:    cfg.VenueID,
		http:       httpClient,
		sink:       sink,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ShipmentPromise requests a price/time quote for a dropoff address.
func (c *Client) ShipmentPromise(ctx context.Context, req ShipmentPromiseRequest) (*ShipmentPromiseResponse, error) {
	var out ShipmentPromiseResponse
	path := fmt.Sprintf("/v1/venues/%s/shipment-promises", c.venueID)
	if err := c.do(ctx, "shipment-promise", http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateDelivery books a delivery against an earlier shipment promise.
func (c *Client) CreateDelivery(ctx context.Context, req CreateDeliveryRequest) (*DeliveryResponse, error) {
	var out DeliveryResponse
	path := fmt.Sprintf("/v1/venues/%s/deliveries", c.venueID)
	if err := c.do(ctx, "create-delivery", http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDelivery fetches one delivery by provider id.
func (c *Client) GetDelivery(ctx context.Context, deliveryID string) (*DeliveryResponse, error) {
	var out DeliveryResponse
	path := fmt.Sprintf("/merchants/%s/deliveries/%s", c.merchantID, deliveryID)
	if err := c.do(ctx, "get-delivery", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDeliveries fetches a page of deliveries for the configured venue.
func (c *Client) ListDeliveries(ctx context.Context, limit, offset int) (*ListDeliveriesResponse, error) {
	var out ListDeliveriesResponse
	path := fmt.Sprintf("/v1/venues/%s/deliveries?limit=%d&offset=%d", c.venueID, limit, offset)
	if err := c.do(ctx, "list-deliveries", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelDelivery cancels a booked delivery by merchant order reference.
func (c *Client) CancelDelivery(ctx context.Context, orderReferenceID string, req CancelDeliveryRequest) (*CancelDeliveryResponse, error) {
	var out CancelDeliveryResponse
	path := fmt.Sprintf("/order/%s/status/cancel", orderReferenceID)
	if err := c.do(ctx, "cancel-delivery", http.MethodPatch, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tracking fetches the live tracking snapshot for a delivery.
func (c *Client) Tracking(ctx context.Context, deliveryID string) (*TrackingResponse, error) {
	var out TrackingResponse
	path := fmt.Sprintf("/merchants/%s/deliveries/%s/tracking", c.merchantID, deliveryID)
	if err := c.do(ctx, "tracking", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AvailableVenues lists merchant venues able to serve the requested address.
func (c *Client) AvailableVenues(ctx context.Context, req AvailableVenuesRequest) (*AvailableVenuesResponse, error) {
	var out AvailableVenuesResponse
	path := fmt.Sprintf("/merchants/%s/available-venues", c.merchantID)
	if err := c.do(ctx, "available-venues", http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, kind, method, path string, in, out any) error {
	var reqBody []byte
	if in != nil {
		var err error
		reqBody, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("wolt: marshal %s request: %w", kind, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("wolt: build %s request: %w", kind, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logAttempt(ctx, kind, reqBody, 0, nil, start)
		return fmt.Errorf("wolt: %s: %w: %v", kind, apperr.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.logAttempt(ctx, kind, reqBody, resp.StatusCode, nil, start)
		return fmt.Errorf("wolt: %s: read response: %w: %v", kind, apperr.ErrUnavailable, err)
	}

	c.logAttempt(ctx, kind, reqBody, resp.StatusCode, respBody, start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("wolt: %s: decode response: %w: %v", kind, apperr.ErrUnavailable, err)
		}
	}
	return nil
}

func (c *Client) logAttempt(ctx context.Context, kind string, reqBody []byte, status int, respBody []byte, start time.Time) {
	now := c.now()
	entry := apilog.Entry{
		ID:         apilog.NewID(now),
		Timestamp:  now,
		Kind:       kind,
		Request:    asRawJSON(reqBody),
		Status:     status,
		Response:   asRawJSON(respBody),
		DurationMs: now.Sub(start).Milliseconds(),
	}
	if err := c.sink.Append(ctx, entry); err != nil {
		c.logger.Warn("wolt api log append failed", logx.String("kind", kind), logx.Err(err))
	}
}

// asRawJSON keeps valid JSON bodies as-is and quotes everything else, so the
// log entry itself always marshals.
func asRawJSON(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	if json.Valid(b) {
		return json.RawMessage(b)
	}
	quoted, err := json.Marshal(string(b))
	if err != nil {
		return nil
	}
	return json.RawMessage(quoted)
}
