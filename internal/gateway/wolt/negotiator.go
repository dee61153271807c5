package wolt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-drive/internal/logx"
)

// RetryTimeBuffer is added to the provider's earliest acceptable instant
// before resubmitting, covering the provider's own processing latency so the
// retried value does not re-trigger the same rejection.
const RetryTimeBuffer = 5 * time.Second

type counter interface {
	Inc()
}

// Negotiator decorates quote and booking calls with a single self-correcting
// retry: when the provider rejects the proposed dropoff time as too early, it
// extracts the earliest acceptable instant from the rejection, adds
// RetryTimeBuffer and resubmits exactly once. Every other failure, including
// transport errors, is surfaced unchanged.
type Negotiator struct {
	client  *Client
	logger  logx.Logger
	retries counter
}

// NewNegotiator creates a Negotiator over the given client. The counter
// tracks performed corrections and may be nil.
func NewNegotiator(client *Client, logger logx.Logger, retries counter) *Negotiator {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Negotiator{client: client, logger: logger, retries: retries}
}

// ShipmentPromise negotiates a quote, retrying once on a scheduling conflict
// with the corrected scheduled_dropoff_time.
func (n *Negotiator) ShipmentPromise(ctx context.Context, req ShipmentPromiseRequest) (*ShipmentPromiseResponse, error) {
	return negotiate(ctx, n, req, n.client.ShipmentPromise, reschedulePromise)
}

// CreateDelivery negotiates a booking, retrying once on a scheduling conflict
// with both pickup and dropoff scheduled times corrected.
func (n *Negotiator) CreateDelivery(ctx context.Context, req CreateDeliveryRequest) (*DeliveryResponse, error) {
	return negotiate(ctx, n, req, n.client.CreateDelivery, rescheduleDelivery)
}

// negotiate is the shared retry-once protocol, parameterized by the request
// shape and by where the corrected time lands in the resubmitted body.
func negotiate[Req any, Resp any](
	ctx context.Context,
	n *Negotiator,
	req Req,
	submit func(context.Context, Req) (Resp, error),
	reschedule func(Req, time.Time) Req,
) (Resp, error) {
	resp, err := submit(ctx, req)
	if err == nil {
		return resp, nil
	}

	var zero Resp

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		// Transport or decode failure: retry is reserved for the
		// scheduling-conflict rejection only.
		return zero, err
	}
	if !apiErr.SchedulingConflict() {
		return zero, err
	}

	earliest, ok := earliestDropoffTime(apiErr.Body)
	if !ok {
		n.logger.Warn("scheduling conflict without extractable earliest time",
			logx.Int("status", apiErr.StatusCode),
		)
		return zero, err
	}

	corrected := earliest.Add(RetryTimeBuffer)
	if n.retries != nil {
		n.retries.Inc()
	}
	n.logger.Warn("provider rejected scheduled time, retrying with corrected value",
		logx.Time("earliest", earliest),
		logx.Time("corrected", corrected),
	)

	resp, err = submit(ctx, reschedule(req, corrected))
	if err == nil {
		return resp, nil
	}

	var retryErr *APIError
	if errors.As(err, &retryErr) {
		retryErr.AfterRetry = true
		return zero, retryErr
	}
	return zero, fmt.Errorf("after retry: %w", err)
}

func reschedulePromise(req ShipmentPromiseRequest, t time.Time) ShipmentPromiseRequest {
	req.ScheduledDropoffTime = FormatTime(t)
	return req
}

func rescheduleDelivery(req CreateDeliveryRequest, t time.Time) CreateDeliveryRequest {
	v := FormatTime(t)
	req.Pickup.Options.ScheduledTime = v
	req.Dropoff.Options.ScheduledTime = v
	return req
}
