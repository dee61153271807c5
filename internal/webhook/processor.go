package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-drive/internal/domain"
	"storefront-drive/internal/gateway/wolt"
	"storefront-drive/internal/logx"
)

// DeliveryStore abstracts the subset of delivery storage the Processor
// projects webhook events onto.
type DeliveryStore interface {
	Insert(ctx context.Context, d *domain.Delivery) error
	GetByProviderID(ctx context.Context, providerID string) (*domain.Delivery, error)
	UpdateStatus(ctx context.Context, providerID string, status domain.DeliveryStatus) error
}

// EventStore records received webhook events.
type EventStore interface {
	InsertEvent(ctx context.Context, e *domain.WebhookEvent) error
}

type counter interface {
	Inc()
}

// Processor projects provider webhook events onto stored deliveries and
// keeps an audit record of every event received.
type Processor struct {
	deliveries DeliveryStore
	events     EventStore
	logger     logx.Logger
	processed  counter
	factory    *actionFactory
}

// NewProcessor creates a new webhook Processor.
func NewProcessor(deliveries DeliveryStore, events EventStore, logger logx.Logger, processed counter) *Processor {
	p := &Processor{
		deliveries: deliveries,
		events:     events,
		logger:     logger,
		processed:  processed,
	}
	p.factory = newActionFactory(p.onCreated, p.onStatusChanged, p.onDelivered, p.onCancelled)
	return p
}

// Handle processes a single webhook event. Projection failures are logged
// and recorded but do not surface to the caller, so the provider is never
// asked to redeliver an event the service has already seen.
func (p *Processor) Handle(ctx context.Context, e Event, raw []byte, receivedAt time.Time) error {
	outcome := "success"

	fn, ok := p.factory.get(e.EventType)
	if !ok {
		p.logger.Warn("unknown webhook event type",
			logx.String("event_type", e.EventType),
			logx.String("delivery_id", e.DeliveryID),
		)
	} else if err := fn(ctx, e); err != nil {
		outcome = "error"
		p.logger.Warn("webhook projection failed",
			logx.String("event_type", e.EventType),
			logx.String("delivery_id", e.DeliveryID),
			logx.Err(err),
		)
	}

	p.record(ctx, e, raw, receivedAt, outcome)
	if p.processed != nil {
		p.processed.Inc()
	}
	return nil
}

func (p *Processor) record(ctx context.Context, e Event, raw []byte, receivedAt time.Time, outcome string) {
	rec := &domain.WebhookEvent{
		EventType:        e.EventType,
		DeliveryID:       e.DeliveryID,
		MerchantID:       e.MerchantID,
		Status:           outcome,
		Payload:          raw,
		ProcessedAt:      time.Now().UTC(),
		ProcessingTimeMs: time.Since(receivedAt).Milliseconds(),
	}
	if rec.EventType == "" {
		rec.EventType = "unknown"
	}
	if rec.DeliveryID == "" {
		rec.DeliveryID = "unknown"
	}
	if rec.MerchantID == "" {
		rec.MerchantID = "unknown"
	}
	if err := p.events.InsertEvent(ctx, rec); err != nil {
		p.logger.Warn("failed to record webhook event", logx.Err(err))
	}
}

func (p *Processor) onCreated(ctx context.Context, e Event) error {
	var payload wolt.DeliveryResponse
	if err := json.Unmarshal(e.Data, &payload); err != nil {
		return fmt.Errorf("decode delivery payload: %w", err)
	}
	if payload.ID == "" {
		payload.ID = e.DeliveryID
	}

	existing, err := p.deliveries.GetByProviderID(ctx, payload.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return p.updateStatus(ctx, payload.ID, payload.Status)
	}

	d := &domain.Delivery{
		ProviderID:     payload.ID,
		OrderReference: payload.MerchantOrderReferenceID,
		Status:         domain.StatusCreated,
		ScheduledAt:    time.Now().UTC(),
	}
	if st := domain.DeliveryStatus(payload.Status); st.Valid() {
		d.Status = st
	}
	if payload.Fee != nil {
		d.FeeAmount = payload.Fee.Amount
		d.FeeCurrency = payload.Fee.Currency
	}
	if payload.Tracking != nil {
		d.TrackingURL = payload.Tracking.URL
	}
	if t, err := time.Parse(wolt.TimeLayout, payload.EstimatedDeliveryTime); err == nil {
		d.ScheduledAt = t.UTC()
	}
	return p.deliveries.Insert(ctx, d)
}

func (p *Processor) onStatusChanged(ctx context.Context, e Event) error {
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(e.Data, &payload); err != nil {
		return fmt.Errorf("decode status payload: %w", err)
	}
	if payload.Status == "" {
		return fmt.Errorf("status change event without status")
	}
	return p.updateStatus(ctx, e.DeliveryID, payload.Status)
}

func (p *Processor) onDelivered(ctx context.Context, e Event) error {
	return p.deliveries.UpdateStatus(ctx, e.DeliveryID, domain.StatusDelivered)
}

func (p *Processor) onCancelled(ctx context.Context, e Event) error {
	return p.deliveries.UpdateStatus(ctx, e.DeliveryID, domain.StatusCancelled)
}

func (p *Processor) updateStatus(ctx context.Context, providerID, status string) error {
	st := domain.DeliveryStatus(status)
	if !st.Valid() {
		return fmt.Errorf("unknown delivery status %q", status)
	}
	return p.deliveries.UpdateStatus(ctx, providerID, st)
}
