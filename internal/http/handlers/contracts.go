package handlers

import (
	"context"
	"time"

	"storefront-drive/internal/apilog"
	"storefront-drive/internal/domain"
	"storefront-drive/internal/gateway/wolt"
	"storefront-drive/internal/schedule"
	"storefront-drive/internal/service/checkout"
	"storefront-drive/internal/webhook"
)

type checkoutUsecase interface {
	Quote(ctx context.Context, in checkout.QuoteInput) (*wolt.ShipmentPromiseResponse, error)
	Book(ctx context.Context, in checkout.BookInput) (*domain.Delivery, error)
	Cancel(ctx context.Context, orderReference, reason string) (*wolt.CancelDeliveryResponse, error)
	Delivery(ctx context.Context, deliveryID string) (*wolt.DeliveryResponse, error)
	Deliveries(ctx context.Context, limit, offset int) (*wolt.ListDeliveriesResponse, error)
	Track(ctx context.Context, deliveryID string) (*wolt.TrackingResponse, error)
	AvailableVenues(ctx context.Context, req wolt.AvailableVenuesRequest) (*wolt.AvailableVenuesResponse, error)
	CurrentReadiness() checkout.Readiness
	DeliveryDates() []schedule.DateOption
	TimeSlots() []schedule.SlotOption
}

// NewCheckoutUsecase wires a checkout.Service into a checkoutUsecase.
func NewCheckoutUsecase(svc *checkout.Service) checkoutUsecase {
	return svc
}

type webhookProcessor interface {
	Handle(ctx context.Context, e webhook.Event, raw []byte, receivedAt time.Time) error
}

// NewWebhookProcessor wires a webhook.Processor into a webhookProcessor.
func NewWebhookProcessor(p *webhook.Processor) webhookProcessor {
	return p
}

type eventReader interface {
	ListRecent(ctx context.Context, limit int) ([]domain.WebhookEvent, error)
}

type logReader interface {
	List(ctx context.Context, limit int) ([]apilog.Entry, error)
}
