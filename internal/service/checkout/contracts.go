package checkout

import (
	"context"

	"storefront-drive/internal/domain"
	"storefront-drive/internal/gateway/wolt"
)

// quoteNegotiator abstracts the negotiated provider calls, the ones that may
// be resubmitted with a corrected dropoff time.
type quoteNegotiator interface {
	ShipmentPromise(ctx context.Context, req wolt.ShipmentPromiseRequest) (*wolt.ShipmentPromiseResponse, error)
	CreateDelivery(ctx context.Context, req wolt.CreateDeliveryRequest) (*wolt.DeliveryResponse, error)
}

// providerClient abstracts the plain provider calls.
type providerClient interface {
	GetDelivery(ctx context.Context, deliveryID string) (*wolt.DeliveryResponse, error)
	ListDeliveries(ctx context.Context, limit, offset int) (*wolt.ListDeliveriesResponse, error)
	CancelDelivery(ctx context.Context, orderReferenceID string, req wolt.CancelDeliveryRequest) (*wolt.CancelDeliveryResponse, error)
	Tracking(ctx context.Context, deliveryID string) (*wolt.TrackingResponse, error)
	AvailableVenues(ctx context.Context, req wolt.AvailableVenuesRequest) (*wolt.AvailableVenuesResponse, error)
}

type deliveryStore interface {
	Insert(ctx context.Context, d *domain.Delivery) error
	GetByOrderReference(ctx context.Context, ref string) (*domain.Delivery, error)
	UpdateStatus(ctx context.Context, providerID string, status domain.DeliveryStatus) error
}
