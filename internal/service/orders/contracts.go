package orders

import (
	"context"

	"storefront-drive/internal/domain"
	"storefront-drive/internal/gateway/wolt"
	"storefront-drive/internal/service/checkout"
)

// CheckoutPort abstracts the subset of checkout operations the orders
// Processor drives when handling order events.
type CheckoutPort interface {
	Book(ctx context.Context, in checkout.BookInput) (*domain.Delivery, error)
	Cancel(ctx context.Context, orderReference, reason string) (*wolt.CancelDeliveryResponse, error)
}
