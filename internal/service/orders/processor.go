package orders

import (
	"context"
	"errors"
	"net/http"

	"storefront-drive/internal/apperr"
	"storefront-drive/internal/gateway/wolt"
	"storefront-drive/internal/service/checkout"
)

const cancelReason = "order cancelled at checkout"

// Processor processes checkout order events: created orders get a delivery
// booked, cancelled orders get their delivery cancelled at the provider.
type Processor struct {
	checkout CheckoutPort
	factory  *actionFactory
}

// NewProcessor creates a new orders.Processor.
func NewProcessor(checkoutSvc CheckoutPort) *Processor {
	p := &Processor{checkout: checkoutSvc}
	p.factory = newActionFactory(p.onCreated, p.onCanceled)
	return p
}

// Handle processes a single orders.Event. Events with an unknown status are
// skipped.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Status)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onCreated(ctx context.Context, e Event) error {
	_, err := p.checkout.Book(ctx, checkout.BookInput{
		QuoteInput: checkout.QuoteInput{
			Address: checkout.Address{
				Street:   e.Dropoff.Street,
				City:     e.Dropoff.City,
				PostCode: e.Dropoff.PostCode,
				Lat:      e.Dropoff.Lat,
				Lon:      e.Dropoff.Lon,
			},
			PrepMinutes: e.PrepMinutes,
		},
		OrderReference: e.OrderID,
		OrderNumber:    e.OrderNumber,
		Recipient: checkout.Recipient{
			Name:  e.Recipient.Name,
			Phone: e.Recipient.Phone,
			Email: e.Recipient.Email,
		},
		DropoffComment: e.Dropoff.Comment,
		NoContact:      e.NoContact,
	})
	// Already booked for this order; redelivered events are not an error.
	if errors.Is(err, apperr.ErrConflict) {
		return nil
	}
	return err
}

func (p *Processor) onCanceled(ctx context.Context, e Event) error {
	_, err := p.checkout.Cancel(ctx, e.OrderID, cancelReason)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	var apiErr *wolt.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return nil
	}
	return err
}
