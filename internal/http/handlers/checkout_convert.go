package handlers

import (
	"fmt"
	"time"

	"storefront-drive/internal/apperr"
	"storefront-drive/internal/domain"
	"storefront-drive/internal/gateway/wolt"
	"storefront-drive/internal/service/checkout"
)

func (r quoteRequest) toInput() (checkout.QuoteInput, error) {
	in := checkout.QuoteInput{
		Address: checkout.Address{
			Street:   r.Street,
			City:     r.City,
			PostCode: r.PostCode,
			Lat:      r.Lat,
			Lon:      r.Lon,
		},
		Language:    r.Language,
		PrepMinutes: r.PrepMinutes,
	}
	if r.ScheduledDropoffTime != "" {
		t, err := time.Parse(time.RFC3339, r.ScheduledDropoffTime)
		if err != nil {
			return checkout.QuoteInput{}, fmt.Errorf("%w: bad scheduled_dropoff_time", apperr.ErrInvalid)
		}
		in.ScheduledDropoff = t
	}
	return in, nil
}

func (r bookDeliveryRequest) toInput() (checkout.BookInput, error) {
	quote, err := r.quoteRequest.toInput()
	if err != nil {
		return checkout.BookInput{}, err
	}
	return checkout.BookInput{
		QuoteInput:     quote,
		OrderReference: r.OrderReference,
		OrderNumber:    r.OrderNumber,
		Recipient: checkout.Recipient{
			Name:  r.Recipient.Name,
			Phone: r.Recipient.Phone,
			Email: r.Recipient.Email,
		},
		DropoffComment: r.DropoffComment,
		NoContact:      r.NoContact,
	}, nil
}

func feeToResponse(f *wolt.Fee) *feeDTO {
	if f == nil {
		return nil
	}
	return &feeDTO{Amount: f.Amount, Currency: f.Currency}
}

func promiseToResponse(p *wolt.ShipmentPromiseResponse) quoteResponse {
	return quoteResponse{
		PromiseID:             p.ID,
		Fee:                   feeToResponse(p.Fee),
		EstimatedPickupTime:   p.EstimatedPickupTime,
		EstimatedDeliveryTime: p.EstimatedDeliveryTime,
		DistanceMeters:        p.DistanceMeters,
	}
}

func deliveryToResponse(d *domain.Delivery) bookDeliveryResponse {
	resp := bookDeliveryResponse{
		DeliveryID:     d.ProviderID,
		OrderReference: d.OrderReference,
		Status:         string(d.Status),
		TrackingURL:    d.TrackingURL,
		ScheduledAt:    d.ScheduledAt,
	}
	if d.FeeCurrency != "" || d.FeeAmount != 0 {
		resp.Fee = &feeDTO{Amount: d.FeeAmount, Currency: d.FeeCurrency}
	}
	return resp
}

func readinessToResponse(r checkout.Readiness) readinessResponse {
	return readinessResponse{
		VenueOpen:         r.VenueOpen,
		ReadyForImmediate: r.ReadyForImmediate,
		MinutesUntilClose: r.MinutesUntilClose,
	}
}
