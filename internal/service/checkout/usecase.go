package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront-drive/internal/apperr"
	"storefront-drive/internal/domain"
	"storefront-drive/internal/gateway/wolt"
	"storefront-drive/internal/logx"
	"storefront-drive/internal/repository"
	"storefront-drive/internal/schedule"
)

// Address is a dropoff street address with coordinates.
type Address struct {
	Street   string
	City     string
	PostCode string
	Lat      float64
	Lon      float64
}

// QuoteInput describes a quote request for one dropoff address.
// A zero ScheduledDropoff lets the service pick the dropoff time itself:
// immediate when the venue still has a wide enough window before closing,
// otherwise the earliest feasible scheduled time.
type QuoteInput struct {
	Address
	Language         string
	PrepMinutes      int
	ScheduledDropoff time.Time
}

// Recipient identifies who receives the order.
type Recipient struct {
	Name  string
	Phone string
	Email string
}

// BookInput describes a full delivery booking.
type BookInput struct {
	QuoteInput
	OrderReference string
	OrderNumber    string
	Recipient      Recipient
	DropoffComment string
	NoContact      bool
}

// Service orchestrates checkout against the delivery provider: it quotes,
// books, cancels and tracks deliveries, and answers schedule questions for
// the storefront UI.
type Service struct {
	negotiator quoteNegotiator
	provider   providerClient
	store      deliveryStore
	sched      domain.VenueSchedule
	loc        *time.Location
	prep       time.Duration
	logger     logx.Logger
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the service clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new checkout Service.
func NewService(
	negotiator quoteNegotiator,
	provider providerClient,
	store deliveryStore,
	sched domain.VenueSchedule,
	loc *time.Location,
	prep time.Duration,
	logger logx.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		negotiator: negotiator,
		provider:   provider,
		store:      store,
		sched:      sched,
		loc:        loc,
		prep:       schedule.NormalizePrep(prep),
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quote negotiates a shipment promise for the given dropoff address.
func (s *Service) Quote(ctx context.Context, in QuoteInput) (*wolt.ShipmentPromiseResponse, error) {
	req, err := s.promiseRequest(in)
	if err != nil {
		return nil, err
	}

	promise, err := s.negotiator.ShipmentPromise(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("shipment promise negotiated",
		logx.String("promise_id", promise.ID),
		logx.String("scheduled_dropoff_time", req.ScheduledDropoffTime),
	)
	return promise, nil
}

// Book negotiates a quote and books a delivery against it, then records the
// booking locally.
func (s *Service) Book(ctx context.Context, in BookInput) (*domain.Delivery, error) {
	if strings.TrimSpace(in.OrderReference) == "" {
		return nil, fmt.Errorf("%w: order reference is required", apperr.ErrInvalid)
	}
	if strings.TrimSpace(in.Recipient.Name) == "" || strings.TrimSpace(in.Recipient.Phone) == "" {
		return nil, fmt.Errorf("%w: recipient name and phone are required", apperr.ErrInvalid)
	}

	promiseReq, err := s.promiseRequest(in.QuoteInput)
	if err != nil {
		return nil, err
	}
	promise, err := s.negotiator.ShipmentPromise(ctx, promiseReq)
	if err != nil {
		return nil, err
	}

	createReq := wolt.CreateDeliveryRequest{
		Pickup: wolt.CreateDeliveryPickup{
			Options: wolt.PickupOptions{
				MinPreparationMinutes: promiseReq.MinPreparationMinutes,
			},
		},
		Dropoff: wolt.CreateDeliveryDropoff{
			Location: wolt.Location{
				FormattedAddress: formatAddress(in.Address),
				Coordinates:      wolt.Coordinates{Lat: in.Lat, Lon: in.Lon},
			},
			Comment: in.DropoffComment,
			Options: wolt.DropoffOptions{
				IsNoContact:   in.NoContact,
				ScheduledTime: promiseReq.ScheduledDropoffTime,
			},
		},
		Price: promise.Fee,
		Recipient: wolt.Recipient{
			Name:        in.Recipient.Name,
			PhoneNumber: in.Recipient.Phone,
			Email:       in.Recipient.Email,
		},
		ShipmentPromiseID:        promise.ID,
		MerchantOrderReferenceID: in.OrderReference,
		OrderNumber:              in.OrderNumber,
	}

	resp, err := s.negotiator.CreateDelivery(ctx, createReq)
	if err != nil {
		return nil, err
	}

	d := s.toDelivery(resp, in.OrderReference, promiseReq.ScheduledDropoffTime)
	if err := s.store.Insert(ctx, d); err != nil {
		if repository.IsDuplicate(err) {
			return nil, fmt.Errorf("%w: delivery %s already recorded", apperr.ErrConflict, resp.ID)
		}
		return nil, err
	}

	s.logger.Info("delivery booked",
		logx.String("delivery_id", d.ProviderID),
		logx.String("order_reference", d.OrderReference),
		logx.Time("scheduled_at", d.ScheduledAt),
	)
	return d, nil
}

// Cancel cancels a booked delivery at the provider and marks the local
// record cancelled.
func (s *Service) Cancel(ctx context.Context, orderReference, reason string) (*wolt.CancelDeliveryResponse, error) {
	if strings.TrimSpace(orderReference) == "" {
		return nil, fmt.Errorf("%w: order reference is required", apperr.ErrInvalid)
	}

	resp, err := s.provider.CancelDelivery(ctx, orderReference, wolt.CancelDeliveryRequest{Reason: reason})
	if err != nil {
		return nil, err
	}

	stored, err := s.store.GetByOrderReference(ctx, orderReference)
	if err == nil && stored != nil {
		err = s.store.UpdateStatus(ctx, stored.ProviderID, domain.StatusCancelled)
	}
	if err != nil {
		s.logger.Warn("cancelled at provider but local record not updated",
			logx.String("order_reference", orderReference),
			logx.Err(err),
		)
	}
	return resp, nil
}

// Delivery fetches one delivery from the provider.
func (s *Service) Delivery(ctx context.Context, deliveryID string) (*wolt.DeliveryResponse, error) {
	if strings.TrimSpace(deliveryID) == "" {
		return nil, fmt.Errorf("%w: delivery id is required", apperr.ErrInvalid)
	}
	return s.provider.GetDelivery(ctx, deliveryID)
}

// Deliveries lists provider deliveries for the configured venue.
func (s *Service) Deliveries(ctx context.Context, limit, offset int) (*wolt.ListDeliveriesResponse, error) {
	return s.provider.ListDeliveries(ctx, limit, offset)
}

// Track fetches the live tracking snapshot for a delivery.
func (s *Service) Track(ctx context.Context, deliveryID string) (*wolt.TrackingResponse, error) {
	if strings.TrimSpace(deliveryID) == "" {
		return nil, fmt.Errorf("%w: delivery id is required", apperr.ErrInvalid)
	}
	return s.provider.Tracking(ctx, deliveryID)
}

// AvailableVenues asks the provider which venues can serve an address.
func (s *Service) AvailableVenues(ctx context.Context, req wolt.AvailableVenuesRequest) (*wolt.AvailableVenuesResponse, error) {
	return s.provider.AvailableVenues(ctx, req)
}

func (s *Service) promiseRequest(in QuoteInput) (wolt.ShipmentPromiseRequest, error) {
	if strings.TrimSpace(in.Street) == "" || strings.TrimSpace(in.City) == "" {
		return wolt.ShipmentPromiseRequest{}, fmt.Errorf("%w: street and city are required", apperr.ErrInvalid)
	}

	prep := s.prep
	if in.PrepMinutes > 0 {
		prep = schedule.NormalizePrep(time.Duration(in.PrepMinutes) * time.Minute)
	}

	req := wolt.ShipmentPromiseRequest{
		Street:                in.Street,
		City:                  in.City,
		PostCode:              in.PostCode,
		Lat:                   in.Lat,
		Lon:                   in.Lon,
		Language:              in.Language,
		MinPreparationMinutes: int(prep.Minutes()),
	}

	if dropoff, scheduled := s.resolveDropoff(in, prep); scheduled {
		req.ScheduledDropoffTime = wolt.FormatTime(dropoff)
	}
	return req, nil
}

// resolveDropoff decides the dropoff time for a quote. An explicit caller
// time wins; otherwise immediate delivery is used only while the venue has
// at least the minimum window left before closing.
func (s *Service) resolveDropoff(in QuoteInput, prep time.Duration) (time.Time, bool) {
	if !in.ScheduledDropoff.IsZero() {
		return in.ScheduledDropoff.UTC(), true
	}
	now := s.now()
	if schedule.ReadyForImmediateDelivery(s.sched, s.loc, now) {
		return time.Time{}, false
	}
	return schedule.ScheduledDropoff(s.sched, s.loc, prep, now), true
}

func (s *Service) toDelivery(resp *wolt.DeliveryResponse, orderReference, scheduledDropoff string) *domain.Delivery {
	d := &domain.Delivery{
		ProviderID:     resp.ID,
		OrderReference: orderReference,
		Status:         domain.StatusCreated,
		ScheduledAt:    s.now(),
	}
	if st := domain.DeliveryStatus(resp.Status); st.Valid() {
		d.Status = st
	}
	if resp.Fee != nil {
		d.FeeAmount = resp.Fee.Amount
		d.FeeCurrency = resp.Fee.Currency
	}
	if resp.Tracking != nil {
		d.TrackingURL = resp.Tracking.URL
	}
	if t, err := time.Parse(wolt.TimeLayout, resp.EstimatedDeliveryTime); err == nil {
		d.ScheduledAt = t.UTC()
	} else if t, err := time.Parse(wolt.TimeLayout, scheduledDropoff); err == nil {
		d.ScheduledAt = t.UTC()
	}
	return d
}

func formatAddress(a Address) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Street, a.PostCode, a.City} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}
