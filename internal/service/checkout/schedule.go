package checkout

import (
	"storefront-drive/internal/schedule"
)

// scheduleDaysAhead is how many days of scheduled delivery dates the
// storefront offers.
const scheduleDaysAhead = 7

// Readiness is the venue's current ability to take orders.
type Readiness struct {
	VenueOpen         bool
	ReadyForImmediate bool
	MinutesUntilClose int
}

// CurrentReadiness reports whether the venue can take an immediate order
// right now.
func (s *Service) CurrentReadiness() Readiness {
	now := s.now()
	return Readiness{
		VenueOpen:         schedule.VenueOpen(s.sched, s.loc, now),
		ReadyForImmediate: schedule.ReadyForImmediateDelivery(s.sched, s.loc, now),
		MinutesUntilClose: schedule.MinutesUntilClose(s.sched, s.loc, now),
	}
}

// DeliveryDates lists the dates a customer can schedule a delivery for.
func (s *Service) DeliveryDates() []schedule.DateOption {
	return schedule.DeliveryDates(s.now().In(s.loc), scheduleDaysAhead)
}

// TimeSlots lists the in-day slots a customer can schedule a delivery into.
func (s *Service) TimeSlots() []schedule.SlotOption {
	return schedule.TimeSlots(s.sched)
}
