package schedule

import (
	"fmt"
	"time"

	"storefront-drive/internal/domain"
)

const (
	// DefaultDaysAhead bounds the manual-selection date picker.
	DefaultDaysAhead = 7

	slotStepMinutes = 30
	// Slots stop an hour before close to leave room for the delivery itself.
	slotDeliveryMarginMinutes = 60
)

// DateOption is a selectable delivery date for manual scheduling UIs.
type DateOption struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// SlotOption is a selectable 30-minute time slot for manual scheduling UIs.
type SlotOption struct {
	Time  string `json:"time"`
	Label string `json:"label"`
}

// DeliveryDates enumerates candidate delivery dates from tomorrow up to
// daysAhead days out. Deterministic given now.
func DeliveryDates(now time.Time, daysAhead int) []DateOption {
	if daysAhead <= 0 {
		daysAhead = DefaultDaysAhead
	}
	dates := make([]DateOption, 0, daysAhead)
	for i := 1; i <= daysAhead; i++ {
		d := now.AddDate(0, 0, i)
		dates = append(dates, DateOption{
			Date:  d.Format("2006-01-02"),
			Label: d.Format("Monday, January 2"),
		})
	}
	return dates
}

// TimeSlots enumerates 30-minute slots from opening time up to one hour
// before closing time.
func TimeSlots(s domain.VenueSchedule) []SlotOption {
	last := s.CloseMinutes() - slotDeliveryMarginMinutes

	var slots []SlotOption
	for m := s.OpenMinutes(); m < last; m += slotStepMinutes {
		v := fmt.Sprintf("%02d:%02d", m/60, m%60)
		slots = append(slots, SlotOption{Time: v, Label: v})
	}
	return slots
}
