package domain

import "time"

// DeliveryStatus represents the provider-reported status of a delivery.
type DeliveryStatus string

// List of possible delivery statuses, as reported by the provider.
const (
	StatusCreated         DeliveryStatus = "created"
	StatusScheduled       DeliveryStatus = "scheduled"
	StatusCourierAssigned DeliveryStatus = "courier_assigned"
	StatusPickingUp       DeliveryStatus = "picking_up"
	StatusPickedUp        DeliveryStatus = "picked_up"
	StatusInTransit       DeliveryStatus = "in_transit"
	StatusDelivered       DeliveryStatus = "delivered"
	StatusCancelled       DeliveryStatus = "cancelled"
)

var allowedStatuses = [...]DeliveryStatus{
	StatusCreated, StatusScheduled, StatusCourierAssigned, StatusPickingUp,
	StatusPickedUp, StatusInTransit, StatusDelivered, StatusCancelled,
}

// Valid checks if the DeliveryStatus is valid.
func (s DeliveryStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Delivery - a booked provider delivery as stored locally.
type Delivery struct {
	ID             int64
	ProviderID     string
	OrderReference string
	Status         DeliveryStatus
	FeeAmount      int64
	FeeCurrency    string
	TrackingURL    string
	ScheduledAt    time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// WebhookEvent - a provider status-update event as stored locally.
type WebhookEvent struct {
	ID               int64
	EventType        string
	DeliveryID       string
	MerchantID       string
	Status           string
	Payload          []byte
	ProcessedAt      time.Time
	ProcessingTimeMs int64
}
