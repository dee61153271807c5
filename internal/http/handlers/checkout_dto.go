package handlers

import "time"

type quoteRequest struct {
	Street               string  `json:"street"`
	City                 string  `json:"city"`
	PostCode             string  `json:"post_code"`
	Lat                  float64 `json:"lat"`
	Lon                  float64 `json:"lon"`
	Language             string  `json:"language,omitempty"`
	PrepMinutes          int     `json:"prep_minutes,omitempty"`
	ScheduledDropoffTime string  `json:"scheduled_dropoff_time,omitempty"`
}

type feeDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type quoteResponse struct {
	PromiseID             string  `json:"promise_id"`
	Fee                   *feeDTO `json:"fee,omitempty"`
	EstimatedPickupTime   string  `json:"estimated_pickup_time,omitempty"`
	EstimatedDeliveryTime string  `json:"estimated_delivery_time,omitempty"`
	DistanceMeters        int     `json:"distance_meters,omitempty"`
}

type recipientDTO struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type bookDeliveryRequest struct {
	quoteRequest
	OrderReference string       `json:"order_reference"`
	OrderNumber    string       `json:"order_number,omitempty"`
	Recipient      recipientDTO `json:"recipient"`
	DropoffComment string       `json:"dropoff_comment,omitempty"`
	NoContact      bool         `json:"no_contact,omitempty"`
}

type bookDeliveryResponse struct {
	DeliveryID     string    `json:"delivery_id"`
	OrderReference string    `json:"order_reference"`
	Status         string    `json:"status"`
	Fee            *feeDTO   `json:"fee,omitempty"`
	TrackingURL    string    `json:"tracking_url,omitempty"`
	ScheduledAt    time.Time `json:"scheduled_at"`
}

type cancelDeliveryRequest struct {
	Reason string `json:"reason,omitempty"`
}

type readinessResponse struct {
	VenueOpen         bool `json:"venue_open"`
	ReadyForImmediate bool `json:"ready_for_immediate"`
	MinutesUntilClose int  `json:"minutes_until_close"`
}
