package webhook

import "encoding/json"

// Event types sent by the provider on delivery lifecycle changes.
const (
	EventDeliveryCreated       = "delivery.created"
	EventDeliveryStatusChanged = "delivery.status_changed"
	EventDeliveryDelivered     = "delivery.delivered"
	EventDeliveryCancelled     = "delivery.cancelled"
)

// Event is a single provider webhook event.
type Event struct {
	EventType  string          `json:"event_type"`
	DeliveryID string          `json:"delivery_id"`
	Timestamp  string          `json:"timestamp"`
	MerchantID string          `json:"merchant_id"`
	Data       json.RawMessage `json:"data"`
}
