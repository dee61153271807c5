package kafka

import (
	"strings"
	"time"

	"storefront-drive/internal/service/orders"
)

// DropoffDTO is the wire form of an order event's dropoff address.
type DropoffDTO struct {
	Street   string  `json:"street"`
	City     string  `json:"city"`
	PostCode string  `json:"post_code"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Comment  string  `json:"comment,omitempty"`
}

// RecipientDTO is the wire form of an order event's recipient.
type RecipientDTO struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// EventDTO is the wire form of a checkout order event.
type EventDTO struct {
	OrderID     string       `json:"order_id"`
	OrderNumber string       `json:"order_number,omitempty"`
	Status      string       `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	Dropoff     DropoffDTO   `json:"dropoff"`
	Recipient   RecipientDTO `json:"recipient"`
	PrepMinutes int          `json:"prep_minutes,omitempty"`
	NoContact   bool         `json:"no_contact,omitempty"`
}

// ToDomain converts an EventDTO to an orders.Event.
func ToDomain(dto EventDTO) orders.Event {
	return orders.Event{
		OrderID:     strings.TrimSpace(dto.OrderID),
		OrderNumber: strings.TrimSpace(dto.OrderNumber),
		Status:      strings.TrimSpace(dto.Status),
		CreatedAt:   dto.CreatedAt,
		Dropoff: orders.Dropoff{
			Street:   strings.TrimSpace(dto.Dropoff.Street),
			City:     strings.TrimSpace(dto.Dropoff.City),
			PostCode: strings.TrimSpace(dto.Dropoff.PostCode),
			Lat:      dto.Dropoff.Lat,
			Lon:      dto.Dropoff.Lon,
			Comment:  dto.Dropoff.Comment,
		},
		Recipient: orders.Recipient{
			Name:  strings.TrimSpace(dto.Recipient.Name),
			Phone: strings.TrimSpace(dto.Recipient.Phone),
			Email: strings.TrimSpace(dto.Recipient.Email),
		},
		PrepMinutes: dto.PrepMinutes,
		NoContact:   dto.NoContact,
	}
}
