package orders

import "time"

// Dropoff is the delivery address carried by an order event.
type Dropoff struct {
	Street   string  `json:"street"`
	City     string  `json:"city"`
	PostCode string  `json:"post_code"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Comment  string  `json:"comment,omitempty"`
}

// Recipient is the order's recipient as carried by an order event.
type Recipient struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// Event is a single checkout order event.
type Event struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	Dropoff     Dropoff   `json:"dropoff"`
	Recipient   Recipient `json:"recipient"`
	PrepMinutes int       `json:"prep_minutes,omitempty"`
	NoContact   bool      `json:"no_contact,omitempty"`
}
