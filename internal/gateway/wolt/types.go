package wolt

// Request and response shapes of the Wolt Drive public API. Only the fields
// this service reads or writes are modelled.

// Coordinates is a WGS84 lat/lon pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location is a delivery location with a formatted address.
type Location struct {
	FormattedAddress string      `json:"formatted_address,omitempty"`
	Coordinates      Coordinates `json:"coordinates"`
}

// ContactDetails identifies a pickup or dropoff contact.
type ContactDetails struct {
	Name                string `json:"name"`
	PhoneNumber         string `json:"phone_number"`
	SendTrackingLinkSMS bool   `json:"send_tracking_link_sms"`
}

// Fee is a monetary amount in minor units.
type Fee struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Tracking carries the customer-facing tracking link.
type Tracking struct {
	URL  string `json:"url"`
	Code string `json:"code,omitempty"`
}

// ShipmentPromiseRequest asks for a price/time quote for one dropoff address.
type ShipmentPromiseRequest struct {
	Street                string  `json:"street"`
	City                  string  `json:"city"`
	PostCode              string  `json:"post_code"`
	Lat                   float64 `json:"lat"`
	Lon                   float64 `json:"lon"`
	Language              string  `json:"language,omitempty"`
	MinPreparationMinutes int     `json:"min_preparation_time_minutes,omitempty"`
	ScheduledDropoffTime  string  `json:"scheduled_dropoff_time,omitempty"`
}

// ShipmentPromiseResponse is the provider's quote. The promise id is what a
// later delivery creation references.
type ShipmentPromiseResponse struct {
	ID                    string `json:"id"`
	Fee                   *Fee   `json:"fee,omitempty"`
	EstimatedPickupTime   string `json:"estimated_pickup_time,omitempty"`
	EstimatedDeliveryTime string `json:"estimated_delivery_time,omitempty"`
	DistanceMeters        int    `json:"distance_meters,omitempty"`
}

// PickupOptions carries merchant-side scheduling constraints.
type PickupOptions struct {
	MinPreparationMinutes int    `json:"min_preparation_time_minutes,omitempty"`
	ScheduledTime         string `json:"scheduled_time,omitempty"`
}

// DropoffOptions carries recipient-side delivery constraints.
type DropoffOptions struct {
	IsNoContact   bool   `json:"is_no_contact"`
	ScheduledTime string `json:"scheduled_time,omitempty"`
}

// Recipient identifies the delivery recipient.
type Recipient struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email,omitempty"`
}

// ParcelDimensions describes one parcel's size and weight.
type ParcelDimensions struct {
	WeightGram int `json:"weight_gram"`
	WidthCm    int `json:"width_cm"`
	HeightCm   int `json:"height_cm"`
	DepthCm    int `json:"depth_cm"`
}

// Parcel is one package within a delivery.
type Parcel struct {
	Count       int               `json:"count"`
	Dimensions  *ParcelDimensions `json:"dimensions,omitempty"`
	Price       *Fee              `json:"price,omitempty"`
	Description string            `json:"description"`
	Identifier  string            `json:"identifier,omitempty"`
}

// CustomerSupport is the merchant's support contact shown to the recipient.
type CustomerSupport struct {
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	URL         string `json:"url,omitempty"`
}

// CreateDeliveryPickup is the pickup half of a delivery creation request.
type CreateDeliveryPickup struct {
	Options PickupOptions `json:"options"`
	Comment string        `json:"comment,omitempty"`
}

// CreateDeliveryDropoff is the dropoff half of a delivery creation request.
type CreateDeliveryDropoff struct {
	Location Location       `json:"location"`
	Comment  string         `json:"comment,omitempty"`
	Options  DropoffOptions `json:"options"`
}

// CreateDeliveryRequest books a delivery against an earlier shipment promise.
type CreateDeliveryRequest struct {
	Pickup                   CreateDeliveryPickup  `json:"pickup"`
	Dropoff                  CreateDeliveryDropoff `json:"dropoff"`
	Price                    *Fee                  `json:"price,omitempty"`
	Recipient                Recipient             `json:"recipient"`
	Parcels                  []Parcel              `json:"parcels,omitempty"`
	ShipmentPromiseID        string                `json:"shipment_promise_id"`
	CustomerSupport          *CustomerSupport      `json:"customer_support,omitempty"`
	MerchantOrderReferenceID string                `json:"merchant_order_reference_id"`
	OrderNumber              string                `json:"order_number,omitempty"`
}

// DeliveryResponse is a provider delivery in any lifecycle state.
type DeliveryResponse struct {
	ID                       string    `json:"id"`
	Status                   string    `json:"status"`
	Tracking                 *Tracking `json:"tracking,omitempty"`
	CreatedAt                string    `json:"created_at,omitempty"`
	Fee                      *Fee      `json:"fee,omitempty"`
	EstimatedPickupTime      string    `json:"estimated_pickup_time,omitempty"`
	EstimatedDeliveryTime    string    `json:"estimated_delivery_time,omitempty"`
	MerchantOrderReferenceID string    `json:"merchant_order_reference_id,omitempty"`
}

// ListDeliveriesResponse is a page of provider deliveries.
type ListDeliveriesResponse struct {
	Deliveries []DeliveryResponse `json:"deliveries"`
	Pagination struct {
		Total   int  `json:"total"`
		Limit   int  `json:"limit"`
		Offset  int  `json:"offset"`
		HasMore bool `json:"has_more"`
	} `json:"pagination"`
}

// CancelDeliveryRequest cancels a booked delivery.
type CancelDeliveryRequest struct {
	Reason string `json:"reason"`
}

// CancelDeliveryResponse confirms a cancellation.
type CancelDeliveryResponse struct {
	ID                 string `json:"id"`
	Status             string `json:"status"`
	CancelledAt        string `json:"cancelled_at,omitempty"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
}

// TrackingResponse is a live tracking snapshot for a delivery.
type TrackingResponse struct {
	DeliveryID  string `json:"delivery_id"`
	Status      string `json:"status"`
	ETA         string `json:"eta,omitempty"`
	TrackingURL string `json:"tracking_url,omitempty"`
}

// AvailableVenuesRequest asks which merchant venues can serve an address.
type AvailableVenuesRequest struct {
	Street   string  `json:"street,omitempty"`
	City     string  `json:"city,omitempty"`
	PostCode string  `json:"post_code,omitempty"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// AvailableVenue is one venue able to serve the requested address.
type AvailableVenue struct {
	VenueID        string `json:"venue_id"`
	Name           string `json:"name,omitempty"`
	DistanceMeters int    `json:"distance_meters,omitempty"`
}

// AvailableVenuesResponse lists venues able to serve the requested address.
type AvailableVenuesResponse struct {
	Venues []AvailableVenue `json:"venues"`
}
