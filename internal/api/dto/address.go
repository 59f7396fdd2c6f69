package dto

// AddressRequest is the body of create and update calls.
// Pointers distinguish a missing field from a zero value.
type AddressRequest struct {
	ID        *int64   `json:"id"`
	Street    string   `json:"street"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type AddressResponse struct {
	ID        int64   `json:"id"`
	Street    string  `json:"street"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
