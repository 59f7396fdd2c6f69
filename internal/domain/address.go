package domain

import "fmt"

// Represents a single entry in the address directory.
// ID is supplied by the caller and is never generated by the store.
// Every record carries both coordinates; there are no partial records.
type Address struct {
	ID        int64
	Street    string
	City      string
	State     string
	Country   string
	Latitude  float64
	Longitude float64
}

func (a Address) Coordinates() Coordinates {
	return Coordinates{Lon: a.Longitude, Lat: a.Latitude}
}

// Validate checks the coordinate ranges. Any integer is a valid id and
// text fields are unconstrained.
func (a Address) Validate() error {
	if err := a.Coordinates().Validate(); err != nil {
		return fmt.Errorf("address id=%d: %w", a.ID, err)
	}

	return nil
}
