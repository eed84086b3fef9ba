package domain

import "fmt"

// Represents a single retail store in the directory.
// A StoreLocation is loaded once from configuration at startup and never mutated.
// Coordinates are mandatory; they are never derived at runtime.
type StoreLocation struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Address  string      `json:"address"`
	City     string      `json:"city"`
	State    string      `json:"state"`
	Zip      string      `json:"zip"`
	Phone    string      `json:"phone"`
	Hours    string      `json:"hours"`
	Position GeoPosition `json:"position"`
}

// FullAddress joins street, city, state and zip the way map apps expect it.
func (s StoreLocation) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s %s", s.Address, s.City, s.State, s.Zip)
}
