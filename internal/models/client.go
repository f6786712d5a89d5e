package models

import "time"

type Location struct {
	Lat  *float64 `json:"lat,omitempty"`
	Long *float64 `json:"long,omitempty"`
}

// Client is a customer record. Apartment and City keep the backend's
// capitalized field names.
type Client struct {
	ID            string    `json:"_id"`
	ClientEmail   string    `json:"clientEmail"`
	FirstName     string    `json:"firstName,omitempty"`
	LastName      string    `json:"lastName,omitempty"`
	StreetAddress string    `json:"streetAddress,omitempty"`
	Apartment     string    `json:"Apartment,omitempty"`
	City          string    `json:"City,omitempty"`
	ZipCode       string    `json:"zipCode,omitempty"`
	Location      *Location `json:"location,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ClientUpdate lists the client fields an admin may change.
// Nil fields are left untouched by the backend.
type ClientUpdate struct {
	FirstName     *string `json:"firstName,omitempty"`
	LastName      *string `json:"lastName,omitempty"`
	ClientEmail   *string `json:"clientEmail,omitempty"`
	StreetAddress *string `json:"streetAddress,omitempty"`
	Apartment     *string `json:"Apartment,omitempty"`
	City          *string `json:"City,omitempty"`
	ZipCode       *string `json:"zipCode,omitempty"`
}

func (u ClientUpdate) Validate() error {
	if u == (ClientUpdate{}) {
		return ErrEmptyUpdate
	}
	if u.ClientEmail != nil && *u.ClientEmail == "" {
		return Invalid("clientEmail", "must not be empty")
	}
	return nil
}
