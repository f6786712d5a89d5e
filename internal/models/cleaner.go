package models

import "time"

type Cleaner struct {
	ID                  string    `json:"_id"`
	CleanerEmail        string    `json:"cleanerEmail"`
	FirstName           string    `json:"firstName,omitempty"`
	LastName            string    `json:"lastName,omitempty"`
	PhoneNo             string    `json:"phoneNo,omitempty"`
	SIN                 string    `json:"sin,omitempty"`
	StreetAddress       string    `json:"streetAddress,omitempty"`
	Apartment           string    `json:"apartment,omitempty"`
	City                string    `json:"city,omitempty"`
	ZipCode             string    `json:"zipCode,omitempty"`
	FullAddress         string    `json:"fullAddress,omitempty"`
	StripeAccountID     string    `json:"stripeAccountId,omitempty"`
	ChargesEnabled      bool      `json:"chargesEnabled,omitempty"`
	PayoutsEnabled      bool      `json:"payoutsEnabled,omitempty"`
	OnboardingCompleted bool      `json:"onboardingCompleted,omitempty"`
	BankVerified        bool      `json:"bankVerified,omitempty"`
	AvailabilityStatus  string    `json:"availabilityStatus,omitempty"`
	PricePerHour        float64   `json:"pricePerHour,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type CleanerUpdate struct {
	FirstName     *string `json:"firstName,omitempty"`
	LastName      *string `json:"lastName,omitempty"`
	CleanerEmail  *string `json:"cleanerEmail,omitempty"`
	PhoneNo       *string `json:"phoneNo,omitempty"`
	SIN           *string `json:"sin,omitempty"`
	StreetAddress *string `json:"streetAddress,omitempty"`
	Apartment     *string `json:"apartment,omitempty"`
	City          *string `json:"city,omitempty"`
	ZipCode       *string `json:"zipCode,omitempty"`
}

func (u CleanerUpdate) Validate() error {
	if u == (CleanerUpdate{}) {
		return ErrEmptyUpdate
	}
	if u.CleanerEmail != nil && *u.CleanerEmail == "" {
		return Invalid("cleanerEmail", "must not be empty")
	}
	return nil
}

// CleanerPrice is the hourly rate currently charged by a cleaner.
type CleanerPrice struct {
	PricePerHour float64 `json:"pricePerHour"`
}
