package models

import "time"

type PaymentRequest struct {
	ID            string     `json:"_id"`
	ClientID      string     `json:"clientId"`
	Client        *ClientRef `json:"client,omitempty"`
	BookingID     string     `json:"bookingId"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type NewPaymentRequest struct {
	ClientID  string  `json:"clientId"`
	BookingID string  `json:"bookingId"`
	Amount    float64 `json:"amount"`
}

func (r NewPaymentRequest) Validate() error {
	if r.ClientID == "" {
		return Invalid("clientId", "is required")
	}
	if r.BookingID == "" {
		return Invalid("bookingId", "is required")
	}
	if r.Amount <= 0 {
		return Invalid("amount", "must be positive")
	}
	return nil
}

type PaymentRequestUpdate struct {
	Status        *string `json:"status,omitempty"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
}

func (u PaymentRequestUpdate) Validate() error {
	if u.Status == nil && u.PaymentMethod == nil {
		return ErrEmptyUpdate
	}
	if u.Status != nil && !oneOf(*u.Status, PaymentRequestPending, PaymentRequestCompleted, PaymentRequestFailed) {
		return Invalid("status", "unknown payment request status %q", *u.Status)
	}
	return nil
}
