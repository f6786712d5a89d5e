package models

import "time"

type PriceRequest struct {
	ID           string      `json:"_id"`
	CleanerID    string      `json:"cleanerId"`
	Cleaner      *CleanerRef `json:"cleaner,omitempty"`
	PricePerHour float64     `json:"pricePerHour"`
	CurrentPrice *float64    `json:"currentPrice,omitempty"`
	Status       string      `json:"status"`
	RequestedAt  time.Time   `json:"requestedAt"`
	ReviewedAt   *time.Time  `json:"reviewedAt,omitempty"`
	ReviewedBy   string      `json:"reviewedBy,omitempty"`
	Notes        string      `json:"notes,omitempty"`
}

// Reviewed reports whether the request has left the pending state. Reviewed
// requests are final.
func (p PriceRequest) Reviewed() bool {
	return p.Status != PriceStatusPending
}

type PriceReview struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

func (r PriceReview) Validate() error {
	if !oneOf(r.Status, PriceStatusApproved, PriceStatusRejected) {
		return Invalid("status", "review must be %q or %q, got %q", PriceStatusApproved, PriceStatusRejected, r.Status)
	}
	return nil
}
