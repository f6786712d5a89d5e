package models

import "time"

type BookingAddress struct {
	Street  string   `json:"street,omitempty"`
	City    string   `json:"city,omitempty"`
	ZipCode string   `json:"zipCode,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Long    *float64 `json:"long,omitempty"`
}

// ClientRef is the client summary embedded in bookings and payment requests.
type ClientRef struct {
	ID          string `json:"_id"`
	ClientEmail string `json:"clientEmail"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
}

// CleanerRef is the cleaner summary embedded in bookings and price requests.
type CleanerRef struct {
	ID                 string `json:"_id"`
	CleanerEmail       string `json:"cleanerEmail"`
	FirstName          string `json:"firstName,omitempty"`
	LastName           string `json:"lastName,omitempty"`
	AvailabilityStatus string `json:"availabilityStatus,omitempty"`
}

type Payment struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	Status string  `json:"status"`
}

// Booking keeps Status and CleaningStatus as independent axes; neither
// constrains the other.
type Booking struct {
	ID             string          `json:"_id"`
	Time           string          `json:"time"`
	Date           string          `json:"date"`
	Duration       string          `json:"duration"`
	ServiceType    string          `json:"serviceType"`
	Description    string          `json:"description"`
	GrandTotal     string          `json:"grandTotal"`
	Notes          string          `json:"notes,omitempty"`
	Status         string          `json:"status"`
	CleaningStatus *string         `json:"cleaningStatus"`
	CheckIn        bool            `json:"checkIn,omitempty"`
	CheckOut       bool            `json:"checkOut,omitempty"`
	Address        *BookingAddress `json:"address,omitempty"`
	Helper         string          `json:"helper,omitempty"`
	Client         ClientRef       `json:"client"`
	Cleaner        *CleanerRef     `json:"cleaner"`
	Payment        Payment         `json:"payment"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type PaymentUpdate struct {
	Amount *float64 `json:"amount,omitempty"`
	Method *string  `json:"method,omitempty"`
	Status *string  `json:"status,omitempty"`
}

type BookingUpdate struct {
	Status         *string        `json:"status,omitempty"`
	CleaningStatus *string        `json:"cleaningStatus,omitempty"`
	Payment        *PaymentUpdate `json:"payment,omitempty"`
}

func (u BookingUpdate) Validate() error {
	if u.Status == nil && u.CleaningStatus == nil && u.Payment == nil {
		return ErrEmptyUpdate
	}
	if u.Status != nil && !oneOf(*u.Status, BookingStatusNew, BookingStatusAccepted, BookingStatusRejected) {
		return Invalid("status", "unknown booking status %q", *u.Status)
	}
	if u.CleaningStatus != nil && !oneOf(*u.CleaningStatus,
		CleaningStatusConfirmed, CleaningStatusOnTheWay, CleaningStatusInProgress, CleaningStatusCompleted) {
		return Invalid("cleaningStatus", "unknown cleaning status %q", *u.CleaningStatus)
	}
	if p := u.Payment; p != nil {
		if p.Amount == nil && p.Method == nil && p.Status == nil {
			return Invalid("payment", "sets no fields")
		}
		if p.Amount != nil && *p.Amount < 0 {
			return Invalid("payment.amount", "must not be negative")
		}
		if p.Method != nil && !oneOf(*p.Method, PaymentMethodCash, PaymentMethodCard, PaymentMethodOnline) {
			return Invalid("payment.method", "unknown payment method %q", *p.Method)
		}
		if p.Status != nil && !oneOf(*p.Status, PaymentStatusPending, PaymentStatusPaid) {
			return Invalid("payment.status", "unknown payment status %q", *p.Status)
		}
	}
	return nil
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type CheckInOutPayload struct {
	BookingID string     `json:"bookingId"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Location  *GeoPoint  `json:"location,omitempty"`
}

func (p CheckInOutPayload) Validate() error {
	if p.BookingID == "" {
		return Invalid("bookingId", "is required")
	}
	return nil
}

type CheckInOutBooking struct {
	ID           string     `json:"_id"`
	CheckIn      bool       `json:"checkIn,omitempty"`
	CheckOut     bool       `json:"checkOut,omitempty"`
	CheckInTime  *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`
}

type CheckInOutResult struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Booking CheckInOutBooking `json:"booking"`
}
