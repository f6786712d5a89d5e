package models

// Admin roles.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// Booking review status.
const (
	BookingStatusNew      = "new"
	BookingStatusAccepted = "accepted"
	BookingStatusRejected = "rejected"
)

// Booking cleaning progress, independent of BookingStatus*.
const (
	CleaningStatusConfirmed  = "confirmed"
	CleaningStatusOnTheWay   = "on_the_way"
	CleaningStatusInProgress = "in_progress"
	CleaningStatusCompleted  = "completed"
)

const (
	PaymentMethodCash   = "cash"
	PaymentMethodCard   = "card"
	PaymentMethodOnline = "online"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Payment request status.
const (
	PaymentRequestPending   = "pending"
	PaymentRequestCompleted = "completed"
	PaymentRequestFailed    = "failed"
)

// Price request status.
const (
	PriceStatusPending  = "pending"
	PriceStatusApproved = "approved"
	PriceStatusRejected = "rejected"
)

const (
	AvailabilityOnline  = "online"
	AvailabilityOffline = "offline"
)

const (
	// DefaultPerPage is the table page size used by list views.
	DefaultPerPage = 10

	// DefaultTrendPeriod is the analytics trend window in days.
	DefaultTrendPeriod = 7

	// DefaultActivityLimit caps the recent activity feed.
	DefaultActivityLimit = 10
)

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
