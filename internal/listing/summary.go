package listing

import "cleanadmin/internal/models"

type BookingCounts struct {
	Total    int
	New      int
	Accepted int
	Rejected int
}

func CountBookingStatuses(bookings []models.Booking) BookingCounts {
	c := BookingCounts{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case models.BookingStatusNew:
			c.New++
		case models.BookingStatusAccepted:
			c.Accepted++
		case models.BookingStatusRejected:
			c.Rejected++
		}
	}
	return c
}

type PriceCounts struct {
	Pending  int
	Approved int
	Rejected int
}

func CountPriceStatuses(requests []models.PriceRequest) PriceCounts {
	var c PriceCounts
	for _, r := range requests {
		switch r.Status {
		case models.PriceStatusPending:
			c.Pending++
		case models.PriceStatusApproved:
			c.Approved++
		case models.PriceStatusRejected:
			c.Rejected++
		}
	}
	return c
}

// PaymentTotals sums requested amounts per payment-request status.
type PaymentTotals struct {
	Pending   float64
	Completed float64
	Failed    float64
}

func SumPaymentRequests(requests []models.PaymentRequest) PaymentTotals {
	var t PaymentTotals
	for _, r := range requests {
		switch r.Status {
		case models.PaymentRequestPending:
			t.Pending += r.Amount
		case models.PaymentRequestCompleted:
			t.Completed += r.Amount
		case models.PaymentRequestFailed:
			t.Failed += r.Amount
		}
	}
	return t
}
