package export

import (
	"time"

	"cleanadmin/internal/listing"
	"cleanadmin/internal/models"
)

const timeLayout = "2006-01-02 15:04"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func ClientRows(clients []models.Client) [][]any {
	rows := [][]any{{"ID", "Name", "Email", "Street", "Apartment", "City", "Zip", "Created"}}
	for _, c := range clients {
		rows = append(rows, []any{
			c.ID,
			listing.FullName(c.FirstName, c.LastName),
			c.ClientEmail,
			c.StreetAddress,
			c.Apartment,
			c.City,
			c.ZipCode,
			formatTime(c.CreatedAt),
		})
	}
	return rows
}

func CleanerRows(cleaners []models.Cleaner) [][]any {
	rows := [][]any{{"ID", "Name", "Email", "Phone", "City", "Availability", "Price/h", "Onboarded", "Bank verified", "Created"}}
	for _, c := range cleaners {
		rows = append(rows, []any{
			c.ID,
			listing.FullName(c.FirstName, c.LastName),
			c.CleanerEmail,
			c.PhoneNo,
			c.City,
			c.AvailabilityStatus,
			c.PricePerHour,
			c.OnboardingCompleted,
			c.BankVerified,
			formatTime(c.CreatedAt),
		})
	}
	return rows
}

func BookingRows(bookings []models.Booking) [][]any {
	rows := [][]any{{"ID", "Date", "Time", "Service", "Client", "Cleaner", "Status", "Cleaning status", "Payment", "Amount", "Total"}}
	for _, b := range bookings {
		cleaner := ""
		if b.Cleaner != nil {
			cleaner = listing.FullName(b.Cleaner.FirstName, b.Cleaner.LastName)
		}
		cleaning := ""
		if b.CleaningStatus != nil {
			cleaning = *b.CleaningStatus
		}
		rows = append(rows, []any{
			b.ID,
			b.Date,
			b.Time,
			b.ServiceType,
			listing.FullName(b.Client.FirstName, b.Client.LastName),
			cleaner,
			b.Status,
			cleaning,
			b.Payment.Status,
			b.Payment.Amount,
			b.GrandTotal,
		})
	}
	return rows
}

func PriceRequestRows(requests []models.PriceRequest) [][]any {
	rows := [][]any{{"ID", "Cleaner", "Current", "Requested", "Status", "Requested at", "Reviewed at", "Notes"}}
	for _, r := range requests {
		name := r.CleanerID
		if r.Cleaner != nil {
			name = listing.FullName(r.Cleaner.FirstName, r.Cleaner.LastName)
		}
		var current any = "N/A"
		if r.CurrentPrice != nil {
			current = *r.CurrentPrice
		}
		reviewed := ""
		if r.ReviewedAt != nil {
			reviewed = formatTime(*r.ReviewedAt)
		}
		rows = append(rows, []any{
			r.ID, name, current, r.PricePerHour, r.Status, formatTime(r.RequestedAt), reviewed, r.Notes,
		})
	}
	return rows
}

func PaymentRequestRows(requests []models.PaymentRequest) [][]any {
	rows := [][]any{{"ID", "Client", "Booking", "Amount", "Status", "Method", "Created"}}
	for _, r := range requests {
		client := r.ClientID
		if r.Client != nil {
			client = listing.FullName(r.Client.FirstName, r.Client.LastName)
		}
		rows = append(rows, []any{
			r.ID, client, r.BookingID, r.Amount, r.Status, r.PaymentMethod, formatTime(r.CreatedAt),
		})
	}
	return rows
}
