package listing

import (
	"testing"

	"cleanadmin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchClient(t *testing.T) {
	clients := []models.Client{
		{ID: "1", FirstName: "Anna", LastName: "Smith", ClientEmail: "anna@x.io"},
		{ID: "2", FirstName: "Bob", ClientEmail: "bob@SMITHS.io"},
		{ID: "3", ClientEmail: "carol@y.io"},
	}

	tests := []struct {
		q    string
		want []string
	}{
		{"", []string{"1", "2", "3"}},
		{"smith", []string{"1", "2"}},
		{"  ANNA ", []string{"1"}},
		{"y.io", []string{"3"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			var ids []string
			for _, c := range Filter(clients, MatchClient(tt.q)) {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestMatchCleanerAndBooking(t *testing.T) {
	cleaner := models.Cleaner{FirstName: "Kim", CleanerEmail: "kim@clean.io"}
	assert.True(t, MatchCleaner("CLEAN")(cleaner))
	assert.False(t, MatchCleaner("lee")(cleaner))

	booking := models.Booking{
		ServiceType: "Deep Cleaning",
		Client:      models.ClientRef{FirstName: "Anna", ClientEmail: "anna@x.io"},
	}
	assert.True(t, MatchBooking("deep")(booking))
	assert.True(t, MatchBooking("anna@")(booking))
	assert.False(t, MatchBooking("kim")(booking))
}

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	p := Paginate(items, 0, 10)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, p.Items)
	assert.Equal(t, 3, p.TotalPages)
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())

	p = Paginate(items, 2, 10)
	assert.Equal(t, []int{20, 21, 22}, p.Items)
	assert.False(t, p.HasNext())

	p = Paginate(items, 7, 10)
	assert.Equal(t, 2, p.Page, "past the end clamps to last page")
	assert.Len(t, p.Items, 3)

	p = Paginate(items, -1, 0)
	assert.Equal(t, 0, p.Page)
	assert.Equal(t, models.DefaultPerPage, p.PerPage)

	empty := Paginate([]int{}, 3, 5)
	assert.Empty(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Equal(t, 0, empty.Page)
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Anna Smith", FullName("Anna", "Smith"))
	assert.Equal(t, "Smith", FullName("", "Smith"))
	assert.Equal(t, "N/A", FullName("", ""))
}

func TestCounts(t *testing.T) {
	bookings := []models.Booking{{Status: "new"}, {Status: "accepted"}, {Status: "accepted"}, {Status: "rejected"}}
	assert.Equal(t, BookingCounts{Total: 4, New: 1, Accepted: 2, Rejected: 1}, CountBookingStatuses(bookings))

	prices := []models.PriceRequest{{Status: "pending"}, {Status: "pending"}, {Status: "approved"}}
	assert.Equal(t, PriceCounts{Pending: 2, Approved: 1}, CountPriceStatuses(prices))

	payments := []models.PaymentRequest{
		{Status: "pending", Amount: 10},
		{Status: "completed", Amount: 25.5},
		{Status: "completed", Amount: 4.5},
	}
	totals := SumPaymentRequests(payments)
	require.InDelta(t, 30.0, totals.Completed, 1e-9)
	assert.Equal(t, 10.0, totals.Pending)
}
