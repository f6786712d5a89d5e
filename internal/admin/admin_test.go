package admin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"cleanadmin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records the last request body per route and serves canned
// envelopes.
type fakeBackend struct {
	mu     sync.Mutex
	bodies map[string][]byte
	header http.Header
}

func (f *fakeBackend) record(r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bodies == nil {
		f.bodies = map[string][]byte{}
	}
	f.bodies[r.Method+" "+r.URL.Path] = body
	f.header = r.Header.Clone()
}

func (f *fakeBackend) body(key string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out map[string]any
	_ = json.Unmarshal(f.bodies[key], &out)
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestAPI(t *testing.T, mux *http.ServeMux, opts PriceOptions) *API {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewAPI(NewClient(srv.URL, 0, nil), opts)
}

func TestClientsListAndGet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/clients", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"success": true, "data": []map[string]any{
			{"_id": "c1", "clientEmail": "a@x.io", "firstName": "Ann", "City": "Toronto"},
			{"_id": "c2", "clientEmail": "b@x.io"},
		}})
	})
	mux.HandleFunc("GET /admin/clients/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"data": map[string]any{"_id": r.PathValue("id"), "clientEmail": "a@x.io"}})
	})
	api := newTestAPI(t, mux, PriceOptions{})

	clients, err := api.Clients.List(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "Toronto", clients[0].City)
	assert.Equal(t, "c2", clients[1].ID)

	client, err := api.Clients.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", client.ID)
}

func TestListMissingKeyIsEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/cleaners", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"success": true})
	})
	api := newTestAPI(t, mux, PriceOptions{})

	cleaners, err := api.Cleaners.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, cleaners)
	assert.Empty(t, cleaners)
}

func TestBookingsUseBookingEnvelope(t *testing.T) {
	fb := &fakeBackend{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/admin/bookings", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"bookings": []map[string]any{
			{"_id": "b1", "status": "new", "cleaningStatus": nil, "cleaner": nil, "client": map[string]any{"_id": "c1"}},
		}})
	})
	mux.HandleFunc("PUT /api/admin/bookings/{id}", func(w http.ResponseWriter, r *http.Request) {
		fb.record(r)
		writeJSON(w, map[string]any{"booking": map[string]any{
			"_id": r.PathValue("id"), "status": "accepted", "cleaningStatus": "in_progress",
			"payment": map[string]any{"amount": 80, "method": "card", "status": "paid"},
		}})
	})
	api := newTestAPI(t, mux, PriceOptions{})

	bookings, err := api.Bookings.List(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Nil(t, bookings[0].Cleaner)
	assert.Nil(t, bookings[0].CleaningStatus)

	status := models.BookingStatusAccepted
	updated, err := api.Bookings.Update(context.Background(), "b1", models.BookingUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "accepted", updated.Status)
	require.NotNil(t, updated.CleaningStatus)
	assert.Equal(t, "in_progress", *updated.CleaningStatus)
	assert.Equal(t, "paid", updated.Payment.Status)

	sent := fb.body("PUT /api/admin/bookings/b1")
	assert.Equal(t, map[string]any{"status": "accepted"}, sent)
}

func TestUpdateValidationNeverReachesNetwork(t *testing.T) {
	var calls int
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, map[string]any{})
	})
	api := newTestAPI(t, mux, PriceOptions{})
	ctx := context.Background()

	_, err := api.Clients.Update(ctx, "c1", models.ClientUpdate{})
	assert.True(t, models.IsValidation(err))

	bad := "done"
	_, err = api.Bookings.Update(ctx, "b1", models.BookingUpdate{CleaningStatus: &bad})
	assert.True(t, models.IsValidation(err))

	_, err = api.Cleaners.Get(ctx, "")
	assert.True(t, models.IsValidation(err))

	_, err = api.PaymentRequests.Send(ctx, models.NewPaymentRequest{ClientID: "c1"})
	assert.True(t, models.IsValidation(err))

	_, err = api.Visits.CheckIn(ctx, models.CheckInOutPayload{})
	assert.True(t, models.IsValidation(err))

	assert.Zero(t, calls)
}

func TestDeleteTwiceReturnsRequestError(t *testing.T) {
	var mu sync.Mutex
	deleted := map[string]bool{}
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /admin/cleaners/{id}", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		id := r.PathValue("id")
		if deleted[id] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		deleted[id] = true
		writeJSON(w, map[string]any{"success": true})
	})
	api := newTestAPI(t, mux, PriceOptions{})

	require.NoError(t, api.Cleaners.Delete(context.Background(), "k1"))

	err := api.Cleaners.Delete(context.Background(), "k1")
	require.Error(t, err)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	assert.Equal(t, "API Error: 404 Not Found", err.Error())
	assert.Equal(t, http.MethodDelete, reqErr.Method)
	assert.True(t, IsNotFound(err))
}

func TestServerErrorSurfacesAsRequestError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/payment-requests", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	api := newTestAPI(t, mux, PriceOptions{})

	items, err := api.PaymentRequests.List(context.Background())
	assert.Nil(t, items)
	assert.EqualError(t, err, "API Error: 500 Internal Server Error")
	assert.False(t, IsUnauthorized(err))
}

func TestNetworkFailureIsNotRequestError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	api := NewAPI(NewClient(url, 0, nil), PriceOptions{})
	_, err := api.Clients.List(context.Background())
	require.Error(t, err)
	assert.False(t, IsRequestError(err))
}

func TestPaymentRequestsSendAndUpdate(t *testing.T) {
	fb := &fakeBackend{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/payment-requests", func(w http.ResponseWriter, r *http.Request) {
		fb.record(r)
		writeJSON(w, map[string]any{"data": map[string]any{"_id": "p1", "clientId": "c1", "bookingId": "b1", "amount": 40, "status": "pending"}})
	})
	mux.HandleFunc("PUT /admin/payment-requests/{id}", func(w http.ResponseWriter, r *http.Request) {
		fb.record(r)
		writeJSON(w, map[string]any{"data": map[string]any{"_id": r.PathValue("id"), "status": "completed"}})
	})
	api := newTestAPI(t, mux, PriceOptions{})
	ctx := context.Background()

	created, err := api.PaymentRequests.Send(ctx, models.NewPaymentRequest{ClientID: "c1", BookingID: "b1", Amount: 40})
	require.NoError(t, err)
	assert.Equal(t, "p1", created.ID)
	assert.Equal(t, "application/json", fb.header.Get("Content-Type"))
	assert.NotEmpty(t, fb.header.Get("X-Request-ID"))

	status := models.PaymentRequestCompleted
	updated, err := api.PaymentRequests.UpdateStatus(ctx, "p1", models.PaymentRequestUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)
	assert.Equal(t, map[string]any{"status": "completed"}, fb.body("PUT /admin/payment-requests/p1"))
}

func TestCheckInReturnsRawBody(t *testing.T) {
	fb := &fakeBackend{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/bookings/check-in", func(w http.ResponseWriter, r *http.Request) {
		fb.record(r)
		writeJSON(w, map[string]any{
			"success": true,
			"message": "Checked in",
			"booking": map[string]any{"_id": "b1", "checkIn": true, "checkInTime": "2025-01-02T09:00:00Z"},
		})
	})
	api := newTestAPI(t, mux, PriceOptions{})

	res, err := api.Visits.CheckIn(context.Background(), models.CheckInOutPayload{
		BookingID: "b1",
		Location:  &models.GeoPoint{Lat: 43.6, Lng: -79.4},
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, res.Booking.CheckIn)
	require.NotNil(t, res.Booking.CheckInTime)

	sent := fb.body("POST /admin/bookings/check-in")
	assert.Equal(t, "b1", sent["bookingId"])
	assert.Contains(t, sent, "location")
}

func TestBearerTokenAttached(t *testing.T) {
	fb := &fakeBackend{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/clients", func(w http.ResponseWriter, r *http.Request) {
		fb.record(r)
		writeJSON(w, map[string]any{"data": []any{}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL+"/", 0, nil)
	client.UseToken(func(context.Context) string { return "tok" })
	_, err := NewAPI(client, PriceOptions{}).Clients.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", fb.header.Get("Authorization"))
}
