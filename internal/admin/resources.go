package admin

import (
	"context"

	"cleanadmin/internal/models"
)

// Backend paths. Bookings live under a second /api segment on the backend.
const (
	clientsPath         = "/admin/clients"
	cleanersPath        = "/admin/cleaners"
	bookingsPath        = "/api/admin/bookings"
	paymentRequestsPath = "/admin/payment-requests"
	priceRequestsPath   = "/admin/price-requests"
	checkInPath         = "/admin/bookings/check-in"
	checkOutPath        = "/admin/bookings/check-out"
	analyticsPath       = "/admin/analytics"
)

type Clients struct {
	resource[models.Client, models.ClientUpdate]
}

type Cleaners struct {
	resource[models.Cleaner, models.CleanerUpdate]
}

type Bookings struct {
	resource[models.Booking, models.BookingUpdate]
}

// PaymentRequests manages payment requests sent to clients.
type PaymentRequests struct {
	resource[models.PaymentRequest, models.PaymentRequestUpdate]
}

// Send creates a new payment request for a booking.
func (p *PaymentRequests) Send(ctx context.Context, req models.NewPaymentRequest) (*models.PaymentRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var env envelope
	if err := p.c.post(ctx, p.name, p.path, req, &env); err != nil {
		return nil, err
	}
	return p.item(env)
}

// UpdateStatus changes the status or payment method of a request.
func (p *PaymentRequests) UpdateStatus(ctx context.Context, id string, upd models.PaymentRequestUpdate) (*models.PaymentRequest, error) {
	return p.Update(ctx, id, upd)
}

// Visits records cleaner arrival and departure for a booking.
type Visits struct {
	c *Client
}

func (v *Visits) CheckIn(ctx context.Context, payload models.CheckInOutPayload) (*models.CheckInOutResult, error) {
	return v.send(ctx, checkInPath, payload)
}

func (v *Visits) CheckOut(ctx context.Context, payload models.CheckInOutPayload) (*models.CheckInOutResult, error) {
	return v.send(ctx, checkOutPath, payload)
}

func (v *Visits) send(ctx context.Context, path string, payload models.CheckInOutPayload) (*models.CheckInOutResult, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	var res models.CheckInOutResult
	if err := v.c.post(ctx, "visits", path, payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// API groups every resource client over one shared Client.
type API struct {
	Clients         *Clients
	Cleaners        *Cleaners
	Bookings        *Bookings
	PaymentRequests *PaymentRequests
	PriceRequests   *PriceRequests
	Visits          *Visits
	Analytics       *Analytics
}

func NewAPI(c *Client, prices PriceOptions) *API {
	cleaners := &Cleaners{resource[models.Cleaner, models.CleanerUpdate]{
		c: c, name: "cleaners", path: cleanersPath, listKey: "data", itemKey: "data",
	}}
	return &API{
		Clients: &Clients{resource[models.Client, models.ClientUpdate]{
			c: c, name: "clients", path: clientsPath, listKey: "data", itemKey: "data",
		}},
		Cleaners: cleaners,
		Bookings: &Bookings{resource[models.Booking, models.BookingUpdate]{
			c: c, name: "bookings", path: bookingsPath, listKey: "bookings", itemKey: "booking",
		}},
		PaymentRequests: &PaymentRequests{resource[models.PaymentRequest, models.PaymentRequestUpdate]{
			c: c, name: "payment_requests", path: paymentRequestsPath, listKey: "data", itemKey: "data",
		}},
		PriceRequests: newPriceRequests(c, cleaners, prices),
		Visits:        &Visits{c: c},
		Analytics:     &Analytics{c: c},
	}
}
