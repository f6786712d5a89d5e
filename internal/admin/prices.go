package admin

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"cleanadmin/internal/models"
)

// PriceFallback selects what PriceRequests does when the backend has no
// price-request endpoint.
type PriceFallback string

const (
	// FallbackNone surfaces the backend error.
	FallbackNone PriceFallback = "none"
	// FallbackEmpty reports no requests.
	FallbackEmpty PriceFallback = "empty"
	// FallbackSynthesize derives placeholder requests from the cleaner list.
	FallbackSynthesize PriceFallback = "synthesize"
)

const (
	synthesizedCount    = 5
	defaultCleanerPrice = 25.0
	synthesizedNote     = "Requesting price increase due to experience"
)

var synthesizedStatuses = [synthesizedCount]string{
	models.PriceStatusPending,
	models.PriceStatusPending,
	models.PriceStatusPending,
	models.PriceStatusApproved,
	models.PriceStatusRejected,
}

type PriceOptions struct {
	Fallback PriceFallback
	// Now is the clock used for synthesized timestamps. Defaults to time.Now.
	Now func() time.Time
}

// PriceRequests handles cleaner price-change requests and per-cleaner rates.
type PriceRequests struct {
	res      resource[models.PriceRequest, models.PriceReview]
	cleaners *Cleaners
	fallback PriceFallback
	now      func() time.Time
}

func newPriceRequests(c *Client, cleaners *Cleaners, opts PriceOptions) *PriceRequests {
	if opts.Fallback == "" {
		opts.Fallback = FallbackNone
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &PriceRequests{
		res: resource[models.PriceRequest, models.PriceReview]{
			c: c, name: "price_requests", path: priceRequestsPath, listKey: "data", itemKey: "data",
		},
		cleaners: cleaners,
		fallback: opts.Fallback,
		now:      opts.Now,
	}
}

func (p *PriceRequests) List(ctx context.Context) ([]models.PriceRequest, error) {
	items, err := p.res.List(ctx)
	if err == nil {
		return items, nil
	}
	return p.fallbackList(ctx, err)
}

// ListPending asks the backend for pending requests and, when the filtered
// endpoint is missing, filters the full list instead.
func (p *PriceRequests) ListPending(ctx context.Context) ([]models.PriceRequest, error) {
	items, err := p.res.list(ctx, url.Values{"status": {models.PriceStatusPending}})
	if err == nil {
		return items, nil
	}
	if !IsNotFound(err) || p.fallback == FallbackNone {
		return nil, err
	}
	all, err := p.List(ctx)
	if err != nil {
		return nil, err
	}
	pending := make([]models.PriceRequest, 0, len(all))
	for _, pr := range all {
		if pr.Status == models.PriceStatusPending {
			pending = append(pending, pr)
		}
	}
	return pending, nil
}

func (p *PriceRequests) Get(ctx context.Context, id string) (*models.PriceRequest, error) {
	return p.res.Get(ctx, id)
}

// Review approves or rejects a pending request. Requests that were already
// reviewed are rejected without contacting the backend.
func (p *PriceRequests) Review(ctx context.Context, current models.PriceRequest, review models.PriceReview) (*models.PriceRequest, error) {
	if current.ID == "" {
		return nil, models.Invalid("id", "is required")
	}
	if current.Reviewed() {
		return nil, models.Invalid("status", "price request %s was already %s", current.ID, current.Status)
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}
	var env envelope
	if err := p.res.c.put(ctx, p.res.name, p.res.itemPath(current.ID)+"/review", review, &env); err != nil {
		return nil, err
	}
	return p.res.item(env)
}

// CleanerPrice returns the hourly rate of one cleaner.
func (p *PriceRequests) CleanerPrice(ctx context.Context, cleanerID string) (float64, error) {
	if cleanerID == "" {
		return 0, models.Invalid("cleanerId", "is required")
	}
	var env envelope
	if err := p.res.c.get(ctx, "cleaner_price", cleanerPricePath(cleanerID), nil, &env); err != nil {
		return 0, err
	}
	price, err := unwrap[models.CleanerPrice](env, "data")
	if err != nil {
		return 0, err
	}
	return price.PricePerHour, nil
}

func (p *PriceRequests) SetCleanerPrice(ctx context.Context, cleanerID string, pricePerHour float64) (*models.Cleaner, error) {
	if cleanerID == "" {
		return nil, models.Invalid("cleanerId", "is required")
	}
	if pricePerHour <= 0 {
		return nil, models.Invalid("pricePerHour", "must be positive")
	}
	var env envelope
	body := models.CleanerPrice{PricePerHour: pricePerHour}
	if err := p.res.c.put(ctx, "cleaner_price", cleanerPricePath(cleanerID), body, &env); err != nil {
		return nil, err
	}
	cleaner, err := unwrap[models.Cleaner](env, "data")
	if err != nil {
		return nil, err
	}
	return &cleaner, nil
}

func cleanerPricePath(cleanerID string) string {
	return cleanersPath + "/" + url.PathEscape(cleanerID) + "/price"
}

func (p *PriceRequests) fallbackList(ctx context.Context, cause error) ([]models.PriceRequest, error) {
	if p.fallback == FallbackNone {
		return nil, cause
	}
	// Only a missing endpoint or an unreachable backend triggers the fallback.
	if IsRequestError(cause) && !IsNotFound(cause) {
		return nil, cause
	}
	if errors.Is(cause, context.Canceled) {
		return nil, cause
	}

	log := p.res.c.log.Info().Err(cause).Str("fallback", string(p.fallback))
	if p.fallback == FallbackEmpty {
		log.Msg("price requests not available")
		return []models.PriceRequest{}, nil
	}

	cleaners, err := p.cleaners.List(ctx)
	if err != nil {
		log.Msg("price requests not available")
		p.res.c.log.Debug().Err(err).Msg("cleaner list for price synthesis failed")
		return []models.PriceRequest{}, nil
	}
	log.Int("cleaners", len(cleaners)).Msg("synthesizing price requests")
	return SynthesizePriceRequests(cleaners, p.now()), nil
}

// SynthesizePriceRequests builds placeholder requests for the first five
// cleaners. The output depends only on its inputs.
func SynthesizePriceRequests(cleaners []models.Cleaner, now time.Time) []models.PriceRequest {
	n := min(len(cleaners), synthesizedCount)
	out := make([]models.PriceRequest, 0, n)
	for i := 0; i < n; i++ {
		c := cleaners[i]
		current := c.PricePerHour
		if current == 0 {
			current = defaultCleanerPrice
		}
		first, last := c.FirstName, c.LastName
		if first == "" {
			first = "Unknown"
		}
		if last == "" {
			last = "Cleaner"
		}

		pr := models.PriceRequest{
			ID:        fmt.Sprintf("pr_%s", c.ID),
			CleanerID: c.ID,
			Cleaner: &models.CleanerRef{
				ID:           c.ID,
				CleanerEmail: c.CleanerEmail,
				FirstName:    first,
				LastName:     last,
			},
			PricePerHour: current + float64(i+1)*5,
			CurrentPrice: &current,
			Status:       synthesizedStatuses[i],
			RequestedAt:  now.Add(-time.Duration(i+1) * 24 * time.Hour),
		}
		if pr.Status != models.PriceStatusPending {
			reviewed := now.Add(-time.Duration(i) * 12 * time.Hour)
			pr.ReviewedAt = &reviewed
		}
		if i == 0 {
			pr.Notes = synthesizedNote
		}
		out = append(out, pr)
	}
	return out
}
