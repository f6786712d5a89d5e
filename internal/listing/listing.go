// Package listing holds the client-side search, paging and summary helpers
// used when rendering resource lists.
package listing

import (
	"strings"

	"cleanadmin/internal/models"
)

// Filter keeps the items for which keep returns true.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func containsFold(field, q string) bool {
	return field != "" && strings.Contains(strings.ToLower(field), q)
}

func anyContains(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if containsFold(f, q) {
			return true
		}
	}
	return false
}

// MatchClient returns a predicate over name and email. An empty query
// matches everything.
func MatchClient(q string) func(models.Client) bool {
	return func(c models.Client) bool {
		return anyContains(q, c.FirstName, c.LastName, c.ClientEmail)
	}
}

func MatchCleaner(q string) func(models.Cleaner) bool {
	return func(c models.Cleaner) bool {
		return anyContains(q, c.FirstName, c.LastName, c.CleanerEmail)
	}
}

// MatchBooking searches the service type and the booking's client.
func MatchBooking(q string) func(models.Booking) bool {
	return func(b models.Booking) bool {
		return anyContains(q, b.ServiceType, b.Client.FirstName, b.Client.LastName, b.Client.ClientEmail)
	}
}

// FullName joins the non-empty name parts, or returns "N/A".
func FullName(first, last string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{first, last} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "N/A"
	}
	return strings.Join(parts, " ")
}
