// Package session persists the authenticated admin session. Every store
// writes and clears the token and the admin profile together, so a reader
// never observes one without the other.
package session

import (
	"context"
	"strings"

	"cleanadmin/internal/models"
)

// Store is a durable holder for at most one session.
type Store interface {
	// Save replaces the stored session.
	Save(ctx context.Context, s models.Session) error
	// Load returns the stored session, or nil when none (or only part of
	// one) is present.
	Load(ctx context.Context) (*models.Session, error)
	// Clear removes the session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// Token returns the persisted bearer token.
func Token(ctx context.Context, st Store) (string, bool, error) {
	s, err := st.Load(ctx)
	if err != nil || s == nil {
		return "", false, err
	}
	return s.Token, true, nil
}

// Admin returns the persisted admin profile.
func Admin(ctx context.Context, st Store) (*models.Admin, bool, error) {
	s, err := st.Load(ctx)
	if err != nil || s == nil {
		return nil, false, err
	}
	admin := s.Admin
	return &admin, true, nil
}

func validate(s models.Session) error {
	if strings.TrimSpace(s.Token) == "" {
		return models.Invalid("token", "is required")
	}
	if s.Admin.ID == "" && s.Admin.Email == "" {
		return models.Invalid("admin", "is required")
	}
	return nil
}

// complete reports whether a decoded session carries both halves.
func complete(s models.Session) bool {
	return s.Token != "" && (s.Admin.ID != "" || s.Admin.Email != "")
}
