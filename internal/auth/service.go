package auth

import (
	"context"
	"time"

	"cleanadmin/internal/models"
	"cleanadmin/internal/session"

	"github.com/golang-jwt/jwt/v5"
)

// Service validates input before delegating to the backend.
type Service struct {
	backend Backend
	store   session.Store
}

func NewService(backend Backend, store session.Store) *Service {
	return &Service{backend: backend, store: store}
}

// Login authenticates without persisting anything.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Session, error) {
	creds := models.Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return s.backend.Login(ctx, creds)
}

func (s *Service) VerifyToken(ctx context.Context, token string) (*models.Admin, error) {
	if token == "" {
		return nil, models.Invalid("token", "No token provided")
	}
	return s.backend.Verify(ctx, token)
}

// Logout drops the stored session. The backend is not notified.
func (s *Service) Logout(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// Opaque tokens report no expiry.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
