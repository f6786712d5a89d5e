package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"cleanadmin/internal/admin"
	"cleanadmin/internal/config"
	"cleanadmin/internal/models"
	"cleanadmin/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Backend authenticates admins. Exactly one implementation is chosen at
// startup from auth.mode.
type Backend interface {
	Login(ctx context.Context, creds models.Credentials) (*models.Session, error)
	Verify(ctx context.Context, token string) (*models.Admin, error)
}

// NewBackend returns the backend for the configured mode.
func NewBackend(mode string, api *admin.Auth, store session.Store, logger *zerolog.Logger) (Backend, error) {
	switch mode {
	case config.AuthModeReal:
		return NewHTTPBackend(api), nil
	case config.AuthModeDemo:
		return NewDemoBackend(store), nil
	case config.AuthModeOfflineFallback:
		return NewFallbackBackend(NewHTTPBackend(api), NewDemoBackend(store), logger), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", mode)
	}
}

// HTTPBackend talks to the real auth endpoints.
type HTTPBackend struct {
	api *admin.Auth
}

func NewHTTPBackend(api *admin.Auth) *HTTPBackend {
	return &HTTPBackend{api: api}
}

func (b *HTTPBackend) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	return b.api.Login(ctx, creds)
}

func (b *HTTPBackend) Verify(ctx context.Context, token string) (*models.Admin, error) {
	a, err := b.api.Verify(ctx, token)
	if admin.IsUnauthorized(err) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return a, err
}

const (
	demoTokenPrefix = "mock_token_"
	demoAdminID     = "admin_001"
)

// DemoBackend accepts any credentials and issues local tokens. It never
// touches the network.
type DemoBackend struct {
	store session.Store
	now   func() time.Time
}

func NewDemoBackend(store session.Store) *DemoBackend {
	return &DemoBackend{store: store, now: time.Now}
}

func (b *DemoBackend) Login(_ context.Context, creds models.Credentials) (*models.Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return &models.Session{
		Token: fmt.Sprintf("%s%d_%s", demoTokenPrefix, b.now().UnixMilli(), suffix),
		Admin: models.Admin{
			ID:    demoAdminID,
			Email: creds.Email,
			Name:  displayName(creds.Email),
			Role:  models.RoleAdmin,
		},
	}, nil
}

// Verify accepts locally issued tokens as long as an admin is stored.
func (b *DemoBackend) Verify(ctx context.Context, token string) (*models.Admin, error) {
	if !IsDemoToken(token) {
		return nil, ErrInvalidToken
	}
	stored, ok, err := session.Admin(ctx, b.store)
	if err != nil {
		return nil, fmt.Errorf("read stored admin: %w", err)
	}
	if !ok {
		return nil, ErrInvalidToken
	}
	return stored, nil
}

// IsDemoToken reports whether token was issued by DemoBackend.
func IsDemoToken(token string) bool {
	return strings.HasPrefix(token, demoTokenPrefix)
}

// displayName capitalizes the local part of an email address.
func displayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	r, size := utf8.DecodeRuneInString(local)
	if r == utf8.RuneError {
		return local
	}
	return string(unicode.ToUpper(r)) + local[size:]
}

// FallbackBackend tries primary first and falls back to the demo backend on
// any failure other than bad input.
type FallbackBackend struct {
	primary  Backend
	fallback Backend
	logger   zerolog.Logger
}

func NewFallbackBackend(primary, fallback Backend, logger *zerolog.Logger) *FallbackBackend {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &FallbackBackend{primary: primary, fallback: fallback, logger: l}
}

func (b *FallbackBackend) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	s, err := b.primary.Login(ctx, creds)
	if err == nil || models.IsValidation(err) || errors.Is(err, context.Canceled) {
		return s, err
	}
	b.logger.Warn().Err(err).Msg("backend login unavailable, issuing local demo token")
	return b.fallback.Login(ctx, creds)
}

func (b *FallbackBackend) Verify(ctx context.Context, token string) (*models.Admin, error) {
	a, err := b.primary.Verify(ctx, token)
	if err == nil || models.IsValidation(err) || errors.Is(err, context.Canceled) {
		return a, err
	}
	b.logger.Warn().Err(err).Msg("backend verify unavailable, checking local demo token")
	return b.fallback.Verify(ctx, token)
}
