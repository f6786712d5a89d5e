package admin

import (
	"context"
	"errors"

	"cleanadmin/internal/models"
)

const (
	loginPath  = "/admin/auth/login"
	verifyPath = "/admin/auth/verify"
)

// Auth calls the backend's admin authentication endpoints.
type Auth struct {
	c *Client
}

func NewAuth(c *Client) *Auth {
	return &Auth{c: c}
}

// Login exchanges credentials for a token and admin profile.
func (a *Auth) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	var env envelope
	if err := a.c.post(ctx, "auth", loginPath, creds, &env); err != nil {
		return nil, err
	}
	sess, err := unwrap[models.Session](env, "data")
	if err != nil {
		return nil, err
	}
	if sess.Token == "" {
		return nil, errors.New("login response carries no token")
	}
	return &sess, nil
}

// Verify resolves the admin a token belongs to.
func (a *Auth) Verify(ctx context.Context, token string) (*models.Admin, error) {
	if token == "" {
		return nil, models.Invalid("token", "No token provided")
	}
	var env envelope
	if err := a.c.get(withBearer(ctx, token), "auth", verifyPath, nil, &env); err != nil {
		return nil, err
	}
	admin, err := unwrap[models.Admin](env, "data")
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
