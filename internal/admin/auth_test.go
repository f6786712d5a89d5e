package admin

import (
	"context"
	"net/http"
	"testing"

	"cleanadmin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthLoginAndVerify(t *testing.T) {
	fb := &fakeBackend{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/auth/login", func(w http.ResponseWriter, r *http.Request) {
		fb.record(r)
		writeJSON(w, map[string]any{"data": map[string]any{
			"token": "jwt-abc",
			"admin": map[string]any{"_id": "a1", "email": "ops@example.com", "name": "Ops", "role": "superadmin"},
		}})
	})
	mux.HandleFunc("GET /admin/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer jwt-abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, map[string]any{"data": map[string]any{"_id": "a1", "email": "ops@example.com", "role": "superadmin"}})
	})
	srvAPI := newTestAPI(t, mux, PriceOptions{})
	auth := NewAuth(srvAPI.Clients.c)
	ctx := context.Background()

	sess, err := auth.Login(ctx, models.Credentials{Email: "ops@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", sess.Token)
	assert.Equal(t, models.RoleSuperAdmin, sess.Admin.Role)
	assert.Equal(t, map[string]any{"email": "ops@example.com", "password": "pw"}, fb.body("POST /admin/auth/login"))

	admin, err := auth.Verify(ctx, "jwt-abc")
	require.NoError(t, err)
	assert.Equal(t, "a1", admin.ID)

	_, err = auth.Verify(ctx, "stale")
	assert.True(t, IsUnauthorized(err))
}

func TestAuthValidation(t *testing.T) {
	var calls int
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { calls++ })
	auth := NewAuth(newTestAPI(t, mux, PriceOptions{}).Clients.c)

	_, err := auth.Login(context.Background(), models.Credentials{Email: "ops@example.com"})
	require.Error(t, err)
	assert.Equal(t, "Email and password are required", err.Error())

	_, err = auth.Verify(context.Background(), "")
	assert.True(t, models.IsValidation(err))
	assert.Zero(t, calls)
}
