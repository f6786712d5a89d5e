package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cleanadmin/internal/config"
	"cleanadmin/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSession = models.Session{
	Token: "tok-123",
	Admin: models.Admin{ID: "admin_001", Email: "ops@example.com", Name: "Ops", Role: models.RoleAdmin},
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "test:session", time.Hour), mr
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	sqlite, err := NewSQLiteStore(filepath.Join(dir, "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })
	rs, _ := newRedisStore(t)

	return map[string]Store{
		"file":   NewFileStore(filepath.Join(dir, "nested", "session.json")),
		"sqlite": sqlite,
		"redis":  rs,
		"memory": NewMemoryStore(),
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := st.Load(ctx)
			require.NoError(t, err)
			assert.Nil(t, got)

			require.NoError(t, st.Save(ctx, testSession))

			token, ok, err := Token(ctx, st)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "tok-123", token)

			admin, ok, err := Admin(ctx, st)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, testSession.Admin, *admin)

			next := testSession
			next.Token = "tok-456"
			require.NoError(t, st.Save(ctx, next))
			token, _, err = Token(ctx, st)
			require.NoError(t, err)
			assert.Equal(t, "tok-456", token)

			require.NoError(t, st.Clear(ctx))
			_, ok, err = Token(ctx, st)
			require.NoError(t, err)
			assert.False(t, ok)
			_, ok, err = Admin(ctx, st)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, st.Clear(ctx))
		})
	}
}

func TestStoreRejectsHalfSession(t *testing.T) {
	ctx := context.Background()
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			err := st.Save(ctx, models.Session{Admin: testSession.Admin})
			assert.True(t, models.IsValidation(err))
			err = st.Save(ctx, models.Session{Token: "tok"})
			assert.True(t, models.IsValidation(err))

			got, err := st.Load(ctx)
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestRedisStorePartialStateIsAbsent(t *testing.T) {
	st, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("test:session:token", "orphan"))
	got, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, st.Save(ctx, testSession))
	assert.True(t, mr.Exists("test:session:admin"))
	assert.Equal(t, time.Hour, mr.TTL("test:session:token"))
	assert.Equal(t, time.Hour, mr.TTL("test:session:admin"))

	mr.Del("test:session:admin")
	_, ok, err := Token(ctx, st)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStorePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	st := NewFileStore(path)
	require.NoError(t, st.Save(context.Background(), testSession))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	dir := t.TempDir()

	tests := []struct {
		backend string
		want    any
	}{
		{config.SessionBackendFile, &FileStore{}},
		{config.SessionBackendSQLite, &SQLiteStore{}},
		{config.SessionBackendRedis, &FailoverStore{}},
		{config.SessionBackendMemory, &MemoryStore{}},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := &config.Config{
				Session: config.SessionConfig{
					Backend:        tt.backend,
					Path:           filepath.Join(dir, tt.backend),
					RedisKeyPrefix: "open",
				},
				Redis: config.RedisConfig{Address: mr.Addr()},
			}
			st, closer, err := Open(cfg, nil)
			require.NoError(t, err)
			t.Cleanup(func() { _ = closer.Close() })
			assert.IsType(t, tt.want, st)
			require.NoError(t, st.Save(context.Background(), testSession))
		})
	}

	_, _, err = Open(&config.Config{Session: config.SessionConfig{Backend: "cookie"}}, nil)
	assert.Error(t, err)
}
