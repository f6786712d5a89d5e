package session

import (
	"fmt"
	"io"

	"cleanadmin/internal/config"

	"github.com/rs/zerolog"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the store selected by cfg.Session.Backend. A redis store is
// wrapped in a FailoverStore backed by memory. The returned closer releases
// the underlying connection.
func Open(cfg *config.Config, logger *zerolog.Logger) (Store, io.Closer, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendFile:
		return NewFileStore(cfg.Session.Path), nopCloser{}, nil
	case config.SessionBackendSQLite:
		st, err := NewSQLiteStore(cfg.Session.Path)
		if err != nil {
			return nil, nil, err
		}
		return st, st, nil
	case config.SessionBackendRedis:
		client := NewRedisClient(cfg.Redis)
		primary := NewRedisStore(client, cfg.Session.RedisKeyPrefix, cfg.Session.TTL())
		return NewFailoverStore(primary, NewMemoryStore(), logger), client, nil
	case config.SessionBackendMemory:
		return NewMemoryStore(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
