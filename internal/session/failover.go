package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"cleanadmin/internal/models"

	"github.com/rs/zerolog"
)

const recoveryInterval = time.Minute

// FailoverStore uses primary until it fails, then serves from fallback and
// probes primary again once a minute. Writes served by the fallback are
// copied to the primary when it recovers.
type FailoverStore struct {
	primary  Store
	fallback Store
	logger   *zerolog.Logger
	isDown   atomic.Bool
	dirty    atomic.Bool

	mu        sync.Mutex
	lastCheck time.Time
	now       func() time.Time
}

func NewFailoverStore(primary, fallback Store, logger *zerolog.Logger) *FailoverStore {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

func (f *FailoverStore) markDown(err error) {
	f.logger.Error().Err(err).Msg("primary session store failed, falling back")
	f.isDown.Store(true)
	f.mu.Lock()
	f.lastCheck = f.now()
	f.mu.Unlock()
}

// shouldProbe reports whether the primary is due for a recovery attempt.
func (f *FailoverStore) shouldProbe() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.now().Sub(f.lastCheck) <= recoveryInterval {
		return false
	}
	f.lastCheck = f.now()
	return true
}

func (f *FailoverStore) Save(ctx context.Context, s models.Session) error {
	if !f.isDown.Load() {
		err := f.primary.Save(ctx, s)
		if err == nil || models.IsValidation(err) {
			return err
		}
		f.markDown(err)
	}
	if err := f.fallback.Save(ctx, s); err != nil {
		return err
	}
	f.dirty.Store(true)
	return nil
}

func (f *FailoverStore) Load(ctx context.Context) (*models.Session, error) {
	if !f.isDown.Load() {
		s, err := f.primary.Load(ctx)
		if err == nil {
			return s, nil
		}
		f.markDown(err)
	}

	if f.shouldProbe() {
		if s, ok := f.recover(ctx); ok {
			return s, nil
		}
	}

	return f.fallback.Load(ctx)
}

// recover brings the primary back into use. When writes landed on the
// fallback during the outage, the fallback's session replaces whatever the
// primary still holds.
func (f *FailoverStore) recover(ctx context.Context) (*models.Session, bool) {
	if !f.dirty.Load() {
		s, err := f.primary.Load(ctx)
		if err != nil {
			return nil, false
		}
		f.logger.Info().Msg("primary session store recovered")
		f.isDown.Store(false)
		return s, true
	}

	s, err := f.fallback.Load(ctx)
	if err != nil {
		return nil, false
	}
	if s == nil {
		err = f.primary.Clear(ctx)
	} else {
		err = f.primary.Save(ctx, *s)
	}
	if err != nil {
		f.logger.Warn().Err(err).Msg("primary session store still unavailable")
		return nil, false
	}

	f.logger.Info().Msg("primary session store recovered, replayed fallback session")
	f.dirty.Store(false)
	f.isDown.Store(false)
	return s, true
}

func (f *FailoverStore) Clear(ctx context.Context) error {
	fbErr := f.fallback.Clear(ctx)
	if !f.isDown.Load() {
		err := f.primary.Clear(ctx)
		if err == nil {
			return fbErr
		}
		f.markDown(err)
	}
	// The primary still holds the old session until it recovers.
	if fbErr == nil {
		f.dirty.Store(true)
	}
	return fbErr
}
