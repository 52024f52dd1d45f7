package directory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"arena/core/internal/repository"
)

const userKeyPrefix = "directory:user:"

type cachedDirectory struct {
	next   UserDirectory
	store  repository.StateStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedDirectory keeps resolved user records in store for ttl. Cache failures fall through
// to next; only successful lookups are cached.
func NewCachedDirectory(next UserDirectory, store repository.StateStore, ttl time.Duration, logger *zap.Logger) UserDirectory {
	return &cachedDirectory{next: next, store: store, ttl: ttl, logger: logger}
}

func (d *cachedDirectory) GetUser(ctx context.Context, id uuid.UUID) (*UserRecord, error) {
	key := userKeyPrefix + id.String()

	raw, err := d.store.Get(ctx, key)
	switch {
	case err != nil:
		d.logger.Warn("directory cache read failed", zap.String("key", key), zap.Error(err))
	case raw != nil:
		var user UserRecord
		if err := json.Unmarshal(raw, &user); err == nil {
			return &user, nil
		}
		_ = d.store.Delete(ctx, key)
	}

	user, err := d.next.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(user); err == nil {
		if err := d.store.Set(ctx, key, raw, d.ttl); err != nil {
			d.logger.Warn("directory cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return user, nil
}

var _ UserDirectory = (*cachedDirectory)(nil)
