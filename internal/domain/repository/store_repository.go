package repository

import (
	"context"

	"github.com/sangkips/ledgerbook/internal/domain/entity"
)

// SessionRepository persists the one cached session
type SessionRepository interface {
	// Get returns the cached session, or nil when nobody is logged in
	Get(ctx context.Context) (*entity.Session, error)
	Save(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context) error
}

// PreferencesRepository persists the standing preferences row
type PreferencesRepository interface {
	// Get returns the stored preferences, or nil when none were saved yet
	Get(ctx context.Context) (*entity.Preferences, error)
	Save(ctx context.Context, prefs *entity.Preferences) error
}

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and endpoint
	GetByKey(ctx context.Context, key, endpoint string) (*entity.IdempotencyKey, error)
	// Reserve inserts ikey unless an unexpired row with the same key and
	// endpoint exists; reserved reports whether this call got the key
	Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (reserved bool, err error)
	// Complete records the response for a reserved key
	Complete(ctx context.Context, key, endpoint string, code int, body string) error
	// Release drops a reservation that never completed
	Release(ctx context.Context, key, endpoint string) error
	// DeleteExpired removes expired idempotency keys (for cleanup)
	DeleteExpired(ctx context.Context) (int64, error)
}
