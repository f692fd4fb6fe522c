package driven

import (
	"context"
	"errors"
	"time"

	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

// ErrEncryptionKeyNotSet is returned when a stored value was encrypted but the
// store was opened without SEMEFO_SECRET_KEY.
var ErrEncryptionKeyNotSet = errors.New("encryption key not configured: set SEMEFO_SECRET_KEY")

// StorageStore defines the driven port for persisting per-browser session
// values. It plays the role of the browser's origin-scoped key-value storage.
type StorageStore interface {
	// Get returns ("", nil) when the key is not set.
	Get(ctx context.Context, browserID, key string) (string, error)
	Set(ctx context.Context, browserID, key, value string) error
	Delete(ctx context.Context, browserID string, keys ...string) error
	List(ctx context.Context, browserID string) ([]model.StorageEntry, error)
	// Touch marks every value of the browser as used now without changing it.
	Touch(ctx context.Context, browserID string) error
	// PurgeIdle removes every browser whose newest value is older than before
	// and returns the number of rows deleted.
	PurgeIdle(ctx context.Context, before time.Time) (int64, error)
}
