package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ericfisherdev/semefopanel/internal/domain/model"
	"github.com/ericfisherdev/semefopanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.StorageStore = (*StorageRepo)(nil)

// Stored values carry a prefix saying how they were written, so a store
// opened without a key can still serve plaintext rows and refuse encrypted ones.
const (
	plainPrefix     = "plain:"
	encryptedPrefix = "enc:"
)

// sqliteTimeFormat matches CURRENT_TIMESTAMP.
const sqliteTimeFormat = "2006-01-02 15:04:05"

// StorageRepo is the SQLite implementation of the StorageStore port interface.
// With a key, values are encrypted with AES-256-GCM before write and
// decrypted after read; without one they are stored as plaintext.
type StorageRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key; nil when encryption is disabled.
}

// NewStorageRepo creates a new StorageRepo. key must be 32 bytes for
// AES-256-GCM, or nil to store values unencrypted.
func NewStorageRepo(db *DB, key []byte) *StorageRepo {
	return &StorageRepo{db: db, key: key}
}

// Set stores or replaces one value of a browser's session context.
func (r *StorageRepo) Set(ctx context.Context, browserID, key, value string) error {
	sealed, err := r.seal(value)
	if err != nil {
		return err
	}

	const query = `INSERT OR REPLACE INTO storage (browser_id, key, value, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`
	if _, err := r.db.Writer.ExecContext(ctx, query, browserID, key, sealed); err != nil {
		return fmt.Errorf("set storage %q: %w", key, err)
	}
	return nil
}

// Get retrieves one value. Returns ("", nil) if the key is not set.
func (r *StorageRepo) Get(ctx context.Context, browserID, key string) (string, error) {
	const query = `SELECT value FROM storage WHERE browser_id = ? AND key = ?`
	var sealed string
	err := r.db.Reader.QueryRowContext(ctx, query, browserID, key).Scan(&sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get storage %q: %w", key, err)
	}

	value, err := r.open(sealed)
	if err != nil {
		return "", fmt.Errorf("open storage %q: %w", key, err)
	}
	return value, nil
}

// Delete removes the given keys. With no keys it removes every value held
// for the browser.
func (r *StorageRepo) Delete(ctx context.Context, browserID string, keys ...string) error {
	query := `DELETE FROM storage WHERE browser_id = ?`
	args := []any{browserID}

	if len(keys) > 0 {
		query += ` AND key IN (?` + strings.Repeat(", ?", len(keys)-1) + `)`
		for _, k := range keys {
			args = append(args, k)
		}
	}

	if _, err := r.db.Writer.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete storage for browser: %w", err)
	}
	return nil
}

// List returns every value held for the browser, ordered by key.
func (r *StorageRepo) List(ctx context.Context, browserID string) ([]model.StorageEntry, error) {
	const query = `SELECT key, value, updated_at FROM storage WHERE browser_id = ? ORDER BY key`
	rows, err := r.db.Reader.QueryContext(ctx, query, browserID)
	if err != nil {
		return nil, fmt.Errorf("list storage: %w", err)
	}
	defer rows.Close()

	var entries []model.StorageEntry
	for rows.Next() {
		entry := model.StorageEntry{BrowserID: browserID}
		var sealed, updatedAt string
		if err := rows.Scan(&entry.Key, &sealed, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan storage: %w", err)
		}

		entry.Value, err = r.open(sealed)
		if err != nil {
			return nil, fmt.Errorf("open storage %q: %w", entry.Key, err)
		}

		entry.UpdatedAt, err = parseTime(updatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse updated_at for %q: %w", entry.Key, err)
		}

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate storage: %w", err)
	}

	return entries, nil
}

// Touch sets updated_at to now for every value of the browser.
func (r *StorageRepo) Touch(ctx context.Context, browserID string) error {
	const query = `UPDATE storage SET updated_at = CURRENT_TIMESTAMP WHERE browser_id = ?`
	if _, err := r.db.Writer.ExecContext(ctx, query, browserID); err != nil {
		return fmt.Errorf("touch storage: %w", err)
	}
	return nil
}

// PurgeIdle deletes every browser whose most recent write or touch is older
// than before.
func (r *StorageRepo) PurgeIdle(ctx context.Context, before time.Time) (int64, error) {
	const query = `DELETE FROM storage WHERE browser_id IN (
		SELECT browser_id FROM storage GROUP BY browser_id HAVING MAX(updated_at) < ?
	)`
	res, err := r.db.Writer.ExecContext(ctx, query, before.UTC().Format(sqliteTimeFormat))
	if err != nil {
		return 0, fmt.Errorf("purge idle storage: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge idle storage: rows affected: %w", err)
	}
	return n, nil
}

// seal encodes value for storage, encrypting it when a key is configured.
func (r *StorageRepo) seal(value string) (string, error) {
	if r.key == nil {
		return plainPrefix + value, nil
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(value), nil)
	return encryptedPrefix + base64.StdEncoding.EncodeToString(ciphertext), nil
}

// open reverses seal.
func (r *StorageRepo) open(sealed string) (string, error) {
	if plain, ok := strings.CutPrefix(sealed, plainPrefix); ok {
		return plain, nil
	}

	encoded, ok := strings.CutPrefix(sealed, encryptedPrefix)
	if !ok {
		return "", errors.New("unrecognized storage encoding")
	}
	if r.key == nil {
		return "", driven.ErrEncryptionKeyNotSet
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}

// parseTime parses the timestamp layouts SQLite hands back for DATETIME columns.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		sqliteTimeFormat,
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05",
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
