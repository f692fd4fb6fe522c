package model

import "time"

// Keys of the per-browser session context.
const (
	StorageKeyToken       = "token"
	StorageKeyDisplayName = "display_name"
)

// StorageEntry is a single value held in a browser's session context.
type StorageEntry struct {
	BrowserID string
	Key       string
	Value     string
	UpdatedAt time.Time
}
