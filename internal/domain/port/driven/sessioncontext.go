package driven

import "context"

// SessionContext is the credential state of one browser (or one CLI user).
// The authenticated client reads the token from it before every request and
// clears it when the backend reports the session as expired.
//
// Missing values are returned as ("", nil).
type SessionContext interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	DisplayName(ctx context.Context) (string, error)
	SetDisplayName(ctx context.Context, name string) error
	// Clear removes both the token and the cached display name.
	Clear(ctx context.Context) error
}
