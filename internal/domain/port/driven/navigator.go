package driven

import "context"

// Navigator exposes the caller's current location and lets the client force a
// move to another view, e.g. the login page after a 401.
type Navigator interface {
	CurrentPath(ctx context.Context) string
	NavigateTo(ctx context.Context, path string)
}
