package semefo

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ericfisherdev/semefopanel/internal/domain/port/driven"
)

// LoginPath is the view the client navigates to when the session expires.
const LoginPath = "/login"

// BearerToken attaches "Authorization: Bearer <token>" when the session
// context holds a token. Without a token the request goes out unauthenticated.
func BearerToken(session driven.SessionContext) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			token, err := session.Token(req.Context())
			if err != nil {
				closeRequestBody(req)
				return nil, fmt.Errorf("reading session token: %w", err)
			}
			if token == "" {
				return next.RoundTrip(req)
			}

			out := req.Clone(req.Context())
			out.Header.Set("Authorization", "Bearer "+token)
			return next.RoundTrip(out)
		})
	}
}

// SessionExpiry reacts to 401 responses by clearing the session context and
// sending the navigator to loginPath. Nothing happens while the navigator is
// already on loginPath, so a failed login does not loop. The response itself
// is always passed through so the caller still sees the 401.
func SessionExpiry(session driven.SessionContext, nav driven.Navigator, loginPath string, logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(req)
			if err != nil || resp.StatusCode != http.StatusUnauthorized {
				return resp, err
			}

			ctx := req.Context()
			current := nav.CurrentPath(ctx)
			if current == loginPath {
				return resp, nil
			}

			if clearErr := session.Clear(ctx); clearErr != nil {
				logger.Error("failed to clear expired session", "error", clearErr)
			}
			nav.NavigateTo(ctx, loginPath)
			logger.Info("backend session expired", "from", current, "path", req.URL.Path)

			return resp, nil
		})
	}
}
