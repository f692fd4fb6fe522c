package web

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/ericfisherdev/semefopanel/internal/application"
	"github.com/ericfisherdev/semefopanel/internal/domain/port/driven"
)

const browserCookieName = "semefo_browser"

// browserCookieMaxAge keeps the browser id around for a year; stored values
// are purged independently by the session sweeper.
const browserCookieMaxAge = 365 * 24 * 60 * 60

// navState is the location of the request being served and the redirect the
// backend client asked for while serving it.
type navState struct {
	mu      sync.Mutex
	current string
	target  string
}

type navStateKey struct{}

func withNavState(ctx context.Context, current string) (context.Context, *navState) {
	st := &navState{current: current}
	return context.WithValue(ctx, navStateKey{}, st), st
}

func navStateFrom(ctx context.Context) *navState {
	st, _ := ctx.Value(navStateKey{}).(*navState)
	return st
}

// Target returns the path the client navigated to, or "".
func (s *navState) Target() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// Compile-time interface satisfaction check.
var _ driven.Navigator = Navigator{}

// Navigator implements driven.Navigator for server-rendered pages: the current
// path is the path of the request in flight, and navigating records a redirect
// that the page handler issues instead of rendering.
type Navigator struct{}

func (Navigator) CurrentPath(ctx context.Context) string {
	if st := navStateFrom(ctx); st != nil {
		return st.current
	}
	return ""
}

func (Navigator) NavigateTo(ctx context.Context, path string) {
	st := navStateFrom(ctx)
	if st == nil {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.target = path
}

// BindBrowser returns r bound to the browser named by its cookie. Requests
// without a valid cookie are returned unchanged and carry no session.
func BindBrowser(r *http.Request) *http.Request {
	cookie, err := r.Cookie(browserCookieName)
	if err != nil {
		return r
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return r
	}
	return r.WithContext(application.WithBrowserID(r.Context(), id.String()))
}

// browserID returns the id from the browser cookie, issuing a new one when the
// cookie is missing or malformed.
func (h *Handler) browserID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(browserCookieName); err == nil {
		if id, err := uuid.Parse(cookie.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     browserCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   browserCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cookieSecure,
	})
	return id
}

// withBrowser binds the request to its browser session and navigation state.
func (h *Handler) withBrowser(w http.ResponseWriter, r *http.Request) (*http.Request, *navState) {
	ctx := application.WithBrowserID(r.Context(), h.browserID(w, r))
	ctx, st := withNavState(ctx, r.URL.Path)
	return r.WithContext(ctx), st
}
