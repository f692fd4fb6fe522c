// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/semefopanel/internal/adapter/driven/semefo"
	"github.com/ericfisherdev/semefopanel/internal/application"
	"github.com/ericfisherdev/semefopanel/internal/domain/port/driven"
)

const flashKey = "flash"

// Services groups the use cases the web GUI drives.
type Services struct {
	Auth           *application.AuthService
	Dashboard      *application.DashboardService
	Planchas       *application.PlanchaService
	ServiceClients *application.ServiceClientService
}

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	svc          Services
	store        driven.StorageStore
	cookieSecure bool
	logger       *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. store keeps
// one-shot flash messages next to the browser's session values.
func NewHandler(svc Services, store driven.StorageStore, cookieSecure bool, logger *slog.Logger) *Handler {
	return &Handler{
		svc:          svc,
		store:        store,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

// page is the per-request state shared by the layout and every view.
type page struct {
	Title string
	Path  string
	CSRF  string
	User  string
	Flash string
}

// pageFunc serves one route. It returns an error instead of rendering one so
// that serve can turn a session expiry into a redirect.
type pageFunc func(w http.ResponseWriter, r *http.Request, p *page) error

// serve wraps a route with the browser session, CSRF check, auth guard and
// error handling.
func (h *Handler) serve(route Route) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r, nav := h.withBrowser(w, r)
		ctx := r.Context()

		if r.Method == http.MethodPost && !validateCSRF(r) {
			http.Error(w, "invalid CSRF token", http.StatusForbidden)
			return
		}

		p := &page{
			Title: route.Title + titleSuffix,
			Path:  r.URL.Path,
			CSRF:  h.csrfToken(w, r),
		}

		id, err := h.svc.Auth.Identity(ctx)
		if err != nil {
			h.logger.Error("failed to read session", "route", route.Name, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if id != nil {
			p.User = id.User.Username
			if err := h.store.Touch(ctx, application.BrowserIDFromContext(ctx)); err != nil {
				h.logger.Warn("failed to record session activity", "error", err)
			}
		}

		if route.RequiresAuth && id == nil {
			http.Redirect(w, r, semefo.LoginPath, http.StatusSeeOther)
			return
		}

		p.Flash = h.takeFlash(ctx)

		err = route.handle(w, r, p)
		if err == nil {
			return
		}

		if target := nav.Target(); target != "" {
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}

		h.renderError(w, r, p, err)
	})
}

// render writes a full page with the layout. When the backend client navigated
// away while the page was being built, the browser is redirected instead.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, p *page, body templ.Component) {
	if navigated(w, r) {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := layout(p, body).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "path", p.Path, "error", err)
	}
}

// renderError maps a backend or application failure to an error page.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, p *page, err error) {
	status := http.StatusBadGateway
	message := "No fue posible comunicarse con el servidor SEMEFO."

	var apiErr *semefo.APIError
	switch {
	case errors.Is(err, errNotFound), semefo.IsNotFound(err):
		status = http.StatusNotFound
		message = "El recurso solicitado no existe."
	case errors.As(err, &apiErr):
		status = apiErr.StatusCode
		if apiErr.Detail != "" {
			message = apiErr.Detail
		}
	case errors.Is(err, context.Canceled):
		return
	}

	h.logger.Error("page failed", "path", p.Path, "status", status, "error", err)
	h.render(w, r, status, p, errorView(status, message))
}

// errNotFound marks path parameters that cannot name a resource.
var errNotFound = errors.New("not found")

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errNotFound
	}
	return id, nil
}

// setFlash stores a message shown once on the next rendered page.
func (h *Handler) setFlash(ctx context.Context, msg string) {
	if err := h.store.Set(ctx, application.BrowserIDFromContext(ctx), flashKey, msg); err != nil {
		h.logger.Warn("failed to store flash message", "error", err)
	}
}

func (h *Handler) takeFlash(ctx context.Context) string {
	browserID := application.BrowserIDFromContext(ctx)
	msg, err := h.store.Get(ctx, browserID, flashKey)
	if err != nil || msg == "" {
		return ""
	}
	if err := h.store.Delete(ctx, browserID, flashKey); err != nil {
		h.logger.Warn("failed to clear flash message", "error", err)
	}
	return msg
}

// redirect sends the browser to path after a successful form submission.
func redirect(w http.ResponseWriter, r *http.Request, path string) error {
	if navigated(w, r) {
		return nil
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
	return nil
}

// navigated issues the redirect recorded by the navigator for this request and
// reports whether it did.
func navigated(w http.ResponseWriter, r *http.Request) bool {
	nav := navStateFrom(r.Context())
	if nav == nil {
		return false
	}
	target := nav.Target()
	if target == "" {
		return false
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
	return true
}

// formError turns a validation failure or a backend rejection into messages
// shown next to the form. Other errors are returned unchanged.
func formError(err error) (fields map[string]string, message string, status int, ok bool) {
	var verr *application.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, "Revisa los campos marcados.", http.StatusUnprocessableEntity, true
	}

	var apiErr *semefo.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 &&
		apiErr.StatusCode != http.StatusUnauthorized && apiErr.StatusCode != http.StatusNotFound {
		return nil, apiErr.Detail, apiErr.StatusCode, true
	}

	return nil, "", 0, false
}
