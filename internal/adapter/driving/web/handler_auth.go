package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ericfisherdev/semefopanel/internal/adapter/driven/semefo"
	"github.com/ericfisherdev/semefopanel/internal/application"
	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request, p *page) error {
	h.render(w, r, http.StatusOK, p, loginView(p, "", ""))
	return nil
}

// login exchanges the submitted credentials for a token. A rejected login
// re-renders the form; the session is left as it was.
func (h *Handler) login(w http.ResponseWriter, r *http.Request, p *page) error {
	req := model.LoginRequest{
		Username: strings.TrimSpace(r.FormValue("username")),
		Password: r.FormValue("password"),
	}

	_, err := h.svc.Auth.Login(r.Context(), req)

	var verr *application.ValidationError
	switch {
	case err == nil:
		h.logger.Info("web login", "user", req.Username)
		return redirect(w, r, "/dashboard")
	case errors.As(err, &verr):
		h.render(w, r, http.StatusUnprocessableEntity, p, loginView(p, req.Username, "Usuario y contraseña son obligatorios."))
		return nil
	case semefo.IsUnauthorized(err):
		h.render(w, r, http.StatusUnauthorized, p, loginView(p, req.Username, "Usuario o contraseña incorrectos."))
		return nil
	}
	return err
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request, _ *page) error {
	if err := h.svc.Auth.Logout(r.Context()); err != nil {
		return err
	}
	return redirect(w, r, semefo.LoginPath)
}
