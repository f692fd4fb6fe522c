package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ericfisherdev/semefopanel/internal/application"
	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

// serviceClientCreateForm is the editable state of the creation form.
type serviceClientCreateForm struct {
	ClientID   string
	Roles      string
	AllowedIPs string
	Token      string
	Active     bool
}

func (f serviceClientCreateForm) request() model.ServiceClientCreate {
	active := f.Active
	return model.ServiceClientCreate{
		ClientID:   f.ClientID,
		Roles:      f.Roles,
		Active:     &active,
		AllowedIPs: nonEmpty(f.AllowedIPs),
		Token:      nonEmpty(f.Token),
	}
}

func serviceClientQuery(r *http.Request) model.ServiceClientQuery {
	return model.ServiceClientQuery{
		Search:     strings.TrimSpace(r.URL.Query().Get("q")),
		OnlyActive: r.URL.Query().Get("solo_activos") != "",
	}
}

func (h *Handler) serviceClients(w http.ResponseWriter, r *http.Request, p *page) error {
	q := serviceClientQuery(r)
	list, err := h.svc.ServiceClients.List(r.Context(), q)
	if err != nil {
		return err
	}
	h.render(w, r, http.StatusOK, p, serviceClientsView(p, q, list, serviceClientCreateForm{Active: true}, nil, "", nil))
	return nil
}

// serviceClientCreate registers a client and shows its token once. The token
// is never stored, so the page is rendered directly instead of redirecting.
func (h *Handler) serviceClientCreate(w http.ResponseWriter, r *http.Request, p *page) error {
	form := serviceClientCreateForm{
		ClientID:   strings.TrimSpace(r.FormValue("client_id")),
		Roles:      strings.TrimSpace(r.FormValue("roles")),
		AllowedIPs: strings.TrimSpace(r.FormValue("allowed_ips")),
		Token:      strings.TrimSpace(r.FormValue("token")),
		Active:     r.FormValue("activo") != "",
	}
	q := model.ServiceClientQuery{}

	created, err := h.svc.ServiceClients.Create(r.Context(), form.request())
	if fields, msg, status, ok := formError(err); ok {
		list, listErr := h.svc.ServiceClients.List(r.Context(), q)
		if listErr != nil {
			return listErr
		}
		h.render(w, r, status, p, serviceClientsView(p, q, list, form, fields, msg, nil))
		return nil
	}
	if err != nil {
		return err
	}

	list, err := h.svc.ServiceClients.List(r.Context(), q)
	if err != nil {
		return err
	}
	h.render(w, r, http.StatusCreated, p, serviceClientsView(p, q, list, serviceClientCreateForm{Active: true}, nil, "", created))
	return nil
}

func (h *Handler) serviceClientEditForm(w http.ResponseWriter, r *http.Request, p *page) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	client, err := h.svc.ServiceClients.Get(r.Context(), id)
	if err != nil {
		return err
	}
	h.render(w, r, http.StatusOK, p, serviceClientView(p, client, nil, "", ""))
	return nil
}

func (h *Handler) serviceClientUpdate(w http.ResponseWriter, r *http.Request, p *page) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	roles := strings.TrimSpace(r.FormValue("roles"))
	active := r.FormValue("activo") != ""
	allowed := strings.TrimSpace(r.FormValue("allowed_ips"))
	req := model.ServiceClientUpdate{Roles: &roles, Active: &active, AllowedIPs: &allowed}

	client, err := h.svc.ServiceClients.Update(r.Context(), id, req)
	if fields, msg, status, ok := formError(err); ok {
		current, getErr := h.svc.ServiceClients.Get(r.Context(), id)
		if getErr != nil {
			return getErr
		}
		current.Roles, current.Active, current.AllowedIPs = roles, active, &allowed
		h.render(w, r, status, p, serviceClientView(p, current, fields, msg, ""))
		return nil
	}
	if err != nil {
		return err
	}

	h.setFlash(r.Context(), fmt.Sprintf("Service client %s actualizado.", client.ClientID))
	return redirect(w, r, fmt.Sprintf("/service-clients/%d", id))
}

func (h *Handler) serviceClientAction(w http.ResponseWriter, r *http.Request, p *page) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	action := r.PathValue("accion")

	res, err := h.svc.ServiceClients.Apply(r.Context(), id, action)
	if errors.Is(err, application.ErrUnknownAction) {
		return errNotFound
	}
	if err != nil {
		return err
	}

	switch action {
	case application.ActionRotateToken:
		h.render(w, r, http.StatusOK, p, serviceClientView(p, res.Client, nil, "", res.Token))
		return nil
	case application.ActionDelete:
		h.setFlash(r.Context(), "Service client eliminado.")
		return redirect(w, r, "/service-clients")
	case application.ActionActivate:
		h.setFlash(r.Context(), "Service client activado.")
	case application.ActionDeactivate:
		h.setFlash(r.Context(), "Service client desactivado.")
	}
	return redirect(w, r, fmt.Sprintf("/service-clients/%d", id))
}
