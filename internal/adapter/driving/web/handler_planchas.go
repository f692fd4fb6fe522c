package web

import (
	"net/http"
	"strings"
)

func (h *Handler) planchas(w http.ResponseWriter, r *http.Request, p *page) error {
	list, err := h.svc.Planchas.List(r.Context())
	if err != nil {
		return err
	}
	h.render(w, r, http.StatusOK, p, planchasView(p, list))
	return nil
}

func (h *Handler) planchaNewForm(w http.ResponseWriter, r *http.Request, p *page) error {
	h.render(w, r, http.StatusOK, p, planchaFormView(p, "/planchas/nueva", planchaForm{Active: true}, nil, ""))
	return nil
}

func (h *Handler) planchaCreate(w http.ResponseWriter, r *http.Request, p *page) error {
	form := parsePlanchaForm(r)

	err := h.svc.Planchas.Create(r.Context(), form.create())
	if fields, msg, status, ok := formError(err); ok {
		h.render(w, r, status, p, planchaFormView(p, "/planchas/nueva", form, fields, msg))
		return nil
	}
	if err != nil {
		return err
	}

	h.setFlash(r.Context(), "Plancha creada.")
	return redirect(w, r, "/planchas")
}

func (h *Handler) planchaEditForm(w http.ResponseWriter, r *http.Request, p *page) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	plancha, err := h.svc.Planchas.Get(r.Context(), id)
	if err != nil {
		return err
	}
	h.render(w, r, http.StatusOK, p, planchaFormView(p, r.URL.Path, planchaFormFrom(plancha), nil, ""))
	return nil
}

func (h *Handler) planchaUpdate(w http.ResponseWriter, r *http.Request, p *page) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	form := parsePlanchaForm(r)

	err = h.svc.Planchas.Update(r.Context(), id, form.update())
	if fields, msg, status, ok := formError(err); ok {
		h.render(w, r, status, p, planchaFormView(p, r.URL.Path, form, fields, msg))
		return nil
	}
	if err != nil {
		return err
	}

	h.setFlash(r.Context(), "Plancha actualizada.")
	return redirect(w, r, "/planchas")
}

func (h *Handler) planchaDelete(w http.ResponseWriter, r *http.Request, _ *page) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	if err := h.svc.Planchas.Delete(r.Context(), id); err != nil {
		return err
	}

	h.setFlash(r.Context(), "Plancha eliminada.")
	return redirect(w, r, "/planchas")
}

func parsePlanchaForm(r *http.Request) planchaForm {
	return planchaForm{
		Name:        strings.TrimSpace(r.FormValue("nombre")),
		Description: r.FormValue("descripcion"),
		Active:      r.FormValue("activa") != "",
		Camera1IP:   strings.TrimSpace(r.FormValue("camara1_ip")),
		Camera1ID:   strings.TrimSpace(r.FormValue("camara1_id")),
		Camera2IP:   strings.TrimSpace(r.FormValue("camara2_ip")),
		Camera2ID:   strings.TrimSpace(r.FormValue("camara2_id")),
	}
}
