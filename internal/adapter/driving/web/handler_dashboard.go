package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request, p *page) error {
	overview, err := h.svc.Dashboard.Overview(r.Context())
	if err != nil {
		return err
	}
	h.render(w, r, http.StatusOK, p, dashboardView(overview))
	return nil
}

func (h *Handler) sessions(w http.ResponseWriter, r *http.Request, p *page) error {
	q := model.SessionQuery{
		From:    r.URL.Query().Get("desde"),
		To:      r.URL.Query().Get("hasta"),
		Page:    queryInt(r, "page"),
		PerPage: queryInt(r, "per_page"),
	}

	result, err := h.svc.Dashboard.Sessions(r.Context(), q)
	if fields, msg, status, ok := formError(err); ok {
		h.render(w, r, status, p, sessionsView(q, nil, fields, msg))
		return nil
	}
	if err != nil {
		return err
	}

	h.render(w, r, http.StatusOK, p, sessionsView(q, result, nil, ""))
	return nil
}

func (h *Handler) sessionJobs(w http.ResponseWriter, r *http.Request, p *page) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	jobs, err := h.svc.Dashboard.SessionJobs(r.Context(), id)
	if err != nil {
		return err
	}
	h.render(w, r, http.StatusOK, p, sessionJobsView(id, jobs))
	return nil
}

func (h *Handler) jobs(w http.ResponseWriter, r *http.Request, p *page) error {
	status := model.JobStatus(r.PathValue("estado"))
	if !status.Valid() {
		return errNotFound
	}

	result, err := h.svc.Dashboard.Jobs(r.Context(), model.JobQuery{
		Status:  status,
		Page:    queryInt(r, "page"),
		PerPage: queryInt(r, "per_page"),
	})
	if err != nil {
		return err
	}
	h.render(w, r, http.StatusOK, p, jobsView(status, result))
	return nil
}

func (h *Handler) infra(w http.ResponseWriter, r *http.Request, p *page) error {
	infra, err := h.svc.Dashboard.Infra(r.Context())
	if err != nil {
		return err
	}
	h.render(w, r, http.StatusOK, p, infraView(infra))
	return nil
}

// queryInt reads a positive integer query parameter, or 0 when absent or invalid.
func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func sessionsPageLink(q model.SessionQuery) func(int) string {
	return func(page int) string {
		v := url.Values{}
		if q.From != "" {
			v.Set("desde", q.From)
		}
		if q.To != "" {
			v.Set("hasta", q.To)
		}
		v.Set("page", strconv.Itoa(page))
		return "/sesiones?" + v.Encode()
	}
}

func jobsPageLink(status model.JobStatus) func(int) string {
	return func(page int) string {
		return "/jobs/" + url.PathEscape(string(status)) + "?page=" + strconv.Itoa(page)
	}
}
