package semefo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

// Summary returns the KPIs and recent activity of the dashboard home.
func (c *Client) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	var summary model.DashboardSummary
	if err := c.do(ctx, http.MethodGet, "/dashboard/resumen", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListSessions returns one page of sessions whose date falls in [From, To].
func (c *Client) ListSessions(ctx context.Context, q model.SessionQuery) (*model.Page[model.SessionSummary], error) {
	params := url.Values{}
	params.Set("desde", q.From)
	params.Set("hasta", q.To)
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("per_page", strconv.Itoa(q.PerPage))

	var page model.Page[model.SessionSummary]
	if err := c.do(ctx, http.MethodGet, "/dashboard/sesiones", params, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SessionJobs returns the processing jobs of a single session.
func (c *Client) SessionJobs(ctx context.Context, sessionID int64) ([]model.SessionJob, error) {
	var jobs []model.SessionJob
	path := fmt.Sprintf("/dashboard/jobs/sesion/%d", sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &jobs); err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []model.SessionJob{}
	}
	return jobs, nil
}

// ListJobs returns one page of jobs in the given state.
func (c *Client) ListJobs(ctx context.Context, q model.JobQuery) (*model.Page[model.Job], error) {
	params := url.Values{}
	params.Set("estado", string(q.Status))
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("per_page", strconv.Itoa(q.PerPage))

	var page model.Page[model.Job]
	if err := c.do(ctx, http.MethodGet, "/dashboard/jobs", params, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// InfraStatus returns the latest disk report of every server, keyed by server name.
func (c *Client) InfraStatus(ctx context.Context) (map[string]model.DiskStatus, error) {
	disks := map[string]model.DiskStatus{}
	if err := c.do(ctx, http.MethodGet, "/infra/estado/ultimo", nil, nil, &disks); err != nil {
		return nil, err
	}
	return disks, nil
}

// WhisperStatus returns the status document of the transcription server.
func (c *Client) WhisperStatus(ctx context.Context) (*model.WhisperStatus, error) {
	var status model.WhisperStatus
	if err := c.do(ctx, http.MethodGet, "/infra/whisper/estado", nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
