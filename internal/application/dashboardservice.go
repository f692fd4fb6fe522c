package application

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/semefopanel/internal/domain/model"
	"github.com/ericfisherdev/semefopanel/internal/domain/port/driven"
)

// Listing defaults match the backend's own.
const (
	DefaultSessionsPerPage = 25
	DefaultJobsPerPage     = 50
	DefaultSessionRange    = 30 * 24 * time.Hour
	queryDateLayout        = "2006-01-02"
)

// WhisperUnknown is the status shown when the transcription server cannot be queried.
const WhisperUnknown = "desconocido"

// DashboardOverview is everything the dashboard home shows.
type DashboardOverview struct {
	Summary *model.DashboardSummary
	Infra   *model.InfraOverview
}

// DashboardService reads sessions, jobs and infrastructure state.
type DashboardService struct {
	api       driven.SemefoAPI
	validator *Validator
	now       func() time.Time
}

// NewDashboardService creates a new DashboardService with the required dependencies.
func NewDashboardService(api driven.SemefoAPI, validator *Validator) *DashboardService {
	return &DashboardService{
		api:       api,
		validator: validator,
		now:       time.Now,
	}
}

// Overview loads the summary and the infrastructure report concurrently.
// The first failing call cancels the other.
func (s *DashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	var out DashboardOverview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := s.api.Summary(gctx)
		out.Summary = summary
		return err
	})
	g.Go(func() error {
		infra, err := s.Infra(gctx)
		out.Infra = infra
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Infra loads disk usage and Whisper status concurrently. A failing Whisper
// query is reported as WhisperUnknown rather than failing the whole view.
func (s *DashboardService) Infra(ctx context.Context) (*model.InfraOverview, error) {
	var out model.InfraOverview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		disks, err := s.api.InfraStatus(gctx)
		out.Disks = disks
		return err
	})
	g.Go(func() error {
		status, err := s.api.WhisperStatus(gctx)
		if err != nil {
			slog.Warn("whisper status unavailable", "error", err)
			out.Whisper = model.WhisperStatus{Status: WhisperUnknown}
			return nil
		}
		out.Whisper = *status
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sessions lists sessions in a date range. Missing fields default to the
// last 30 days, first page, DefaultSessionsPerPage rows.
func (s *DashboardService) Sessions(ctx context.Context, q model.SessionQuery) (*model.Page[model.SessionSummary], error) {
	q = s.withSessionDefaults(q)
	if err := s.validator.Validate(q); err != nil {
		return nil, err
	}
	return s.api.ListSessions(ctx, q)
}

// SessionJobs lists the jobs of one session.
func (s *DashboardService) SessionJobs(ctx context.Context, sessionID int64) ([]model.SessionJob, error) {
	return s.api.SessionJobs(ctx, sessionID)
}

// Jobs lists jobs in one state.
func (s *DashboardService) Jobs(ctx context.Context, q model.JobQuery) (*model.Page[model.Job], error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PerPage == 0 {
		q.PerPage = DefaultJobsPerPage
	}
	if err := s.validator.Validate(q); err != nil {
		return nil, err
	}
	return s.api.ListJobs(ctx, q)
}

func (s *DashboardService) withSessionDefaults(q model.SessionQuery) model.SessionQuery {
	now := s.now()
	if q.To == "" {
		q.To = now.Format(queryDateLayout)
	}
	if q.From == "" {
		q.From = now.Add(-DefaultSessionRange).Format(queryDateLayout)
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PerPage == 0 {
		q.PerPage = DefaultSessionsPerPage
	}
	return q
}
