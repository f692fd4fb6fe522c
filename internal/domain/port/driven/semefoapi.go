package driven

import (
	"context"

	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

// SemefoAPI defines the driven port for the SEMEFO backend REST API.
// Every method returns the backend failure unchanged in meaning: transport
// errors, non-2xx statuses and undecodable bodies all surface to the caller.
type SemefoAPI interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)

	// Dashboard reads

	Summary(ctx context.Context) (*model.DashboardSummary, error)
	ListSessions(ctx context.Context, q model.SessionQuery) (*model.Page[model.SessionSummary], error)
	SessionJobs(ctx context.Context, sessionID int64) ([]model.SessionJob, error)
	ListJobs(ctx context.Context, q model.JobQuery) (*model.Page[model.Job], error)
	InfraStatus(ctx context.Context) (map[string]model.DiskStatus, error)
	WhisperStatus(ctx context.Context) (*model.WhisperStatus, error)

	// Planchas

	ListPlanchas(ctx context.Context) ([]model.Plancha, error)
	GetPlancha(ctx context.Context, id int64) (*model.Plancha, error)
	CreatePlancha(ctx context.Context, req model.PlanchaCreate) error
	UpdatePlancha(ctx context.Context, id int64, req model.PlanchaUpdate) error
	DeletePlancha(ctx context.Context, id int64) error

	// Service clients

	ListServiceClients(ctx context.Context, q model.ServiceClientQuery) ([]model.ServiceClient, error)
	GetServiceClient(ctx context.Context, id int64) (*model.ServiceClient, error)
	CreateServiceClient(ctx context.Context, req model.ServiceClientCreate) (*model.ServiceClientCreated, error)
	UpdateServiceClient(ctx context.Context, id int64, req model.ServiceClientUpdate) (*model.ServiceClient, error)
	RotateServiceClientToken(ctx context.Context, id int64) (*model.ServiceClientCreated, error)
	ActivateServiceClient(ctx context.Context, id int64) (*model.ServiceClient, error)
	DeactivateServiceClient(ctx context.Context, id int64) (*model.ServiceClient, error)
	DeleteServiceClient(ctx context.Context, id int64) error
}
