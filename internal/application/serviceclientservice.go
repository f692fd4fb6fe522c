package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/ericfisherdev/semefopanel/internal/domain/model"
	"github.com/ericfisherdev/semefopanel/internal/domain/port/driven"
)

// Service client actions accepted by Apply.
const (
	ActionRotateToken = "rotar-token"
	ActionActivate    = "activar"
	ActionDeactivate  = "desactivar"
	ActionDelete      = "eliminar"
)

// ErrUnknownAction is returned by Apply for an action it does not know.
var ErrUnknownAction = errors.New("unknown service client action")

// ActionResult is what a service client action produced. Token is set only
// by a rotation; Client is nil after a deletion.
type ActionResult struct {
	Client *model.ServiceClient
	Token  string
}

// ServiceClientService manages the machine credentials of the backend.
type ServiceClientService struct {
	api       driven.SemefoAPI
	validator *Validator
}

// NewServiceClientService creates a new ServiceClientService with the required dependencies.
func NewServiceClientService(api driven.SemefoAPI, validator *Validator) *ServiceClientService {
	return &ServiceClientService{api: api, validator: validator}
}

func (s *ServiceClientService) List(ctx context.Context, q model.ServiceClientQuery) ([]model.ServiceClient, error) {
	return s.api.ListServiceClients(ctx, q)
}

func (s *ServiceClientService) Get(ctx context.Context, id int64) (*model.ServiceClient, error) {
	return s.api.GetServiceClient(ctx, id)
}

// Create registers a client. The returned token is shown once and never stored.
func (s *ServiceClientService) Create(ctx context.Context, req model.ServiceClientCreate) (*model.ServiceClientCreated, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.api.CreateServiceClient(ctx, req)
}

func (s *ServiceClientService) Update(ctx context.Context, id int64, req model.ServiceClientUpdate) (*model.ServiceClient, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.api.UpdateServiceClient(ctx, id, req)
}

// Apply runs one of the named actions against a client.
func (s *ServiceClientService) Apply(ctx context.Context, id int64, action string) (*ActionResult, error) {
	switch action {
	case ActionRotateToken:
		created, err := s.api.RotateServiceClientToken(ctx, id)
		if err != nil {
			return nil, err
		}
		return &ActionResult{Client: &created.ServiceClient, Token: created.Token}, nil
	case ActionActivate:
		client, err := s.api.ActivateServiceClient(ctx, id)
		if err != nil {
			return nil, err
		}
		return &ActionResult{Client: client}, nil
	case ActionDeactivate:
		client, err := s.api.DeactivateServiceClient(ctx, id)
		if err != nil {
			return nil, err
		}
		return &ActionResult{Client: client}, nil
	case ActionDelete:
		if err := s.api.DeleteServiceClient(ctx, id); err != nil {
			return nil, err
		}
		return &ActionResult{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
}
