package application

import (
	"context"

	"github.com/ericfisherdev/semefopanel/internal/domain/model"
	"github.com/ericfisherdev/semefopanel/internal/domain/port/driven"
)

// PlanchaService manages planchas. Requests are validated before they reach
// the backend.
type PlanchaService struct {
	api       driven.SemefoAPI
	validator *Validator
}

// NewPlanchaService creates a new PlanchaService with the required dependencies.
func NewPlanchaService(api driven.SemefoAPI, validator *Validator) *PlanchaService {
	return &PlanchaService{api: api, validator: validator}
}

func (s *PlanchaService) List(ctx context.Context) ([]model.Plancha, error) {
	return s.api.ListPlanchas(ctx)
}

func (s *PlanchaService) Get(ctx context.Context, id int64) (*model.Plancha, error) {
	return s.api.GetPlancha(ctx, id)
}

func (s *PlanchaService) Create(ctx context.Context, req model.PlanchaCreate) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	return s.api.CreatePlancha(ctx, req)
}

func (s *PlanchaService) Update(ctx context.Context, id int64, req model.PlanchaUpdate) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	return s.api.UpdatePlancha(ctx, id, req)
}

func (s *PlanchaService) Delete(ctx context.Context, id int64) error {
	return s.api.DeletePlancha(ctx, id)
}
