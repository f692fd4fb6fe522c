package semefo

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

const planchasPath = "/dashboard/planchas"

// ListPlanchas returns every registered plancha.
func (c *Client) ListPlanchas(ctx context.Context) ([]model.Plancha, error) {
	var planchas []model.Plancha
	if err := c.do(ctx, http.MethodGet, planchasPath, nil, nil, &planchas); err != nil {
		return nil, err
	}
	if planchas == nil {
		planchas = []model.Plancha{}
	}
	return planchas, nil
}

// GetPlancha returns a single plancha.
func (c *Client) GetPlancha(ctx context.Context, id int64) (*model.Plancha, error) {
	var p model.Plancha
	if err := c.do(ctx, http.MethodGet, planchaPath(id), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePlancha registers a new plancha.
func (c *Client) CreatePlancha(ctx context.Context, req model.PlanchaCreate) error {
	return c.do(ctx, http.MethodPost, planchasPath, nil, req, nil)
}

// UpdatePlancha replaces the editable fields of a plancha.
func (c *Client) UpdatePlancha(ctx context.Context, id int64, req model.PlanchaUpdate) error {
	return c.do(ctx, http.MethodPut, planchaPath(id), nil, req, nil)
}

// DeletePlancha removes a plancha.
func (c *Client) DeletePlancha(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, planchaPath(id), nil, nil, nil)
}

func planchaPath(id int64) string {
	return fmt.Sprintf("%s/%d", planchasPath, id)
}
