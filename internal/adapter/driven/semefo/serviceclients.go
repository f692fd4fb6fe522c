package semefo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

const serviceClientsPath = "/dashboard/service-clients"

// ListServiceClients returns the service clients matching q.
func (c *Client) ListServiceClients(ctx context.Context, q model.ServiceClientQuery) ([]model.ServiceClient, error) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("q", q.Search)
	}
	if q.OnlyActive {
		params.Set("solo_activos", "true")
	}

	var clients []model.ServiceClient
	if err := c.do(ctx, http.MethodGet, serviceClientsPath, params, nil, &clients); err != nil {
		return nil, err
	}
	if clients == nil {
		clients = []model.ServiceClient{}
	}
	return clients, nil
}

// GetServiceClient returns a single service client.
func (c *Client) GetServiceClient(ctx context.Context, id int64) (*model.ServiceClient, error) {
	return c.serviceClientCall(ctx, http.MethodGet, serviceClientPath(id), nil)
}

// CreateServiceClient registers a service client and returns its plaintext token.
func (c *Client) CreateServiceClient(ctx context.Context, req model.ServiceClientCreate) (*model.ServiceClientCreated, error) {
	var created model.ServiceClientCreated
	if err := c.do(ctx, http.MethodPost, serviceClientsPath, nil, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateServiceClient changes roles, allowed IPs or the active flag.
func (c *Client) UpdateServiceClient(ctx context.Context, id int64, req model.ServiceClientUpdate) (*model.ServiceClient, error) {
	return c.serviceClientCall(ctx, http.MethodPut, serviceClientPath(id), req)
}

// RotateServiceClientToken issues a new token, invalidating the previous one.
func (c *Client) RotateServiceClientToken(ctx context.Context, id int64) (*model.ServiceClientCreated, error) {
	var rotated model.ServiceClientCreated
	if err := c.do(ctx, http.MethodPost, serviceClientPath(id)+"/rotar-token", nil, nil, &rotated); err != nil {
		return nil, err
	}
	return &rotated, nil
}

// ActivateServiceClient re-enables a service client.
func (c *Client) ActivateServiceClient(ctx context.Context, id int64) (*model.ServiceClient, error) {
	return c.serviceClientCall(ctx, http.MethodPost, serviceClientPath(id)+"/activar", nil)
}

// DeactivateServiceClient disables a service client without deleting it.
func (c *Client) DeactivateServiceClient(ctx context.Context, id int64) (*model.ServiceClient, error) {
	return c.serviceClientCall(ctx, http.MethodPost, serviceClientPath(id)+"/desactivar", nil)
}

// DeleteServiceClient removes a service client permanently.
func (c *Client) DeleteServiceClient(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, serviceClientPath(id), nil, nil, nil)
}

func (c *Client) serviceClientCall(ctx context.Context, method, path string, body any) (*model.ServiceClient, error) {
	var sc model.ServiceClient
	if err := c.do(ctx, method, path, nil, body, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

func serviceClientPath(id int64) string {
	return fmt.Sprintf("%s/%d", serviceClientsPath, id)
}
