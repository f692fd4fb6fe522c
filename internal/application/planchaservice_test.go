package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

func TestPlanchaService_CreateValidatesBeforeSending(t *testing.T) {
	badIP := "10.0.0.300"
	api := &fakeAPI{}
	svc := NewPlanchaService(api, NewValidator())

	err := svc.Create(context.Background(), model.PlanchaCreate{Camera1IP: &badIP})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "es obligatorio", verr.Fields["nombre"])
	assert.Equal(t, "no es una dirección IP válida", verr.Fields["camara1_ip"])
	assert.Empty(t, api.called())
}

func TestPlanchaService_CreateAndUpdate(t *testing.T) {
	var sent model.PlanchaCreate
	api := &fakeAPI{createPlanchaFn: func(req model.PlanchaCreate) error {
		sent = req
		return nil
	}}
	svc := NewPlanchaService(api, NewValidator())
	ip := "10.0.0.5"

	require.NoError(t, svc.Create(context.Background(), model.PlanchaCreate{Name: "Plancha 1", Camera1IP: &ip}))
	assert.Equal(t, "Plancha 1", sent.Name)

	require.NoError(t, svc.Update(context.Background(), 1, model.PlanchaUpdate{Name: "Plancha 1b"}))
	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []string{"CreatePlancha", "UpdatePlancha", "DeletePlancha"}, api.called())
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"b": "x", "a": "y"}}
	assert.Equal(t, "validation failed: a: y; b: x", err.Error())
}
