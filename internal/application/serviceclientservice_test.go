package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

func TestServiceClientService_Apply(t *testing.T) {
	tests := []struct {
		action    string
		wantCall  string
		wantToken string
		wantNil   bool
	}{
		{action: ActionRotateToken, wantCall: "RotateServiceClientToken", wantToken: "rotated"},
		{action: ActionActivate, wantCall: "ActivateServiceClient"},
		{action: ActionDeactivate, wantCall: "DeactivateServiceClient"},
		{action: ActionDelete, wantCall: "DeleteServiceClient", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			api := &fakeAPI{}
			svc := NewServiceClientService(api, NewValidator())

			res, err := svc.Apply(context.Background(), 3, tt.action)

			require.NoError(t, err)
			assert.Equal(t, []string{tt.wantCall}, api.called())
			assert.Equal(t, tt.wantToken, res.Token)
			assert.Equal(t, tt.wantNil, res.Client == nil)
		})
	}
}

func TestServiceClientService_ApplyUnknownAction(t *testing.T) {
	api := &fakeAPI{}
	svc := NewServiceClientService(api, NewValidator())

	_, err := svc.Apply(context.Background(), 3, "purgar")

	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Empty(t, api.called())
}

func TestServiceClientService_CreateValidates(t *testing.T) {
	api := &fakeAPI{}
	svc := NewServiceClientService(api, NewValidator())
	short := "too-short"

	_, err := svc.Create(context.Background(), model.ServiceClientCreate{ClientID: "ocr", Token: &short})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "requiere al menos 16 caracteres", verr.Fields["token"])
	assert.Empty(t, api.called())

	created, err := svc.Create(context.Background(), model.ServiceClientCreate{ClientID: "ocr"})
	require.NoError(t, err)
	assert.Equal(t, "generated", created.Token)
}
