package semefo_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/semefopanel/internal/adapter/driven/semefo"
)

func TestBearerToken_AttachedWhenPresent(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	})

	session := &memSession{token: "abc.def.ghi"}
	client := newTestClient(t, handler, session, &fakeNavigator{current: "/planchas"})

	_, err := client.ListPlanchas(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer abc.def.ghi", gotAuth)
}

func TestBearerToken_AbsentProceedsUnauthenticated(t *testing.T) {
	var gotAuth []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Values("Authorization")
		_, _ = w.Write([]byte(`[]`))
	})

	client := newTestClient(t, handler, &memSession{}, &fakeNavigator{current: "/planchas"})

	_, err := client.ListPlanchas(context.Background())

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestSessionExpiry_ClearsSessionAndNavigatesToLogin(t *testing.T) {
	session := &memSession{token: "expired-token", displayName: "perito.garcia"}
	nav := &fakeNavigator{current: "/planchas"}
	client := newTestClient(t, jsonHandler(http.StatusUnauthorized, `{"detail":"Token expirado"}`), session, nav)

	_, err := client.ListPlanchas(context.Background())

	require.Error(t, err)
	assert.True(t, semefo.IsUnauthorized(err), "401 must still reach the caller")

	token, _ := session.Token(context.Background())
	name, _ := session.DisplayName(context.Background())
	assert.Empty(t, token)
	assert.Empty(t, name)
	assert.Equal(t, []string{"/login"}, nav.navigated)
}

func TestProxyTransport_AuthenticatesAndExpires(t *testing.T) {
	var gotAuth, gotRequestID string
	server := newServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(semefo.RequestIDHeader)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	session := &memSession{token: "stored-token", displayName: "ana"}
	nav := &fakeNavigator{}

	transport := semefo.NewProxyTransport(session, nav, server.Client().Transport, nil)
	req, err := http.NewRequest(http.MethodGet, server.URL+"/dashboard/resumen", nil)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer stored-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, 1, session.clears)
	assert.Equal(t, []string{"/login"}, nav.navigated)
}

func TestSessionExpiry_OnLoginViewLeavesSessionAlone(t *testing.T) {
	session := &memSession{token: "old-token", displayName: "ana"}
	nav := &fakeNavigator{current: semefo.LoginPath}
	client := newTestClient(t, jsonHandler(http.StatusUnauthorized, `{"detail":"Credenciales inválidas"}`), session, nav)

	_, err := client.Login(context.Background(), loginRequest("ana", "wrong"))

	require.Error(t, err)
	assert.True(t, semefo.IsUnauthorized(err))
	assert.Equal(t, "Credenciales inválidas", err.(*semefo.APIError).Detail)

	assert.Equal(t, "old-token", session.token)
	assert.Equal(t, "ana", session.displayName)
	assert.Zero(t, session.clears)
	assert.Empty(t, nav.navigated)
}

func TestSessionExpiry_OtherFailuresHaveNoSideEffects(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError} {
		session := &memSession{token: "tok"}
		nav := &fakeNavigator{current: "/dashboard"}
		client := newTestClient(t, jsonHandler(status, `{"detail":"x"}`), session, nav)

		_, err := client.Summary(context.Background())

		require.Error(t, err)
		assert.Equal(t, status, semefo.StatusCode(err))
		assert.Equal(t, "tok", session.token)
		assert.Empty(t, nav.navigated)
	}
}

func TestTransportError_PropagatedUnchanged(t *testing.T) {
	errNetwork := errors.New("connection refused")
	session := &memSession{token: "tok"}
	nav := &fakeNavigator{current: "/dashboard"}

	client, err := semefo.NewClient("http://backend.invalid", session, nav, semefo.Options{
		Base: semefo.RoundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, errNetwork
		}),
	})
	require.NoError(t, err)

	_, err = client.Summary(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, errNetwork)
	assert.Zero(t, semefo.StatusCode(err))
	assert.Equal(t, "tok", session.token)
	assert.Empty(t, nav.navigated)
}

func TestMalformedBody_ReturnsDecodeError(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusOK, `{"kpis":`), &memSession{}, &fakeNavigator{})

	_, err := client.Summary(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding GET /dashboard/resumen")
	assert.Zero(t, semefo.StatusCode(err))
}

func TestAPIError_DetailVariants(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		detail string
	}{
		{name: "string detail", body: `{"detail":"Sesión no encontrada"}`, detail: "Sesión no encontrada"},
		{name: "validation list", body: `{"detail":[{"loc":["query","desde"],"msg":"field required"}]}`, detail: `[{"loc":["query","desde"],"msg":"field required"}]`},
		{name: "plain text", body: `Internal Server Error`, detail: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, jsonHandler(http.StatusNotFound, tt.body), &memSession{}, &fakeNavigator{})

			_, err := client.GetPlancha(context.Background(), 7)

			var apiErr *semefo.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.True(t, semefo.IsNotFound(err))
			assert.Equal(t, tt.detail, apiErr.Detail)
			assert.Equal(t, "/dashboard/planchas/7", apiErr.Path)
			assert.Equal(t, http.MethodGet, apiErr.Method)
		})
	}
}

func TestRequestID_SetOnEveryCall(t *testing.T) {
	var ids []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get(semefo.RequestIDHeader))
		_, _ = w.Write([]byte(`[]`))
	})
	client := newTestClient(t, handler, &memSession{}, &fakeNavigator{})

	_, err := client.ListPlanchas(context.Background())
	require.NoError(t, err)
	_, err = client.ListPlanchas(context.Background())
	require.NoError(t, err)

	require.Len(t, ids, 2)
	assert.NotEmpty(t, ids[0])
	assert.NotEqual(t, ids[0], ids[1])
}

func TestNewClient_BaseURLWithPathPrefix(t *testing.T) {
	var gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	})

	session := &memSession{}
	nav := &fakeNavigator{}
	server := newServer(t, handler)

	client, err := semefo.NewClient(server.URL+"/api", session, nav, semefo.Options{Base: server.Client().Transport})
	require.NoError(t, err)

	_, err = client.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "/api/dashboard/resumen", gotPath)
}

func TestNewClient_RejectsRelativeBaseURL(t *testing.T) {
	_, err := semefo.NewClient("/api", &memSession{}, &fakeNavigator{}, semefo.Options{})
	require.Error(t, err)
}
