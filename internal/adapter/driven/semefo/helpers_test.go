package semefo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/semefopanel/internal/adapter/driven/semefo"
	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

// memSession is an in-memory SessionContext.
type memSession struct {
	mu          sync.Mutex
	token       string
	displayName string
	clears      int
}

func (s *memSession) Token(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *memSession) SetToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memSession) DisplayName(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayName, nil
}

func (s *memSession) SetDisplayName(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayName = name
	return nil
}

func (s *memSession) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.displayName = ""
	s.clears++
	return nil
}

// fakeNavigator records navigation requests.
type fakeNavigator struct {
	mu        sync.Mutex
	current   string
	navigated []string
}

func (n *fakeNavigator) CurrentPath(context.Context) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *fakeNavigator) NavigateTo(_ context.Context, path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.navigated = append(n.navigated, path)
	n.current = path
}

// newTestClient creates a Client with the full middleware stack backed by the
// given httptest handler.
func newTestClient(t *testing.T, handler http.Handler, session *memSession, nav *fakeNavigator) *semefo.Client {
	t.Helper()

	server := newServer(t, handler)

	client, err := semefo.NewClient(server.URL, session, nav, semefo.Options{
		Base: server.Client().Transport,
	})
	require.NoError(t, err)

	return client
}

// jsonHandler answers every request with status and body.
func jsonHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func newServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func loginRequest(username, password string) model.LoginRequest {
	return model.LoginRequest{Username: username, Password: password}
}
