package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/semefopanel/internal/adapter/driven/semefo"
	"github.com/ericfisherdev/semefopanel/internal/application"
	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

// memStore is an in-memory StorageStore.
type memStore struct {
	mu      sync.Mutex
	values  map[string]map[string]string
	touched []string
}

func (s *memStore) Get(_ context.Context, browserID, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[browserID][key], nil
}

func (s *memStore) Set(_ context.Context, browserID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]map[string]string)
	}
	if s.values[browserID] == nil {
		s.values[browserID] = make(map[string]string)
	}
	s.values[browserID][key] = value
	return nil
}

func (s *memStore) Delete(_ context.Context, browserID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values[browserID], k)
	}
	return nil
}

func (s *memStore) List(context.Context, string) ([]model.StorageEntry, error) { return nil, nil }

func (s *memStore) Touch(_ context.Context, browserID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = append(s.touched, browserID)
	return nil
}

func (s *memStore) PurgeIdle(context.Context, time.Time) (int64, error) { return 0, nil }

// fakeBackend answers the backend endpoints used by the pages under test and
// records the Authorization header of every call.
type fakeBackend struct {
	mu       sync.Mutex
	auth     []string
	status   int // forced status for every dashboard call when non-zero
	statusOf map[string]int
	lastBody map[string]any
}

func (b *fakeBackend) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.auth)
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.auth = append(b.auth, r.Header.Get("Authorization"))
	forced := b.status
	if st, ok := b.statusOf[r.URL.Path]; ok {
		forced = st
	}
	b.lastBody = nil
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		_ = json.Unmarshal(data, &b.lastBody)
	}
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if r.URL.Path == "/dashboard/login" {
		var req model.LoginRequest
		if b.lastBody != nil {
			req.Username, _ = b.lastBody["username"].(string)
			req.Password, _ = b.lastBody["password"].(string)
		}
		if req.Password != "correcta" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Credenciales inválidas"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"header.eyJzdWIiOiJhbmEifQ.sig","refresh_token":"r","token_type":"bearer"}`))
		return
	}

	if forced != 0 {
		w.WriteHeader(forced)
		_, _ = w.Write([]byte(`{"detail":"Token expirado"}`))
		return
	}

	switch {
	case r.URL.Path == "/dashboard/resumen":
		_, _ = w.Write([]byte(`{"kpis":{"total_30_dias":42,"finalizadas":30,"pendientes":10,"errores":2},"pendientes":[],"ultimas":[{"sesion_id":7,"numero_expediente":"EXP-7","estado":"finalizada","fecha":"2026-01-20 17:34:56"}],"errores":[]}`))
	case r.URL.Path == "/infra/estado/ultimo":
		_, _ = w.Write([]byte(`{"nas-01":{"disco_total_gb":100,"disco_usado_gb":95,"disco_libre_gb":5,"fecha":"2026-01-20T10:00:00Z"}}`))
	case r.URL.Path == "/infra/whisper/estado":
		_, _ = w.Write([]byte(`{"status":"ok","host":"gpu-01","queue":2}`))
	case r.URL.Path == "/dashboard/planchas" && r.Method == http.MethodGet:
		_, _ = w.Write([]byte(`[{"id":1,"nombre":"Plancha <1>","descripcion":"**calibrada**","activa":true,"asignada":false,"created_at":"2026-01-01T12:00:00"}]`))
	case r.URL.Path == "/dashboard/planchas" && r.Method == http.MethodPost:
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":2}`))
	case r.URL.Path == "/dashboard/service-clients/5/rotar-token":
		_, _ = w.Write([]byte(`{"service_client":{"id":5,"client_id":"ocr-worker","roles":"ingesta","activo":true,"created_at":"2026-01-01T00:00:00"},"token":"tok-visible-once-123"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"no encontrado"}`))
	}
}

type fixture struct {
	panel   *httptest.Server
	backend *fakeBackend
	store   *memStore
	client  *http.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	backend := &fakeBackend{}
	backendServer := httptest.NewServer(backend)
	t.Cleanup(backendServer.Close)

	store := &memStore{}
	session := application.NewBrowserSession(store)
	api, err := semefo.NewClient(backendServer.URL, session, Navigator{}, semefo.Options{
		Base: backendServer.Client().Transport,
	})
	require.NoError(t, err)

	validator := application.NewValidator()
	h := NewHandler(Services{
		Auth:           application.NewAuthService(api, session, validator),
		Dashboard:      application.NewDashboardService(api, validator),
		Planchas:       application.NewPlanchaService(api, validator),
		ServiceClients: application.NewServiceClientService(api, validator),
	}, store, false, slog.New(slog.NewTextHandler(io.Discard, nil)))

	mux := http.NewServeMux()
	RegisterRoutes(mux, h)
	panel := httptest.NewServer(mux)
	t.Cleanup(panel.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &fixture{
		panel:   panel,
		backend: backend,
		store:   store,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := f.client.Get(f.panel.URL + path)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (f *fixture) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if form.Get(csrfFormField) == "" {
		form.Set(csrfFormField, f.cookie(t, csrfCookieName))
	}
	resp, err := f.client.PostForm(f.panel.URL+path, form)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (f *fixture) cookie(t *testing.T, name string) string {
	t.Helper()
	u, err := url.Parse(f.panel.URL)
	require.NoError(t, err)
	for _, c := range f.client.Jar.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// loggedIn visits the login page to obtain cookies, then stores a token for
// this browser as a successful login would.
func (f *fixture) loggedIn(t *testing.T) string {
	t.Helper()
	f.get(t, "/login")
	browserID := f.cookie(t, browserCookieName)
	require.NotEmpty(t, browserID)
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, browserID, model.StorageKeyToken, "valid-token"))
	require.NoError(t, f.store.Set(ctx, browserID, model.StorageKeyDisplayName, "ana"))
	return browserID
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestRoutes_RootAndUnknownRedirects(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.get(t, "/")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, _ = f.get(t, "/no/existe")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestRoutes_TableIsConsistent(t *testing.T) {
	h := NewHandler(Services{}, &memStore{}, false, slog.Default())

	for _, r := range h.Routes() {
		assert.NotEmpty(t, r.Name, r.Pattern())
		assert.NotNil(t, r.handle, r.Pattern())
		public := r.Path == "/login" || r.Path == "/logout"
		assert.Equal(t, !public, r.RequiresAuth, r.Pattern())
	}
}

func TestGuard_RedirectsAnonymousToLogin(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.get(t, "/dashboard")

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Zero(t, f.backend.calls(), "guard must stop before any backend call")
}

func TestLoginPage_Renders(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/login")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<title>Login | SEMEFO</title>")
	assert.NotEmpty(t, f.cookie(t, browserCookieName))
	assert.NotEmpty(t, f.cookie(t, csrfCookieName))
}

func TestDashboard_RendersWithBearer(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)

	resp, body := f.get(t, "/dashboard")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<title>Dashboard | SEMEFO</title>")
	assert.Contains(t, body, ">42<")
	assert.Contains(t, body, "EXP-7")
	assert.Contains(t, body, "nas-01")
	assert.Contains(t, body, `class="critical"`)
	assert.Contains(t, body, "ana")

	f.backend.mu.Lock()
	defer f.backend.mu.Unlock()
	for _, auth := range f.backend.auth {
		assert.Equal(t, "Bearer valid-token", auth)
	}
}

func TestActivity_TouchedOnlyForLoggedInBrowsers(t *testing.T) {
	f := newFixture(t)

	f.get(t, "/login")
	f.store.mu.Lock()
	assert.Empty(t, f.store.touched)
	f.store.mu.Unlock()

	browserID := f.loggedIn(t)
	resp, _ := f.get(t, "/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	assert.Equal(t, []string{browserID}, f.store.touched)
}

func TestSessionExpiry_RedirectsToLoginAndClearsSession(t *testing.T) {
	f := newFixture(t)
	browserID := f.loggedIn(t)
	f.backend.status = http.StatusUnauthorized

	resp, _ := f.get(t, "/planchas")

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	token, _ := f.store.Get(context.Background(), browserID, model.StorageKeyToken)
	name, _ := f.store.Get(context.Background(), browserID, model.StorageKeyDisplayName)
	assert.Empty(t, token)
	assert.Empty(t, name)
}

func TestSessionExpiry_SwallowedWhisperFailureStillRedirects(t *testing.T) {
	f := newFixture(t)
	browserID := f.loggedIn(t)
	f.backend.statusOf = map[string]int{"/infra/whisper/estado": http.StatusUnauthorized}

	for _, path := range []string{"/dashboard", "/infraestructura"} {
		resp, body := f.get(t, path)

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
		assert.NotContains(t, body, "nas-01", path)

		token, _ := f.store.Get(context.Background(), browserID, model.StorageKeyToken)
		assert.Empty(t, token, path)

		f.loggedIn(t)
	}
}

func TestBackendFailure_RendersErrorPage(t *testing.T) {
	f := newFixture(t)
	browserID := f.loggedIn(t)
	f.backend.status = http.StatusInternalServerError

	resp, body := f.get(t, "/planchas")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "Token expirado")
	token, _ := f.store.Get(context.Background(), browserID, model.StorageKeyToken)
	assert.Equal(t, "valid-token", token)
}

func TestLogin_WrongCredentialsKeepsSession(t *testing.T) {
	f := newFixture(t)
	browserID := f.loggedIn(t)

	resp, body := f.post(t, "/login", url.Values{"username": {"ana"}, "password": {"mala"}})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Usuario o contraseña incorrectos.")
	token, _ := f.store.Get(context.Background(), browserID, model.StorageKeyToken)
	assert.Equal(t, "valid-token", token, "a failed login must not clear the session")
}

func TestLogin_SuccessStoresToken(t *testing.T) {
	f := newFixture(t)
	f.get(t, "/login")

	resp, _ := f.post(t, "/login", url.Values{"username": {"ana"}, "password": {"correcta"}})

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	browserID := f.cookie(t, browserCookieName)
	token, _ := f.store.Get(context.Background(), browserID, model.StorageKeyToken)
	name, _ := f.store.Get(context.Background(), browserID, model.StorageKeyDisplayName)
	assert.Equal(t, "header.eyJzdWIiOiJhbmEifQ.sig", token)
	assert.Equal(t, "ana", name)
}

func TestLogout_ClearsSession(t *testing.T) {
	f := newFixture(t)
	browserID := f.loggedIn(t)

	resp, _ := f.post(t, "/logout", nil)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	token, _ := f.store.Get(context.Background(), browserID, model.StorageKeyToken)
	assert.Empty(t, token)
}

func TestPost_RequiresCSRF(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)

	resp, _ := f.post(t, "/planchas/nueva", url.Values{csrfFormField: {"forged"}, "nombre": {"X"}})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPlanchas_ListEscapesAndRendersMarkdown(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)

	resp, body := f.get(t, "/planchas")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Plancha &lt;1&gt;")
	assert.Contains(t, body, "<strong>calibrada</strong>")
	assert.Contains(t, body, "01/01/2026")
}

func TestPlanchaCreate_ValidationErrorRerendersForm(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)
	before := f.backend.calls()

	resp, body := f.post(t, "/planchas/nueva", url.Values{"nombre": {""}, "camara1_ip": {"999.1.1.1"}})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "es obligatorio")
	assert.Contains(t, body, "no es una dirección IP válida")
	assert.Equal(t, before, f.backend.calls())
}

func TestPlanchaCreate_SuccessFlashesOnce(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)

	resp, _ := f.post(t, "/planchas/nueva", url.Values{"nombre": {"Plancha 2"}, "activa": {"1"}, "camara1_ip": {"10.0.0.5"}})

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/planchas", resp.Header.Get("Location"))
	f.backend.mu.Lock()
	assert.Equal(t, "Plancha 2", f.backend.lastBody["nombre"])
	assert.Equal(t, true, f.backend.lastBody["activa"])
	f.backend.mu.Unlock()

	_, body := f.get(t, "/planchas")
	assert.Contains(t, body, "Plancha creada.")

	_, body = f.get(t, "/planchas")
	assert.NotContains(t, body, "Plancha creada.")
}

func TestJobs_UnknownStateIsNotFound(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)

	resp, _ := f.get(t, "/jobs/borrado")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServiceClientRotate_ShowsTokenOnce(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)

	resp, body := f.post(t, "/service-clients/5/rotar-token", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "tok-visible-once-123")
	assert.Contains(t, body, "ocr-worker")
}

func TestServiceClientAction_Unknown(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t)

	resp, _ := f.post(t, "/service-clients/5/purgar", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBindBrowser(t *testing.T) {
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/resumen", nil)
	req.AddCookie(&http.Cookie{Name: browserCookieName, Value: id})
	assert.Equal(t, id, application.BrowserIDFromContext(BindBrowser(req).Context()))

	bad := httptest.NewRequest(http.MethodGet, "/api/dashboard/resumen", nil)
	bad.AddCookie(&http.Cookie{Name: browserCookieName, Value: "not-a-uuid"})
	assert.Empty(t, application.BrowserIDFromContext(BindBrowser(bad).Context()))

	none := httptest.NewRequest(http.MethodGet, "/api/dashboard/resumen", nil)
	assert.Empty(t, application.BrowserIDFromContext(BindBrowser(none).Context()))
}

func TestStaticAssets(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/static/app.css")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(body, ".topbar"))
}
