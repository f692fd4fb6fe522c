package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ericfisherdev/semefopanel/internal/domain/model"
	"github.com/ericfisherdev/semefopanel/internal/domain/port/driven"
)

// memStore is an in-memory StorageStore.
type memStore struct {
	mu      sync.Mutex
	values  map[string]map[string]string
	updated map[string]time.Time
	purged  []time.Time
}

func newMemStore() *memStore {
	return &memStore{
		values:  make(map[string]map[string]string),
		updated: make(map[string]time.Time),
	}
}

func (s *memStore) Get(_ context.Context, browserID, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[browserID][key], nil
}

func (s *memStore) Set(_ context.Context, browserID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values[browserID] == nil {
		s.values[browserID] = make(map[string]string)
	}
	s.values[browserID][key] = value
	s.updated[browserID] = time.Now()
	return nil
}

func (s *memStore) Delete(_ context.Context, browserID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(keys) == 0 {
		delete(s.values, browserID)
		return nil
	}
	for _, k := range keys {
		delete(s.values[browserID], k)
	}
	return nil
}

func (s *memStore) List(_ context.Context, browserID string) ([]model.StorageEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.StorageEntry
	for k, v := range s.values[browserID] {
		out = append(out, model.StorageEntry{BrowserID: browserID, Key: k, Value: v, UpdatedAt: s.updated[browserID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *memStore) Touch(_ context.Context, browserID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[browserID]; ok {
		s.updated[browserID] = time.Now()
	}
	return nil
}

func (s *memStore) PurgeIdle(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purged = append(s.purged, before)
	var n int64
	for id, at := range s.updated {
		if at.Before(before) {
			n += int64(len(s.values[id]))
			delete(s.values, id)
			delete(s.updated, id)
		}
	}
	return n, nil
}

// fakeAPI is a SemefoAPI whose calls are answered by optional function
// fields. Unset reads return zero values.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	loginFn         func(model.LoginRequest) (*model.LoginResponse, error)
	summaryFn       func(context.Context) (*model.DashboardSummary, error)
	infraFn         func(context.Context) (map[string]model.DiskStatus, error)
	whisperFn       func(context.Context) (*model.WhisperStatus, error)
	listSessionsFn  func(model.SessionQuery) (*model.Page[model.SessionSummary], error)
	listJobsFn      func(model.JobQuery) (*model.Page[model.Job], error)
	createPlanchaFn func(model.PlanchaCreate) error
	rotateFn        func(int64) (*model.ServiceClientCreated, error)
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Login(_ context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	f.record("Login")
	if f.loginFn != nil {
		return f.loginFn(req)
	}
	return &model.LoginResponse{}, nil
}

func (f *fakeAPI) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	f.record("Summary")
	if f.summaryFn != nil {
		return f.summaryFn(ctx)
	}
	return &model.DashboardSummary{}, nil
}

func (f *fakeAPI) ListSessions(_ context.Context, q model.SessionQuery) (*model.Page[model.SessionSummary], error) {
	f.record("ListSessions")
	if f.listSessionsFn != nil {
		return f.listSessionsFn(q)
	}
	return &model.Page[model.SessionSummary]{}, nil
}

func (f *fakeAPI) SessionJobs(context.Context, int64) ([]model.SessionJob, error) {
	f.record("SessionJobs")
	return []model.SessionJob{}, nil
}

func (f *fakeAPI) ListJobs(_ context.Context, q model.JobQuery) (*model.Page[model.Job], error) {
	f.record("ListJobs")
	if f.listJobsFn != nil {
		return f.listJobsFn(q)
	}
	return &model.Page[model.Job]{}, nil
}

func (f *fakeAPI) InfraStatus(ctx context.Context) (map[string]model.DiskStatus, error) {
	f.record("InfraStatus")
	if f.infraFn != nil {
		return f.infraFn(ctx)
	}
	return map[string]model.DiskStatus{}, nil
}

func (f *fakeAPI) WhisperStatus(ctx context.Context) (*model.WhisperStatus, error) {
	f.record("WhisperStatus")
	if f.whisperFn != nil {
		return f.whisperFn(ctx)
	}
	return &model.WhisperStatus{Status: "ok"}, nil
}

func (f *fakeAPI) ListPlanchas(context.Context) ([]model.Plancha, error) {
	f.record("ListPlanchas")
	return []model.Plancha{}, nil
}

func (f *fakeAPI) GetPlancha(_ context.Context, id int64) (*model.Plancha, error) {
	f.record("GetPlancha")
	return &model.Plancha{ID: id}, nil
}

func (f *fakeAPI) CreatePlancha(_ context.Context, req model.PlanchaCreate) error {
	f.record("CreatePlancha")
	if f.createPlanchaFn != nil {
		return f.createPlanchaFn(req)
	}
	return nil
}

func (f *fakeAPI) UpdatePlancha(context.Context, int64, model.PlanchaUpdate) error {
	f.record("UpdatePlancha")
	return nil
}

func (f *fakeAPI) DeletePlancha(context.Context, int64) error {
	f.record("DeletePlancha")
	return nil
}

func (f *fakeAPI) ListServiceClients(context.Context, model.ServiceClientQuery) ([]model.ServiceClient, error) {
	f.record("ListServiceClients")
	return []model.ServiceClient{}, nil
}

func (f *fakeAPI) GetServiceClient(_ context.Context, id int64) (*model.ServiceClient, error) {
	f.record("GetServiceClient")
	return &model.ServiceClient{ID: id}, nil
}

func (f *fakeAPI) CreateServiceClient(_ context.Context, req model.ServiceClientCreate) (*model.ServiceClientCreated, error) {
	f.record("CreateServiceClient")
	return &model.ServiceClientCreated{ServiceClient: model.ServiceClient{ClientID: req.ClientID}, Token: "generated"}, nil
}

func (f *fakeAPI) UpdateServiceClient(_ context.Context, id int64, _ model.ServiceClientUpdate) (*model.ServiceClient, error) {
	f.record("UpdateServiceClient")
	return &model.ServiceClient{ID: id}, nil
}

func (f *fakeAPI) RotateServiceClientToken(_ context.Context, id int64) (*model.ServiceClientCreated, error) {
	f.record("RotateServiceClientToken")
	if f.rotateFn != nil {
		return f.rotateFn(id)
	}
	return &model.ServiceClientCreated{ServiceClient: model.ServiceClient{ID: id}, Token: "rotated"}, nil
}

func (f *fakeAPI) ActivateServiceClient(_ context.Context, id int64) (*model.ServiceClient, error) {
	f.record("ActivateServiceClient")
	return &model.ServiceClient{ID: id, Active: true}, nil
}

func (f *fakeAPI) DeactivateServiceClient(_ context.Context, id int64) (*model.ServiceClient, error) {
	f.record("DeactivateServiceClient")
	return &model.ServiceClient{ID: id}, nil
}

func (f *fakeAPI) DeleteServiceClient(context.Context, int64) error {
	f.record("DeleteServiceClient")
	return nil
}

var (
	_ driven.SemefoAPI    = (*fakeAPI)(nil)
	_ driven.StorageStore = (*memStore)(nil)
)
