package testutil

import (
	"context"
	"sync"

	"github.com/pratik-mahalle/cloudmgr/internal/domain/audit"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/resource"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/user"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudmgr/internal/providers"
)

// MockResourceRepository is a mock implementation of resource.Repository.
// Audit entries written through it are kept in Entries.
type MockResourceRepository struct {
	Resources     map[int64]*resource.Resource
	Entries       []*audit.Entry
	StatusUpdates map[int64]int
	NextID        int64
	CreateError   error
	UpdateError   error
	DeleteError   error
}

func NewMockResourceRepository() *MockResourceRepository {
	return &MockResourceRepository{
		Resources:     make(map[int64]*resource.Resource),
		StatusUpdates: make(map[int64]int),
		NextID:        1,
	}
}

// Seed stores r as-is, assigning an ID when it has none
func (m *MockResourceRepository) Seed(r *resource.Resource) *resource.Resource {
	if r.ID == 0 {
		r.ID = m.NextID
		m.NextID++
	}
	m.Resources[r.ID] = r
	return r
}

func (m *MockResourceRepository) Create(ctx context.Context, r *resource.Resource, entry *audit.Entry) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	r.ID = m.NextID
	m.NextID++
	stored := *r
	m.Resources[r.ID] = &stored
	if entry != nil {
		id := r.ID
		entry.ResourceID = &id
		m.Entries = append(m.Entries, entry)
	}
	return nil
}

func (m *MockResourceRepository) GetByID(ctx context.Context, id int64) (*resource.Resource, error) {
	r, ok := m.Resources[id]
	if !ok {
		return nil, errors.NotFound("Resource")
	}
	cp := *r
	return &cp, nil
}

func (m *MockResourceRepository) List(ctx context.Context, filter resource.Filter) ([]*resource.Resource, error) {
	var result []*resource.Resource
	for id := int64(1); id < m.NextID; id++ {
		r, ok := m.Resources[id]
		if !ok || !filter.Matches(r) {
			continue
		}
		cp := *r
		result = append(result, &cp)
	}
	return result, nil
}

func (m *MockResourceRepository) UpdateStatus(ctx context.Context, id int64, status resource.Status) error {
	r, ok := m.Resources[id]
	if !ok {
		return errors.NotFound("Resource")
	}
	r.Status = status
	m.StatusUpdates[id]++
	return nil
}

func (m *MockResourceRepository) Update(ctx context.Context, r *resource.Resource, entry *audit.Entry) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	stored, ok := m.Resources[r.ID]
	if !ok {
		return errors.NotFound("Resource")
	}
	externalID := stored.ExternalID
	cp := *r
	cp.ExternalID = externalID
	m.Resources[r.ID] = &cp
	if entry != nil {
		id := r.ID
		entry.ResourceID = &id
		m.Entries = append(m.Entries, entry)
	}
	return nil
}

func (m *MockResourceRepository) Delete(ctx context.Context, id int64, entry *audit.Entry) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	if _, ok := m.Resources[id]; !ok {
		return errors.NotFound("Resource")
	}
	delete(m.Resources, id)

	kept := m.Entries[:0]
	for _, e := range m.Entries {
		if e.ResourceID == nil || *e.ResourceID != id {
			kept = append(kept, e)
		}
	}
	m.Entries = kept
	if entry != nil {
		entry.ResourceID = nil
		m.Entries = append(m.Entries, entry)
	}
	return nil
}

func (m *MockResourceRepository) CountByProviderType(ctx context.Context) (map[resource.Provider]map[resource.Type]int, error) {
	counts := make(map[resource.Provider]map[resource.Type]int)
	for _, r := range m.Resources {
		if counts[r.Provider] == nil {
			counts[r.Provider] = make(map[resource.Type]int)
		}
		counts[r.Provider][r.Type]++
	}
	return counts, nil
}

// MockAuditRepository is a mock implementation of audit.Repository
type MockAuditRepository struct {
	Entries []*audit.Entry
}

func (m *MockAuditRepository) List(ctx context.Context, limit int) ([]*audit.Entry, error) {
	var result []*audit.Entry
	for i := len(m.Entries) - 1; i >= 0; i-- {
		result = append(result, m.Entries[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m *MockAuditRepository) ListByResource(ctx context.Context, resourceID int64) ([]*audit.Entry, error) {
	var result []*audit.Entry
	for _, e := range m.Entries {
		if e.ResourceID != nil && *e.ResourceID == resourceID {
			result = append(result, e)
		}
	}
	return result, nil
}

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	Users       []*user.User
	CreateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	u.ID = int64(len(m.Users) + 1)
	m.Users = append(m.Users, u)
	return nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range m.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.NotFound("User")
}

func (m *MockUserRepository) List(ctx context.Context) ([]*user.User, error) {
	return append([]*user.User(nil), m.Users...), nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.Users)), nil
}

// MockAdapter is a scripted providers.Adapter that also reads status
type MockAdapter struct {
	mu sync.Mutex

	CreateFn     func(ctx context.Context, name, region string) (providers.Outcome, error)
	StatusFn     func(ctx context.Context, externalID string) (string, error)
	TerminateErr error

	Created          []string
	Regions          []string
	StatusIDs        []string
	StatusRegions    []string
	Terminated       []string
	TerminateRegions []string
}

func (m *MockAdapter) Create(ctx context.Context, name, region string) (providers.Outcome, error) {
	m.mu.Lock()
	m.Created = append(m.Created, name)
	m.Regions = append(m.Regions, region)
	m.mu.Unlock()

	if m.CreateFn == nil {
		return providers.Outcome{ExternalID: "mock-" + name, NativeStatus: "Running"}, nil
	}
	return m.CreateFn(ctx, name, region)
}

func (m *MockAdapter) Status(ctx context.Context, externalID, region string) (string, error) {
	m.mu.Lock()
	m.StatusIDs = append(m.StatusIDs, externalID)
	m.StatusRegions = append(m.StatusRegions, region)
	m.mu.Unlock()

	if m.StatusFn == nil {
		return "Running", nil
	}
	return m.StatusFn(ctx, externalID)
}

func (m *MockAdapter) Terminate(ctx context.Context, externalID, region string) error {
	m.mu.Lock()
	m.Terminated = append(m.Terminated, externalID)
	m.TerminateRegions = append(m.TerminateRegions, region)
	m.mu.Unlock()
	return m.TerminateErr
}

// StatusCalls returns how many status reads were made
func (m *MockAdapter) StatusCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.StatusIDs)
}

// NewMockRegistry returns a registry with adapter bound to every provider and type
func NewMockRegistry(adapter providers.Adapter) *providers.Registry {
	r := providers.NewRegistry()
	for _, p := range resource.Providers {
		for _, t := range resource.Types {
			r.Register(p, t, adapter)
		}
	}
	return r
}
