package http_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"unimitr-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// memRepo is an in-memory WorkflowRepository for handler tests.
type memRepo[R domain.Resource, A domain.Action] struct {
	mu        sync.Mutex
	nextID    int64
	resources map[int64]R
	actions   map[int64]A
}

func newMemRepo[R domain.Resource, A domain.Action]() *memRepo[R, A] {
	return &memRepo[R, A]{resources: map[int64]R{}, actions: map[int64]A{}}
}

func (m *memRepo[R, A]) Create(ctx context.Context, r R) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	meta := r.Core()
	meta.ID = m.nextID
	meta.CreatedAt = time.Now()
	meta.UpdatedAt = meta.CreatedAt
	m.resources[meta.ID] = r
	return nil
}

func (m *memRepo[R, A]) GetByID(ctx context.Context, id int64) (R, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resources[id]
	if !ok {
		var zero R
		return zero, domain.ErrNotFound
	}
	return r, nil
}

func (m *memRepo[R, A]) List(ctx context.Context, status domain.Status) ([]R, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []R{}
	for _, r := range m.resources {
		if status == "" || r.Core().Status == status {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Core().ID > out[j].Core().ID })
	return out, nil
}

func (m *memRepo[R, A]) Update(ctx context.Context, r R) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := r.Core().ID
	if _, ok := m.resources[id]; !ok {
		return domain.ErrNotFound
	}
	r.Core().UpdatedAt = time.Now()
	m.resources[id] = r
	return nil
}

func (m *memRepo[R, A]) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.resources[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.resources, id)
	for aid, a := range m.actions {
		if a.ParentID() == id {
			delete(m.actions, aid)
		}
	}
	return nil
}

func (m *memRepo[R, A]) SetStatus(ctx context.Context, id int64, status domain.Status) (R, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resources[id]
	if !ok {
		var zero R
		return zero, domain.ErrNotFound
	}
	r.Core().Status = status
	r.Core().UpdatedAt = time.Now()
	return r, nil
}

func (m *memRepo[R, A]) CreateAction(ctx context.Context, a A) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s := a.Core()
	s.ID = m.nextID
	s.CreatedAt = time.Now()
	m.actions[s.ID] = a
	return nil
}

func (m *memRepo[R, A]) GetAction(ctx context.Context, resourceID, actionID int64) (A, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.actions[actionID]
	if !ok || a.ParentID() != resourceID {
		var zero A
		return zero, domain.ErrNotFound
	}
	return a, nil
}

func (m *memRepo[R, A]) filterActions(keep func(A) bool) []A {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []A{}
	for _, a := range m.actions {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Core().ID > out[j].Core().ID })
	return out
}

func (m *memRepo[R, A]) ListActions(ctx context.Context, resourceID int64) ([]A, error) {
	return m.filterActions(func(a A) bool { return a.ParentID() == resourceID }), nil
}

func (m *memRepo[R, A]) ListActionsByEmail(ctx context.Context, email string) ([]A, error) {
	return m.filterActions(func(a A) bool { return strings.EqualFold(a.Core().Email, email) }), nil
}

func (m *memRepo[R, A]) SetActionStatus(ctx context.Context, actionID int64, status domain.Status) (A, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.actions[actionID]
	if !ok {
		var zero A
		return zero, domain.ErrNotFound
	}
	a.Core().Status = status
	return a, nil
}

type MockProfileService struct{ mock.Mock }

func (m *MockProfileService) GetProfile(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockProfileService) ActivityStats(ctx context.Context, email string) (*domain.ActivityStats, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityStats), args.Error(1)
}

type MockLeaderboardService struct{ mock.Mock }

func (m *MockLeaderboardService) List(ctx context.Context, category domain.LeaderboardCategory) ([]domain.RankedEntry, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]domain.RankedEntry), args.Error(1)
}

func (m *MockLeaderboardService) Create(ctx context.Context, entry *domain.LeaderboardEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLeaderboardService) Update(ctx context.Context, id int64, patch domain.LeaderboardPatch) (*domain.LeaderboardEntry, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaderboardEntry), args.Error(1)
}

func (m *MockLeaderboardService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
