package service_test

import (
	"context"

	"unimitr-backend/internal/chat"
	"unimitr-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) FindByEmailOrUsername(ctx context.Context, identifier string) (*domain.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) SetPassword(ctx context.Context, id int64, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *MockUserRepo) TouchLastLogin(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

type MockProfileRepo struct{ mock.Mock }

func (m *MockProfileRepo) GetOrCreate(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileRepo) Update(ctx context.Context, profile *domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type MockStatsRepo struct{ mock.Mock }

func (m *MockStatsRepo) ActivityStats(ctx context.Context, email string) (*domain.ActivityStats, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityStats), args.Error(1)
}

type MockLeaderboardRepo struct{ mock.Mock }

func (m *MockLeaderboardRepo) List(ctx context.Context, category domain.LeaderboardCategory) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func (m *MockLeaderboardRepo) GetByID(ctx context.Context, id int64) (*domain.LeaderboardEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaderboardEntry), args.Error(1)
}

func (m *MockLeaderboardRepo) Create(ctx context.Context, entry *domain.LeaderboardEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLeaderboardRepo) Update(ctx context.Context, entry *domain.LeaderboardEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLeaderboardRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCounsellorRepo struct{ mock.Mock }

func (m *MockCounsellorRepo) List(ctx context.Context) ([]domain.Counsellor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Counsellor), args.Error(1)
}

func (m *MockCounsellorRepo) GetByID(ctx context.Context, id int64) (*domain.Counsellor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counsellor), args.Error(1)
}

func (m *MockCounsellorRepo) Create(ctx context.Context, c *domain.Counsellor) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCounsellorRepo) Update(ctx context.Context, c *domain.Counsellor) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCounsellorRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCounsellorRepo) AvailableSlots(ctx context.Context) (map[int64][]string, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[int64][]string), args.Error(1)
}

func (m *MockCounsellorRepo) AddSlot(ctx context.Context, slot *domain.CounsellorSlot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

type MockAppointmentRepo struct{ mock.Mock }

func (m *MockAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) List(ctx context.Context, email string) ([]domain.Appointment, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) Update(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAppointmentRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockChatClient struct{ mock.Mock }

func (m *MockChatClient) Generate(ctx context.Context, prompt string) (*chat.Completion, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chat.Completion), args.Error(1)
}
