package service

import (
	"context"

	"unimitr-backend/internal/chat"
	"unimitr-backend/internal/domain"
)

// Session is the result of a successful login.
type Session struct {
	Access  string
	Refresh string
	User    *domain.User
}

type SignupRequest struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

type CompatLoginRequest struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	Name      string `json:"name"`
	StudentID string `json:"studentId"`
	Phone     string `json:"phone"`
}

type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*domain.User, error)
	Login(ctx context.Context, identifier, password string) (*Session, error)
	CompatLogin(ctx context.Context, req CompatLoginRequest) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Me(ctx context.Context, userID int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	EnsureAdmin(ctx context.Context, username, email, password string) error
}

type ProfileService interface {
	GetProfile(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error)
	ActivityStats(ctx context.Context, email string) (*domain.ActivityStats, error)
}

type LeaderboardService interface {
	List(ctx context.Context, category domain.LeaderboardCategory) ([]domain.RankedEntry, error)
	Create(ctx context.Context, entry *domain.LeaderboardEntry) error
	Update(ctx context.Context, id int64, patch domain.LeaderboardPatch) (*domain.LeaderboardEntry, error)
	Delete(ctx context.Context, id int64) error
}

type MentalHealthService interface {
	ListCounsellors(ctx context.Context) ([]domain.Counsellor, error)
	GetCounsellor(ctx context.Context, id int64) (*domain.Counsellor, error)
	CreateCounsellor(ctx context.Context, c *domain.Counsellor) error
	UpdateCounsellor(ctx context.Context, id int64, patch domain.CounsellorPatch) (*domain.Counsellor, error)
	DeleteCounsellor(ctx context.Context, id int64) error

	BookAppointment(ctx context.Context, counsellorID int64, slot, email string) (*domain.Appointment, error)
	ListAppointments(ctx context.Context, email string, all bool) ([]domain.Appointment, error)
	UpdateAppointment(ctx context.Context, id int64, status *domain.AppointmentStatus, notes *string) (*domain.Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) error
}

type ChatService interface {
	Reply(ctx context.Context, message string) (*chat.Completion, error)
}
