package repository

import (
	"context"

	"unimitr-backend/internal/domain"
)

// WorkflowRepository is the storage capability set of one content domain:
// its Resource table plus the dependent Action table.
type WorkflowRepository[R domain.Resource, A domain.Action] interface {
	Create(ctx context.Context, r R) error
	GetByID(ctx context.Context, id int64) (R, error)
	// List returns resources newest update first. An empty status matches all.
	List(ctx context.Context, status domain.Status) ([]R, error)
	Update(ctx context.Context, r R) error
	Delete(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, status domain.Status) (R, error)

	CreateAction(ctx context.Context, a A) error
	// GetAction returns ErrNotFound when the action belongs to another resource.
	GetAction(ctx context.Context, resourceID, actionID int64) (A, error)
	ListActions(ctx context.Context, resourceID int64) ([]A, error)
	ListActionsByEmail(ctx context.Context, email string) ([]A, error)
	SetActionStatus(ctx context.Context, actionID int64, status domain.Status) (A, error)
}

type (
	EventRepository        = WorkflowRepository[*domain.Event, *domain.EventRegistration]
	ClubRepository         = WorkflowRepository[*domain.Club, *domain.ClubJoinRequest]
	VolunteeringRepository = WorkflowRepository[*domain.VolunteeringOpportunity, *domain.VolunteeringApplication]
	InternshipRepository   = WorkflowRepository[*domain.Internship, *domain.InternshipApplication]
	WorkshopRepository     = WorkflowRepository[*domain.Workshop, *domain.WorkshopRegistration]
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByEmailOrUsername matches email case-insensitively, then username.
	FindByEmailOrUsername(ctx context.Context, identifier string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SetPassword(ctx context.Context, id int64, hash string) error
	TouchLastLogin(ctx context.Context, id int64) error
	// List orders by last login then date joined, newest first, with profiles attached.
	List(ctx context.Context) ([]domain.User, error)
}

type ProfileRepository interface {
	GetOrCreate(ctx context.Context, userID int64) (*domain.UserProfile, error)
	Update(ctx context.Context, profile *domain.UserProfile) error
}

type LeaderboardRepository interface {
	// List sorts by points desc. LeaderboardAll sorts by category first.
	List(ctx context.Context, category domain.LeaderboardCategory) ([]domain.LeaderboardEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.LeaderboardEntry, error)
	Create(ctx context.Context, entry *domain.LeaderboardEntry) error
	Update(ctx context.Context, entry *domain.LeaderboardEntry) error
	Delete(ctx context.Context, id int64) error
}

type CounsellorRepository interface {
	List(ctx context.Context) ([]domain.Counsellor, error)
	GetByID(ctx context.Context, id int64) (*domain.Counsellor, error)
	Create(ctx context.Context, c *domain.Counsellor) error
	Update(ctx context.Context, c *domain.Counsellor) error
	Delete(ctx context.Context, id int64) error
	// AvailableSlots maps counsellor id to its open time slots.
	AvailableSlots(ctx context.Context) (map[int64][]string, error)
	AddSlot(ctx context.Context, slot *domain.CounsellorSlot) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	// List filters by email case-insensitively. An empty email matches all.
	List(ctx context.Context, email string) ([]domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) error
	Delete(ctx context.Context, id int64) error
}

type StatsRepository interface {
	ActivityStats(ctx context.Context, email string) (*domain.ActivityStats, error)
}
