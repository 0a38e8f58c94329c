package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/repository"
)

//go:embed schema.sql
var schema string

// Store bundles every repository over one connection pool.
type Store struct {
	db *sql.DB

	Users        repository.UserRepository
	Profiles     repository.ProfileRepository
	Leaderboard  repository.LeaderboardRepository
	Counsellors  repository.CounsellorRepository
	Appointments repository.AppointmentRepository
	Stats        repository.StatsRepository

	Events       repository.EventRepository
	Clubs        repository.ClubRepository
	Volunteering repository.VolunteeringRepository
	Internships  repository.InternshipRepository
	Workshops    repository.WorkshopRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		Users:        NewUserRepository(db),
		Profiles:     NewProfileRepository(db),
		Leaderboard:  NewLeaderboardRepository(db),
		Counsellors:  NewCounsellorRepository(db),
		Appointments: NewAppointmentRepository(db),
		Stats:        NewStatsRepository(db),
		Events:       NewEventRepository(db),
		Clubs:        NewClubRepository(db),
		Volunteering: NewVolunteeringRepository(db),
		Internships:  NewInternshipRepository(db),
		Workshops:    NewWorkshopRepository(db),
	}
}

// Migrate creates missing tables and indexes. It is safe to run on every start.
func (s *Store) Migrate(ctx context.Context) error {
	logger.DatabaseCall("migrate", "schema.sql")
	_, err := s.db.ExecContext(ctx, schema)
	logger.DatabaseResult("migrate", 0, err)
	if err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// translate maps driver errors onto the domain error taxonomy.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return domain.NewValidationError(uniqueField(pqErr), "already exists")
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w", pqErr.Constraint, domain.ErrNotFound)
		}
	}
	return err
}

func uniqueField(e *pq.Error) string {
	if e.Column != "" {
		return e.Column
	}
	switch e.Constraint {
	case "clubs_name_key":
		return "name"
	case "users_username_key":
		return "username"
	}
	return e.Constraint
}

// affected turns a zero-row write into ErrNotFound.
func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
