package postgres

import (
	"context"
	"database/sql"

	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

// ActivityStats counts approved participation across the content domains.
// Workshop registrations also count once marked attended.
func (r *statsRepository) ActivityStats(ctx context.Context, email string) (*domain.ActivityStats, error) {
	query := `SELECT
	    (SELECT COUNT(*) FROM event_registrations
	        WHERE LOWER(email) = LOWER($1) AND status = 'approved'),
	    (SELECT COUNT(*) FROM workshop_registrations
	        WHERE LOWER(email) = LOWER($1) AND status IN ('approved', 'attended')),
	    (SELECT COALESCE(SUM(o.duration_hours), 0) FROM volunteering_applications a
	        JOIN volunteering_opportunities o ON o.id = a.opportunity_id
	        WHERE LOWER(a.email) = LOWER($1) AND a.status = 'approved'),
	    (SELECT COUNT(*) FROM club_join_requests
	        WHERE LOWER(email) = LOWER($1) AND status = 'approved')`

	logger.DatabaseCall("select", "activity stats", "email", email)
	s := &domain.ActivityStats{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&s.EventsAttended, &s.WorkshopsCompleted, &s.VolunteeringHours, &s.ChallengesCompleted)
	logger.DatabaseResult("select", 1, err, "email", email)
	if err != nil {
		return nil, err
	}
	return s, nil
}
