package postgres

import (
	"context"
	"database/sql"

	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/repository"
)

const leaderboardColumns = `id, name, university, points, avatar, emoji, category, is_university_entry, created_at, updated_at`

type leaderboardRepository struct {
	db *sql.DB
}

func NewLeaderboardRepository(db *sql.DB) repository.LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func scanLeaderboardEntry(row rowScanner, e *domain.LeaderboardEntry) error {
	return row.Scan(&e.ID, &e.Name, &e.University, &e.Points, &e.Avatar, &e.Emoji, &e.Category,
		&e.IsUniversityEntry, &e.CreatedAt, &e.UpdatedAt)
}

func (r *leaderboardRepository) List(ctx context.Context, category domain.LeaderboardCategory) ([]domain.LeaderboardEntry, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if category == domain.LeaderboardAll {
		query := `SELECT ` + leaderboardColumns + ` FROM leaderboard_entries ORDER BY category ASC, points DESC, id ASC`
		logger.DatabaseCall("select", query)
		rows, err = r.db.QueryContext(ctx, query)
	} else {
		query := `SELECT ` + leaderboardColumns + ` FROM leaderboard_entries WHERE category = $1 ORDER BY points DESC, id ASC`
		logger.DatabaseCall("select", query, "category", category)
		rows, err = r.db.QueryContext(ctx, query, category)
	}
	if err != nil {
		logger.DatabaseResult("select", 0, err)
		return nil, err
	}
	defer rows.Close()

	entries := []domain.LeaderboardEntry{}
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := scanLeaderboardEntry(rows, &e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	logger.DatabaseResult("select", int64(len(entries)), rows.Err())
	return entries, rows.Err()
}

func (r *leaderboardRepository) GetByID(ctx context.Context, id int64) (*domain.LeaderboardEntry, error) {
	e := &domain.LeaderboardEntry{}
	query := `SELECT ` + leaderboardColumns + ` FROM leaderboard_entries WHERE id = $1`
	if err := scanLeaderboardEntry(r.db.QueryRowContext(ctx, query, id), e); err != nil {
		return nil, translate(err)
	}
	return e, nil
}

func (r *leaderboardRepository) Create(ctx context.Context, e *domain.LeaderboardEntry) error {
	query := `INSERT INTO leaderboard_entries (name, university, points, avatar, emoji, category, is_university_entry)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
	return translate(r.db.QueryRowContext(ctx, query, e.Name, e.University, e.Points, e.Avatar, e.Emoji,
		e.Category, e.IsUniversityEntry).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt))
}

func (r *leaderboardRepository) Update(ctx context.Context, e *domain.LeaderboardEntry) error {
	query := `UPDATE leaderboard_entries SET name = $1, university = $2, points = $3, avatar = $4, emoji = $5,
	          category = $6, is_university_entry = $7, updated_at = NOW() WHERE id = $8 RETURNING updated_at`
	return translate(r.db.QueryRowContext(ctx, query, e.Name, e.University, e.Points, e.Avatar, e.Emoji,
		e.Category, e.IsUniversityEntry, e.ID).Scan(&e.UpdatedAt))
}

func (r *leaderboardRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM leaderboard_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affected(res)
}
