package postgres

import (
	"context"
	"database/sql"

	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/repository"
)

const counsellorColumns = `id, name, specialization, avatar, rating, bio, is_available, created_at`

type counsellorRepository struct {
	db *sql.DB
}

func NewCounsellorRepository(db *sql.DB) repository.CounsellorRepository {
	return &counsellorRepository{db: db}
}

func scanCounsellor(row rowScanner, c *domain.Counsellor) error {
	return row.Scan(&c.ID, &c.Name, &c.Specialization, &c.Avatar, &c.Rating, &c.Bio, &c.IsAvailable, &c.CreatedAt)
}

func (r *counsellorRepository) List(ctx context.Context) ([]domain.Counsellor, error) {
	query := `SELECT ` + counsellorColumns + ` FROM counsellors ORDER BY id ASC`
	logger.DatabaseCall("select", query)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("select", 0, err)
		return nil, err
	}
	defer rows.Close()

	out := []domain.Counsellor{}
	for rows.Next() {
		var c domain.Counsellor
		if err := scanCounsellor(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *counsellorRepository) GetByID(ctx context.Context, id int64) (*domain.Counsellor, error) {
	c := &domain.Counsellor{}
	query := `SELECT ` + counsellorColumns + ` FROM counsellors WHERE id = $1`
	if err := scanCounsellor(r.db.QueryRowContext(ctx, query, id), c); err != nil {
		return nil, translate(err)
	}
	return c, nil
}

func (r *counsellorRepository) Create(ctx context.Context, c *domain.Counsellor) error {
	query := `INSERT INTO counsellors (name, specialization, avatar, rating, bio, is_available)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	return translate(r.db.QueryRowContext(ctx, query, c.Name, c.Specialization, c.Avatar, c.Rating, c.Bio, c.IsAvailable).
		Scan(&c.ID, &c.CreatedAt))
}

func (r *counsellorRepository) Update(ctx context.Context, c *domain.Counsellor) error {
	query := `UPDATE counsellors SET name = $1, specialization = $2, avatar = $3, rating = $4, bio = $5, is_available = $6
	          WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Specialization, c.Avatar, c.Rating, c.Bio, c.IsAvailable, c.ID)
	if err != nil {
		return translate(err)
	}
	return affected(res)
}

func (r *counsellorRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM counsellors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affected(res)
}

func (r *counsellorRepository) AvailableSlots(ctx context.Context) (map[int64][]string, error) {
	query := `SELECT counsellor_id, time_slot FROM counsellor_slots WHERE is_available ORDER BY counsellor_id, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make(map[int64][]string)
	for rows.Next() {
		var id int64
		var slot string
		if err := rows.Scan(&id, &slot); err != nil {
			return nil, err
		}
		slots[id] = append(slots[id], slot)
	}
	return slots, rows.Err()
}

func (r *counsellorRepository) AddSlot(ctx context.Context, slot *domain.CounsellorSlot) error {
	if slot.Day == "" {
		slot.Day = "Any"
	}
	query := `INSERT INTO counsellor_slots (counsellor_id, time_slot, day, is_available)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	logger.DatabaseCall("insert", query, "table", "counsellor_slots")
	err := r.db.QueryRowContext(ctx, query, slot.CounsellorID, slot.TimeSlot, slot.Day, slot.IsAvailable).Scan(&slot.ID)
	logger.DatabaseResult("insert", 1, err, "table", "counsellor_slots")
	return translate(err)
}

const appointmentSelect = `SELECT a.id, a.counsellor_id, c.name, c.specialization, a.user_email, a.slot,
	a.date::text, a.status, a.notes, a.created_at
	FROM counselling_appointments a JOIN counsellors c ON c.id = a.counsellor_id`

type appointmentRepository struct {
	db *sql.DB
}

func NewAppointmentRepository(db *sql.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func scanAppointment(row rowScanner, a *domain.Appointment) error {
	return row.Scan(&a.ID, &a.CounsellorID, &a.CounsellorName, &a.Specialization, &a.UserEmail, &a.Slot,
		&a.Date, &a.Status, &a.Notes, &a.CreatedAt)
}

// Create books for today when no date is set.
func (r *appointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	query := `INSERT INTO counselling_appointments (counsellor_id, user_email, slot, date, status, notes)
	          VALUES ($1, $2, $3, COALESCE(NULLIF($4, '')::date, CURRENT_DATE), $5, $6)
	          RETURNING id, date::text, created_at`
	logger.DatabaseCall("insert", query, "counsellorID", a.CounsellorID)
	err := r.db.QueryRowContext(ctx, query, a.CounsellorID, a.UserEmail, a.Slot, a.Date, a.Status, a.Notes).
		Scan(&a.ID, &a.Date, &a.CreatedAt)
	logger.DatabaseResult("insert", 1, err)
	return translate(err)
}

func (r *appointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	a := &domain.Appointment{}
	if err := scanAppointment(r.db.QueryRowContext(ctx, appointmentSelect+` WHERE a.id = $1`, id), a); err != nil {
		return nil, translate(err)
	}
	return a, nil
}

func (r *appointmentRepository) List(ctx context.Context, email string) ([]domain.Appointment, error) {
	query := appointmentSelect + ` WHERE ($1 = '' OR LOWER(a.user_email) = LOWER($1)) ORDER BY a.date DESC, a.id DESC`
	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Appointment{}
	for rows.Next() {
		var a domain.Appointment
		if err := scanAppointment(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *appointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	res, err := r.db.ExecContext(ctx, `UPDATE counselling_appointments SET status = $1, notes = $2 WHERE id = $3`,
		a.Status, a.Notes, a.ID)
	if err != nil {
		return err
	}
	return affected(res)
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM counselling_appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affected(res)
}
