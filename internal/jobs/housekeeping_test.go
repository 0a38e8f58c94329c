package jobs

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unimitr-backend/internal/config"
	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/repository/postgres"
	"unimitr-backend/internal/workflow"
)

var internshipColumns = []string{"id", "status", "created_by", "created_at", "updated_at",
	"title", "company", "description", "requirements", "location", "internship_type",
	"duration_months", "stipend", "application_deadline", "category", "banner_url"}

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
}

func TestCloseExpiredInternships(t *testing.T) {
	logger.InitializeWithWriter("error", "text", io.Discard)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var invalidated []domain.Kind
	engine := workflow.NewEngine(workflow.Internships, postgres.NewInternshipRepository(db),
		workflow.WithWriteHook(func(k domain.Kind) { invalidated = append(invalidated, k) }))

	jr := NewJobRunner(Engines{Internships: engine}, nil, config.SchedulerConfig{})
	jr.now = fixedNow
	now := time.Now()

	mock.ExpectQuery("FROM internships WHERE status = \\$1").
		WithArgs("approved").
		WillReturnRows(sqlmock.NewRows(internshipColumns).
			AddRow(1, "approved", nil, now, now, "Backend Intern", "Acme", "", "", "Remote", "remote", 3, "", "2026-03-09", "tech", nil).
			AddRow(2, "approved", nil, now, now, "Data Intern", "Beta", "", "", "Pune", "full-time", 6, "", "2026-03-10", "data", nil))
	mock.ExpectQuery("UPDATE internships SET status = \\$1").
		WithArgs("closed", int64(1)).
		WillReturnRows(sqlmock.NewRows(internshipColumns).
			AddRow(1, "closed", nil, now, now, "Backend Intern", "Acme", "", "", "Remote", "remote", 3, "", "2026-03-09", "tech", nil))

	jr.CloseExpiredInternships()

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, []domain.Kind{domain.KindInternships}, invalidated)
}

func TestCompletePastAppointments(t *testing.T) {
	logger.InitializeWithWriter("error", "text", io.Discard)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	jr := NewJobRunner(Engines{}, postgres.NewAppointmentRepository(db), config.SchedulerConfig{})
	jr.now = fixedNow
	now := time.Now()

	cols := []string{"id", "counsellor_id", "name", "specialization", "user_email", "slot", "date", "status", "notes", "created_at"}
	mock.ExpectQuery("FROM counselling_appointments a JOIN counsellors c").
		WithArgs("").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(4, 1, "Dr. Rao", "Anxiety", "a@x.com", "2:00 PM", "2026-03-10", "confirmed", "", now).
			AddRow(3, 1, "Dr. Rao", "Anxiety", "b@x.com", "10:00 AM", "2026-03-08", "cancelled", "", now).
			AddRow(2, 1, "Dr. Rao", "Anxiety", "c@x.com", "4:00 PM", "2026-03-07", "confirmed", "ok", now))
	mock.ExpectExec("UPDATE counselling_appointments SET status").
		WithArgs("completed", "ok", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := jr.completePastAppointments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunWithRecovery(t *testing.T) {
	logger.InitializeWithWriter("error", "text", io.Discard)
	jr := NewJobRunner(Engines{}, nil, config.SchedulerConfig{})

	assert.NotPanics(t, func() {
		jr.runWithRecovery("boom", func() { panic("unexpected") })
	})
}
