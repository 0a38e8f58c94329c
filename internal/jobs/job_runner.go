package jobs

import (
	"time"

	"unimitr-backend/internal/config"
	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/repository"
	"unimitr-backend/internal/workflow"
)

// Engines holds the workflow engines whose records expire with time.
type Engines struct {
	Internships  *workflow.Engine[*domain.Internship, *domain.InternshipApplication]
	Volunteering *workflow.Engine[*domain.VolunteeringOpportunity, *domain.VolunteeringApplication]
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	engines      Engines
	appointments repository.AppointmentRepository
	config       config.SchedulerConfig
	now          func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(engines Engines, appointments repository.AppointmentRepository, cfg config.SchedulerConfig) *JobRunner {
	return &JobRunner{
		engines:      engines,
		appointments: appointments,
		config:       cfg,
		now:          time.Now,
	}
}

func (jr *JobRunner) Config() config.SchedulerConfig {
	return jr.config
}

// today is the cutoff date; records dated strictly before it are in the past.
func (jr *JobRunner) today() string {
	return jr.now().UTC().Format("2006-01-02")
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every housekeeping job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.CloseExpiredInternships()
	jr.CloseFinishedVolunteering()
	jr.CompletePastAppointments()
}
