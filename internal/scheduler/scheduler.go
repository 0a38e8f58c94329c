package scheduler

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"unimitr-backend/internal/jobs"
	"unimitr-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
	log  *slog.Logger
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
		log:  logger.WithService("scheduler"),
	}

	s.registerJobs()
	return s
}

// registerJobs skips a job whose expression does not parse.
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config()

	entries := []struct {
		name string
		spec string
		fn   func()
	}{
		{"CloseExpiredInternships", cfg.CloseExpiredInternships, s.jobs.CloseExpiredInternships},
		{"CloseFinishedVolunteering", cfg.CloseFinishedVolunteering, s.jobs.CloseFinishedVolunteering},
		{"CompletePastAppointments", cfg.CompletePastAppointments, s.jobs.CompletePastAppointments},
	}
	for _, e := range entries {
		if _, err := s.cron.AddFunc(e.spec, e.fn); err != nil {
			s.log.Error("Failed to register job", "job", e.name, "spec", e.spec, "error", err)
			continue
		}
		s.log.Debug("Job registered", "job", e.name, "spec", e.spec)
	}

	s.log.Info("Cron jobs registered", "count", len(s.cron.Entries()))
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	s.log.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.log.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Cron scheduler stopped")
}

// JobCount returns the number of registered jobs
func (s *Scheduler) JobCount() int {
	return len(s.cron.Entries())
}
