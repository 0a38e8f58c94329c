package scheduler

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"unimitr-backend/internal/config"
	"unimitr-backend/internal/jobs"
	"unimitr-backend/internal/logger"
)

func TestNewScheduler_RegistersJobs(t *testing.T) {
	logger.InitializeWithWriter("error", "text", io.Discard)

	cfg := config.SchedulerConfig{
		CloseExpiredInternships:   "0 5 0 * * *",
		CloseFinishedVolunteering: "0 10 0 * * *",
		CompletePastAppointments:  "0 15 0 * * *",
	}
	s := NewScheduler(jobs.NewJobRunner(jobs.Engines{}, nil, cfg))
	assert.Equal(t, 3, s.JobCount())
}

func TestNewScheduler_SkipsInvalidSpec(t *testing.T) {
	logger.InitializeWithWriter("error", "text", io.Discard)

	cfg := config.SchedulerConfig{
		CloseExpiredInternships:   "every night",
		CloseFinishedVolunteering: "0 10 0 * * *",
		CompletePastAppointments:  "0 15 0 * * *",
	}
	s := NewScheduler(jobs.NewJobRunner(jobs.Engines{}, nil, cfg))
	assert.Equal(t, 2, s.JobCount())

	s.Start()
	s.Stop()
}

func TestNewScheduler_LogsWithServiceName(t *testing.T) {
	var buf bytes.Buffer
	logger.InitializeWithWriter("info", "json", &buf)
	defer logger.InitializeWithWriter("error", "text", io.Discard)

	NewScheduler(jobs.NewJobRunner(jobs.Engines{}, nil, config.SchedulerConfig{CloseExpiredInternships: "0 5 0 * * *"}))
	assert.Contains(t, buf.String(), `"service":"scheduler"`)
	assert.Contains(t, buf.String(), "Cron jobs registered")
}
