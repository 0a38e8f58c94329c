package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"unimitr-backend/internal/config"
	"unimitr-backend/internal/jobs"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/repository/postgres"
	"unimitr-backend/internal/scheduler"
	"unimitr-backend/internal/workflow"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'close-expired-internships', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting UniMitr cronjob runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	// The API server's list cache is in another process; it catches up
	// through workflow.list_cache_max_age_seconds.
	strict := workflow.WithStrictTransitions(cfg.Workflow.StrictTransitions)
	jobRunner := jobs.NewJobRunner(jobs.Engines{
		Internships:  workflow.NewEngine(workflow.Internships, store.Internships, strict),
		Volunteering: workflow.NewEngine(workflow.Volunteering, store.Volunteering, strict),
	}, store.Appointments, cfg.Scheduler)

	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if !runJobOnce(jobRunner, *runOnce) {
			logger.Error("Unknown job name", "job", *runOnce)
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	cronScheduler.Stop()
}

// runJobOnce reports false for an unknown job name.
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) bool {
	switch jobName {
	case "close-expired-internships":
		jobRunner.CloseExpiredInternships()
	case "close-finished-volunteering":
		jobRunner.CloseFinishedVolunteering()
	case "complete-past-appointments":
		jobRunner.CompletePastAppointments()
	case "all":
		jobRunner.RunAll()
	default:
		return false
	}
	return true
}
