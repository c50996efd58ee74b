package jobs

import (
	"github.com/google/uuid"

	"github.com/temirovuz/library/internal/config"
	"github.com/temirovuz/library/internal/logger"
	"github.com/temirovuz/library/internal/repository/postgres"
	"github.com/temirovuz/library/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store    *postgres.Store
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Rental service.RentalService
	Email  service.EmailService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:    store,
		services: services,
		config:   cfg,
	}
}

// Config exposes the runner's configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery. Every run gets a
// run id so the log lines of one sweep can be correlated.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(runID string)) {
	runID := uuid.NewString()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "run_id", runID, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName, "run_id", runID)
	jobFunc(runID)
	logger.Info("Job completed", "job", jobName, "run_id", runID)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.AccruePenalties()
	jr.ExpireStaleReservations()
	jr.SendOverdueReminders()
}
