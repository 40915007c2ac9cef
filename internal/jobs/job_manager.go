package jobs

import (
	"fmt"
	"log/slog"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	assignmentReminderJob *AssignmentReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	awaitingAssignmentHandler queries.GetOrdersAwaitingAssignmentQueryHandler,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		assignmentReminderJob: NewAssignmentReminderJob(awaitingAssignmentHandler, publisher, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.assignmentReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start assignment reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.assignmentReminderJob.Stop()
}
