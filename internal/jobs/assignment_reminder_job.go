package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// AssignmentReminderJob nudges merchants about accepted orders that still
// have no courier. Runs every 30 seconds; pure read plus publish, no state
// mutation.
type AssignmentReminderJob struct {
	handler   queries.GetOrdersAwaitingAssignmentQueryHandler
	publisher ports.EventPublisher
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewAssignmentReminderJob creates the reminder job. The publisher is the
// live channel the reminders fan out through.
func NewAssignmentReminderJob(
	handler queries.GetOrdersAwaitingAssignmentQueryHandler,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *AssignmentReminderJob {
	return &AssignmentReminderJob{
		handler:   handler,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "assignment_reminder_job"),
	}
}

// Start schedules the reminder to run every 30 seconds.
func (j *AssignmentReminderJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		orders, err := j.handler.Handle(ctx, queries.NewGetOrdersAwaitingAssignmentQuery())
		if err != nil {
			j.logger.ErrorContext(ctx, "Assignment reminder job failed", "error", err)
			return
		}

		now := time.Now()
		for _, o := range orders {
			j.publisher.Publish(ctx, order.AwaitingAssignmentReminder{
				OrderID: o.ID,
				Since:   o.CreatedAt,
				At:      now,
			})
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment reminder job started (running every 30 seconds)")
	return nil
}

// Stop stops the reminder job.
func (j *AssignmentReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Assignment reminder job stopped")
}
