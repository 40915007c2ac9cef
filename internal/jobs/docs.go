// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// AssignmentReminderJob runs every 30 seconds and publishes a reminder event
// for every accepted order that still has no courier, so merchants see the
// nudge on the order's live channel. Jobs are managed through JobManager,
// which starts and stops them as a group.
package jobs
